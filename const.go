package wisp

import (
	"strings"

	"github.com/pkg/errors"
)

// Predefined severity levels. The rank order (Debug < Info < Error) only
// matters to the at-or-above match policy; chain traversal order is fixed at
// construction time and is independent of rank.
const (
	// DebugLevel represents diagnostic messages for development use
	DebugLevel Severity = iota

	// InfoLevel indicates normal operational messages for tracking progress
	InfoLevel

	// ErrorLevel denotes failures in specific operations or components
	ErrorLevel
)

// severityTags holds the canonical message tag for each severity, indexed by rank.
var severityTags = [...]string{"DEBUG", "INFO", "ERROR"}

// severityNames holds the lowercase identifier for each severity, as used in
// wiring configuration and diagnostics.
var severityNames = [...]string{"debug", "info", "error"}

// defaultChainOrder is the traversal order used when no explicit order is given.
var defaultChainOrder = []Severity{InfoLevel, ErrorLevel, DebugLevel}

// defaultErrorLog is the file the default wiring appends error messages to.
const defaultErrorLog = "wisp.log"

// Tag returns the canonical tag prefixed to every message delivered at this
// severity (e.g., "INFO" for InfoLevel).
func (s Severity) Tag() string {
	return severityTags[s]
}

// String returns the lowercase identifier of the severity ("info", "error", "debug").
func (s Severity) String() string {
	return severityNames[s]
}

// ParseSeverity converts a case-insensitive severity name ("info", "error",
// "debug") into its Severity value. It returns an error for any other name.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(name) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return 0, errors.Errorf("wisp: unknown severity %q", name)
	}
}
