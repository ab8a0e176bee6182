// Package wisp provides a minimalist logging library that routes messages by
// severity: each message is tagged Info, Error, or Debug and fanned out to
// every destination subscribed to that severity.
//
// Key features:
//   - Closed severity set (Info, Error, Debug) with canonical message tags
//   - Per-severity fan-out to ordered destination lists (console, file, LevelDB)
//   - Configurable match policy: exact per-level routing, or cumulative at-or-above
//   - External wiring via YAML with WISP_* environment overrides
//   - Package-level default facade built lazily, exactly once
package wisp

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/multierr"
)

// Facade is the single entry point application code logs through. It owns one
// handler chain and one subscriber registry, both built at construction; the
// topology is immutable afterwards and safe for concurrent use, though
// destinations may still be added or removed through Registry.
//
// Logging methods are fire-and-forget: they never return errors and never
// panic for normal operation. Destination failures surface through the error
// hook instead.
type Facade struct {
	wiring   Wiring
	order    []Severity
	match    MatchPolicy
	hook     ErrorHook
	registry *Registry
	chain    *Chain
	closers  []io.Closer
}

// New creates a Facade configured with the provided options. Without options
// it uses the default wiring (console on every level, an append-only
// "wisp.log" file on Error), the default Info, Error, Debug chain order, the
// exact match policy, and the stderr error hook.
//
// Example:
//
//	log := wisp.New(wisp.WithWiring(wisp.Wiring{
//		wisp.InfoLevel:  {console},
//		wisp.ErrorLevel: {console, file},
//	}))
//	log.Info("service started")
func New(opts ...Option) *Facade {
	f := &Facade{match: MatchExact}
	for _, opt := range opts {
		opt(f)
	}
	if f.wiring == nil {
		f.wiring = DefaultWiring(NewConsole(os.Stdout), NewFile(defaultErrorLog))
	}
	f.registry = NewRegistry(f.hook)
	f.chain = NewChain(f.registry, f.match, f.order...)

	seen := make(map[Destination]bool)
	for level := DebugLevel; level <= ErrorLevel; level++ {
		for _, d := range f.wiring[level] {
			f.registry.Register(level, d)
			if !seen[d] {
				seen[d] = true
				if cl, ok := d.(io.Closer); ok {
					f.closers = append(f.closers, cl)
				}
			}
		}
	}
	return f
}

// WithWiring returns an Option that sets the severity-to-destinations table
// used to populate the registry. Slice order per level is registration order.
func WithWiring(w Wiring) Option {
	return func(f *Facade) {
		f.wiring = w
	}
}

// WithMatchPolicy returns an Option that sets the chain match policy.
//
// Example:
//
//	log := wisp.New(wisp.WithMatchPolicy(wisp.MatchAtOrAbove))
func WithMatchPolicy(m MatchPolicy) Option {
	return func(f *Facade) {
		if m != nil {
			f.match = m
		}
	}
}

// WithChainOrder returns an Option that sets the chain traversal order. The
// order must name each severity at most once; under the exact policy it never
// changes which destinations receive a message.
func WithChainOrder(order ...Severity) Option {
	return func(f *Facade) {
		f.order = order
	}
}

// WithErrorHook returns an Option that sets the callback receiving delivery
// failures. Passing nil keeps the default stderr hook.
func WithErrorHook(h ErrorHook) Option {
	return func(f *Facade) {
		f.hook = h
	}
}

// DefaultWiring is the static default table: console subscribed to all three
// levels, file subscribed to Error only.
func DefaultWiring(console, file Destination) Wiring {
	return Wiring{
		InfoLevel:  {console},
		ErrorLevel: {console, file},
		DebugLevel: {console},
	}
}

// Registry returns the facade's subscriber registry, through which
// destinations can be registered or unregistered at runtime.
func (f *Facade) Registry() *Registry {
	return f.registry
}

// Info routes an informational message through the handler chain.
func (f *Facade) Info(message string) {
	f.chain.Handle(InfoLevel, message)
}

// Infof routes a formatted informational message through the handler chain.
func (f *Facade) Infof(format string, args ...interface{}) {
	f.chain.Handle(InfoLevel, fmt.Sprintf(format, args...))
}

// Error routes an error message through the handler chain.
func (f *Facade) Error(message string) {
	f.chain.Handle(ErrorLevel, message)
}

// Errorf routes a formatted error message through the handler chain.
func (f *Facade) Errorf(format string, args ...interface{}) {
	f.chain.Handle(ErrorLevel, fmt.Sprintf(format, args...))
}

// Debug routes a debug message through the handler chain.
func (f *Facade) Debug(message string) {
	f.chain.Handle(DebugLevel, message)
}

// Debugf routes a formatted debug message through the handler chain.
func (f *Facade) Debugf(format string, args ...interface{}) {
	f.chain.Handle(DebugLevel, fmt.Sprintf(format, args...))
}

// Close closes every distinct wired destination that holds resources
// (currently the LevelDB-backed Database) and combines their errors.
// Destinations registered after construction are the caller's to close.
func (f *Facade) Close() error {
	var err error
	for _, cl := range f.closers {
		err = multierr.Append(err, cl.Close())
	}
	return err
}

var (
	defaultOnce   sync.Once
	defaultFacade *Facade
)

// Default returns the shared process-wide Facade, constructing it with the
// default wiring on first use. Construction happens at most once: concurrent
// first callers all observe the same fully built instance.
//
// Default is a convenience, not an enforced singleton; callers that prefer
// explicit dependencies can construct their own Facade with New and pass it
// around.
func Default() *Facade {
	defaultOnce.Do(func() {
		defaultFacade = New()
	})
	return defaultFacade
}

// Info logs an informational message through the package-level default facade.
func Info(message string) {
	Default().Info(message)
}

// Infof logs a formatted informational message through the package-level default facade.
func Infof(format string, args ...interface{}) {
	Default().Infof(format, args...)
}

// Error logs an error message through the package-level default facade.
func Error(message string) {
	Default().Error(message)
}

// Errorf logs a formatted error message through the package-level default facade.
func Errorf(format string, args ...interface{}) {
	Default().Errorf(format, args...)
}

// Debug logs a debug message through the package-level default facade.
func Debug(message string) {
	Default().Debug(message)
}

// Debugf logs a formatted debug message through the package-level default facade.
func Debugf(format string, args ...interface{}) {
	Default().Debugf(format, args...)
}
