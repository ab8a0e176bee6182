package wisp

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// envPrefix marks the environment variables that override file configuration.
// Variables map to config keys by stripping the prefix, lowercasing, and
// turning underscores into dots: WISP_FILE_PATH -> file.path.
const envPrefix = "WISP_"

// Destination names accepted in a wiring route.
const (
	destConsole  = "console"
	destFile     = "file"
	destDatabase = "database"
)

// Config is an external wiring description: which destinations subscribe to
// which severities, which match policy the chain uses, and where the file and
// database destinations write. It is plain data; Build turns it into a
// working Facade.
type Config struct {
	// Policy is the chain match policy: "exact" (default) or "at-or-above".
	Policy string

	// Routes maps a severity name to the ordered destination names
	// subscribed to it. Valid destination names are "console", "file",
	// and "database".
	Routes map[string][]string

	// FilePath is where the "file" destination appends. Defaults to wisp.log.
	FilePath string

	// DatabasePath is where the "database" destination stores messages.
	// Defaults to wisp.db.
	DatabasePath string
}

// ParseConfig reads a YAML wiring description and applies WISP_* environment
// overrides on top of it.
//
// Example:
//
//	policy: exact
//	routes:
//	  info: [console]
//	  error: [console, file]
//	  debug: [console]
//	file:
//	  path: app.log
func ParseConfig(content []byte) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return nil, errors.Wrap(err, "parse wiring config")
	}

	// Environment variables win over the file, matching the precedence
	// callers expect from service configuration.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load environment overrides")
	}

	cfg := &Config{
		Policy:       k.String("policy"),
		Routes:       make(map[string][]string),
		FilePath:     k.String("file.path"),
		DatabasePath: k.String("database.path"),
	}
	for _, name := range severityNames {
		if dests := k.Strings("routes." + name); len(dests) > 0 {
			cfg.Routes[name] = dests
		}
	}
	if cfg.FilePath == "" {
		cfg.FilePath = defaultErrorLog
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "wisp.db"
	}
	return cfg, nil
}

// LoadConfig reads the YAML wiring file at path and parses it with ParseConfig.
func LoadConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read wiring config %s", path)
	}
	return ParseConfig(content)
}

// Build constructs a Facade wired according to the config. Destinations are
// shared: a name appearing under several severities resolves to one instance.
// Additional options are applied after the config-derived wiring and policy,
// so they can override either.
func (c *Config) Build(opts ...Option) (*Facade, error) {
	match, err := parsePolicy(c.Policy)
	if err != nil {
		return nil, err
	}

	built := make(map[string]Destination)
	wiring := make(Wiring, len(c.Routes))
	for name, destNames := range c.Routes {
		level, err := ParseSeverity(name)
		if err != nil {
			return nil, err
		}
		for _, dn := range destNames {
			d, err := c.destination(dn, built)
			if err != nil {
				return nil, err
			}
			wiring[level] = append(wiring[level], d)
		}
	}

	all := append([]Option{WithWiring(wiring), WithMatchPolicy(match)}, opts...)
	return New(all...), nil
}

func (c *Config) destination(name string, built map[string]Destination) (Destination, error) {
	if d, ok := built[name]; ok {
		return d, nil
	}
	var d Destination
	switch name {
	case destConsole:
		d = NewConsole(os.Stdout)
	case destFile:
		d = NewFile(c.FilePath)
	case destDatabase:
		db, err := NewDatabase(c.DatabasePath)
		if err != nil {
			return nil, err
		}
		d = db
	default:
		return nil, errors.Errorf("wisp: unknown destination %q", name)
	}
	built[name] = d
	return d, nil
}

func parsePolicy(name string) (MatchPolicy, error) {
	switch name {
	case "", "exact":
		return MatchExact, nil
	case "at-or-above":
		return MatchAtOrAbove, nil
	default:
		return nil, errors.Errorf("wisp: unknown match policy %q", name)
	}
}
