package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/runpop/internal/app"
	"github.com/atomicstack/runpop/internal/ui/state"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// Options holds the raw command line values. Defaults come from the
// environment via DefaultOptions.
type Options struct {
	ConfigPath string
	Stdin      bool
	Print      bool
	Tmux       bool
	SocketPath string
	Filter     string
	FilterSet  bool
	Trace      bool
	LogFile    string
	Args       []string
}

const (
	envConfigPath = "RUNPOP_CONFIG"
	envSocketPath = "RUNPOP_SOCKET"
	envTmux       = "RUNPOP_TMUX"
	envTrace      = "RUNPOP_TRACE"
	envLogFile    = "RUNPOP_LOG_FILE"
)

// DefaultOptions returns option defaults with environment overrides applied.
func DefaultOptions(environ []string) Options {
	env := parseEnv(environ)
	return Options{
		ConfigPath: envOrDefault(env, envConfigPath, ""),
		Tmux:       envOrBool(env, envTmux, false),
		SocketPath: envOrDefault(env, envSocketPath, ""),
		Trace:      envOrBool(env, envTrace, false),
		LogFile:    envOrDefault(env, envLogFile, ""),
	}
}

// Resolve turns options into a Config, loading (or creating) the appearance
// file. A malformed appearance file falls back to defaults.
func Resolve(opts Options) (Config, error) {
	if len(opts.Args) > 1 {
		return Config{}, fmt.Errorf("expected at most one config path, got %d arguments", len(opts.Args))
	}
	path := strings.TrimSpace(opts.ConfigPath)
	if len(opts.Args) == 1 {
		path = strings.TrimSpace(opts.Args[0])
	}
	if path == "" {
		path = DefaultPath()
	}
	file, source := LoadOrInit(path)

	cfg := Config{
		App: app.Config{
			ConfigPath: path,
			Appearance: file.Appearance(),
			Stdin:      opts.Stdin,
			Print:      opts.Print,
			Tmux:       opts.Tmux,
			SocketPath: opts.SocketPath,
			Filter:     opts.Filter,
			FilterOnly: opts.FilterSet,
		},
		Logging: Logging{
			FilePath: opts.LogFile,
			Trace:    opts.Trace,
		},
		Flags: map[string]string{
			"config":       path,
			"configSource": source.String(),
			"stdin":        strconv.FormatBool(opts.Stdin),
			"print":        strconv.FormatBool(opts.Print),
			"tmux":         strconv.FormatBool(opts.Tmux),
			"socket":       opts.SocketPath,
			"filter":       opts.Filter,
			"trace":        strconv.FormatBool(opts.Trace),
			"logFile":      opts.LogFile,
		},
		Args: append([]string(nil), opts.Args...),
	}
	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate ensures the resolved configuration is usable.
func Validate(cfg Config) error {
	a := cfg.App.Appearance
	if _, ok := state.MatcherByName(a.Matcher); !ok {
		return fmt.Errorf("unknown matcher %q", a.Matcher)
	}
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("viewport must be positive (got %dx%d)", a.Width, a.Height)
	}
	if cfg.App.Print && cfg.App.Tmux {
		return fmt.Errorf("--print and --tmux are mutually exclusive")
	}
	return nil
}
