package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/runpop/internal/logging"
	"github.com/atomicstack/runpop/internal/theme"
)

func withLogFile(t *testing.T) {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "runpop.log"))
	t.Cleanup(func() { logging.Configure("") })
}

func TestDefaultOptionsUsesEnvironment(t *testing.T) {
	opts := DefaultOptions([]string{
		"RUNPOP_SOCKET=/tmp/tmux.sock",
		"RUNPOP_TMUX=1",
		"RUNPOP_TRACE=true",
		"RUNPOP_LOG_FILE=/tmp/runpop.log",
		"RUNPOP_CONFIG=/etc/runpop.toml",
		"malformed",
		"",
	})
	if opts.SocketPath != "/tmp/tmux.sock" {
		t.Fatalf("expected socket from env, got %q", opts.SocketPath)
	}
	if !opts.Tmux || !opts.Trace {
		t.Fatalf("expected boolean env overrides, got %#v", opts)
	}
	if opts.LogFile != "/tmp/runpop.log" || opts.ConfigPath != "/etc/runpop.toml" {
		t.Fatalf("unexpected string overrides %#v", opts)
	}
}

func TestDefaultOptionsIgnoresInvalidBooleans(t *testing.T) {
	opts := DefaultOptions([]string{"RUNPOP_TRACE=maybe", "RUNPOP_TMUX= "})
	if opts.Trace || opts.Tmux {
		t.Fatalf("expected invalid booleans to keep defaults, got %#v", opts)
	}
}

func TestResolveCreatesDefaultConfig(t *testing.T) {
	withLogFile(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := Resolve(Options{Args: []string{path}, Print: true, Filter: "ca", FilterSet: true})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default config to be written: %v", err)
	}
	if cfg.App.ConfigPath != path {
		t.Fatalf("expected config path %q, got %q", path, cfg.App.ConfigPath)
	}
	if cfg.App.Appearance != DefaultFile().Appearance() {
		t.Fatalf("expected default appearance, got %#v", cfg.App.Appearance)
	}
	if !cfg.App.Print || !cfg.App.FilterOnly || cfg.App.Filter != "ca" {
		t.Fatalf("expected flags to carry through, got %#v", cfg.App)
	}
	if cfg.Flags["configSource"] != "created" {
		t.Fatalf("expected created source, got %q", cfg.Flags["configSource"])
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestResolvePositionalOverridesOption(t *testing.T) {
	withLogFile(t)
	dir := t.TempDir()
	positional := filepath.Join(dir, "a.toml")
	cfg, err := Resolve(Options{ConfigPath: filepath.Join(dir, "b.toml"), Args: []string{positional}})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.App.ConfigPath != positional {
		t.Fatalf("expected positional path, got %q", cfg.App.ConfigPath)
	}
}

func TestResolveRejectsExtraArguments(t *testing.T) {
	if _, err := Resolve(Options{Args: []string{"a", "b"}}); err == nil {
		t.Fatal("expected error for two positional arguments")
	}
}

func TestValidateRejectsPrintWithTmux(t *testing.T) {
	cfg := Config{}
	cfg.App.Appearance = DefaultFile().Appearance()
	cfg.App.Print = true
	cfg.App.Tmux = true
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Fatalf("expected mutual exclusion error, got %v", err)
	}
}

func TestValidateRejectsUnknownMatcher(t *testing.T) {
	cfg := Config{}
	cfg.App.Appearance = DefaultFile().Appearance()
	cfg.App.Appearance.Matcher = "regex"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected unknown matcher error")
	}
}

func TestReadFileOverlaysDefaults(t *testing.T) {
	withLogFile(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `background = "#102030"
input = [255, 0, 0]
font_size = 20
matcher = "prefix"
unknown = 1
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if f.Background != theme.RGB(0x10, 0x20, 0x30) {
		t.Fatalf("unexpected background %v", f.Background)
	}
	if f.Input != theme.RGB(255, 0, 0) {
		t.Fatalf("unexpected input %v", f.Input)
	}
	if f.FontSize != 20 || f.Matcher != "prefix" {
		t.Fatalf("unexpected overrides %#v", f)
	}
	defaults := DefaultFile()
	if f.Cursor != defaults.Cursor || f.Padding != defaults.Padding || f.Height != defaults.Height {
		t.Fatalf("expected missing keys to keep defaults, got %#v", f)
	}
	data, err := os.ReadFile(logging.Path())
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "unknown") {
		t.Fatalf("expected unknown key to be logged, got %q", string(data))
	}
}

func TestLoadOrInitFallsBackOnMalformedFile(t *testing.T) {
	withLogFile(t)
	tests := []struct {
		name string
		body string
	}{
		{name: "syntax", body: "background = \n"},
		{name: "bad colour", body: "cursor = \"#zzzzzz\"\n"},
		{name: "short array", body: "cursor = [1, 2]\n"},
		{name: "out of range", body: "cursor = [1, 2, 300]\n"},
		{name: "negative padding", body: "padding = -1\n"},
		{name: "unknown matcher", body: "matcher = \"regex\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			f, source := LoadOrInit(path)
			if source != SourceDefault {
				t.Fatalf("expected default source, got %v", source)
			}
			if f != DefaultFile() {
				t.Fatalf("expected defaults, got %#v", f)
			}
		})
	}
}

func TestLoadOrInitRoundTripsWrittenDefault(t *testing.T) {
	withLogFile(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if _, source := LoadOrInit(path); source != SourceCreated {
		t.Fatalf("expected created source, got %v", source)
	}
	f, source := LoadOrInit(path)
	if source != SourceFile {
		t.Fatalf("expected file source on second load, got %v", source)
	}
	if f != DefaultFile() {
		t.Fatalf("expected written defaults to decode back, got %#v", f)
	}
}

func TestWriteDefaultRefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("padding = 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WriteDefault(path); err == nil {
		t.Fatal("expected error when file exists")
	}
}

func TestDefaultPathEndsWithAppDir(t *testing.T) {
	path := DefaultPath()
	if filepath.Base(path) != "config.toml" || filepath.Base(filepath.Dir(path)) != "runpop" {
		t.Fatalf("unexpected default path %q", path)
	}
}
