package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/atomicstack/runpop/internal/app"
	"github.com/atomicstack/runpop/internal/config"
	"github.com/atomicstack/runpop/internal/logging"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			ConfigPath: "/tmp/runpop.toml",
			SocketPath: "socket-path",
			Tmux:       true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"config": "/tmp/runpop.toml",
			"socket": "socket-path",
			"tmux":   "true",
		},
		Args: []string{"/tmp/runpop.toml"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["socket"] != "socket-path" {
		t.Fatalf("expected socket flag %q, got %v", "socket-path", flagsValue["socket"])
	}
	if flagsValue["config"] != "/tmp/runpop.toml" {
		t.Fatalf("expected config flag, got %v", flagsValue["config"])
	}
	if flagsValue["tmux"] != "true" {
		t.Fatalf("expected tmux flag true, got %v", flagsValue["tmux"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func executeRoot(t *testing.T, environ []string, args ...string) (config.Config, bool, error) {
	t.Helper()
	t.Cleanup(func() {
		logging.Configure("")
		logging.SetTraceEnabled(false)
	})
	var captured config.Config
	called := false
	cmd := newRootCommand(environ, func(_ context.Context, cfg config.Config) error {
		captured = cfg
		called = true
		return nil
	})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return captured, called, err
}

func TestRootCommandParsesFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	cfg, called, err := executeRoot(t, nil,
		"--stdin", "--print", "--filter", "",
		"--log-file", filepath.Join(dir, "runpop.log"),
		path,
	)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !called {
		t.Fatal("expected run to be called")
	}
	if cfg.App.ConfigPath != path || !cfg.App.Stdin || !cfg.App.Print {
		t.Fatalf("unexpected app config %#v", cfg.App)
	}
	if !cfg.App.FilterOnly || cfg.App.Filter != "" {
		t.Fatalf("expected an explicit empty filter to enable filter mode, got %#v", cfg.App)
	}
}

func TestRootCommandAppliesEnvironment(t *testing.T) {
	dir := t.TempDir()
	environ := []string{
		"RUNPOP_SOCKET=/tmp/env.sock",
		"RUNPOP_TMUX=true",
		"RUNPOP_LOG_FILE=" + filepath.Join(dir, "env.log"),
	}
	cfg, _, err := executeRoot(t, environ, filepath.Join(dir, "config.toml"))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if cfg.App.SocketPath != "/tmp/env.sock" || !cfg.App.Tmux {
		t.Fatalf("expected env overrides, got %#v", cfg.App)
	}
	if cfg.App.FilterOnly {
		t.Fatal("expected filter mode off without --filter")
	}
	if cfg.Logging.FilePath != filepath.Join(dir, "env.log") {
		t.Fatalf("expected log file from env, got %q", cfg.Logging.FilePath)
	}
}

func TestRootCommandConfigErrorsExitWithTwo(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"--nope"}},
		{name: "extra argument", args: []string{"a", "b"}},
		{name: "print with tmux", args: []string{"--print", "--tmux", filepath.Join(dir, "c.toml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--log-file", filepath.Join(dir, "runpop.log")}, tt.args...)
			_, called, err := executeRoot(t, nil, args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if called {
				t.Fatal("expected run not to be called")
			}
			if code := exitCode(err); code != 2 {
				t.Fatalf("expected exit code 2, got %d (%v)", code, err)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	logging.Configure(filepath.Join(t.TempDir(), "runpop.log"))
	t.Cleanup(func() { logging.Configure("") })
	if exitCode(nil) != 0 {
		t.Fatal("expected 0 for success")
	}
	if exitCode(errors.New("spawn failed")) != 1 {
		t.Fatal("expected 1 for runtime errors")
	}
}
