package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/atomicstack/runpop/internal/app"
	"github.com/atomicstack/runpop/internal/config"
	"github.com/atomicstack/runpop/internal/logging"
	"github.com/atomicstack/runpop/internal/logging/events"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// configError marks failures that should exit with status 2.
type configError struct {
	err error
}

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

type runFunc func(ctx context.Context, cfg config.Config) error

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd := newRootCommand(os.Environ(), runApp)
	err := cmd.ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var cfgErr configError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 2
	}
	logging.Error(err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

func newRootCommand(environ []string, run runFunc) *cobra.Command {
	opts := config.DefaultOptions(environ)
	cmd := &cobra.Command{
		Use:   "runpop [config-path]",
		Short: "Fuzzy application launcher for the terminal",
		Long: "runpop lists the executables on $PATH (or lines read from stdin), " +
			"filters them as you type and runs the one you pick.",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return configError{err}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Args = args
			opts.FilterSet = cmd.Flags().Changed("filter")
			logging.Configure(opts.LogFile)
			logging.SetTraceEnabled(opts.Trace)

			cfg, err := config.Resolve(opts)
			if err != nil {
				return configError{err}
			}
			if err := config.Validate(cfg); err != nil {
				return configError{err}
			}
			traceStartup(cfg)
			return run(cmd.Context(), cfg)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return configError{err}
	})
	flags := cmd.Flags()
	flags.StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "path to the appearance file (the positional argument wins)")
	flags.BoolVar(&opts.Stdin, "stdin", opts.Stdin, "read newline separated candidates from stdin instead of scanning $PATH")
	flags.BoolVar(&opts.Print, "print", opts.Print, "print the selection to stdout instead of running it")
	flags.BoolVar(&opts.Tmux, "tmux", opts.Tmux, "run the selection in a new tmux window")
	flags.StringVar(&opts.SocketPath, "socket", opts.SocketPath, "path to the tmux socket (overrides environment detection)")
	flags.StringVar(&opts.Filter, "filter", opts.Filter, "print the ranked matches for QUERY and exit without a UI")
	flags.BoolVar(&opts.Trace, "trace", opts.Trace, "enable verbose JSON trace logging")
	flags.StringVar(&opts.LogFile, "log-file", opts.LogFile, "path to the log file")
	return cmd
}

func runApp(ctx context.Context, cfg config.Config) error {
	err := app.Run(ctx, cfg.App, app.StandardIO())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and
// dimensions. With --stdin the candidates arrive on stdin, so the probe shows
// which descriptor the UI can still draw on.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
