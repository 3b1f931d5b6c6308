package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/runpop/internal/discovery"
	"github.com/atomicstack/runpop/internal/launch"
	"github.com/atomicstack/runpop/internal/logging/events"
	"github.com/atomicstack/runpop/internal/theme"
	"github.com/atomicstack/runpop/internal/ui"
	"github.com/atomicstack/runpop/internal/ui/frame"
	"github.com/atomicstack/runpop/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// Config describes user-provided application options.
type Config struct {
	ConfigPath string
	Appearance Appearance
	Stdin      bool
	Print      bool
	Tmux       bool
	SocketPath string
	Filter     string
	FilterOnly bool
}

// Appearance is the immutable look-and-geometry record loaded at startup.
type Appearance struct {
	Palette     theme.Palette
	Font        string
	FontSize    int
	LineSpacing int
	Padding     int
	Width       int
	Height      int
	Matcher     string
}

// Metrics maps the appearance geometry onto viewport metrics. The font size
// doubles as the line height.
func (a Appearance) Metrics() state.Metrics {
	return state.Metrics{
		ViewportHeight: a.Height,
		LineHeight:     a.FontSize,
		LineSpacing:    a.LineSpacing,
		Padding:        a.Padding,
	}
}

// IO bundles the streams the application talks to.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// StandardIO returns the process streams.
func StandardIO() IO {
	return IO{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

var (
	runLaunch      = launch.Run
	runInteractive = interactive
)

// Run gathers candidates, runs one selection session and acts on the
// outcome. A cancelled session is not an error.
func Run(ctx context.Context, cfg Config, streams IO) error {
	matcher, ok := state.MatcherByName(cfg.Appearance.Matcher)
	if !ok {
		return fmt.Errorf("unknown matcher %q", cfg.Appearance.Matcher)
	}
	candidates, err := loadCandidates(ctx, cfg, streams.Stdin)
	if err != nil {
		return err
	}
	store := state.NewStore(candidates)
	driver := frame.New(state.NewSession(store, matcher))

	if cfg.FilterOnly {
		return printFiltered(driver, cfg.Filter, store.Len(), streams.Stdout)
	}

	outcome, err := runInteractive(ctx, cfg, driver, streams)
	value, confirmed := outcome.Confirmed()
	events.App.Exit(outcome.Phase.String(), value)
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}
	if cfg.Print {
		_, err := fmt.Fprintln(streams.Stdout, value)
		return err
	}
	if value == "" {
		return nil
	}
	return runLaunch(ctx, value, launch.Options{Tmux: cfg.Tmux, SocketPath: cfg.SocketPath})
}

func loadCandidates(ctx context.Context, cfg Config, stdin io.Reader) ([]string, error) {
	if cfg.Stdin {
		if stdin == nil {
			return nil, errors.New("--stdin requested without an input stream")
		}
		lines, err := discovery.ReadLines(stdin)
		if err != nil {
			return nil, fmt.Errorf("read candidates: %w", err)
		}
		return lines, nil
	}
	names, err := discovery.Executables(ctx, os.Getenv("PATH"))
	if err != nil {
		return nil, fmt.Errorf("discover executables: %w", err)
	}
	return names, nil
}

func printFiltered(driver *frame.Driver, query string, rows int, out io.Writer) error {
	var batch []state.Event
	if query != "" {
		batch = append(batch, state.TextInput(query))
	}
	snap, _ := driver.Step(batch, rows)
	for _, candidate := range snap.Candidates {
		if _, err := fmt.Fprintln(out, candidate); err != nil {
			return err
		}
	}
	return nil
}

// interactive runs the terminal program and the frame driver side by side.
// Whichever finishes first releases the bridge, which ends the other.
func interactive(ctx context.Context, cfg Config, driver *frame.Driver, streams IO) (state.Outcome, error) {
	appearance := cfg.Appearance
	if appearance.Font != "" {
		events.App.Font(appearance.Font, appearance.FontSize)
	}
	metrics := appearance.Metrics()
	bridge := ui.NewBridge(metrics.Rows())
	model := ui.NewModel(bridge, ui.Options{Palette: appearance.Palette, Metrics: metrics})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.Stdin {
		opts = append(opts, tea.WithInputTTY())
	}
	if cfg.Print && streams.Stderr != nil {
		opts = append(opts, tea.WithOutput(streams.Stderr))
	}
	program := tea.NewProgram(model, opts...)

	var outcome state.Outcome
	var g errgroup.Group
	g.Go(func() error {
		defer bridge.Close()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("terminal program: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		outcome, err = driver.Run(ctx, bridge, bridge)
		return err
	})
	err := g.Wait()
	return outcome, err
}
