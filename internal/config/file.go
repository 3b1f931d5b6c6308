package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/atomicstack/runpop/internal/app"
	"github.com/atomicstack/runpop/internal/logging"
	"github.com/atomicstack/runpop/internal/logging/events"
	"github.com/atomicstack/runpop/internal/theme"
	"github.com/atomicstack/runpop/internal/ui/state"
)

const (
	appDirName     = "runpop"
	configFileName = "config.toml"
)

// File is the on-disk appearance record.
type File struct {
	Background  theme.Color `toml:"background"`
	Input       theme.Color `toml:"input"`
	Cursor      theme.Color `toml:"cursor"`
	Suggestion  theme.Color `toml:"suggestion"`
	Font        string      `toml:"font,omitempty"`
	FontSize    int         `toml:"font_size"`
	LineSpacing int         `toml:"line_spacing"`
	Padding     int         `toml:"padding"`
	Width       int         `toml:"width"`
	Height      int         `toml:"height"`
	Matcher     string      `toml:"matcher"`
}

// Source reports where a File came from.
type Source int

const (
	SourceFile Source = iota
	SourceDefault
	SourceCreated
)

func (s Source) String() string {
	switch s {
	case SourceFile:
		return "file"
	case SourceCreated:
		return "created"
	default:
		return "default"
	}
}

// DefaultFile returns the built-in appearance.
func DefaultFile() File {
	p := theme.DefaultPalette()
	return File{
		Background:  p.Background,
		Input:       p.Input,
		Cursor:      p.Cursor,
		Suggestion:  p.Suggestion,
		FontSize:    16,
		LineSpacing: 6,
		Padding:     12,
		Width:       1000,
		Height:      700,
		Matcher:     state.MatcherFuzzy,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/runpop/config.toml, falling back to
// ~/.config when the user config dir cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir, err = os.UserHomeDir()
		if err != nil {
			dir = "."
		}
		dir = filepath.Join(dir, ".config")
	}
	return filepath.Join(dir, appDirName, configFileName)
}

// ReadFile decodes path over the defaults. Keys missing from the file keep
// their default values.
func ReadFile(path string) (File, error) {
	f := DefaultFile()
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return DefaultFile(), fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		logging.Error(fmt.Errorf("config %s: ignoring unknown keys %s", path, strings.Join(keys, ", ")))
	}
	if err := f.validate(); err != nil {
		return DefaultFile(), fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

// WriteDefault writes the default appearance to path, creating parent
// directories as needed.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	enc := toml.NewEncoder(out)
	if err := enc.Encode(DefaultFile()); err != nil {
		out.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close config file: %w", err)
	}
	return nil
}

// LoadOrInit never fails: a missing file is created with the defaults and a
// malformed one is logged and replaced by the defaults for this run.
func LoadOrInit(path string) (File, Source) {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		if werr := WriteDefault(path); werr != nil {
			logging.Error(werr)
			events.Config.Fallback(path, werr)
			return DefaultFile(), SourceDefault
		}
		events.Config.WriteDefault(path)
		return DefaultFile(), SourceCreated
	}
	f, err := ReadFile(path)
	if err != nil {
		logging.Error(err)
		events.Config.Fallback(path, err)
		return DefaultFile(), SourceDefault
	}
	events.Config.Loaded(path, f)
	return f, SourceFile
}

func (f File) validate() error {
	if _, ok := state.MatcherByName(f.Matcher); !ok {
		return fmt.Errorf("unknown matcher %q", f.Matcher)
	}
	checks := []struct {
		name  string
		value int
		min   int
	}{
		{"font_size", f.FontSize, 1},
		{"line_spacing", f.LineSpacing, 0},
		{"padding", f.Padding, 0},
		{"width", f.Width, 1},
		{"height", f.Height, 1},
	}
	for _, c := range checks {
		if c.value < c.min {
			return fmt.Errorf("%s must be at least %d (got %d)", c.name, c.min, c.value)
		}
	}
	return nil
}

// Appearance converts the file into the application's appearance record.
func (f File) Appearance() app.Appearance {
	return app.Appearance{
		Palette: theme.Palette{
			Background: f.Background,
			Input:      f.Input,
			Cursor:     f.Cursor,
			Suggestion: f.Suggestion,
		},
		Font:        strings.TrimSpace(f.Font),
		FontSize:    f.FontSize,
		LineSpacing: f.LineSpacing,
		Padding:     f.Padding,
		Width:       f.Width,
		Height:      f.Height,
		Matcher:     f.Matcher,
	}
}
