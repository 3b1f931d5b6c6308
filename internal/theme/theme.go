package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color is an RGB triple. In TOML it is written either as "#rrggbb" or as an
// array [r, g, b].
type Color struct {
	R, G, B uint8
}

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex renders the colour as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lipgloss converts the colour to the renderer's native colour type.
func (c Color) Lipgloss() lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

func (c Color) String() string {
	return c.Hex()
}

// MarshalText writes the colour in its hex form.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText accepts "#rrggbb" or "rrggbb".
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// UnmarshalTOML accepts a hex string or an array of three integers in the
// 0-255 range.
func (c *Color) UnmarshalTOML(value interface{}) error {
	switch v := value.(type) {
	case string:
		return c.UnmarshalText([]byte(v))
	case []interface{}:
		if len(v) != 3 {
			return fmt.Errorf("color: expected 3 components, got %d", len(v))
		}
		var parts [3]uint8
		for i, raw := range v {
			n, ok := raw.(int64)
			if !ok {
				return fmt.Errorf("color: component %d is %T, want integer", i, raw)
			}
			if n < 0 || n > 255 {
				return fmt.Errorf("color: component %d out of range (got %d)", i, n)
			}
			parts[i] = uint8(n)
		}
		*c = RGB(parts[0], parts[1], parts[2])
		return nil
	default:
		return fmt.Errorf("color: unsupported value %T", value)
	}
}

// ParseHex parses "#rrggbb" (the leading # is optional).
func ParseHex(text string) (Color, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(text), "#")
	if len(trimmed) != 6 {
		return Color{}, fmt.Errorf("color: invalid hex %q", text)
	}
	v, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color: invalid hex %q: %w", text, err)
	}
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// Palette holds the launcher's configurable colours.
type Palette struct {
	Background Color
	Input      Color
	Cursor     Color
	Suggestion Color
}

// DefaultPalette mirrors the default configuration.
func DefaultPalette() Palette {
	return Palette{
		Background: RGB(0, 0, 0),
		Input:      RGB(0, 255, 255),
		Cursor:     RGB(255, 255, 255),
		Suggestion: RGB(128, 128, 128),
	}
}

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Frame       *lipgloss.Style
	Input       *lipgloss.Style
	Cursor      *lipgloss.Style
	Suggestion  *lipgloss.Style
	Highlight   *lipgloss.Style
	Selected    *lipgloss.Style
	Placeholder *lipgloss.Style
	Status      *lipgloss.Style
}

// New builds the style set for a palette.
func New(p Palette) *Styles {
	bg := p.Background.Lipgloss()
	return &Styles{
		Frame: ptr(
			lipgloss.NewStyle().Background(bg),
		),
		Input: ptr(
			lipgloss.NewStyle().Foreground(p.Input.Lipgloss()).Background(bg),
		),
		Cursor: ptr(
			lipgloss.NewStyle().Foreground(p.Background.Lipgloss()).Background(p.Cursor.Lipgloss()),
		),
		Suggestion: ptr(
			lipgloss.NewStyle().Foreground(p.Suggestion.Lipgloss()).Background(bg),
		),
		Highlight: ptr(
			lipgloss.NewStyle().Foreground(p.Input.Lipgloss()).Background(bg).Bold(true),
		),
		Selected: ptr(
			lipgloss.NewStyle().Foreground(p.Cursor.Lipgloss()).Background(bg).Bold(true),
		),
		Placeholder: ptr(
			lipgloss.NewStyle().Foreground(p.Suggestion.Lipgloss()).Background(bg).Faint(true),
		),
		Status: ptr(
			lipgloss.NewStyle().Foreground(p.Suggestion.Lipgloss()).Background(bg).Italic(true),
		),
	}
}

// Default exposes the style set for DefaultPalette.
func Default() *Styles {
	return New(DefaultPalette())
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
