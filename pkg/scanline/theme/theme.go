// Package theme holds the colour sets demo screens and the simulator draw
// with.
package theme

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/scanline/pkg/scanline/gfx"
)

// Theme defines the colours of a set of screens.
type Theme struct {
	Name       string
	Background gfx.Color // Screen background
	Surface    gfx.Color // Rows, cards and other raised areas
	Accent     gfx.Color // Buttons and the focus border
	Highlight  gfx.Color // Pressed state
	Text       gfx.Color // Icons and foreground marks
	Overlay    gfx.Color // Top layer toasts, usually translucent
}

var ErrUnknownTheme = errors.New("theme: unknown theme")

// Teal is the default theme, white screens with a teal accent.
func Teal() Theme {
	return Theme{
		Name:       "teal",
		Background: gfx.Hex(0xFFFFFF),
		Surface:    gfx.Hex(0xE6F2F2),
		Accent:     gfx.Hex(0x008080),
		Highlight:  gfx.Hex(0x00B3B3),
		Text:       gfx.Hex(0x000000),
		Overlay:    gfx.RGBA(0x00, 0x00, 0x00, 0xC0),
	}
}

// Dark suits OLED panels.
func Dark() Theme {
	return Theme{
		Name:       "dark",
		Background: gfx.Hex(0x101010),
		Surface:    gfx.Hex(0x262626),
		Accent:     gfx.Hex(0xE0A030),
		Highlight:  gfx.Hex(0xFFC860),
		Text:       gfx.Hex(0xF0F0F0),
		Overlay:    gfx.RGBA(0xFF, 0xFF, 0xFF, 0x40),
	}
}

// ByName returns a built-in theme.
func ByName(name string) (Theme, error) {
	switch strings.ToLower(name) {
	case "", "teal":
		return Teal(), nil
	case "dark":
		return Dark(), nil
	}
	return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
}

type themeFile struct {
	Base   string            `toml:"base"`
	Colors map[string]string `toml:"colors"`
}

// Parse reads a TOML theme:
//
//	base = "dark"
//
//	[colors]
//	accent = "#3080E0"
//
// Colours not listed are taken from the base theme.
func Parse(name, data string) (Theme, error) {
	var f themeFile
	if _, err := toml.Decode(data, &f); err != nil {
		return Theme{}, fmt.Errorf("theme: decode %s: %w", name, err)
	}
	t, err := ByName(f.Base)
	if err != nil {
		return Theme{}, err
	}
	t.Name = name

	slots := map[string]*gfx.Color{
		"background": &t.Background,
		"surface":    &t.Surface,
		"accent":     &t.Accent,
		"highlight":  &t.Highlight,
		"text":       &t.Text,
		"overlay":    &t.Overlay,
	}
	for key, raw := range f.Colors {
		slot, ok := slots[key]
		if !ok {
			return Theme{}, fmt.Errorf("theme: %s: unknown colour %q", name, key)
		}
		c, err := ParseColor(raw)
		if err != nil {
			return Theme{}, fmt.Errorf("theme: %s: %s: %w", name, key, err)
		}
		*slot = c
	}
	return t, nil
}

// ParseColor accepts #RRGGBB or #AARRGGBB.
func ParseColor(s string) (gfx.Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad colour %q", s)
	}
	switch len(s) {
	case 6:
		return gfx.Hex(uint32(v)), nil
	case 8:
		return gfx.Color(v), nil
	}
	return 0, fmt.Errorf("bad colour %q", s)
}
