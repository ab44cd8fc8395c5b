package theme

import (
	"errors"
	"testing"

	"github.com/BrandonKowalski/scanline/pkg/scanline/gfx"
)

func TestParseOverridesBase(t *testing.T) {
	th, err := Parse("night", `
base = "dark"

[colors]
accent = "#3080E0"
overlay = "#80000000"
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Accent != gfx.Hex(0x3080E0) {
		t.Errorf("accent = %08x", uint32(th.Accent))
	}
	if th.Overlay.A() != 0x80 {
		t.Errorf("overlay alpha = %02x", th.Overlay.A())
	}
	if th.Background != Dark().Background || th.Name != "night" {
		t.Error("base colours not inherited")
	}
}

func TestParseRejects(t *testing.T) {
	if _, err := Parse("x", `base = "sepia"`); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("unknown base: %v", err)
	}
	if _, err := Parse("x", "[colors]\nborder = \"#000000\"\n"); err == nil {
		t.Error("unknown colour key accepted")
	}
	if _, err := ParseColor("#12345"); err == nil {
		t.Error("five digit colour accepted")
	}
}
