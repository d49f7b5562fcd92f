package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPalettesFullyPopulated(t *testing.T) {
	for _, name := range Names() {
		th := Palette(name)
		if th.Name != name {
			t.Errorf("Palette(%q).Name = %q", name, th.Name)
		}

		fields := []struct {
			name  string
			color lipgloss.Color
		}{
			{"Bg", th.Bg},
			{"Accent", th.Accent},
			{"Subtle", th.Subtle},
			{"Text", th.Text},
			{"Dim", th.Dim},
			{"Border", th.Border},
			{"StatusBg", th.StatusBg},
			{"StatusFg", th.StatusFg},
			{"Dirty", th.Dirty},
			{"EditMode", th.EditMode},
			{"PreviewMode", th.PreviewMode},
			{"BrowseMode", th.BrowseMode},
		}
		for _, f := range fields {
			if string(f.color) == "" {
				t.Errorf("Palette(%q).%s is empty", name, f.name)
			}
		}
	}
}

func TestPaletteUnknownFallsBack(t *testing.T) {
	th := Palette("no-such-palette")
	if th.Name != "catppuccin" {
		t.Errorf("fallback palette = %q, want catppuccin", th.Name)
	}
}

func TestDefaultTheme(t *testing.T) {
	if th := DefaultTheme(); th.Name != "catppuccin" {
		t.Errorf("DefaultTheme().Name = %q, want catppuccin", th.Name)
	}
}
