package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color palette used by all TUI panels.
// Panels hold a *Theme pointer so a palette swap is visible on the next
// View() call.
type Theme struct {
	Name        string
	Bg          lipgloss.Color
	Accent      lipgloss.Color
	Subtle      lipgloss.Color
	Text        lipgloss.Color
	Dim         lipgloss.Color
	Border      lipgloss.Color
	StatusBg    lipgloss.Color
	StatusFg    lipgloss.Color
	Dirty       lipgloss.Color
	EditMode    lipgloss.Color
	PreviewMode lipgloss.Color
	BrowseMode  lipgloss.Color
}

var palettes = map[string]Theme{
	"catppuccin": {
		Name:        "catppuccin",
		Bg:          lipgloss.Color("#1e1e2e"),
		Accent:      lipgloss.Color("#cba6f7"),
		Subtle:      lipgloss.Color("#6c7086"),
		Text:        lipgloss.Color("#cdd6f4"),
		Dim:         lipgloss.Color("#585b70"),
		Border:      lipgloss.Color("#45475a"),
		StatusBg:    lipgloss.Color("#313244"),
		StatusFg:    lipgloss.Color("#cdd6f4"),
		Dirty:       lipgloss.Color("#f38ba8"),
		EditMode:    lipgloss.Color("#a6e3a1"),
		PreviewMode: lipgloss.Color("#f9e2af"),
		BrowseMode:  lipgloss.Color("#89b4fa"),
	},
	"nord": {
		Name:        "nord",
		Bg:          lipgloss.Color("#2e3440"),
		Accent:      lipgloss.Color("#88c0d0"),
		Subtle:      lipgloss.Color("#4c566a"),
		Text:        lipgloss.Color("#eceff4"),
		Dim:         lipgloss.Color("#434c5e"),
		Border:      lipgloss.Color("#3b4252"),
		StatusBg:    lipgloss.Color("#3b4252"),
		StatusFg:    lipgloss.Color("#eceff4"),
		Dirty:       lipgloss.Color("#bf616a"),
		EditMode:    lipgloss.Color("#a3be8c"),
		PreviewMode: lipgloss.Color("#ebcb8b"),
		BrowseMode:  lipgloss.Color("#81a1c1"),
	},
	"gruvbox": {
		Name:        "gruvbox",
		Bg:          lipgloss.Color("#282828"),
		Accent:      lipgloss.Color("#d79921"),
		Subtle:      lipgloss.Color("#665c54"),
		Text:        lipgloss.Color("#ebdbb2"),
		Dim:         lipgloss.Color("#504945"),
		Border:      lipgloss.Color("#3c3836"),
		StatusBg:    lipgloss.Color("#3c3836"),
		StatusFg:    lipgloss.Color("#ebdbb2"),
		Dirty:       lipgloss.Color("#fb4934"),
		EditMode:    lipgloss.Color("#b8bb26"),
		PreviewMode: lipgloss.Color("#fabd2f"),
		BrowseMode:  lipgloss.Color("#83a598"),
	},
	"tokyo-night": {
		Name:        "tokyo-night",
		Bg:          lipgloss.Color("#1a1b26"),
		Accent:      lipgloss.Color("#7aa2f7"),
		Subtle:      lipgloss.Color("#565f89"),
		Text:        lipgloss.Color("#c0caf5"),
		Dim:         lipgloss.Color("#414868"),
		Border:      lipgloss.Color("#292e42"),
		StatusBg:    lipgloss.Color("#1f2335"),
		StatusFg:    lipgloss.Color("#c0caf5"),
		Dirty:       lipgloss.Color("#f7768e"),
		EditMode:    lipgloss.Color("#9ece6a"),
		PreviewMode: lipgloss.Color("#e0af68"),
		BrowseMode:  lipgloss.Color("#7aa2f7"),
	},
}

// Palette returns a named palette, falling back to catppuccin for names it
// does not know.
func Palette(name string) Theme {
	if t, ok := palettes[name]; ok {
		return t
	}
	return palettes["catppuccin"]
}

// Names returns the available palette names, sorted.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultTheme returns the default color palette.
func DefaultTheme() Theme {
	return Palette("catppuccin")
}
