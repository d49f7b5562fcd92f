package app

import "github.com/DarthTigerson/pico-writer/internal/panel"

// helpEntries lists the global bindings shown by the help overlay. Panel
// bindings like j/k and enter are hinted in the panels themselves.
func helpEntries() []panel.HelpEntry {
	return []panel.HelpEntry{
		{Key: "ctrl+s", Label: "Save chapter"},
		{Key: "ctrl+n", Label: "New chapter or book"},
		{Key: "ctrl+r", Label: "Rename"},
		{Key: "ctrl+d", Label: "Delete"},
		{Key: "ctrl+b", Label: "Books"},
		{Key: "ctrl+f", Label: "Search"},
		{Key: "ctrl+t", Label: "Toggle chapters"},
		{Key: "ctrl+o", Label: "Toggle outline"},
		{Key: "tab", Label: "Cycle focus"},
		{Key: "esc", Label: "Back to editor"},
		{Key: "f1", Label: "This help"},
		{Key: "ctrl+q", Label: "Quit"},
		{Key: "ctrl+c", Label: "Quit, discard"},
	}
}
