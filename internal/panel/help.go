package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DarthTigerson/pico-writer/internal/theme"
)

// HelpEntry is a single key binding for display.
type HelpEntry struct {
	Key   string
	Label string
}

// Help renders the key binding overlay. f1 or esc closes it; the app
// swallows every other key while it is up.
type Help struct {
	entries []HelpEntry
	visible bool
	width   int
	height  int
	theme   *theme.Theme
}

func NewHelp(th *theme.Theme, entries []HelpEntry) Help {
	return Help{entries: entries, theme: th}
}

func (h *Help) Show() {
	h.visible = true
}

func (h *Help) Hide() {
	h.visible = false
}

func (h Help) Visible() bool {
	return h.visible
}

func (h Help) View() string {
	if !h.visible || len(h.entries) == 0 {
		return ""
	}

	th := h.theme

	width := h.width
	if width == 0 {
		width = 60
	}
	boxWidth := width - 8
	if boxWidth > 64 {
		boxWidth = 64
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Accent).
		Padding(0, 1).
		Width(boxWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Accent)

	keyStyle := lipgloss.NewStyle().
		Foreground(th.EditMode).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(th.StatusFg)

	dimStyle := lipgloss.NewStyle().
		Foreground(th.Dim)

	var lines []string
	lines = append(lines, titleStyle.Render("Keys"))
	lines = append(lines, "")

	// Two columns when the box is wide enough
	colWidth := boxWidth / 2
	if colWidth < 24 {
		colWidth = boxWidth
	}

	for i := 0; i < len(h.entries); i += 2 {
		left := keyStyle.Render(padKey(h.entries[i].Key)) + " " + labelStyle.Render(h.entries[i].Label)

		if i+1 < len(h.entries) && colWidth < boxWidth {
			right := keyStyle.Render(padKey(h.entries[i+1].Key)) + " " + labelStyle.Render(h.entries[i+1].Label)
			leftPad := colWidth - lipgloss.Width(left)
			if leftPad < 1 {
				leftPad = 1
			}
			lines = append(lines, left+strings.Repeat(" ", leftPad)+right)
		} else {
			lines = append(lines, left)
		}
	}

	lines = append(lines, "")
	lines = append(lines, dimStyle.Render("f1 or esc to close"))

	content := strings.Join(lines, "\n")
	return borderStyle.Render(content)
}

func padKey(k string) string {
	if len(k) >= 7 {
		return k
	}
	return k + strings.Repeat(" ", 7-len(k))
}

func (h *Help) SetSize(width, height int) {
	h.width = width
	h.height = height
}

func (h *Help) SetTheme(th *theme.Theme) {
	h.theme = th
}
