package panel

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/DarthTigerson/pico-writer/internal/theme"
)

// ConfirmResultMsg carries the answer of a confirmation dialog.
type ConfirmResultMsg struct {
	Yes bool
}

// ConfirmCancelledMsg is sent when the dialog is dismissed without an
// answer. Flows that treat no and cancel differently, like the unsaved
// changes guard, rely on the distinction.
type ConfirmCancelledMsg struct{}

// Confirm is a centered yes/no dialog. No is the default, so a stray
// enter never destroys anything.
type Confirm struct {
	title   string
	body    string
	yes     bool
	visible bool
	width   int
	height  int
	theme   *theme.Theme
}

func NewConfirm(th *theme.Theme) Confirm {
	return Confirm{theme: th}
}

func (c *Confirm) Show(title, body string) {
	c.visible = true
	c.title = title
	c.body = body
	c.yes = false
}

func (c *Confirm) Hide() {
	c.visible = false
}

func (c Confirm) Visible() bool {
	return c.visible
}

func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	if !c.visible {
		return c, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "right", "h", "l", "tab":
			c.yes = !c.yes
		case "y":
			c.visible = false
			return c, func() tea.Msg { return ConfirmResultMsg{Yes: true} }
		case "n":
			c.visible = false
			return c, func() tea.Msg { return ConfirmResultMsg{Yes: false} }
		case "enter":
			yes := c.yes
			c.visible = false
			return c, func() tea.Msg { return ConfirmResultMsg{Yes: yes} }
		case "esc":
			c.visible = false
			return c, func() tea.Msg { return ConfirmCancelledMsg{} }
		}
	}

	return c, nil
}

func (c Confirm) View() string {
	if !c.visible {
		return ""
	}

	th := c.theme

	width := c.width
	if width == 0 {
		width = 60
	}
	innerWidth := width/2 - 6
	if innerWidth < 30 {
		innerWidth = 30
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Accent).
		Padding(0, 1).
		Width(innerWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Accent)

	buttonStyle := lipgloss.NewStyle().
		Foreground(th.Dim).
		Padding(0, 2)

	activeStyle := lipgloss.NewStyle().
		Foreground(th.Bg).
		Background(th.Accent).
		Bold(true).
		Padding(0, 2)

	var lines []string
	lines = append(lines, titleStyle.Render(c.title))
	if c.body != "" {
		lines = append(lines, "")
		lines = append(lines, wordwrap.String(c.body, innerWidth-2))
	}
	lines = append(lines, "")

	yesBtn := buttonStyle.Render("Yes")
	noBtn := activeStyle.Render("No")
	if c.yes {
		yesBtn = activeStyle.Render("Yes")
		noBtn = buttonStyle.Render("No")
	}
	lines = append(lines, yesBtn+"  "+noBtn)

	content := strings.Join(lines, "\n")
	return borderStyle.Render(content)
}

func (c *Confirm) SetSize(width, height int) {
	c.width = width
	c.height = height
}

func (c *Confirm) SetTheme(th *theme.Theme) {
	c.theme = th
}
