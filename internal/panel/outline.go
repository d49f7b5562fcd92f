package panel

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DarthTigerson/pico-writer/internal/markdown"
	"github.com/DarthTigerson/pico-writer/internal/theme"
)

// OutlineJumpMsg is sent when a heading is chosen, carrying its 1-based
// line number in the chapter.
type OutlineJumpMsg struct {
	Line int
}

// Outline lists the headings of the open chapter.
type Outline struct {
	headings []markdown.Heading
	cursor   int
	offset   int
	width    int
	height   int
	focused  bool
	theme    *theme.Theme
}

func NewOutline(th *theme.Theme) Outline {
	return Outline{theme: th}
}

func (o *Outline) SetHeadings(headings []markdown.Heading) {
	o.headings = headings
	if o.cursor >= len(headings) {
		o.cursor = len(headings) - 1
	}
	if o.cursor < 0 {
		o.cursor = 0
	}
	o.clampScroll()
}

func (o Outline) Update(msg tea.Msg) (Outline, tea.Cmd) {
	if !o.focused {
		return o, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if o.cursor < len(o.headings)-1 {
				o.cursor++
				o.clampScroll()
			}
		case "k", "up":
			if o.cursor > 0 {
				o.cursor--
				o.clampScroll()
			}
		case "g":
			o.cursor = 0
			o.offset = 0
		case "G":
			if len(o.headings) > 0 {
				o.cursor = len(o.headings) - 1
				o.clampScroll()
			}
		case "enter":
			if o.cursor < len(o.headings) {
				line := o.headings[o.cursor].Line
				return o, func() tea.Msg { return OutlineJumpMsg{Line: line} }
			}
		}
	}

	return o, nil
}

func (o Outline) viewHeight() int {
	h := o.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

func (o *Outline) clampScroll() {
	if o.cursor < o.offset {
		o.offset = o.cursor
	}
	if o.cursor-o.offset >= o.viewHeight() {
		o.offset = o.cursor - o.viewHeight() + 1
	}
	if o.offset < 0 {
		o.offset = 0
	}
}

func (o Outline) View() string {
	if o.width == 0 || o.height == 0 {
		return ""
	}

	th := o.theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Dim).
		Padding(0, 1)
	if o.focused {
		titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(th.Accent).
			Underline(true).
			Padding(0, 1)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Outline"))
	b.WriteByte('\n')

	if len(o.headings) == 0 {
		dim := lipgloss.NewStyle().Foreground(th.Dim).Padding(0, 1)
		b.WriteString(dim.Render("No headings"))
		b.WriteByte('\n')
		return b.String()
	}

	for i := o.offset; i < len(o.headings) && i-o.offset < o.viewHeight(); i++ {
		h := o.headings[i]
		indent := strings.Repeat("  ", h.Level-1)
		line := truncate(" "+indent+h.Text, o.width-1)
		line = pad(line, o.width-1)

		if i == o.cursor && o.focused {
			b.WriteString(lipgloss.NewStyle().Foreground(th.Accent).Bold(true).Render(line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(th.Text).Render(line))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func (o *Outline) SetSize(width, height int) {
	o.width = width
	o.height = height
	o.clampScroll()
}

func (o *Outline) SetFocused(focused bool) {
	o.focused = focused
}

func (o Outline) Focused() bool {
	return o.focused
}

func (o *Outline) SetTheme(th *theme.Theme) {
	o.theme = th
}
