package panel

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DarthTigerson/pico-writer/internal/theme"
)

// ChapterSelectedMsg is sent when a chapter is opened from the list.
type ChapterSelectedMsg struct {
	Name string
}

// ChapterPreviewMsg is sent when the highlighted chapter changes, so the
// editor can show its content without opening it.
type ChapterPreviewMsg struct {
	Name string
}

// ChapterNewMsg is sent when the user asks to create a chapter.
type ChapterNewMsg struct{}

// ChapterRenameMsg is sent when the user asks to rename a chapter.
type ChapterRenameMsg struct {
	Name string
}

// ChapterDeleteMsg is sent when the user asks to delete a chapter.
type ChapterDeleteMsg struct {
	Name string
}

// Chapters is the chapter list sidebar. The last row is a pinned action
// that creates a new chapter.
type Chapters struct {
	chapters []string
	open     string // chapter currently loaded in the editor
	cursor   int
	offset   int
	width    int
	height   int
	focused  bool
	theme    *theme.Theme
}

func NewChapters(th *theme.Theme) Chapters {
	return Chapters{theme: th}
}

// SetChapters replaces the list, keeping the cursor on the same chapter
// when it survived the change.
func (c *Chapters) SetChapters(names []string, open string) {
	prev := ""
	if c.cursor < len(c.chapters) {
		prev = c.chapters[c.cursor]
	}
	c.chapters = names
	c.open = open

	c.cursor = 0
	for i, n := range names {
		if n == prev {
			c.cursor = i
			break
		}
	}
	c.clampScroll()
}

// Select moves the cursor to the named chapter.
func (c *Chapters) Select(name string) {
	for i, n := range c.chapters {
		if n == name {
			c.cursor = i
			c.clampScroll()
			return
		}
	}
}

// SetOpen marks which chapter is loaded in the editor.
func (c *Chapters) SetOpen(name string) {
	c.open = name
}

// Selected returns the chapter under the cursor, or "" on the action row.
func (c Chapters) Selected() string {
	if c.cursor < len(c.chapters) {
		return c.chapters[c.cursor]
	}
	return ""
}

func (c Chapters) Update(msg tea.Msg) (Chapters, tea.Cmd) {
	if !c.focused {
		return c, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if c.cursor < c.lastRow() {
				c.cursor++
				c.clampScroll()
				return c, c.previewCmd()
			}
		case "k", "up":
			if c.cursor > 0 {
				c.cursor--
				c.clampScroll()
				return c, c.previewCmd()
			}
		case "g":
			c.cursor = 0
			c.offset = 0
			return c, c.previewCmd()
		case "G":
			c.cursor = c.lastRow()
			c.clampScroll()
			return c, c.previewCmd()
		case "enter":
			if c.cursor >= len(c.chapters) {
				return c, func() tea.Msg { return ChapterNewMsg{} }
			}
			name := c.chapters[c.cursor]
			return c, func() tea.Msg { return ChapterSelectedMsg{Name: name} }
		case "n":
			return c, func() tea.Msg { return ChapterNewMsg{} }
		case "r":
			if c.cursor < len(c.chapters) {
				name := c.chapters[c.cursor]
				return c, func() tea.Msg { return ChapterRenameMsg{Name: name} }
			}
		case "d":
			if c.cursor < len(c.chapters) {
				name := c.chapters[c.cursor]
				return c, func() tea.Msg { return ChapterDeleteMsg{Name: name} }
			}
		}
	}

	return c, nil
}

// lastRow is the index of the pinned new-chapter action.
func (c Chapters) lastRow() int {
	return len(c.chapters)
}

func (c Chapters) viewHeight() int {
	h := c.height - 2 // title + padding
	if h < 1 {
		h = 1
	}
	return h
}

func (c *Chapters) clampScroll() {
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor-c.offset >= c.viewHeight() {
		c.offset = c.cursor - c.viewHeight() + 1
	}
	if c.offset < 0 {
		c.offset = 0
	}
}

// previewCmd announces the chapter under the cursor. On the action row the
// name is empty, which closes any open preview.
func (c Chapters) previewCmd() tea.Cmd {
	name := ""
	if c.cursor < len(c.chapters) {
		name = c.chapters[c.cursor]
	}
	return func() tea.Msg { return ChapterPreviewMsg{Name: name} }
}

func (c Chapters) View() string {
	if c.width == 0 || c.height == 0 {
		return ""
	}

	th := c.theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Dim).
		Padding(0, 1)
	if c.focused {
		titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(th.Accent).
			Underline(true).
			Padding(0, 1)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Chapters"))
	b.WriteByte('\n')

	rows := c.lastRow() + 1
	for i := c.offset; i < rows && i-c.offset < c.viewHeight(); i++ {
		var line string
		action := i == c.lastRow()
		if action {
			line = "+ New chapter"
		} else {
			name := strings.TrimSuffix(c.chapters[i], ".md")
			marker := "  "
			if c.chapters[i] == c.open {
				marker = "• "
			}
			line = marker + name
		}

		line = truncate(line, c.width-2)
		line = pad(line, c.width-2)

		switch {
		case i == c.cursor && c.focused:
			b.WriteString(lipgloss.NewStyle().Foreground(th.Accent).Bold(true).Render(line))
		case action:
			b.WriteString(lipgloss.NewStyle().Foreground(th.Dim).Render(line))
		case !action && c.chapters[i] == c.open:
			b.WriteString(lipgloss.NewStyle().Foreground(th.Text).Bold(true).Render(line))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(th.Text).Render(line))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func (c *Chapters) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.clampScroll()
}

func (c *Chapters) SetFocused(focused bool) {
	c.focused = focused
}

func (c Chapters) Focused() bool {
	return c.focused
}

func (c *Chapters) SetTheme(th *theme.Theme) {
	c.theme = th
}

// truncate cuts a line to at most max cells, marking the cut with dots.
func truncate(s string, max int) string {
	if max < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// pad right-fills a line with spaces up to width cells.
func pad(s string, width int) string {
	n := width - len([]rune(s))
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}
