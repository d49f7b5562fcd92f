package editor

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DarthTigerson/pico-writer/internal/theme"
)

// Editor is the writing surface: a word-wrapped view of the open chapter
// with an addressable cursor. While the chapters panel browses, it renders
// read-only previews without touching the buffer.
type Editor struct {
	buf         Buffer
	theme       *theme.Theme
	width       int
	height      int
	scroll      int
	preferred   int
	focused     bool
	preview     bool
	previewText string
}

// New returns an editor with an empty buffer.
func New(th *theme.Theme) Editor {
	return Editor{theme: th, preferred: -1, focused: true}
}

// SetSize sets the text area dimensions in cells.
func (e *Editor) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.ensureVisible()
}

// SetFocused sets whether the editor receives input and draws its cursor.
func (e *Editor) SetFocused(focused bool) {
	e.focused = focused
}

// Focused reports whether the editor has input focus.
func (e *Editor) Focused() bool {
	return e.focused
}

// SetTheme swaps the color palette.
func (e *Editor) SetTheme(th *theme.Theme) {
	e.theme = th
}

// Load replaces the buffer with text, cursor at the end, and leaves any
// preview.
func (e *Editor) Load(text string) {
	e.buf.Load(text)
	e.preview = false
	e.previewText = ""
	e.preferred = -1
	e.scroll = 0
	e.ensureVisible()
}

// Clear empties the buffer and leaves any preview.
func (e *Editor) Clear() {
	e.buf.Reset()
	e.preview = false
	e.previewText = ""
	e.preferred = -1
	e.scroll = 0
}

// ShowPreview renders text read-only in place of the buffer. The buffer
// itself is untouched and comes back on ClosePreview.
func (e *Editor) ShowPreview(text string) {
	e.preview = true
	e.previewText = text
	e.scroll = 0
}

// ClosePreview returns to the buffer view.
func (e *Editor) ClosePreview() {
	e.preview = false
	e.previewText = ""
}

// InPreview reports whether a preview is showing.
func (e *Editor) InPreview() bool {
	return e.preview
}

// Buffer exposes the underlying document buffer.
func (e *Editor) Buffer() *Buffer {
	return &e.buf
}

// Text returns the buffer content.
func (e *Editor) Text() string {
	return e.buf.String()
}

// Dirty reports whether the buffer has unsaved changes.
func (e *Editor) Dirty() bool {
	return e.buf.Dirty()
}

// Position returns the cursor's wrapped coordinates at the current width.
func (e *Editor) Position() VisualPos {
	return OffsetToVisual(e.buf.String(), e.buf.Offset(), e.textWidth())
}

// GoToLine places the cursor at the start of logical line n and scrolls it
// into view.
func (e *Editor) GoToLine(n int) {
	e.buf.SetOffset(LineStart(e.buf.String(), n))
	e.preferred = -1
	e.ensureVisible()
}

// Update handles editing keys. Keys are ignored while previewing.
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		e.handleKey(key)
	}
	return nil
}

func (e *Editor) handleKey(msg tea.KeyMsg) {
	if e.preview {
		return
	}
	switch msg.Type {
	case tea.KeyLeft:
		e.buf.Left()
		e.preferred = -1
	case tea.KeyRight:
		e.buf.Right()
		e.preferred = -1
	case tea.KeyUp:
		e.moveVertical(-1)
	case tea.KeyDown:
		e.moveVertical(1)
	case tea.KeyEnter:
		e.buf.InsertNewline()
		e.preferred = -1
	case tea.KeyBackspace:
		e.buf.DeleteBefore()
		e.preferred = -1
	case tea.KeySpace:
		e.buf.Insert(' ')
		e.preferred = -1
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			e.buf.Insert(r)
		}
		e.preferred = -1
	default:
		return
	}
	e.ensureVisible()
}

// moveVertical applies a remembered-column vertical move. The column is
// captured on the first vertical step and held until a horizontal move or
// an edit resets it.
func (e *Editor) moveVertical(delta int) {
	text := e.buf.String()
	if e.preferred < 0 {
		e.preferred = OffsetToVisual(text, e.buf.Offset(), e.textWidth()).Col
	}
	e.buf.SetOffset(MoveVertical(text, e.buf.Offset(), e.textWidth(), delta, e.preferred))
}

func (e *Editor) textWidth() int {
	if e.width < 1 {
		return 1
	}
	return e.width
}

func (e *Editor) ensureVisible() {
	row := OffsetToVisual(e.buf.String(), e.buf.Offset(), e.textWidth()).Row
	if row < e.scroll {
		e.scroll = row
	}
	visible := e.height
	if visible < 1 {
		visible = 1
	}
	if row >= e.scroll+visible {
		e.scroll = row - visible + 1
	}
}

// View renders the visible window of wrapped rows, cursor drawn in reverse
// video when the editor is focused.
func (e *Editor) View() string {
	width := e.textWidth()
	text := e.buf.String()
	if e.preview {
		text = e.previewText
	}
	rows := WrapText(text, width)

	visible := e.height
	if visible < 1 {
		visible = 1
	}
	scroll := e.scroll
	if max := len(rows) - visible; scroll > max {
		scroll = max
	}
	if scroll < 0 {
		scroll = 0
	}
	end := scroll + visible
	if end > len(rows) {
		end = len(rows)
	}

	textStyle := lipgloss.NewStyle().Foreground(e.theme.Text)
	if e.preview {
		textStyle = lipgloss.NewStyle().Foreground(e.theme.Subtle)
	}

	cur := VisualPos{Row: -1}
	if !e.preview && e.focused {
		cur = OffsetToVisual(text, e.buf.Offset(), width)
	}

	lines := make([]string, 0, visible)
	for i, row := range rows[scroll:end] {
		if scroll+i == cur.Row {
			lines = append(lines, e.renderCursorRow(row, cur.Col))
			continue
		}
		lines = append(lines, textStyle.Render(row))
	}
	for len(lines) < visible {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderCursorRow draws one row with the cursor cell inverted. A cursor
// reported past the row's segment, which happens at wrap boundaries, lands
// on the row's trailing cell.
func (e *Editor) renderCursorRow(row string, col int) string {
	runes := []rune(row)
	if col > len(runes) {
		col = len(runes)
	}
	if col >= e.textWidth() {
		col = e.textWidth() - 1
	}
	cursor := lipgloss.NewStyle().Reverse(true)
	text := lipgloss.NewStyle().Foreground(e.theme.Text)
	if col == len(runes) {
		return text.Render(string(runes)) + cursor.Render(" ")
	}
	return text.Render(string(runes[:col])) +
		cursor.Render(string(runes[col])) +
		text.Render(string(runes[col+1:]))
}
