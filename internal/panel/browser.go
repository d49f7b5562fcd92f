package panel

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DarthTigerson/pico-writer/internal/theme"
)

// BookSelectedMsg is sent when a book is opened from the browser.
type BookSelectedMsg struct {
	Name string
}

// BookNewMsg is sent when the user asks to create a book.
type BookNewMsg struct{}

// BookRenameMsg is sent when the user asks to rename a book.
type BookRenameMsg struct {
	Name string
}

// BookDeleteMsg is sent when the user asks to delete a book.
type BookDeleteMsg struct {
	Name string
}

// BookEntry is one row of the book browser.
type BookEntry struct {
	Name     string
	Chapters int
}

type browserRowKind int

const (
	rowBook browserRowKind = iota
	rowSpacer
	rowAction
)

type browserRow struct {
	kind     browserRowKind
	name     string
	chapters int
}

// Browser is the full-screen book list. Books come first in recency
// order, then a pinned action row that creates a new book.
type Browser struct {
	books  []BookEntry
	open   string
	cursor int
	offset int
	width  int
	height int
	theme  *theme.Theme
}

func NewBrowser(th *theme.Theme) Browser {
	return Browser{theme: th}
}

// SetBooks replaces the list, keeping the cursor on the same book when it
// survived the change.
func (b *Browser) SetBooks(books []BookEntry, open string) {
	prev := ""
	if rows := b.rows(); b.cursor < len(rows) && rows[b.cursor].kind == rowBook {
		prev = rows[b.cursor].name
	}
	b.books = books
	b.open = open

	b.cursor = 0
	for i, e := range books {
		if e.Name == prev {
			b.cursor = i
			break
		}
	}
	b.clampScroll()
}

// Selected returns the book under the cursor, or "" on the action row.
func (b Browser) Selected() string {
	rows := b.rows()
	if b.cursor < len(rows) && rows[b.cursor].kind == rowBook {
		return rows[b.cursor].name
	}
	return ""
}

func (b Browser) rows() []browserRow {
	rows := make([]browserRow, 0, len(b.books)+2)
	for _, e := range b.books {
		rows = append(rows, browserRow{kind: rowBook, name: e.Name, chapters: e.Chapters})
	}
	if len(b.books) > 0 {
		rows = append(rows, browserRow{kind: rowSpacer})
	}
	rows = append(rows, browserRow{kind: rowAction})
	return rows
}

func (b Browser) Update(msg tea.Msg) (Browser, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			b.move(1)
		case "k", "up":
			b.move(-1)
		case "g":
			b.cursor = 0
			b.offset = 0
		case "G":
			b.cursor = len(b.rows()) - 1
			b.clampScroll()
		case "enter":
			rows := b.rows()
			if b.cursor >= len(rows) {
				return b, nil
			}
			switch rows[b.cursor].kind {
			case rowAction:
				return b, func() tea.Msg { return BookNewMsg{} }
			case rowBook:
				name := rows[b.cursor].name
				return b, func() tea.Msg { return BookSelectedMsg{Name: name} }
			}
		case "n":
			return b, func() tea.Msg { return BookNewMsg{} }
		case "r":
			if name := b.Selected(); name != "" {
				return b, func() tea.Msg { return BookRenameMsg{Name: name} }
			}
		case "d":
			if name := b.Selected(); name != "" {
				return b, func() tea.Msg { return BookDeleteMsg{Name: name} }
			}
		}
	}

	return b, nil
}

// move steps the cursor, hopping over spacer rows.
func (b *Browser) move(delta int) {
	rows := b.rows()
	next := b.cursor + delta
	for next >= 0 && next < len(rows) && rows[next].kind == rowSpacer {
		next += delta
	}
	if next < 0 || next >= len(rows) {
		return
	}
	b.cursor = next
	b.clampScroll()
}

func (b Browser) viewHeight() int {
	h := b.height - 5 // title, blank, hint and padding
	if h < 1 {
		h = 1
	}
	return h
}

func (b *Browser) clampScroll() {
	if b.cursor < b.offset {
		b.offset = b.cursor
	}
	if b.cursor-b.offset >= b.viewHeight() {
		b.offset = b.cursor - b.viewHeight() + 1
	}
	if b.offset < 0 {
		b.offset = 0
	}
}

func (b Browser) View() string {
	if b.width == 0 || b.height == 0 {
		return ""
	}

	th := b.theme

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(th.Accent)
	dimStyle := lipgloss.NewStyle().Foreground(th.Dim)
	textStyle := lipgloss.NewStyle().Foreground(th.Text)
	cursorStyle := lipgloss.NewStyle().Foreground(th.Accent).Bold(true)

	var lines []string
	lines = append(lines, titleStyle.Render("Books"))
	lines = append(lines, "")

	rows := b.rows()
	for i := b.offset; i < len(rows) && i-b.offset < b.viewHeight(); i++ {
		row := rows[i]
		switch row.kind {
		case rowSpacer:
			lines = append(lines, "")
			continue
		case rowAction:
			line := "  + New book"
			if i == b.cursor {
				line = "> + New book"
				lines = append(lines, cursorStyle.Render(line))
			} else {
				lines = append(lines, dimStyle.Render(line))
			}
			continue
		}

		prefix := "  "
		style := textStyle
		if i == b.cursor {
			prefix = "> "
			style = cursorStyle
		}
		marker := ""
		if row.name == b.open {
			marker = " •"
		}

		label := fmt.Sprintf("%-24s", row.name+marker)
		count := "empty"
		if row.chapters == 1 {
			count = "1 chapter"
		} else if row.chapters > 1 {
			count = fmt.Sprintf("%d chapters", row.chapters)
		}
		lines = append(lines, style.Render(prefix+label)+dimStyle.Render(count))
	}

	lines = append(lines, "")
	lines = append(lines, dimStyle.Render("enter open · n new · r rename · d delete · esc back"))

	block := strings.Join(lines, "\n")
	return lipgloss.Place(b.width, b.height, lipgloss.Center, lipgloss.Center, block)
}

func (b *Browser) SetSize(width, height int) {
	b.width = width
	b.height = height
	b.clampScroll()
}

func (b *Browser) SetTheme(th *theme.Theme) {
	b.theme = th
}
