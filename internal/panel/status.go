package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DarthTigerson/pico-writer/internal/theme"
)

// Status is the bar at the bottom: mode chip, open book and chapter with
// an unsaved marker, word count on the right.
type Status struct {
	width   int
	mode    string
	book    string
	chapter string
	dirty   bool
	words   int
	errMsg  string
	theme   *theme.Theme
}

func NewStatus(th *theme.Theme) Status {
	return Status{
		mode:  "EDIT",
		theme: th,
	}
}

func (s *Status) SetMode(mode string) {
	s.mode = mode
}

func (s *Status) SetBook(book string) {
	s.book = book
}

func (s *Status) SetChapter(chapter string) {
	s.chapter = chapter
}

func (s *Status) SetDirty(dirty bool) {
	s.dirty = dirty
}

func (s *Status) SetWords(words int) {
	s.words = words
}

func (s *Status) SetError(msg string) {
	s.errMsg = msg
}

func (s *Status) ClearError() {
	s.errMsg = ""
}

func (s *Status) SetWidth(width int) {
	s.width = width
}

func (s *Status) SetTheme(th *theme.Theme) {
	s.theme = th
}

func (s Status) View() string {
	if s.width == 0 {
		return ""
	}

	th := s.theme

	bgStyle := lipgloss.NewStyle().
		Background(th.StatusBg)

	modeColors := map[string]lipgloss.Color{
		"EDIT":    th.EditMode,
		"PREVIEW": th.PreviewMode,
		"BROWSE":  th.BrowseMode,
	}

	color, ok := modeColors[s.mode]
	if !ok {
		color = th.Subtle
	}

	modeStyle := lipgloss.NewStyle().
		Background(color).
		Foreground(th.Bg).
		Bold(true).
		Padding(0, 1)

	textStyle := lipgloss.NewStyle().
		Background(th.StatusBg).
		Foreground(th.StatusFg).
		Padding(0, 1)

	mode := modeStyle.Render(s.mode)

	var middle string
	if s.errMsg != "" {
		errStyle := lipgloss.NewStyle().
			Background(th.StatusBg).
			Foreground(th.Dirty).
			Padding(0, 1)
		middle = errStyle.Render(s.errMsg)
	} else {
		var parts []string
		if s.book != "" {
			parts = append(parts, s.book)
		}
		if s.chapter != "" {
			parts = append(parts, strings.TrimSuffix(s.chapter, ".md"))
		}
		location := strings.Join(parts, " / ")
		if location == "" {
			location = "no book open"
		}
		middle = textStyle.Render(location)
		if s.dirty {
			dirtyStyle := lipgloss.NewStyle().
				Background(th.StatusBg).
				Foreground(th.Dirty).
				Bold(true)
			middle += dirtyStyle.Render("●")
		}
	}

	left := mode + middle

	right := ""
	if s.chapter != "" && s.errMsg == "" {
		label := fmt.Sprintf("%d words", s.words)
		if s.words == 1 {
			label = "1 word"
		}
		right = textStyle.Render(label)
	}

	padLen := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padLen < 0 {
		padLen = 0
	}
	padding := bgStyle.Render(strings.Repeat(" ", padLen))

	return left + padding + right
}
