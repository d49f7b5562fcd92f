package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}
	if a.width < minWindowWidth || a.height < minWindowHeight {
		return a.sizeWarning()
	}

	var screen string
	if a.browsing {
		screen = a.browser.View() + "\n" + a.status.View()
	} else {
		screen = a.workspaceView() + "\n" + a.status.View()
	}

	if a.help.Visible() {
		screen = overlayCenter(screen, a.help.View(), a.width, a.height)
	}
	if a.prompt.Visible() {
		screen = overlayCenter(screen, a.prompt.View(), a.width, a.height)
	}
	if a.confirm.Visible() {
		screen = overlayCenter(screen, a.confirm.View(), a.width, a.height)
	}
	if a.finder.Visible() {
		screen = overlayCenter(screen, a.finder.View(), a.width, a.height)
	}
	return screen
}

func (a *App) workspaceView() string {
	showChapters, showOutline := a.visiblePanels()

	var columns []string
	if showChapters {
		w := a.layout.ChaptersWidth - 1
		if w < 1 {
			w = 1
		}
		border := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, true, false, false).
			BorderForeground(a.theme.Border).
			Width(w).
			Height(a.layout.Height)
		columns = append(columns, border.Render(a.chapters.View()))
	}

	columns = append(columns, a.editorView())

	if showOutline {
		w := a.layout.OutlineWidth - 1
		if w < 1 {
			w = 1
		}
		border := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(a.theme.Border).
			Width(w).
			Height(a.layout.Height)
		columns = append(columns, border.Render(a.outline.View()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (a *App) editorView() string {
	style := lipgloss.NewStyle().
		Width(a.layout.EditorWidth).
		Height(a.layout.Height).
		Padding(0, 1)

	if a.currentChapter == "" && !a.editor.InPreview() {
		return style.Render(a.splash())
	}
	return style.Render(a.editorTitle() + "\n" + a.editor.View())
}

func (a *App) editorTitle() string {
	name := a.currentChapter
	suffix := ""
	if a.editor.InPreview() && a.previewName != "" {
		name = a.previewName
		suffix = " (preview)"
	}

	width := a.layout.EditorWidth - 2
	if width < 1 {
		width = 1
	}
	style := lipgloss.NewStyle().Bold(true).Foreground(a.theme.Dim)
	if a.focused == focusEditor && !a.editor.InPreview() {
		style = style.Foreground(a.theme.Accent)
	}
	return style.Render(clipTitle(trimExt(name)+suffix, width))
}

func (a *App) splash() string {
	width := a.layout.EditorWidth - 2
	if width < 1 {
		width = 1
	}

	name := a.currentBook
	hint := "enter or n starts a chapter"
	if name == "" {
		name = "pico-writer"
		hint = "ctrl+b opens the book list"
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(a.theme.Accent).Render(clipTitle(name, width))
	sub := lipgloss.NewStyle().Foreground(a.theme.Dim).Render(hint + "  ·  f1 help")
	return lipgloss.Place(width, a.layout.Height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, title, "", sub))
}

func (a *App) sizeWarning() string {
	msg := fmt.Sprintf("Window too small\nneed at least %dx%d", minWindowWidth, minWindowHeight)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(a.theme.Dim).Render(msg))
}

func clipTitle(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// overlayCenter draws overlay centered on top of base. Rows outside the
// overlay pass through untouched, so the workspace stays visible around
// dialogs.
func overlayCenter(base, overlay string, width, height int) string {
	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := 0
	for _, line := range overlayLines {
		if w := lipgloss.Width(line); w > overlayWidth {
			overlayWidth = w
		}
	}

	top := (height - len(overlayLines)) / 2
	left := (width - overlayWidth) / 2
	if top < 0 {
		top = 0
	}
	if left < 0 {
		left = 0
	}

	baseLines := strings.Split(base, "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}

	for i, line := range overlayLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}
		baseLine := baseLines[row]
		if w := lipgloss.Width(baseLine); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}
		lineWidth := lipgloss.Width(line)
		leftPart := ansi.Cut(baseLine, 0, left)
		rightPart := ansi.Cut(baseLine, left+lineWidth, width)
		baseLines[row] = leftPart + line + rightPart
	}
	return strings.Join(baseLines, "\n")
}
