package app

// Layout holds the computed dimensions for each visible surface.
type Layout struct {
	ChaptersWidth int
	EditorWidth   int
	OutlineWidth  int
	Height        int
}

// Minimum terminal size the interface is usable at. Smaller windows get a
// resize hint instead of the panels.
const (
	minWindowWidth  = 50
	minWindowHeight = 15
)

// ComputeLayout splits the window between the chapter list, the editor and
// the outline. One row is always reserved for the status bar. Side panels are
// capped at a third of the width each so the editor never collapses.
func ComputeLayout(totalWidth, totalHeight int, showChapters, showOutline bool, chaptersWidth, outlineWidth int) Layout {
	if totalWidth < 1 {
		totalWidth = 1
	}
	if totalHeight < 2 {
		totalHeight = 2
	}

	l := Layout{Height: totalHeight - 1}

	remaining := totalWidth
	if showChapters {
		l.ChaptersWidth = clampPanelWidth(chaptersWidth, remaining)
		// The panel's right border overlaps the editor edge.
		remaining -= l.ChaptersWidth - 1
	}
	if showOutline {
		l.OutlineWidth = clampPanelWidth(outlineWidth, remaining)
		remaining -= l.OutlineWidth - 1
	}
	if remaining < 1 {
		remaining = 1
	}
	l.EditorWidth = remaining
	return l
}

func clampPanelWidth(want, remaining int) int {
	max := remaining / 3
	if max < 2 {
		max = 2
	}
	if want < 2 {
		want = 2
	}
	if want > max {
		want = max
	}
	return want
}
