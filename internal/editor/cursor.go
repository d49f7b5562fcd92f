package editor

import (
	"strings"
	"unicode/utf8"
)

// VisualPos locates the cursor in wrapped coordinates. Row counts visual
// rows from the top of the buffer, Col counts runes from the start of that
// row's segment.
type VisualPos struct {
	Row int
	Col int
}

// OffsetToVisual converts a rune offset into wrapped coordinates. An
// offset sitting exactly on a wrap boundary reports as the end of the
// earlier row, so Col may exceed the rendered segment's length by the
// width of the separating space.
func OffsetToVisual(text string, offset, width int) VisualPos {
	row := 0
	for _, line := range strings.Split(text, "\n") {
		runes := []rune(line)
		if offset > len(runes) {
			row += len(Wrap(line, width))
			offset -= len(runes) + 1
			continue
		}
		segments := Wrap(string(runes[:offset]), width)
		last := segments[len(segments)-1]
		return VisualPos{
			Row: row + len(segments) - 1,
			Col: utf8.RuneCountInString(last),
		}
	}
	return VisualPos{Row: row}
}

// VisualToOffset converts wrapped coordinates back to a rune offset. It
// does not clamp Col, making it an exact inverse of OffsetToVisual for any
// position that function produces. Rows past the end land on the last row.
func VisualToOffset(text string, pos VisualPos, width int) int {
	offset := 0
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		segments := Wrap(line, width)
		if pos.Row >= len(segments) && i < len(lines)-1 {
			pos.Row -= len(segments)
			offset += utf8.RuneCountInString(line) + 1
			continue
		}
		if pos.Row >= len(segments) {
			pos.Row = len(segments) - 1
		}
		for _, seg := range segments[:pos.Row] {
			offset += utf8.RuneCountInString(seg) + 1
		}
		return offset + pos.Col
	}
	return offset
}

// TotalRows returns the number of visual rows text occupies at width.
func TotalRows(text string, width int) int {
	total := 0
	for _, line := range strings.Split(text, "\n") {
		total += len(Wrap(line, width))
	}
	return total
}

// MoveVertical moves the cursor delta visual rows, negative for up, while
// holding the remembered column. Moving up from the first row collapses to
// offset 0 and moving down from the last row stays put. The remembered
// column is clamped to the target row's segment length; pass a negative
// column to reuse the cursor's current one.
func MoveVertical(text string, offset, width, delta, column int) int {
	pos := OffsetToVisual(text, offset, width)
	if column < 0 {
		column = pos.Col
	}
	target := pos.Row + delta
	if target < 0 {
		return 0
	}
	if target >= TotalRows(text, width) {
		return offset
	}

	row := target
	base := 0
	for _, line := range strings.Split(text, "\n") {
		segments := Wrap(line, width)
		if row >= len(segments) {
			row -= len(segments)
			base += utf8.RuneCountInString(line) + 1
			continue
		}
		for _, seg := range segments[:row] {
			base += utf8.RuneCountInString(seg) + 1
		}
		if n := utf8.RuneCountInString(segments[row]); column > n {
			column = n
		}
		return base + column
	}
	return offset
}

// LineStart returns the rune offset where logical line n begins, clamped
// to the buffer. Lines count from zero.
func LineStart(text string, n int) int {
	if n <= 0 {
		return 0
	}
	offset := 0
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i == n {
			return offset
		}
		offset += utf8.RuneCountInString(line) + 1
	}
	return offset - 1
}
