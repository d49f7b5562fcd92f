package editor

import (
	"strings"
	"unicode/utf8"
)

// Wrap splits one logical line into visual segments at most width runes
// wide, breaking only at spaces. A word longer than width is emitted as its
// own oversized segment, never split. An empty line yields a single empty
// segment, so every logical line occupies at least one visual row.
//
// Splitting on every single space keeps the result invertible: joining the
// segments with one space reproduces the line exactly. The cursor
// arithmetic in this package relies on that.
func Wrap(line string, width int) []string {
	if width < 1 {
		width = 1
	}
	words := strings.Split(line, " ")
	segments := make([]string, 0, 1)
	cur := words[0]
	curLen := utf8.RuneCountInString(cur)
	for _, word := range words[1:] {
		wordLen := utf8.RuneCountInString(word)
		if curLen+1+wordLen <= width {
			cur += " " + word
			curLen += 1 + wordLen
			continue
		}
		segments = append(segments, cur)
		cur = word
		curLen = wordLen
	}
	return append(segments, cur)
}

// WrapText wraps every logical line of text and returns the visual rows in
// order.
func WrapText(text string, width int) []string {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		rows = append(rows, Wrap(line, width)...)
	}
	return rows
}
