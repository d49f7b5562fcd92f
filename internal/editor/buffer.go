package editor

// Buffer holds the text of the open chapter as runes, so the cursor offset
// lines up with the rune arithmetic of the cursor model. Dirty state is a
// derived comparison against the baseline captured at load or save time,
// so hand-undoing an edit clears it again.
type Buffer struct {
	content  []rune
	offset   int
	baseline string
}

// Load replaces content and baseline, placing the cursor at the end.
func (b *Buffer) Load(text string) {
	b.content = []rune(text)
	b.offset = len(b.content)
	b.baseline = text
}

// Reset clears content, baseline and cursor.
func (b *Buffer) Reset() {
	b.Load("")
}

// String returns the buffer content.
func (b *Buffer) String() string {
	return string(b.content)
}

// Offset returns the cursor's rune offset.
func (b *Buffer) Offset() int {
	return b.offset
}

// Len returns the content length in runes.
func (b *Buffer) Len() int {
	return len(b.content)
}

// Dirty reports whether content differs from the baseline.
func (b *Buffer) Dirty() bool {
	return string(b.content) != b.baseline
}

// MarkSaved makes the current content the new baseline.
func (b *Buffer) MarkSaved() {
	b.baseline = string(b.content)
}

// Insert places r at the cursor and advances past it.
func (b *Buffer) Insert(r rune) {
	b.content = append(b.content[:b.offset], append([]rune{r}, b.content[b.offset:]...)...)
	b.offset++
}

// InsertNewline inserts a line break at the cursor.
func (b *Buffer) InsertNewline() {
	b.Insert('\n')
}

// DeleteBefore removes the rune before the cursor. No-op at the start.
func (b *Buffer) DeleteBefore() {
	if b.offset == 0 {
		return
	}
	b.content = append(b.content[:b.offset-1], b.content[b.offset:]...)
	b.offset--
}

// Left moves the cursor one rune left, clamped at the start.
func (b *Buffer) Left() {
	if b.offset > 0 {
		b.offset--
	}
}

// Right moves the cursor one rune right, clamped at the end.
func (b *Buffer) Right() {
	if b.offset < len(b.content) {
		b.offset++
	}
}

// SetOffset moves the cursor to a rune offset, clamped to the content.
func (b *Buffer) SetOffset(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.content) {
		offset = len(b.content)
	}
	b.offset = offset
}
