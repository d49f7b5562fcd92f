package session

// State represents persisted session state.
type State struct {
	ShowChapters bool              `json:"show_chapters"`
	ShowOutline  bool              `json:"show_outline"`
	LastChapters map[string]string `json:"last_chapters,omitempty"`
}

// Default returns the default session state.
func Default() State {
	return State{
		ShowChapters: true,
		ShowOutline:  false,
		LastChapters: map[string]string{},
	}
}

// LastChapter returns the chapter last open in the named book, if any.
func (s State) LastChapter(book string) (string, bool) {
	name, ok := s.LastChapters[book]
	return name, ok
}

// SetLastChapter records the chapter last open in the named book. An empty
// chapter name clears the record.
func (s *State) SetLastChapter(book, chapter string) {
	if s.LastChapters == nil {
		s.LastChapters = map[string]string{}
	}
	if chapter == "" {
		delete(s.LastChapters, book)
		return
	}
	s.LastChapters[book] = chapter
}

// DropBook removes all records for a book.
func (s *State) DropBook(book string) {
	delete(s.LastChapters, book)
}

// RenameBook moves a book's records to its new name.
func (s *State) RenameBook(oldName, newName string) {
	if chapter, ok := s.LastChapters[oldName]; ok {
		delete(s.LastChapters, oldName)
		s.SetLastChapter(newName, chapter)
	}
}
