package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Library is the filesystem-backed catalog of books and their chapters.
// A book is a directory directly under the root, a chapter is a markdown
// file inside a book. At most one book is current at a time.
type Library struct {
	root    string
	current string
}

// New returns a library rooted at dir. The directory is created if needed.
func New(dir string) (*Library, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create library root: %w", err)
	}
	return &Library{root: dir}, nil
}

// Root returns the library root directory.
func (l *Library) Root() string {
	return l.root
}

// Current returns the current book name, or "" when no book is open.
func (l *Library) Current() string {
	return l.current
}

func (l *Library) bookDir(name string) string {
	return filepath.Join(l.root, name)
}

// ListBooks returns every book under the root, most recently opened first,
// with never-opened books following in name order.
func (l *Library) ListBooks() ([]string, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	var books []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		books = append(books, e.Name())
	}
	sort.Strings(books)

	rank := make(map[string]int)
	for i, n := range l.readRecents() {
		rank[n] = i + 1
	}
	sort.SliceStable(books, func(i, j int) bool {
		ri, rj := rank[books[i]], rank[books[j]]
		if ri != 0 && rj != 0 {
			return ri < rj
		}
		return ri != 0
	})
	return books, nil
}

// CreateBook creates a book directory with an empty chapter order and
// registers it as most recently opened. Returns the sanitized name.
func (l *Library) CreateBook(name string) (string, error) {
	clean, err := SanitizeBookName(name)
	if err != nil {
		return "", err
	}
	dir := l.bookDir(clean)
	if _, err := os.Stat(dir); err == nil {
		return "", ErrAlreadyExists
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("create book: %w", err)
	}
	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", fmt.Errorf("create book: %w", err)
	}
	if err := writeOrder(dir, nil); err != nil {
		return "", fmt.Errorf("create book: %w", err)
	}
	if err := l.markRecent(clean); err != nil {
		return "", fmt.Errorf("create book: %w", err)
	}
	return clean, nil
}

// RenameBook renames a book directory, keeping its recency position. The
// current book follows the rename. Returns the sanitized new name.
func (l *Library) RenameBook(oldName, newName string) (string, error) {
	clean, err := SanitizeBookName(newName)
	if err != nil {
		return "", err
	}
	oldDir := l.bookDir(oldName)
	if _, err := os.Stat(oldDir); os.IsNotExist(err) {
		return "", ErrNotFound
	} else if err != nil {
		return "", fmt.Errorf("rename book: %w", err)
	}
	if clean == oldName {
		return clean, nil
	}
	newDir := l.bookDir(clean)
	if _, err := os.Stat(newDir); err == nil {
		return "", ErrAlreadyExists
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("rename book: %w", err)
	}
	if err := os.Rename(oldDir, newDir); err != nil {
		return "", fmt.Errorf("rename book: %w", err)
	}
	if err := l.renameRecent(oldName, clean); err != nil {
		return "", fmt.Errorf("rename book: %w", err)
	}
	if l.current == oldName {
		l.current = clean
	}
	return clean, nil
}

// DeleteBook removes a book directory and everything in it, along with its
// recency entry. Deleting the current book leaves no book open.
func (l *Library) DeleteBook(name string) error {
	dir := l.bookDir(name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if err := l.dropRecent(name); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if l.current == name {
		l.current = ""
	}
	return nil
}

// OpenBook makes the named book current, records it as most recently
// opened, and returns its chapters in order.
func (l *Library) OpenBook(name string) ([]string, error) {
	if _, err := os.Stat(l.bookDir(name)); os.IsNotExist(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("open book: %w", err)
	}
	l.current = name
	if err := l.markRecent(name); err != nil {
		return nil, fmt.Errorf("open book: %w", err)
	}
	return l.Chapters()
}

// MostRecent returns the most recently opened book still present on disk,
// or false when the history is empty or stale.
func (l *Library) MostRecent() (string, bool) {
	for _, name := range l.readRecents() {
		if _, err := os.Stat(l.bookDir(name)); err == nil {
			return name, true
		}
	}
	return "", false
}
