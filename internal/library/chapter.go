package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Chapters returns the current book's chapters in recorded order, merged
// against the files on disk. Files missing from the record are appended in
// name order, stale entries are dropped, and the order file is rewritten
// whenever the merge changed it, so consecutive loads agree.
func (l *Library) Chapters() ([]string, error) {
	if l.current == "" {
		return nil, ErrNotFound
	}
	dir := l.bookDir(l.current)
	recorded, err := readOrder(dir)
	if err != nil {
		return nil, fmt.Errorf("read order: %w", err)
	}
	onDisk, err := listChapterFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	merged, changed := mergeOrder(recorded, onDisk)
	if changed {
		if err := writeOrder(dir, merged); err != nil {
			return nil, fmt.Errorf("write order: %w", err)
		}
	}
	return merged, nil
}

func listChapterFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// CreateChapter writes an empty chapter file in the current book and
// appends it to the order. Returns the sanitized file name.
func (l *Library) CreateChapter(name string) (string, error) {
	if l.current == "" {
		return "", ErrNotFound
	}
	clean, err := SanitizeChapterName(name)
	if err != nil {
		return "", err
	}
	chapters, err := l.Chapters()
	if err != nil {
		return "", err
	}
	for _, c := range chapters {
		if c == clean {
			return "", ErrAlreadyExists
		}
	}
	dir := l.bookDir(l.current)
	if err := os.WriteFile(filepath.Join(dir, clean), nil, 0o644); err != nil {
		return "", fmt.Errorf("create chapter: %w", err)
	}
	if err := writeOrder(dir, append(chapters, clean)); err != nil {
		return "", fmt.Errorf("create chapter: %w", err)
	}
	return clean, nil
}

// RenameChapter renames a chapter file, replacing its order entry in place
// so the chapter keeps its position. Returns the sanitized new name.
func (l *Library) RenameChapter(oldName, newName string) (string, error) {
	if l.current == "" {
		return "", ErrNotFound
	}
	clean, err := SanitizeChapterName(newName)
	if err != nil {
		return "", err
	}
	chapters, err := l.Chapters()
	if err != nil {
		return "", err
	}
	pos := -1
	for i, c := range chapters {
		if c == oldName {
			pos = i
		} else if c == clean {
			return "", ErrAlreadyExists
		}
	}
	if pos == -1 {
		return "", ErrNotFound
	}
	if clean == oldName {
		return clean, nil
	}
	dir := l.bookDir(l.current)
	if err := os.Rename(filepath.Join(dir, oldName), filepath.Join(dir, clean)); err != nil {
		return "", fmt.Errorf("rename chapter: %w", err)
	}
	chapters[pos] = clean
	if err := writeOrder(dir, chapters); err != nil {
		return "", fmt.Errorf("rename chapter: %w", err)
	}
	return clean, nil
}

// DeleteChapter removes a chapter file and its order entry.
func (l *Library) DeleteChapter(name string) error {
	if l.current == "" {
		return ErrNotFound
	}
	chapters, err := l.Chapters()
	if err != nil {
		return err
	}
	pos := -1
	for i, c := range chapters {
		if c == name {
			pos = i
			break
		}
	}
	if pos == -1 {
		return ErrNotFound
	}
	dir := l.bookDir(l.current)
	if err := os.Remove(filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}
	if err := writeOrder(dir, append(chapters[:pos], chapters[pos+1:]...)); err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}
	return nil
}

// ReadChapter returns a chapter's content from the current book.
func (l *Library) ReadChapter(name string) (string, error) {
	if l.current == "" {
		return "", ErrNotFound
	}
	data, err := os.ReadFile(filepath.Join(l.bookDir(l.current), name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read chapter: %w", err)
	}
	return string(data), nil
}

// WriteChapter replaces a chapter's content in the current book.
func (l *Library) WriteChapter(name, content string) error {
	if l.current == "" {
		return ErrNotFound
	}
	path := filepath.Join(l.bookDir(l.current), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write chapter: %w", err)
	}
	return nil
}
