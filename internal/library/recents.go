package library

import (
	"os"
	"path/filepath"
	"strings"
)

// appDir is the hidden directory under the library root holding application
// files: recency history, search index, session state, log.
const appDir = ".pico-writer"

// maxRecent caps the most-recently-opened book history.
const maxRecent = 10

func (l *Library) recentPath() string {
	return filepath.Join(l.root, appDir, "recent")
}

// readRecents returns book names, most recently opened first. A missing
// history file is an empty history.
func (l *Library) readRecents() []string {
	data, err := os.ReadFile(l.recentPath())
	if err != nil {
		return nil
	}
	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names
}

func (l *Library) writeRecents(names []string) error {
	if err := os.MkdirAll(filepath.Dir(l.recentPath()), 0o755); err != nil {
		return err
	}
	var b strings.Builder
	for _, n := range names {
		b.WriteString(n)
		b.WriteByte('\n')
	}
	return os.WriteFile(l.recentPath(), []byte(b.String()), 0o644)
}

// markRecent moves name to the front of the history, evicting entries
// beyond the cap.
func (l *Library) markRecent(name string) error {
	names := []string{name}
	for _, n := range l.readRecents() {
		if n != name {
			names = append(names, n)
		}
	}
	if len(names) > maxRecent {
		names = names[:maxRecent]
	}
	return l.writeRecents(names)
}

// renameRecent replaces a history entry in place, so recency position
// survives a book rename.
func (l *Library) renameRecent(oldName, newName string) error {
	names := l.readRecents()
	replaced := false
	for i, n := range names {
		if n == oldName {
			names[i] = newName
			replaced = true
		}
	}
	if !replaced {
		return nil
	}
	return l.writeRecents(names)
}

// dropRecent removes a history entry.
func (l *Library) dropRecent(name string) error {
	names := l.readRecents()
	kept := names[:0]
	for _, n := range names {
		if n != name {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(names) {
		return nil
	}
	return l.writeRecents(kept)
}
