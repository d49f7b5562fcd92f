package library

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// orderFile is the hidden per-book record of chapter sequence, one file
// name per line.
const orderFile = ".order"

// readOrder returns the chapter names recorded in a book's order file. A
// missing file is an empty order, not an error.
func readOrder(bookDir string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(bookDir, orderFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// writeOrder rewrites a book's order file.
func writeOrder(bookDir string, names []string) error {
	var b strings.Builder
	for _, n := range names {
		b.WriteString(n)
		b.WriteByte('\n')
	}
	return os.WriteFile(filepath.Join(bookDir, orderFile), []byte(b.String()), 0o644)
}

// mergeOrder reconciles the recorded order with the chapter files actually
// on disk. Recorded entries with no backing file are dropped, files absent
// from the record are appended in name order. Reports whether the merge
// changed anything, so callers know to rewrite the file.
func mergeOrder(recorded, onDisk []string) ([]string, bool) {
	present := make(map[string]bool, len(onDisk))
	for _, n := range onDisk {
		present[n] = true
	}

	merged := make([]string, 0, len(onDisk))
	seen := make(map[string]bool, len(recorded))
	for _, n := range recorded {
		if present[n] && !seen[n] {
			merged = append(merged, n)
			seen[n] = true
		}
	}

	var extra []string
	for _, n := range onDisk {
		if !seen[n] {
			extra = append(extra, n)
		}
	}
	sort.Strings(extra)
	merged = append(merged, extra...)

	changed := len(merged) != len(recorded)
	if !changed {
		for i := range merged {
			if merged[i] != recorded[i] {
				changed = true
				break
			}
		}
	}
	return merged, changed
}
