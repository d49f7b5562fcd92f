package index

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DarthTigerson/pico-writer/internal/markdown"
)

// Indexer keeps the search database in step with the chapter files on
// disk. Paths are stored relative to the library root as book/chapter.md.
type Indexer struct {
	db     *DB
	parser *markdown.Parser
	root   string
}

func NewIndexer(db *DB, root string) *Indexer {
	return &Indexer{
		db:     db,
		parser: markdown.NewParser(),
		root:   root,
	}
}

// IndexAll walks the whole library, indexes every chapter file, and prunes
// database rows whose files no longer exist.
func (idx *Indexer) IndexAll() error {
	seen := make(map[string]bool)

	err := filepath.Walk(idx.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		// Skip hidden directories
		if info.IsDir() && strings.HasPrefix(info.Name(), ".") && path != idx.root {
			return filepath.SkipDir
		}

		if info.IsDir() || strings.HasPrefix(info.Name(), ".") || !strings.HasSuffix(info.Name(), ".md") {
			return nil
		}

		rel, indexed, err := idx.indexFile(path)
		if err != nil {
			return err
		}
		if indexed {
			seen[rel] = true
		}
		return nil
	})
	if err != nil {
		return err
	}

	stored, err := idx.db.Paths()
	if err != nil {
		return err
	}
	for _, p := range stored {
		if !seen[p] {
			if err := idx.db.DeleteChapter(p); err != nil {
				return fmt.Errorf("prune %s: %w", p, err)
			}
		}
	}
	return nil
}

// IndexFile indexes a single chapter file.
func (idx *Indexer) IndexFile(absPath string) error {
	_, _, err := idx.indexFile(absPath)
	return err
}

// indexFile reports the relative path it indexed and whether the file was
// a chapter at all. Markdown files sitting directly in the library root
// belong to no book and are ignored.
func (idx *Indexer) indexFile(absPath string) (string, bool, error) {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", absPath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", false, fmt.Errorf("stat %s: %w", absPath, err)
	}

	rel, err := filepath.Rel(idx.root, absPath)
	if err != nil {
		rel = absPath
	}
	rel = filepath.ToSlash(rel)

	book := filepath.Dir(rel)
	if book == "." {
		return "", false, nil
	}

	// Skip unchanged files
	hash := fmt.Sprintf("%x", sha256.Sum256(content))
	existing, _ := idx.db.ChapterHash(rel)
	if hash == existing {
		return rel, true, nil
	}

	name := filepath.Base(rel)
	id, err := idx.db.UpsertChapter(book, rel, name, hash, info.ModTime().Unix(), info.Size())
	if err != nil {
		return "", false, fmt.Errorf("upsert chapter: %w", err)
	}

	parsed := idx.parser.Parse(content)
	if err := idx.db.UpdateFTS(id, name, book, parsed.Plain, parsed.HeadingText()); err != nil {
		return "", false, fmt.Errorf("update FTS: %w", err)
	}

	return rel, true, nil
}

// RemoveFile removes a chapter from the index.
func (idx *Indexer) RemoveFile(absPath string) error {
	rel, err := filepath.Rel(idx.root, absPath)
	if err != nil {
		rel = absPath
	}
	return idx.db.DeleteChapter(filepath.ToSlash(rel))
}

// RemoveBook removes every chapter of a book directory from the index.
func (idx *Indexer) RemoveBook(absPath string) error {
	rel, err := filepath.Rel(idx.root, absPath)
	if err != nil {
		rel = absPath
	}
	return idx.db.DeleteBook(filepath.ToSlash(rel))
}
