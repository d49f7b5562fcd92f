package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/DarthTigerson/pico-writer/internal/index"
	"github.com/DarthTigerson/pico-writer/internal/panel"
)

// initIndex runs the initial full index pass in the background so startup
// is not blocked on reading every chapter in the library.
func (a *App) initIndex() tea.Cmd {
	return func() tea.Msg {
		if a.indexer == nil {
			return indexInitDoneMsg{}
		}
		return indexInitDoneMsg{err: a.indexer.IndexAll()}
	}
}

// indexChapter re-indexes a single chapter file in the background.
func (a *App) indexChapter(absPath string) tea.Cmd {
	if a.indexer == nil {
		return nil
	}
	return func() tea.Msg {
		return chapterIndexedMsg{path: absPath, err: a.indexer.IndexFile(absPath)}
	}
}

// dropFromIndex removes a single chapter file from the index.
func (a *App) dropFromIndex(absPath string) tea.Cmd {
	if a.indexer == nil {
		return nil
	}
	return func() tea.Msg {
		return chapterIndexedMsg{path: absPath, err: a.indexer.RemoveFile(absPath)}
	}
}

const (
	maxNameMatches  = 10
	maxSearchItems  = 50
	browseListLimit = 20
)

// searchChapters backs the finder. Fuzzy matches on chapter names rank
// first, then full-text hits with a content snippet, those from the open
// book ahead of the rest.
func (a *App) searchChapters(query string) []panel.FinderItem {
	if a.db == nil {
		return nil
	}

	all, err := a.db.ListChapters(0)
	if err != nil {
		a.log.Error("list chapters for search", "err", err)
		return nil
	}

	names := make([]string, len(all))
	for i, r := range all {
		names[i] = displayPath(r.Book, r.Name)
	}

	if strings.TrimSpace(query) == "" {
		items := make([]panel.FinderItem, 0, len(all))
		for i, r := range all {
			items = append(items, panel.FinderItem{Title: names[i], Path: r.Path})
			if len(items) == browseListLimit {
				break
			}
		}
		return items
	}

	items := make([]panel.FinderItem, 0, maxSearchItems)
	seen := make(map[string]bool)
	for i, m := range fuzzy.Find(query, names) {
		if i == maxNameMatches {
			break
		}
		r := all[m.Index]
		seen[r.Path] = true
		items = append(items, panel.FinderItem{Title: names[m.Index], Path: r.Path})
	}

	var hits []index.SearchResult
	if a.currentBook != "" {
		bookHits, err := a.db.SearchBook(a.currentBook, query, maxSearchItems)
		if err != nil {
			a.log.Error("search open book", "book", a.currentBook, "query", query, "err", err)
		}
		hits = bookHits
	}
	rest, err := a.db.Search(query, maxSearchItems)
	if err != nil {
		a.log.Error("search index", "query", query, "err", err)
	}
	hits = append(hits, rest...)

	for _, h := range hits {
		if seen[h.Path] {
			continue
		}
		seen[h.Path] = true
		items = append(items, panel.FinderItem{
			Title: displayPath(h.Book, h.Name),
			Path:  h.Path,
			Extra: flattenSnippet(h.Snippet),
		})
		if len(items) == maxSearchItems {
			break
		}
	}
	return items
}

func displayPath(book, name string) string {
	return book + " / " + strings.TrimSuffix(name, ".md")
}

// flattenSnippet collapses an FTS snippet to a single line.
func flattenSnippet(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
