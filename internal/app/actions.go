package app

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DarthTigerson/pico-writer/internal/index"
	"github.com/DarthTigerson/pico-writer/internal/library"
	"github.com/DarthTigerson/pico-writer/internal/markdown"
	"github.com/DarthTigerson/pico-writer/internal/panel"
)

// requestNavigate runs the navigation unless the open chapter has unsaved
// changes, in which case it parks the intent behind a save dialog.
func (a *App) requestNavigate(n navIntent) tea.Cmd {
	a.nav = n
	if a.currentChapter != "" && a.editor.Dirty() {
		a.pending = pendingSwitch
		a.confirm.Show("Save changes", fmt.Sprintf("%q has unsaved changes.", trimExt(a.currentChapter)))
		return nil
	}
	return a.performNavigate()
}

func (a *App) performNavigate() tea.Cmd {
	n := a.nav
	a.nav = navIntent{}

	switch n.kind {
	case navChapter:
		a.openChapter(n.chapter)
	case navBook:
		a.openBook(n.book, "")
	case navBookChapter:
		a.openBook(n.book, n.chapter)
	case navQuit:
		a.Close()
		return tea.Quit
	}
	return nil
}

// openBook makes the named book current. With an empty chapter argument the
// book's last open chapter is restored when it still exists.
func (a *App) openBook(book, chapter string) {
	chapters, err := a.lib.OpenBook(book)
	if err != nil {
		a.reportNameError("open book", book, err)
		return
	}

	a.currentBook = a.lib.Current()
	a.currentChapter = ""
	a.previewName = ""
	a.previewText = ""
	a.editor.Clear()
	a.editor.ClosePreview()
	a.browsing = false
	a.chapters.SetChapters(chapters, "")
	a.log.Info("opened book", "book", a.currentBook)

	if chapter == "" {
		if last, ok := a.state.LastChapter(a.currentBook); ok {
			chapter = last
		}
	}
	if chapter != "" && containsName(chapters, chapter) {
		a.openChapter(chapter)
		return
	}

	a.setFocus(focusChapters)
	a.updateLayout()
	a.refreshStatus()
}

func (a *App) openChapter(name string) {
	content, err := a.lib.ReadChapter(name)
	if err != nil {
		a.reportNameError("open chapter", name, err)
		return
	}

	a.editor.ClosePreview()
	a.previewName = ""
	a.previewText = ""
	a.editor.Load(content)
	a.currentChapter = name
	a.chapters.SetOpen(name)
	a.chapters.Select(name)
	a.state.SetLastChapter(a.currentBook, name)
	a.saveSession()
	a.setFocus(focusEditor)
	a.refreshOutline()
	a.updateLayout()
	a.refreshStatus()
	a.log.Info("opened chapter", "book", a.currentBook, "chapter", name)
}

// openSearchResult navigates to a finder hit, which may live in another
// book. Index paths always use forward slashes.
func (a *App) openSearchResult(result string) tea.Cmd {
	book := path.Dir(result)
	chapter := path.Base(result)

	if !a.browsing && book == a.currentBook {
		if chapter == a.currentChapter {
			a.setFocus(focusEditor)
			return nil
		}
		return a.requestNavigate(navIntent{kind: navChapter, chapter: chapter})
	}
	return a.requestNavigate(navIntent{kind: navBookChapter, book: book, chapter: chapter})
}

func (a *App) openBrowser() {
	a.closePreview()
	a.browsing = true
	a.refreshBooks()
	a.updateLayout()
	a.refreshStatus()
}

func (a *App) closeBrowser() {
	a.browsing = false
	a.updateLayout()
	a.refreshStatus()
}

// showPreview renders another chapter read-only in the editor area while
// the chapter list keeps focus. The edit buffer is untouched.
func (a *App) showPreview(name string) {
	if name == "" || name == a.currentChapter {
		a.closePreview()
		return
	}
	content, err := a.lib.ReadChapter(name)
	if err != nil {
		a.log.Error("preview chapter", "chapter", name, "err", err)
		return
	}
	a.previewName = name
	a.previewText = content
	a.editor.ShowPreview(content)
	a.refreshStatus()
}

func (a *App) closePreview() {
	a.previewName = ""
	a.previewText = ""
	a.editor.ClosePreview()
	a.refreshStatus()
}

// saveCurrent writes the edit buffer to disk and returns a command that
// refreshes the search index entry.
func (a *App) saveCurrent() (tea.Cmd, error) {
	if a.currentChapter == "" {
		return nil, nil
	}
	if err := a.lib.WriteChapter(a.currentChapter, a.editor.Text()); err != nil {
		a.reportNameError("save chapter", a.currentChapter, err)
		return nil, err
	}
	a.editor.Buffer().MarkSaved()
	a.status.ClearError()
	a.refreshStatus()
	a.log.Info("saved chapter", "book", a.currentBook, "chapter", a.currentChapter)
	return a.indexChapter(a.chapterAbs(a.currentChapter)), nil
}

func (a *App) handlePromptResult(value string) tea.Cmd {
	kind := a.pending
	a.pending = pendingNone

	switch kind {
	case pendingNewBook:
		name, err := a.lib.CreateBook(value)
		if err != nil {
			a.reportNameError("create book", value, err)
			return nil
		}
		a.log.Info("created book", "book", name)
		return a.requestNavigate(navIntent{kind: navBook, book: name})

	case pendingRenameBook:
		oldName := a.target
		name, err := a.lib.RenameBook(oldName, value)
		if err != nil {
			a.reportNameError("rename book", value, err)
			return nil
		}
		a.state.RenameBook(oldName, name)
		if a.currentBook == oldName {
			a.currentBook = name
		}
		a.saveSession()
		a.refreshBooks()
		a.refreshStatus()
		a.log.Info("renamed book", "from", oldName, "to", name)
		// A directory rename moves every chapter path, so rebuild.
		return a.initIndex()

	case pendingNewChapter:
		name, err := a.lib.CreateChapter(value)
		if err != nil {
			a.reportNameError("create chapter", value, err)
			return nil
		}
		a.log.Info("created chapter", "book", a.currentBook, "chapter", name)
		a.refreshChapters()
		return tea.Batch(
			a.indexChapter(a.chapterAbs(name)),
			a.requestNavigate(navIntent{kind: navChapter, chapter: name}),
		)

	case pendingRenameChapter:
		oldName := a.target
		name, err := a.lib.RenameChapter(oldName, value)
		if err != nil {
			a.reportNameError("rename chapter", value, err)
			return nil
		}
		if a.currentChapter == oldName {
			a.currentChapter = name
			a.state.SetLastChapter(a.currentBook, name)
			a.saveSession()
		}
		a.refreshChapters()
		a.refreshStatus()
		a.log.Info("renamed chapter", "book", a.currentBook, "from", oldName, "to", name)
		return tea.Batch(
			a.dropFromIndex(a.chapterAbs(oldName)),
			a.indexChapter(a.chapterAbs(name)),
		)
	}
	return nil
}

func (a *App) handleConfirmResult(yes bool) tea.Cmd {
	kind := a.pending
	a.pending = pendingNone

	switch kind {
	case pendingSave:
		if !yes {
			return nil
		}
		cmd, _ := a.saveCurrent()
		return cmd

	case pendingSwitch:
		if !yes {
			return a.performNavigate()
		}
		indexCmd, err := a.saveCurrent()
		if err != nil {
			a.nav = navIntent{}
			return nil
		}
		return tea.Batch(indexCmd, a.performNavigate())

	case pendingDeleteChapter:
		if !yes {
			return nil
		}
		name := a.target
		if err := a.lib.DeleteChapter(name); err != nil {
			a.reportNameError("delete chapter", name, err)
			return nil
		}
		dropCmd := a.dropFromIndex(a.chapterAbs(name))
		if a.currentChapter == name {
			a.currentChapter = ""
			a.closePreview()
			a.editor.Clear()
			a.state.SetLastChapter(a.currentBook, "")
			a.saveSession()
			a.setFocus(focusChapters)
		}
		a.refreshChapters()
		a.refreshOutline()
		a.updateLayout()
		a.refreshStatus()
		a.log.Info("deleted chapter", "book", a.currentBook, "chapter", name)
		return dropCmd

	case pendingDeleteBook:
		if !yes {
			return nil
		}
		name := a.target
		if err := a.lib.DeleteBook(name); err != nil {
			a.reportNameError("delete book", name, err)
			return nil
		}
		a.state.DropBook(name)
		if a.currentBook == name {
			a.currentBook = ""
			a.currentChapter = ""
			a.closePreview()
			a.editor.Clear()
			a.browsing = true
		}
		a.saveSession()
		if a.db != nil {
			if err := a.db.DeleteBook(name); err != nil {
				a.log.Error("drop book from index", "book", name, "err", err)
			}
		}
		a.refreshBooks()
		a.updateLayout()
		a.refreshStatus()
		a.log.Info("deleted book", "book", name)
		return nil
	}
	return nil
}

// handleIndexInitDone starts the file watcher once the first index pass is
// through. Index trouble is reported but never kills the session; writing
// must go on without search.
func (a *App) handleIndexInitDone(msg indexInitDoneMsg) tea.Cmd {
	if msg.err != nil {
		a.log.Error("index library", "err", msg.err)
		a.status.SetError("search indexing failed")
		return nil
	}
	if a.indexer != nil && a.watcher == nil {
		w, err := index.NewWatcher(a.indexer, a.lib.Root(),
			func() { a.postEvent(libraryChangedMsg{}) },
			func(err error) { a.postEvent(watcherDeadMsg{err: err}) })
		if err != nil {
			a.log.Error("start file watcher", "err", err)
			a.status.SetError("file watching unavailable")
		} else {
			a.watcher = w
			go w.Start()
		}
	}
	if a.browsing {
		a.refreshBooks()
	}
	return nil
}

func (a *App) refreshBooks() {
	books, err := a.lib.ListBooks()
	if err != nil {
		a.log.Error("list books", "err", err)
		a.status.SetError("cannot list books")
		return
	}
	counts := map[string]int{}
	if a.db != nil {
		if m, err := a.db.BookCounts(); err != nil {
			a.log.Error("book chapter counts", "err", err)
		} else {
			counts = m
		}
	}
	entries := make([]panel.BookEntry, len(books))
	for i, b := range books {
		entries[i] = panel.BookEntry{Name: b, Chapters: counts[b]}
	}
	a.browser.SetBooks(entries, a.currentBook)
}

func (a *App) refreshChapters() {
	if a.currentBook == "" {
		return
	}
	chapters, err := a.lib.Chapters()
	if err != nil {
		// The whole book directory may be gone.
		a.log.Error("list chapters", "book", a.currentBook, "err", err)
		a.currentBook = ""
		a.currentChapter = ""
		a.closePreview()
		a.editor.Clear()
		a.openBrowser()
		return
	}
	a.chapters.SetChapters(chapters, a.currentChapter)
	if a.currentChapter != "" && !containsName(chapters, a.currentChapter) {
		// The open chapter vanished on disk. Keep the buffer so a save
		// can bring the file back.
		a.status.SetError(fmt.Sprintf("%q was removed on disk", trimExt(a.currentChapter)))
	}
}

func (a *App) refreshOutline() {
	if a.currentChapter == "" {
		a.outline.SetHeadings(nil)
		return
	}
	a.outline.SetHeadings(markdown.ExtractHeadings([]byte(a.editor.Text())))
}

func (a *App) refreshStatus() {
	switch {
	case a.browsing:
		a.status.SetMode("BROWSE")
	case a.editor.InPreview():
		a.status.SetMode("PREVIEW")
	default:
		a.status.SetMode("EDIT")
	}
	a.status.SetBook(a.currentBook)

	chapter := a.currentChapter
	text := ""
	if a.currentChapter != "" {
		text = a.editor.Text()
	}
	if a.editor.InPreview() && a.previewName != "" {
		chapter = a.previewName
		text = a.previewText
	}
	a.status.SetChapter(chapter)
	a.status.SetDirty(a.currentChapter != "" && a.editor.Dirty())
	a.status.SetWords(markdown.CountWords(text))
}

func (a *App) reportNameError(action, name string, err error) {
	a.log.Error(action, "name", name, "err", err)
	display := trimExt(name)
	switch {
	case errors.Is(err, library.ErrInvalidName):
		a.status.SetError(fmt.Sprintf("invalid name %q", display))
	case errors.Is(err, library.ErrAlreadyExists):
		a.status.SetError(fmt.Sprintf("%q already exists", display))
	case errors.Is(err, library.ErrNotFound):
		a.status.SetError(fmt.Sprintf("%q not found", display))
	default:
		a.status.SetError(err.Error())
	}
}

func (a *App) chapterAbs(name string) string {
	return filepath.Join(a.lib.Root(), a.currentBook, name)
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, ".md")
}

func containsName(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}
