package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DarthTigerson/pico-writer/internal/config"
	"github.com/DarthTigerson/pico-writer/internal/library"
	"github.com/DarthTigerson/pico-writer/internal/panel"
	"github.com/DarthTigerson/pico-writer/internal/session"
)

type seedChapter struct {
	name    string
	content string
}

func seedBook(t *testing.T, dir, book string, chapters []seedChapter) {
	t.Helper()
	lib, err := library.New(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := lib.CreateBook(book); err != nil {
		t.Fatal(err)
	}
	if _, err := lib.OpenBook(book); err != nil {
		t.Fatal(err)
	}
	for _, ch := range chapters {
		clean, err := lib.CreateChapter(ch.name)
		if err != nil {
			t.Fatal(err)
		}
		if err := lib.WriteChapter(clean, ch.content); err != nil {
			t.Fatal(err)
		}
	}
}

func newTestApp(t *testing.T, dir string) *App {
	t.Helper()
	cfg := config.Default()
	cfg.LibraryPath = dir
	a, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(a.Close)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return a
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func chapterFile(dir, book, name string) string {
	return filepath.Join(dir, book, name)
}

func TestNewWithEmptyLibraryStartsBrowsing(t *testing.T) {
	a := newTestApp(t, t.TempDir())

	if !a.browsing {
		t.Error("expected an empty library to open in the book list")
	}
	if a.currentBook != "" {
		t.Errorf("currentBook = %q, want empty", a.currentBook)
	}
}

func TestNewOpensMostRecentBook(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "novel", []seedChapter{{"one", "first words"}})

	a := newTestApp(t, dir)

	if a.browsing {
		t.Error("expected the last book to open directly")
	}
	if a.currentBook != "novel" {
		t.Errorf("currentBook = %q, want novel", a.currentBook)
	}
	// No session state yet, so no chapter is open.
	if a.currentChapter != "" {
		t.Errorf("currentChapter = %q, want empty", a.currentChapter)
	}
	if a.focused != focusChapters {
		t.Error("expected the chapter list to have focus")
	}
}

func TestNewRestoresLastChapter(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "novel", []seedChapter{{"one", "resumed text"}})

	store := session.NewStore(dir)
	st := session.Default()
	st.SetLastChapter("novel", "one.md")
	if err := store.Save(st); err != nil {
		t.Fatal(err)
	}

	a := newTestApp(t, dir)

	if a.currentChapter != "one.md" {
		t.Fatalf("currentChapter = %q, want one.md", a.currentChapter)
	}
	if got := a.editor.Text(); got != "resumed text" {
		t.Errorf("editor text = %q, want the chapter content", got)
	}
	if a.focused != focusEditor {
		t.Error("expected the editor to have focus")
	}
}

func TestNewSkipsStaleLastChapter(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "novel", []seedChapter{{"one", "text"}})

	store := session.NewStore(dir)
	st := session.Default()
	st.SetLastChapter("novel", "gone.md")
	if err := store.Save(st); err != nil {
		t.Fatal(err)
	}

	a := newTestApp(t, dir)

	if a.currentChapter != "" {
		t.Errorf("currentChapter = %q, want empty for a vanished chapter", a.currentChapter)
	}
}

func TestSelectChapterLoadsIt(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "novel", []seedChapter{{"one", "alpha"}, {"two", "beta"}})
	a := newTestApp(t, dir)

	a.Update(panel.ChapterSelectedMsg{Name: "two.md"})

	if a.currentChapter != "two.md" {
		t.Fatalf("currentChapter = %q, want two.md", a.currentChapter)
	}
	if got := a.editor.Text(); got != "beta" {
		t.Errorf("editor text = %q, want beta", got)
	}
	if a.focused != focusEditor {
		t.Error("expected focus to move to the editor")
	}
}

func TestDirtyGuardDiscard(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "novel", []seedChapter{{"one", "alpha"}, {"two", "beta"}})
	a := newTestApp(t, dir)

	a.Update(panel.ChapterSelectedMsg{Name: "one.md"})
	a.Update(keyRune('x'))
	if !a.editor.Dirty() {
		t.Fatal("expected typing to dirty the buffer")
	}

	a.Update(panel.ChapterSelectedMsg{Name: "two.md"})
	if !a.confirm.Visible() {
		t.Fatal("expected the unsaved changes dialog")
	}
	if a.currentChapter != "one.md" {
		t.Fatalf("navigation should wait for the dialog, still on %q", a.currentChapter)
	}

	a.Update(panel.ConfirmResultMsg{Yes: false})

	if a.currentChapter != "two.md" {
		t.Errorf("currentChapter = %q, want two.md after discarding", a.currentChapter)
	}
	data, err := os.ReadFile(chapterFile(dir, "novel", "one.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "alpha" {
		t.Errorf("discarded chapter content = %q, want alpha", data)
	}
}

func TestDirtyGuardSave(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "novel", []seedChapter{{"one", "alpha"}, {"two", "beta"}})
	a := newTestApp(t, dir)

	a.Update(panel.ChapterSelectedMsg{Name: "one.md"})
	a.Update(keyRune('!'))

	a.Update(panel.ChapterSelectedMsg{Name: "two.md"})
	a.Update(panel.ConfirmResultMsg{Yes: true})

	if a.currentChapter != "two.md" {
		t.Errorf("currentChapter = %q, want two.md after saving", a.currentChapter)
	}
	data, err := os.ReadFile(chapterFile(dir, "novel", "one.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "alpha!" {
		t.Errorf("saved chapter content = %q, want alpha!", data)
	}
}

func TestDirtyGuardCancelStays(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "novel", []seedChapter{{"one", "alpha"}, {"two", "beta"}})
	a := newTestApp(t, dir)

	a.Update(panel.ChapterSelectedMsg{Name: "one.md"})
	a.Update(keyRune('x'))
	a.Update(panel.ChapterSelectedMsg{Name: "two.md"})

	a.Update(panel.ConfirmCancelledMsg{})

	if a.currentChapter != "one.md" {
		t.Errorf("currentChapter = %q, want one.md after cancel", a.currentChapter)
	}
	if !a.editor.Dirty() {
		t.Error("expected the buffer to stay dirty after cancel")
	}
	if a.nav.kind != navNone {
		t.Error("expected the parked navigation to be dropped")
	}
}

func TestSaveShortcut(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "novel", []seedChapter{{"one", "draft"}})
	a := newTestApp(t, dir)

	a.Update(panel.ChapterSelectedMsg{Name: "one.md"})
	a.Update(keyRune('s'))
	a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	if !a.confirm.Visible() {
		t.Fatal("expected a save confirmation dialog")
	}
	data, err := os.ReadFile(chapterFile(dir, "novel", "one.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "draft" {
		t.Errorf("chapter saved before confirmation, content = %q", data)
	}

	a.Update(panel.ConfirmResultMsg{Yes: true})

	data, err = os.ReadFile(chapterFile(dir, "novel", "one.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "drafts" {
		t.Errorf("chapter content = %q, want drafts", data)
	}
	if a.editor.Dirty() {
		t.Error("expected a clean buffer after saving")
	}
}

func TestSaveDeclinedKeepsFile(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "novel", []seedChapter{{"one", "draft"}})
	a := newTestApp(t, dir)

	a.Update(panel.ChapterSelectedMsg{Name: "one.md"})
	a.Update(keyRune('s'))
	a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	a.Update(panel.ConfirmResultMsg{Yes: false})

	data, err := os.ReadFile(chapterFile(dir, "novel", "one.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "draft" {
		t.Errorf("chapter content = %q, want draft", data)
	}
	if !a.editor.Dirty() {
		t.Error("expected the buffer to stay dirty")
	}
}

func TestQuitGuard(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "novel", []seedChapter{{"one", "alpha"}})
	a := newTestApp(t, dir)

	a.Update(panel.ChapterSelectedMsg{Name: "one.md"})
	a.Update(keyRune('x'))
	a.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})

	if !a.confirm.Visible() {
		t.Fatal("expected the unsaved changes dialog before quitting")
	}
	if a.nav.kind != navQuit {
		t.Error("expected a parked quit")
	}

	a.Update(panel.ConfirmCancelledMsg{})
	if a.closed {
		t.Error("cancel must not close the app")
	}
}

func TestBrowserToggle(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "novel", []seedChapter{{"one", "alpha"}})
	a := newTestApp(t, dir)

	a.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	if !a.browsing {
		t.Fatal("expected ctrl+b to open the book list")
	}

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if a.browsing {
		t.Error("expected esc to return to the workspace")
	}
}

func TestBrowserEscNeedsOpenBook(t *testing.T) {
	a := newTestApp(t, t.TempDir())

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !a.browsing {
		t.Error("esc must not leave the book list when no book is open")
	}
}

func TestNewBookFlow(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, dir)

	a.Update(panel.BookNewMsg{})
	if !a.prompt.Visible() {
		t.Fatal("expected the new book prompt")
	}

	a.Update(panel.PromptResultMsg{Value: "Drafts"})

	if _, err := os.Stat(filepath.Join(dir, "Drafts")); err != nil {
		t.Fatalf("book directory missing: %v", err)
	}
	if a.currentBook != "Drafts" {
		t.Errorf("currentBook = %q, want Drafts", a.currentBook)
	}
	if a.browsing {
		t.Error("expected the new book to open")
	}
}

func TestRenameChapterFollowsCurrent(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "novel", []seedChapter{{"one", "alpha"}})
	a := newTestApp(t, dir)

	a.Update(panel.ChapterSelectedMsg{Name: "one.md"})
	a.Update(panel.ChapterRenameMsg{Name: "one.md"})
	a.Update(panel.PromptResultMsg{Value: "first"})

	if a.currentChapter != "first.md" {
		t.Errorf("currentChapter = %q, want first.md", a.currentChapter)
	}
	if _, err := os.Stat(chapterFile(dir, "novel", "first.md")); err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(chapterFile(dir, "novel", "one.md")); !os.IsNotExist(err) {
		t.Error("old chapter file still present")
	}
}

func TestDeleteChapterClearsEditor(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "novel", []seedChapter{{"one", "alpha"}})
	a := newTestApp(t, dir)

	a.Update(panel.ChapterSelectedMsg{Name: "one.md"})
	a.Update(panel.ChapterDeleteMsg{Name: "one.md"})
	if !a.confirm.Visible() {
		t.Fatal("expected a delete confirmation")
	}

	a.Update(panel.ConfirmResultMsg{Yes: true})

	if a.currentChapter != "" {
		t.Errorf("currentChapter = %q, want empty", a.currentChapter)
	}
	if _, err := os.Stat(chapterFile(dir, "novel", "one.md")); !os.IsNotExist(err) {
		t.Error("chapter file still present after delete")
	}
	if a.focused != focusChapters {
		t.Error("expected focus to land on the chapter list")
	}
}

func TestToggleChaptersPersists(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "novel", []seedChapter{{"one", "alpha"}})
	a := newTestApp(t, dir)

	a.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if a.showChapters {
		t.Fatal("expected ctrl+t to hide the chapter list")
	}

	st, err := session.NewStore(dir).Load()
	if err != nil {
		t.Fatal(err)
	}
	if st.ShowChapters {
		t.Error("expected the toggle to be persisted")
	}
}

func TestHelpOverlay(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "novel", []seedChapter{{"one", "alpha"}})
	a := newTestApp(t, dir)

	a.Update(tea.KeyMsg{Type: tea.KeyF1})
	if !a.help.Visible() {
		t.Fatal("expected f1 to show the help overlay")
	}

	a.Update(keyRune('x'))
	if !a.help.Visible() {
		t.Fatal("expected content keys to be swallowed while help is up")
	}

	a.Update(tea.KeyMsg{Type: tea.KeyF1})
	if a.help.Visible() {
		t.Error("expected f1 to close the help overlay")
	}

	a.Update(tea.KeyMsg{Type: tea.KeyF1})
	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if a.help.Visible() {
		t.Error("expected esc to close the help overlay")
	}
}

func TestPreviewFollowsChapterCursor(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "novel", []seedChapter{{"one", "alpha"}, {"two", "beta"}})
	a := newTestApp(t, dir)

	a.Update(panel.ChapterSelectedMsg{Name: "one.md"})
	a.Update(panel.ChapterPreviewMsg{Name: "two.md"})

	if !a.editor.InPreview() {
		t.Fatal("expected a preview of the highlighted chapter")
	}
	if a.previewName != "two.md" {
		t.Errorf("previewName = %q, want two.md", a.previewName)
	}

	// Previewing the open chapter just shows the buffer again.
	a.Update(panel.ChapterPreviewMsg{Name: "one.md"})
	if a.editor.InPreview() {
		t.Error("expected the preview to close on the open chapter")
	}
}

func TestSearchChaptersRanksNamesFirst(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "novel", []seedChapter{
		{"dragon", "a tale without the keyword"},
		{"intro", "the dragon waits in the deep"},
	})
	a := newTestApp(t, dir)
	if a.indexer == nil {
		t.Fatal("expected the search index to open")
	}
	if err := a.indexer.IndexAll(); err != nil {
		t.Fatal(err)
	}

	items := a.searchChapters("dragon")
	if len(items) < 2 {
		t.Fatalf("expected the name and content hits, got %d items", len(items))
	}
	if items[0].Path != "novel/dragon.md" {
		t.Errorf("first item = %q, want the name match novel/dragon.md", items[0].Path)
	}
	if items[0].Extra != "" {
		t.Errorf("name match carries snippet %q", items[0].Extra)
	}
	second := items[1]
	if second.Path != "novel/intro.md" {
		t.Errorf("second item = %q, want the content match novel/intro.md", second.Path)
	}
	if second.Extra == "" {
		t.Error("content match should carry a snippet")
	}
}

func TestSearchRanksOpenBookHitsFirst(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "alpha", []seedChapter{{"one", "the storm broke at dawn"}})
	seedBook(t, dir, "beta", []seedChapter{{"two", "a storm of feathers"}})
	a := newTestApp(t, dir)
	if a.indexer == nil {
		t.Fatal("expected the search index to open")
	}
	if err := a.indexer.IndexAll(); err != nil {
		t.Fatal(err)
	}
	if a.currentBook != "beta" {
		t.Fatalf("currentBook = %q, want beta", a.currentBook)
	}

	items := a.searchChapters("storm")
	if len(items) != 2 {
		t.Fatalf("expected hits from both books, got %d items", len(items))
	}
	if items[0].Path != "beta/two.md" {
		t.Errorf("first item = %q, want the open book hit beta/two.md", items[0].Path)
	}
	if items[1].Path != "alpha/one.md" {
		t.Errorf("second item = %q, want alpha/one.md", items[1].Path)
	}
}

func TestLibraryChangedRefreshesChapters(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "novel", []seedChapter{{"one", "alpha"}})
	a := newTestApp(t, dir)

	// A chapter appears on disk without going through the app.
	err := os.WriteFile(chapterFile(dir, "novel", "two.md"), []byte("beta"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	a.Update(libraryChangedMsg{})

	a.chapters.Select("two.md")
	if got := a.chapters.Selected(); got != "two.md" {
		t.Errorf("Selected() = %q after refresh, want two.md", got)
	}
}

func TestWatcherDeathKeepsSessionAlive(t *testing.T) {
	dir := t.TempDir()
	seedBook(t, dir, "novel", []seedChapter{{"one", "alpha"}})
	a := newTestApp(t, dir)

	a.Update(watcherDeadMsg{err: errors.New("inotify gone")})

	if a.watcher != nil {
		t.Error("expected the watcher handle to be dropped")
	}
	if !strings.Contains(a.status.View(), "file watching stopped") {
		t.Error("expected the status bar to report the dead watcher")
	}

	// The session carries on without live refresh.
	a.Update(tea.KeyMsg{Type: tea.KeyF1})
	if !a.help.Visible() {
		t.Error("expected the app to keep handling keys")
	}
}
