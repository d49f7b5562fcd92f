package app

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/DarthTigerson/pico-writer/internal/config"
	"github.com/DarthTigerson/pico-writer/internal/editor"
	"github.com/DarthTigerson/pico-writer/internal/index"
	"github.com/DarthTigerson/pico-writer/internal/library"
	"github.com/DarthTigerson/pico-writer/internal/panel"
	"github.com/DarthTigerson/pico-writer/internal/session"
	"github.com/DarthTigerson/pico-writer/internal/theme"
)

// dataDirName is the per-library directory holding the search index, the
// session state and the log file.
const dataDirName = ".pico-writer"

// focusTarget identifies which surface receives keys when no overlay is up.
type focusTarget int

const (
	focusEditor focusTarget = iota
	focusChapters
	focusOutline
)

// pendingKind records which action an open prompt or confirm dialog serves.
type pendingKind int

const (
	pendingNone pendingKind = iota
	pendingNewBook
	pendingRenameBook
	pendingDeleteBook
	pendingNewChapter
	pendingRenameChapter
	pendingDeleteChapter
	pendingSave
	pendingSwitch
)

type navKind int

const (
	navNone navKind = iota
	navChapter
	navBook
	navBookChapter
	navQuit
)

// navIntent is a navigation parked behind the unsaved-changes dialog.
type navIntent struct {
	kind    navKind
	book    string
	chapter string
}

// App is the root Bubble Tea model.
type App struct {
	cfg     config.Config
	lib     *library.Library
	store   *session.Store
	state   session.State
	log     *log.Logger
	logFile io.Closer

	db      *index.DB
	indexer *index.Indexer
	watcher *index.Watcher

	// events carries messages from background goroutines into the update
	// loop; waitForEvent relays them one at a time.
	events       chan tea.Msg
	eventsMu     sync.Mutex
	eventsClosed bool

	theme  theme.Theme
	editor editor.Editor

	chapters panel.Chapters
	outline  panel.Outline
	browser  panel.Browser
	status   panel.Status
	finder   panel.Finder
	prompt   panel.Prompt
	confirm  panel.Confirm
	help     panel.Help

	width  int
	height int
	layout Layout

	currentBook    string
	currentChapter string
	previewName    string
	previewText    string

	browsing     bool
	focused      focusTarget
	showChapters bool
	showOutline  bool

	pending pendingKind
	target  string
	nav     navIntent

	closed bool
}

// New opens the library and assembles the app. The search index opening is
// allowed to fail; the app then runs without search.
func New(cfg config.Config) (*App, error) {
	lib, err := library.New(cfg.LibraryPath)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}

	logger, logFile := newLogger(lib.Root())

	store := session.NewStore(lib.Root())
	hadState := store.Exists()
	state, err := store.Load()
	if err != nil {
		logger.Warn("session state unreadable, using defaults", "err", err)
	}

	a := &App{
		cfg:     cfg,
		lib:     lib,
		store:   store,
		state:   state,
		log:     logger,
		logFile: logFile,
		theme:   theme.Palette(cfg.Theme),
		focused: focusEditor,
		events:  make(chan tea.Msg, 16),
	}

	// The config seeds the panel toggles on first run; afterwards the
	// session state remembers them.
	a.showChapters = cfg.ShowChapters
	a.showOutline = cfg.ShowOutline
	if hadState {
		a.showChapters = state.ShowChapters
		a.showOutline = state.ShowOutline
	}

	a.editor = editor.New(&a.theme)
	a.chapters = panel.NewChapters(&a.theme)
	a.outline = panel.NewOutline(&a.theme)
	a.browser = panel.NewBrowser(&a.theme)
	a.status = panel.NewStatus(&a.theme)
	a.finder = panel.NewFinder(&a.theme)
	a.prompt = panel.NewPrompt(&a.theme)
	a.confirm = panel.NewConfirm(&a.theme)
	a.help = panel.NewHelp(&a.theme, helpEntries())

	dbPath := filepath.Join(lib.Root(), dataDirName, "index.db")
	db, err := index.Open(dbPath)
	if err != nil {
		logger.Error("open search index", "path", dbPath, "err", err)
		a.status.SetError("search unavailable")
	} else {
		a.db = db
		a.indexer = index.NewIndexer(db, lib.Root())
		a.finder.SetSearchFunc(a.searchChapters)
	}

	if book, ok := lib.MostRecent(); ok {
		a.openBook(book, "")
	} else {
		a.browsing = true
		a.refreshBooks()
		a.refreshStatus()
	}

	return a, nil
}

// postEvent queues a message from a background goroutine. Messages are
// dropped once the app closed, or when the buffer is full; every event here
// is a refresh hint, so losing one under pressure is harmless.
func (a *App) postEvent(msg tea.Msg) {
	a.eventsMu.Lock()
	defer a.eventsMu.Unlock()
	if a.eventsClosed {
		return
	}
	select {
	case a.events <- msg:
	default:
	}
}

// waitForEvent blocks until a background message arrives. Update re-arms it
// after every delivery.
func (a *App) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-a.events
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.initIndex(), a.waitForEvent())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		if msg.Width <= 0 || msg.Height <= 0 {
			return a, nil
		}
		a.width = msg.Width
		a.height = msg.Height
		a.prompt.SetSize(msg.Width, msg.Height)
		a.confirm.SetSize(msg.Width, msg.Height)
		a.finder.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		a.updateLayout()
		return a, tea.ClearScreen

	case panel.ChapterPreviewMsg:
		a.showPreview(msg.Name)
		return a, nil

	case panel.ChapterSelectedMsg:
		if msg.Name == a.currentChapter {
			a.setFocus(focusEditor)
			return a, nil
		}
		return a, a.requestNavigate(navIntent{kind: navChapter, chapter: msg.Name})

	case panel.ChapterNewMsg:
		a.pending = pendingNewChapter
		a.prompt.Show("New chapter", "chapter name", "")
		return a, nil

	case panel.ChapterRenameMsg:
		a.pending = pendingRenameChapter
		a.target = msg.Name
		a.prompt.Show("Rename chapter", "", trimExt(msg.Name))
		return a, nil

	case panel.ChapterDeleteMsg:
		a.pending = pendingDeleteChapter
		a.target = msg.Name
		a.confirm.Show("Delete chapter", fmt.Sprintf("%q will be removed from disk.", trimExt(msg.Name)))
		return a, nil

	case panel.BookSelectedMsg:
		if msg.Name == a.currentBook {
			a.closeBrowser()
			return a, nil
		}
		return a, a.requestNavigate(navIntent{kind: navBook, book: msg.Name})

	case panel.BookNewMsg:
		a.pending = pendingNewBook
		a.prompt.Show("New book", "book name", "")
		return a, nil

	case panel.BookRenameMsg:
		a.pending = pendingRenameBook
		a.target = msg.Name
		a.prompt.Show("Rename book", "", msg.Name)
		return a, nil

	case panel.BookDeleteMsg:
		a.pending = pendingDeleteBook
		a.target = msg.Name
		a.confirm.Show("Delete book", fmt.Sprintf("%q and all its chapters will be removed.", msg.Name))
		return a, nil

	case panel.PromptResultMsg:
		return a, a.handlePromptResult(msg.Value)

	case panel.PromptCancelledMsg:
		a.pending = pendingNone
		a.nav = navIntent{}
		return a, nil

	case panel.ConfirmResultMsg:
		return a, a.handleConfirmResult(msg.Yes)

	case panel.ConfirmCancelledMsg:
		a.pending = pendingNone
		a.nav = navIntent{}
		return a, nil

	case panel.FinderResultMsg:
		return a, a.openSearchResult(msg.Path)

	case panel.FinderClosedMsg:
		return a, nil

	case panel.OutlineJumpMsg:
		a.editor.GoToLine(msg.Line - 1)
		a.setFocus(focusEditor)
		return a, nil

	case libraryChangedMsg:
		if a.browsing {
			a.refreshBooks()
		} else {
			a.refreshChapters()
		}
		return a, a.waitForEvent()

	case indexInitDoneMsg:
		return a, a.handleIndexInitDone(msg)

	case chapterIndexedMsg:
		if msg.err != nil {
			a.log.Error("index chapter", "path", msg.path, "err", msg.err)
			a.status.SetError("search index update failed")
		}
		return a, nil

	case watcherDeadMsg:
		a.log.Error("file watcher stopped", "err", msg.err)
		a.status.SetError("file watching stopped")
		a.watcher = nil
		return a, a.waitForEvent()
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		a.Close()
		return a, tea.Quit
	}

	if a.help.Visible() {
		if key == "f1" || key == "esc" {
			a.help.Hide()
		}
		return a, nil
	}

	var cmd tea.Cmd
	if a.prompt.Visible() {
		a.prompt, cmd = a.prompt.Update(msg)
		return a, cmd
	}
	if a.confirm.Visible() {
		a.confirm, cmd = a.confirm.Update(msg)
		return a, cmd
	}
	if a.finder.Visible() {
		a.finder, cmd = a.finder.Update(msg)
		return a, cmd
	}

	if handled, cmd := a.handleChord(key); handled {
		return a, cmd
	}

	if a.browsing {
		a.browser, cmd = a.browser.Update(msg)
		return a, cmd
	}

	switch a.focused {
	case focusChapters:
		a.chapters, cmd = a.chapters.Update(msg)
		return a, cmd
	case focusOutline:
		a.outline, cmd = a.outline.Update(msg)
		return a, cmd
	default:
		cmd = a.editor.Update(msg)
		a.refreshOutline()
		a.refreshStatus()
		return a, cmd
	}
}

// handleChord dispatches the global control bindings. They work from every
// surface; overlays have already been routed by the time this runs.
func (a *App) handleChord(key string) (bool, tea.Cmd) {
	switch key {
	case "f1":
		a.help.Show()
		return true, nil

	case "ctrl+q":
		return true, a.requestNavigate(navIntent{kind: navQuit})

	case "ctrl+s":
		if a.currentChapter == "" {
			return true, nil
		}
		a.pending = pendingSave
		a.confirm.Show("Save chapter", fmt.Sprintf("Write %q to disk.", trimExt(a.currentChapter)))
		return true, nil

	case "ctrl+b":
		if a.browsing {
			if a.currentBook != "" {
				a.closeBrowser()
			}
		} else {
			a.openBrowser()
		}
		return true, nil

	case "ctrl+f":
		if a.db == nil {
			a.status.SetError("search unavailable")
			return true, nil
		}
		a.finder.Show()
		return true, nil

	case "ctrl+n":
		if a.browsing {
			a.pending = pendingNewBook
			a.prompt.Show("New book", "book name", "")
			return true, nil
		}
		if a.currentBook == "" {
			return true, nil
		}
		a.pending = pendingNewChapter
		a.prompt.Show("New chapter", "chapter name", "")
		return true, nil

	case "ctrl+r":
		if a.browsing {
			if name := a.browser.Selected(); name != "" {
				a.pending = pendingRenameBook
				a.target = name
				a.prompt.Show("Rename book", "", name)
			}
			return true, nil
		}
		if a.currentChapter == "" {
			return true, nil
		}
		a.pending = pendingRenameChapter
		a.target = a.currentChapter
		a.prompt.Show("Rename chapter", "", trimExt(a.currentChapter))
		return true, nil

	case "ctrl+d":
		if a.browsing {
			if name := a.browser.Selected(); name != "" {
				a.pending = pendingDeleteBook
				a.target = name
				a.confirm.Show("Delete book", fmt.Sprintf("%q and all its chapters will be removed.", name))
			}
			return true, nil
		}
		if a.currentChapter == "" {
			return true, nil
		}
		a.pending = pendingDeleteChapter
		a.target = a.currentChapter
		a.confirm.Show("Delete chapter", fmt.Sprintf("%q will be removed from disk.", trimExt(a.currentChapter)))
		return true, nil

	case "ctrl+t":
		if a.browsing {
			return true, nil
		}
		a.showChapters = !a.showChapters
		a.saveSession()
		if !a.showChapters && a.focused == focusChapters {
			a.setFocus(focusEditor)
		}
		a.updateLayout()
		return true, nil

	case "ctrl+o":
		if a.browsing {
			return true, nil
		}
		a.showOutline = !a.showOutline
		a.saveSession()
		if !a.showOutline && a.focused == focusOutline {
			a.setFocus(focusEditor)
		}
		a.updateLayout()
		return true, nil

	case "tab":
		if !a.browsing {
			a.cycleFocus()
		}
		return true, nil

	case "esc":
		if a.browsing {
			if a.currentBook != "" {
				a.closeBrowser()
			}
			return true, nil
		}
		if a.focused != focusEditor {
			a.setFocus(focusEditor)
			return true, nil
		}
		return false, nil
	}
	return false, nil
}

func (a *App) cycleFocus() {
	next := a.focused
	for i := 0; i < 3; i++ {
		next = (next + 1) % 3
		if a.focusable(next) {
			break
		}
	}
	a.setFocus(next)
}

func (a *App) focusable(t focusTarget) bool {
	showChapters, showOutline := a.visiblePanels()
	switch t {
	case focusChapters:
		return showChapters
	case focusOutline:
		return showOutline
	}
	return true
}

// setFocus moves key routing to the given surface. Landing on the chapter
// list previews the highlighted chapter; leaving it closes the preview.
func (a *App) setFocus(t focusTarget) {
	a.focused = t
	a.editor.SetFocused(t == focusEditor)
	a.chapters.SetFocused(t == focusChapters)
	a.outline.SetFocused(t == focusOutline)

	if t == focusChapters {
		if name := a.chapters.Selected(); name != "" && name != a.currentChapter {
			a.showPreview(name)
			return
		}
	}
	if a.editor.InPreview() {
		a.closePreview()
		return
	}
	a.refreshStatus()
}

func (a *App) updateLayout() {
	showChapters, showOutline := a.visiblePanels()
	a.layout = ComputeLayout(a.width, a.height, showChapters, showOutline, a.cfg.ChaptersWidth, a.cfg.OutlineWidth)

	a.chapters.SetSize(a.layout.ChaptersWidth, a.layout.Height)
	a.outline.SetSize(a.layout.OutlineWidth, a.layout.Height)
	a.browser.SetSize(a.width, a.layout.Height)
	a.status.SetWidth(a.width)

	// One row goes to the chapter title, two columns to side padding.
	editorWidth := a.layout.EditorWidth - 2
	if editorWidth < 1 {
		editorWidth = 1
	}
	editorHeight := a.layout.Height - 1
	if editorHeight < 1 {
		editorHeight = 1
	}
	a.editor.SetSize(editorWidth, editorHeight)
}

func (a *App) visiblePanels() (chapters, outline bool) {
	if a.browsing {
		return false, false
	}
	chapters = a.showChapters && a.currentBook != ""
	outline = a.showOutline && a.currentChapter != ""
	return chapters, outline
}

func (a *App) saveSession() {
	a.state.ShowChapters = a.showChapters
	a.state.ShowOutline = a.showOutline
	if err := a.store.Save(a.state); err != nil {
		a.log.Error("save session state", "err", err)
	}
}

// Close persists the session and releases the watcher, the index and the
// log file. Safe to call more than once.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true

	a.saveSession()
	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			a.log.Error("stop watcher", "err", err)
		}
		a.watcher = nil
	}
	// The watcher is stopped, so nothing posts events anymore; closing the
	// channel releases a pending waitForEvent.
	a.eventsMu.Lock()
	a.eventsClosed = true
	close(a.events)
	a.eventsMu.Unlock()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Error("close search index", "err", err)
		}
		a.db = nil
	}
	a.log.Info("session closed")
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}
