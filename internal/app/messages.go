package app

// libraryChangedMsg reports that chapter files changed on disk behind the
// app's back and the visible lists should be refreshed.
type libraryChangedMsg struct{}

// watcherDeadMsg reports that the file watcher stopped delivering events.
// The app keeps running without live refresh.
type watcherDeadMsg struct{ err error }

// indexInitDoneMsg signals that the initial full index pass finished.
type indexInitDoneMsg struct{ err error }

// chapterIndexedMsg reports the outcome of a single-chapter index update.
type chapterIndexedMsg struct {
	path string
	err  error
}
