package index

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the library for file changes and keeps the index in
// step, so edits made outside the app are searchable too.
type Watcher struct {
	indexer  *Indexer
	watcher  *fsnotify.Watcher
	root     string
	debounce map[string]*time.Timer
	mu       sync.Mutex
	closed   bool
	onChange func()      // called after the index absorbs a change
	onError  func(error) // called once if the event stream dies
}

func NewWatcher(indexer *Indexer, root string, onChange func(), onError func(error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		indexer:  indexer,
		watcher:  fw,
		root:     root,
		debounce: make(map[string]*time.Timer),
		onChange: onChange,
		onError:  onError,
	}

	// Watch the library root and every book directory
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			fw.Add(path)
		}
		return nil
	})

	return w, nil
}

// Start begins watching for changes. Blocks until Stop is called.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				w.fatal(errors.New("watch event stream closed"))
				return
			}
			w.handleEvent(event)

		case _, ok := <-w.watcher.Errors:
			if !ok {
				w.fatal(errors.New("watch error stream closed"))
				return
			}
			// Recoverable; keep watching.
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if strings.HasPrefix(filepath.Base(path), ".") {
		return
	}

	if !strings.HasSuffix(path, ".md") {
		switch {
		case event.Has(fsnotify.Create):
			// A new book directory, possibly with chapters already in
			// it when it was moved into the library whole.
			info, err := os.Stat(path)
			if err == nil && info.IsDir() {
				w.indexDir(path)
				w.notify()
			}
		case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
			if w.indexer.RemoveBook(path) == nil {
				w.notify()
			}
		}
		return
	}

	// Debounce: wait 200ms before processing
	w.mu.Lock()
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(200*time.Millisecond, func() {
		w.mu.Lock()
		delete(w.debounce, path)
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}

		if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
			w.indexer.RemoveFile(path)
		} else {
			w.indexer.IndexFile(path)
		}

		w.notify()
	})
	w.mu.Unlock()
}

// indexDir watches a directory tree and indexes the chapter files already
// inside it.
func (w *Watcher) indexDir(dir string) {
	filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			w.watcher.Add(path)
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") || !strings.HasSuffix(info.Name(), ".md") {
			return nil
		}
		w.indexer.IndexFile(path)
		return nil
	})
}

func (w *Watcher) notify() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed || w.onChange == nil {
		return
	}
	w.onChange()
}

// fatal reports the error that ended the watch, at most once. A Stop call
// marks the watcher closed first, so a deliberate shutdown reports nothing.
func (w *Watcher) fatal(err error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	onError := w.onError
	w.mu.Unlock()

	if onError != nil {
		onError(err)
	}
}

// Stop stops the watcher and cancels pending debounce timers.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	w.closed = true
	for path, timer := range w.debounce {
		timer.Stop()
		delete(w.debounce, path)
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
