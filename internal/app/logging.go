package app

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// newLogger writes app logs to a file under the library's data directory,
// since stdout and stderr belong to the terminal UI. Logging must never get
// in the way of writing, so any failure falls back to a silent logger.
func newLogger(root string) (*log.Logger, io.Closer) {
	dir := filepath.Join(root, dataDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard), nil
	}
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true})
	return logger, f
}
