package config

import (
	"os"
	"path/filepath"
)

type Config struct {
	LibraryPath   string
	Listen        string
	Serve         bool
	Theme         string
	ChaptersWidth int
	OutlineWidth  int
	ShowChapters  bool
	ShowOutline   bool
}

func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		LibraryPath:   filepath.Join(home, "books"),
		Listen:        ":2222",
		Serve:         false,
		Theme:         "catppuccin",
		ChaptersWidth: 30,
		OutlineWidth:  30,
		ShowChapters:  true,
		ShowOutline:   false,
	}
}
