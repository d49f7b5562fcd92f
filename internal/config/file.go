package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors Config with pointer fields so we can distinguish
// "not set" from zero values when merging TOML.
type fileConfig struct {
	LibraryPath   *string `toml:"library_path"`
	Theme         *string `toml:"theme"`
	Serve         *bool   `toml:"serve"`
	Listen        *string `toml:"listen"`
	ChaptersWidth *int    `toml:"chapters_width"`
	OutlineWidth  *int    `toml:"outline_width"`
	ShowChapters  *bool   `toml:"show_chapters"`
	ShowOutline   *bool   `toml:"show_outline"`
}

// ConfigDir returns the pico-writer config directory, respecting
// XDG_CONFIG_HOME.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pico-writer")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pico-writer")
}

// ConfigPath returns the full path to config.toml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadFile reads config.toml and merges non-nil fields into cfg.
// Returns true if the file existed, false otherwise.
func LoadFile(cfg *Config) (bool, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return true, err
	}

	if fc.LibraryPath != nil {
		cfg.LibraryPath = ExpandHome(*fc.LibraryPath)
	}
	if fc.Theme != nil {
		cfg.Theme = *fc.Theme
	}
	if fc.Serve != nil {
		cfg.Serve = *fc.Serve
	}
	if fc.Listen != nil {
		cfg.Listen = *fc.Listen
	}
	if fc.ChaptersWidth != nil {
		cfg.ChaptersWidth = *fc.ChaptersWidth
	}
	if fc.OutlineWidth != nil {
		cfg.OutlineWidth = *fc.OutlineWidth
	}
	if fc.ShowChapters != nil {
		cfg.ShowChapters = *fc.ShowChapters
	}
	if fc.ShowOutline != nil {
		cfg.ShowOutline = *fc.ShowOutline
	}

	return true, nil
}

// SaveFile writes a minimal config.toml with the given library path.
func SaveFile(libraryPath string) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	// Store with ~ for readability if under home dir.
	home, _ := os.UserHomeDir()
	display := libraryPath
	if home != "" && strings.HasPrefix(libraryPath, home+string(os.PathSeparator)) {
		display = "~" + libraryPath[len(home):]
	}

	fc := fileConfig{LibraryPath: &display}
	f, err := os.Create(filepath.Join(dir, "config.toml"))
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(fc)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, _ := os.UserHomeDir()
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
