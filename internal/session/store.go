package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Store handles session state persistence.
type Store struct {
	path string
}

// NewStore creates a store that persists under the given library root.
func NewStore(libraryPath string) *Store {
	return &Store{
		path: filepath.Join(libraryPath, ".pico-writer", "state.json"),
	}
}

// Exists reports whether a state file has been written before. First runs
// take their panel defaults from the config instead.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the session state from disk.
func (s *Store) Load() (State, error) {
	state := Default()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, err
	}

	if err := json.Unmarshal(data, &state); err != nil {
		return Default(), err
	}

	return state, nil
}

// Save writes the session state to disk. The write goes through a
// temporary file and a rename; several server sessions may share the
// state path, and a half-written file must never be what Load sees.
func (s *Store) Save(state State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "state-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
