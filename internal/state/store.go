package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// Store reads and writes the RunState TOML file. Load never fails: missing
// or corrupt data silently resets to safe defaults. Save writes atomically
// (temp file + rename) so a concurrent reader never observes a torn record.
type Store struct {
	path   string
	logger *zerolog.Logger
}

// NewStore creates a Store persisting at path.
func NewStore(path string, logger *zerolog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted RunState, falling back to Default on any read or
// parse failure.
func (s *Store) Load() RunState {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) && s.logger != nil {
			s.logger.Warn().Str("path", s.path).Err(err).Msg("state unreadable, using defaults")
		}
		return Default()
	}

	var st RunState
	if err := toml.Unmarshal(content, &st); err != nil {
		if s.logger != nil {
			s.logger.Warn().Str("path", s.path).Err(err).Msg("state corrupt, using defaults")
		}
		return Default()
	}
	return st
}

// Save persists the RunState, creating parent directories as needed.
func (s *Store) Save(st RunState) error {
	content, err := toml.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create state dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close state file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod state file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
