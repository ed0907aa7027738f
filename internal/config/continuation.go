package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"stackit.dev/st/internal/engine"
)

// ContinuationFile is the name of the halted restack file inside the git directory
const ContinuationFile = ".st_continue"

// ContinuationStore persists a halted restack as JSON in the git directory
type ContinuationStore struct {
	path string
}

var _ engine.StateStore = (*ContinuationStore)(nil)

// NewContinuationStore returns a store writing into gitDir
func NewContinuationStore(gitDir string) *ContinuationStore {
	return &ContinuationStore{path: filepath.Join(gitDir, ContinuationFile)}
}

// LoadRestackState reads the continuation state from disk.
// It returns nil when no restack is halted.
func (s *ContinuationStore) LoadRestackState() (*engine.RestackState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read continuation state: %w", err)
	}

	var state engine.RestackState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse continuation state: %w", err)
	}
	if state.Branch == "" {
		return nil, fmt.Errorf("failed to parse continuation state: missing branch")
	}
	return &state, nil
}

// SaveRestackState writes the continuation state to disk. The file is
// replaced atomically so a crash never leaves a torn state behind.
func (s *ContinuationStore) SaveRestackState(state *engine.RestackState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal continuation state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ContinuationFile+".*")
	if err != nil {
		return fmt.Errorf("failed to write continuation state: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write continuation state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write continuation state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to write continuation state: %w", err)
	}
	return nil
}

// ClearRestackState removes the continuation state file
func (s *ContinuationStore) ClearRestackState() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear continuation state: %w", err)
	}
	return nil
}
