package testhelpers

import (
	"context"
	"maps"
	"slices"
	"sync"

	"stackit.dev/st/internal/engine"
)

// MemoryLinkStorage is an engine.LinkStorage kept in a map
type MemoryLinkStorage struct {
	mu    sync.Mutex
	links map[string]engine.Link

	// Writes counts committed batches
	Writes int
	// Err, when set, fails every ApplyLinks call
	Err error
}

var _ engine.LinkStorage = (*MemoryLinkStorage)(nil)

// NewMemoryLinkStorage returns a storage seeded with links
func NewMemoryLinkStorage(links map[string]engine.Link) *MemoryLinkStorage {
	s := &MemoryLinkStorage{links: make(map[string]engine.Link)}
	maps.Copy(s.links, links)
	return s
}

// LoadLinks implements engine.LinkStorage
func (s *MemoryLinkStorage) LoadLinks(_ context.Context) (map[string]engine.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.links), nil
}

// ApplyLinks implements engine.LinkStorage
func (s *MemoryLinkStorage) ApplyLinks(_ context.Context, batch engine.LinkBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, name := range batch.Delete {
		delete(s.links, name)
	}
	maps.Copy(s.links, batch.Upsert)
	s.Writes++
	return nil
}

// Links returns a copy of the stored links
func (s *MemoryLinkStorage) Links() map[string]engine.Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.links)
}

// MemoryStateStore is an engine.StateStore kept in memory
type MemoryStateStore struct {
	mu    sync.Mutex
	state *engine.RestackState
}

var _ engine.StateStore = (*MemoryStateStore)(nil)

// LoadRestackState implements engine.StateStore
func (s *MemoryStateStore) LoadRestackState() (*engine.RestackState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return nil, nil
	}
	st := *s.state
	st.Remaining = slices.Clone(s.state.Remaining)
	return &st, nil
}

// SaveRestackState implements engine.StateStore
func (s *MemoryStateStore) SaveRestackState(st *engine.RestackState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *st
	cp.Remaining = slices.Clone(st.Remaining)
	s.state = &cp
	return nil
}

// ClearRestackState implements engine.StateStore
func (s *MemoryStateStore) ClearRestackState() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = nil
	return nil
}
