package testhelpers

import (
	"context"

	"github.com/stretchr/testify/require"

	"stackit.dev/st/internal/engine"
)

// TestingT is satisfied by *testing.T and *rapid.T
type TestingT interface {
	require.TestingT
	Helper()
}

// FakeEngine bundles an engine with the in-memory collaborators behind it
type FakeEngine struct {
	*engine.Engine
	Repo  *FakeRepository
	Links *MemoryLinkStorage
	State *MemoryStateStore
}

// NewFakeEngine returns an engine over an empty fake repository with trunk main
func NewFakeEngine(t TestingT) *FakeEngine {
	t.Helper()
	f := &FakeEngine{
		Repo:  NewFakeRepository("main"),
		Links: NewMemoryLinkStorage(nil),
		State: &MemoryStateStore{},
	}
	f.Reload(t)
	return f
}

// Reload builds a fresh engine over the current collaborators
func (f *FakeEngine) Reload(t TestingT) {
	t.Helper()
	eng, err := engine.New(context.Background(), engine.Options{
		Trunk:      "main",
		Repository: f.Repo,
		Links:      f.Links,
		State:      f.State,
	})
	require.NoError(t, err)
	f.Engine = eng
}

// Stack creates each of names on top of the previous one, starting at
// parent, with one commit per branch, and tracks them. HEAD is left alone.
func (f *FakeEngine) Stack(t TestingT, parent string, names ...string) {
	t.Helper()
	ctx := context.Background()
	for _, name := range names {
		f.Repo.Branch(name, parent, name)
		require.NoError(t, f.Track(ctx, name, parent))
		parent = name
	}
}
