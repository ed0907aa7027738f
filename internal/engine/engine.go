package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"stackit.dev/st/internal/errors"
)

// Options configures a new Engine
type Options struct {
	Trunk      string
	Repository Repository
	Links      LinkStorage
	State      StateStore
	// Logger receives debug tracing; defaults to a discarding logger
	Logger *slog.Logger
}

// Engine owns the branch link graph of one repository.
// Safe for concurrent reads; commands are expected to run one at a time.
type Engine struct {
	trunk string
	repo  Repository
	links LinkStorage
	state StateStore
	log   *slog.Logger

	mu    sync.RWMutex
	graph *linkGraph
}

// New loads the persisted links and returns an engine over them
func New(ctx context.Context, opts Options) (*Engine, error) {
	if opts.Trunk == "" {
		return nil, fmt.Errorf("trunk branch is not configured")
	}
	if opts.Repository == nil || opts.Links == nil || opts.State == nil {
		return nil, fmt.Errorf("engine requires a repository, link storage and state store")
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &Engine{
		trunk: opts.Trunk,
		repo:  opts.Repository,
		links: opts.Links,
		state: opts.State,
		log:   log,
	}
	if err := e.Rebuild(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// Rebuild reloads the link graph from storage
func (e *Engine) Rebuild(ctx context.Context) error {
	stored, err := e.links.LoadLinks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load branch links: %w", err)
	}
	existing, err := e.existingBranches(ctx)
	if err != nil {
		return err
	}
	graph, repaired, err := loadLinkGraph(e.trunk, stored, existing)
	if err != nil {
		return err
	}
	for _, name := range repaired {
		parent, _ := graph.parent(name)
		e.log.Debug("parent of branch no longer exists", "branch", name, "parent", parent)
	}

	e.mu.Lock()
	e.graph = graph
	e.mu.Unlock()
	return nil
}

// Trunk returns the trunk branch name
func (e *Engine) Trunk() string {
	return e.trunk
}

// IsTrunk checks if a branch is the trunk
func (e *Engine) IsTrunk(branchName string) bool {
	return branchName == e.trunk
}

// IsBranchTracked checks if a branch has a parent link
func (e *Engine) IsBranchTracked(branchName string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.graph.isTracked(branchName)
}

// GetParent returns the tracked parent of a branch
func (e *Engine) GetParent(branchName string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.graph.parent(branchName)
}

// GetLink returns the stored link of a branch
func (e *Engine) GetLink(branchName string) (Link, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.graph.link(branchName)
}

// GetChildren returns the branches stacked directly on branchName,
// in the order they were linked. It never fails; a leaf has no children.
func (e *Engine) GetChildren(branchName string) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.graph.childrenOf(branchName)
}

// GetUpstack returns every branch above branchName, parents first
func (e *Engine) GetUpstack(branchName string) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.graph.descendants(branchName)
}

// CurrentBranch returns the checked out branch
func (e *Engine) CurrentBranch(ctx context.Context) (string, error) {
	return e.repo.CurrentBranchName(ctx)
}

// RestackInProgress returns the halted restack, if any
func (e *Engine) RestackInProgress() (*RestackState, error) {
	st, err := e.state.LoadRestackState()
	if err != nil {
		return nil, fmt.Errorf("failed to read restack state: %w", err)
	}
	return st, nil
}

// ensureIdle refuses to start work while a restack is halted
func (e *Engine) ensureIdle() error {
	st, err := e.RestackInProgress()
	if err != nil {
		return err
	}
	if st != nil {
		return fmt.Errorf("%w: %s is still conflicted; run 'st continue' or 'st abort'", errors.ErrRestackInProgress, st.Branch)
	}
	return nil
}

func (e *Engine) existingBranches(ctx context.Context) (map[string]bool, error) {
	names, err := e.repo.BranchNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	existing := make(map[string]bool, len(names))
	for _, name := range names {
		existing[name] = true
	}
	return existing, nil
}

func (e *Engine) requireExists(ctx context.Context, branchNames ...string) error {
	existing, err := e.existingBranches(ctx)
	if err != nil {
		return err
	}
	for _, name := range branchNames {
		if !existing[name] {
			return errors.NewUnknownBranchError(name)
		}
	}
	return nil
}

// commit persists batch and swaps in the updated graph
func (e *Engine) commit(ctx context.Context, batch LinkBatch) error {
	if batch.IsEmpty() {
		return nil
	}
	if err := e.links.ApplyLinks(ctx, batch); err != nil {
		return fmt.Errorf("failed to write branch links: %w", err)
	}
	e.mu.Lock()
	e.graph = e.graph.apply(batch)
	e.mu.Unlock()
	return nil
}

func (e *Engine) snapshot() *linkGraph {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.graph
}
