package testhelpers

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"stackit.dev/st/internal/engine"
	"stackit.dev/st/internal/errors"
)

type fakeCommit struct {
	id      string
	parent  string
	message string
}

type fakeRebase struct {
	branch  string
	onto    string
	base    string
	pending []*fakeCommit
}

// FakeRepository is an in-memory engine.Repository over a linear commit
// model. Every commit has at most one parent, which is all stacks need.
type FakeRepository struct {
	mu       sync.Mutex
	commits  map[string]*fakeCommit
	branches map[string]string
	head     string
	rebase   *fakeRebase
	nextID   int

	conflicts map[string]int
	failures  map[string]error

	// RebaseCalls counts rebases started
	RebaseCalls int
	// CheckoutCalls counts successful checkouts
	CheckoutCalls int
}

var _ engine.Repository = (*FakeRepository)(nil)

// NewFakeRepository returns a repository with one commit on trunk, checked out
func NewFakeRepository(trunk string) *FakeRepository {
	r := &FakeRepository{
		commits:   make(map[string]*fakeCommit),
		branches:  make(map[string]string),
		conflicts: make(map[string]int),
		failures:  make(map[string]error),
	}
	root := r.newCommit("", "initial")
	r.branches[trunk] = root.id
	r.head = trunk
	return r
}

func (r *FakeRepository) newCommit(parent, message string) *fakeCommit {
	r.nextID++
	c := &fakeCommit{
		id:      fmt.Sprintf("%040x", r.nextID),
		parent:  parent,
		message: message,
	}
	r.commits[c.id] = c
	return c
}

// Commit adds a commit on top of branchName and returns its id
func (r *FakeRepository) Commit(branchName, message string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	tip, ok := r.branches[branchName]
	if !ok {
		panic("unknown branch " + branchName)
	}
	c := r.newCommit(tip, message)
	r.branches[branchName] = c.id
	return c.id
}

// Branch creates branchName at the tip of from and commits message on it
func (r *FakeRepository) Branch(branchName, from, message string) string {
	r.mu.Lock()
	r.branches[branchName] = r.branches[from]
	r.mu.Unlock()
	return r.Commit(branchName, message)
}

// ConflictOn makes the next times rebases of branchName stop on a conflict
func (r *FakeRepository) ConflictOn(branchName string, times int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflicts[branchName] = times
}

// FailOn makes the named method return err until cleared with a nil err
func (r *FakeRepository) FailOn(method string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		delete(r.failures, method)
		return
	}
	r.failures[method] = err
}

// SetHead checks out branchName without counting it as a checkout; "" detaches
func (r *FakeRepository) SetHead(branchName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.head = branchName
}

// Messages returns the commit messages reachable from rev, newest first
func (r *FakeRepository) Messages(rev string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, err := r.resolve(rev)
	if err != nil {
		return nil
	}
	var out []string
	for _, c := range r.chain(id) {
		out = append(out, c.message)
	}
	return out
}

// HasBranch reports whether branchName exists
func (r *FakeRepository) HasBranch(branchName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.branches[branchName]
	return ok
}

func (r *FakeRepository) fail(method string) error {
	return r.failures[method]
}

func (r *FakeRepository) resolve(rev string) (string, error) {
	if id, ok := r.branches[rev]; ok {
		return id, nil
	}
	if _, ok := r.commits[rev]; ok {
		return rev, nil
	}
	return "", fmt.Errorf("unknown revision %s", rev)
}

// chain walks from id to the root commit
func (r *FakeRepository) chain(id string) []*fakeCommit {
	var out []*fakeCommit
	for cur := id; cur != ""; {
		c := r.commits[cur]
		out = append(out, c)
		cur = c.parent
	}
	return out
}

func (r *FakeRepository) reachable(id string) map[string]bool {
	seen := make(map[string]bool)
	for _, c := range r.chain(id) {
		seen[c.id] = true
	}
	return seen
}

// CurrentBranchName implements engine.Repository
func (r *FakeRepository) CurrentBranchName(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.head == "" {
		return "", errors.ErrNotOnBranch
	}
	return r.head, nil
}

// CheckoutBranch implements engine.Repository
func (r *FakeRepository) CheckoutBranch(_ context.Context, branchName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("CheckoutBranch"); err != nil {
		return err
	}
	if r.rebase != nil {
		return fmt.Errorf("cannot checkout %s: rebase in progress", branchName)
	}
	if _, ok := r.branches[branchName]; !ok {
		return fmt.Errorf("pathspec '%s' did not match any branch", branchName)
	}
	r.head = branchName
	r.CheckoutCalls++
	return nil
}

// BranchNames implements engine.Repository
func (r *FakeRepository) BranchNames(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.branches))
	for name := range r.branches {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Revision implements engine.Repository
func (r *FakeRepository) Revision(_ context.Context, rev string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolve(rev)
}

// MergeBase implements engine.Repository
func (r *FakeRepository) MergeBase(_ context.Context, a, b string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idA, err := r.resolve(a)
	if err != nil {
		return "", err
	}
	idB, err := r.resolve(b)
	if err != nil {
		return "", err
	}
	inA := r.reachable(idA)
	for _, c := range r.chain(idB) {
		if inA[c.id] {
			return c.id, nil
		}
	}
	return "", fmt.Errorf("no merge base found between %s and %s", a, b)
}

// IsAncestor implements engine.Repository
func (r *FakeRepository) IsAncestor(_ context.Context, ancestor, descendant string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idA, err := r.resolve(ancestor)
	if err != nil {
		return false, err
	}
	idD, err := r.resolve(descendant)
	if err != nil {
		return false, err
	}
	return r.reachable(idD)[idA], nil
}

// CreateBranch implements engine.Repository
func (r *FakeRepository) CreateBranch(_ context.Context, branchName, rev string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("CreateBranch"); err != nil {
		return err
	}
	if _, ok := r.branches[branchName]; ok {
		return fmt.Errorf("a branch named '%s' already exists", branchName)
	}
	id, err := r.resolve(rev)
	if err != nil {
		return err
	}
	r.branches[branchName] = id
	return nil
}

// DeleteBranch implements engine.Repository
func (r *FakeRepository) DeleteBranch(_ context.Context, branchName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("DeleteBranch"); err != nil {
		return err
	}
	if _, ok := r.branches[branchName]; !ok {
		return fmt.Errorf("branch '%s' not found", branchName)
	}
	if r.head == branchName {
		return fmt.Errorf("cannot delete branch '%s' checked out", branchName)
	}
	delete(r.branches, branchName)
	return nil
}

// Rebase implements engine.Repository
func (r *FakeRepository) Rebase(_ context.Context, req engine.RebaseRequest) (engine.RebaseOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("Rebase"); err != nil {
		return engine.RebaseOutcome{}, err
	}
	if r.rebase != nil {
		return engine.RebaseOutcome{}, fmt.Errorf("a rebase is already in progress")
	}
	tip, err := r.resolve(req.Branch)
	if err != nil {
		return engine.RebaseOutcome{}, err
	}
	onto, err := r.resolve(req.Onto)
	if err != nil {
		return engine.RebaseOutcome{}, err
	}
	upstream, err := r.resolve(req.Upstream)
	if err != nil {
		return engine.RebaseOutcome{}, err
	}
	r.RebaseCalls++

	excluded := r.reachable(upstream)
	var pending []*fakeCommit
	for _, c := range r.chain(tip) {
		if excluded[c.id] {
			break
		}
		pending = append(pending, c)
	}
	slices.Reverse(pending)

	r.rebase = &fakeRebase{branch: req.Branch, onto: onto, base: onto, pending: pending}
	r.head = ""
	return r.step()
}

// step replays pending commits or stops on an injected conflict
func (r *FakeRepository) step() (engine.RebaseOutcome, error) {
	rb := r.rebase
	if r.conflicts[rb.branch] > 0 {
		r.conflicts[rb.branch]--
		return engine.RebaseOutcome{Conflict: true, Files: []string{rb.branch + "_test.txt"}}, nil
	}
	for _, c := range rb.pending {
		rb.base = r.newCommit(rb.base, c.message).id
	}
	r.branches[rb.branch] = rb.base
	r.head = rb.branch
	r.rebase = nil
	return engine.RebaseOutcome{}, nil
}

// RebaseContinue implements engine.Repository
func (r *FakeRepository) RebaseContinue(_ context.Context) (engine.RebaseOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rebase == nil {
		return engine.RebaseOutcome{}, fmt.Errorf("no rebase in progress")
	}
	return r.step()
}

// RebaseAbort implements engine.Repository
func (r *FakeRepository) RebaseAbort(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rebase == nil {
		return fmt.Errorf("no rebase in progress")
	}
	r.head = r.rebase.branch
	r.rebase = nil
	return nil
}

// RebaseInProgress implements engine.Repository
func (r *FakeRepository) RebaseInProgress(_ context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rebase != nil, nil
}

// FinishRebaseManually completes the in-progress rebase as a user running
// git rebase --continue by hand would
func (r *FakeRepository) FinishRebaseManually() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rebase == nil {
		return
	}
	r.conflicts[r.rebase.branch] = 0
	_, _ = r.step()
}
