package git

import (
	"context"
	"fmt"
	"slices"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"stackit.dev/st/internal/errors"
)

// CurrentBranchName returns the checked out branch.
// It returns ErrNotOnBranch when HEAD is detached.
func (r *Repository) CurrentBranchName(_ context.Context) (string, error) {
	head, err := r.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if head.Type() != plumbing.SymbolicReference || !head.Target().IsBranch() {
		return "", errors.ErrNotOnBranch
	}
	return head.Target().Short(), nil
}

// BranchNames returns all local branch names, sorted
func (r *Repository) BranchNames(_ context.Context) ([]string, error) {
	branches, err := r.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to get branches: %w", err)
	}

	var names []string
	err = branches.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name().IsBranch() {
			names = append(names, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

// Revision resolves rev to a commit SHA
func (r *Repository) Revision(_ context.Context, rev string) (string, error) {
	hash, err := r.resolve(rev)
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}

// MergeBase returns the best common ancestor of a and b
func (r *Repository) MergeBase(_ context.Context, a, b string) (string, error) {
	commitA, err := r.commit(a)
	if err != nil {
		return "", err
	}
	commitB, err := r.commit(b)
	if err != nil {
		return "", err
	}

	bases, err := commitA.MergeBase(commitB)
	if err != nil {
		return "", fmt.Errorf("failed to find merge base: %w", err)
	}
	if len(bases) == 0 {
		return "", fmt.Errorf("no merge base found between %s and %s", a, b)
	}
	return bases[0].Hash.String(), nil
}

// IsAncestor reports whether ancestor is reachable from descendant
func (r *Repository) IsAncestor(_ context.Context, ancestor, descendant string) (bool, error) {
	ancestorCommit, err := r.commit(ancestor)
	if err != nil {
		return false, err
	}
	descendantCommit, err := r.commit(descendant)
	if err != nil {
		return false, err
	}
	return ancestorCommit.IsAncestor(descendantCommit)
}

// CreateBranch creates branchName pointing at rev without checking it out
func (r *Repository) CreateBranch(ctx context.Context, branchName, rev string) error {
	if _, err := r.runner.Run(ctx, "branch", branchName, rev); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", branchName, err)
	}
	return nil
}

// DeleteBranch force deletes a local branch
func (r *Repository) DeleteBranch(ctx context.Context, branchName string) error {
	if _, err := r.runner.Run(ctx, "branch", "-D", branchName); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branchName, err)
	}
	return nil
}

// CheckoutBranch switches the worktree to branchName
func (r *Repository) CheckoutBranch(ctx context.Context, branchName string) error {
	if _, err := r.runner.Run(ctx, "checkout", "-q", branchName); err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branchName, err)
	}
	return nil
}

func (r *Repository) commit(rev string) (*object.Commit, error) {
	hash, err := r.resolve(rev)
	if err != nil {
		return nil, err
	}
	c, err := r.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", rev, err)
	}
	return c, nil
}
