package engine

import (
	"context"
)

// Repository is the git capability the engine drives.
// Implementations report failures as errors that are surfaced verbatim.
type Repository interface {
	// CurrentBranchName returns the checked out branch, or an error wrapping
	// errors.ErrNotOnBranch when HEAD is detached
	CurrentBranchName(ctx context.Context) (string, error)
	CheckoutBranch(ctx context.Context, branchName string) error
	BranchNames(ctx context.Context) ([]string, error)

	// Revision returns the commit a branch (or any revision) points to
	Revision(ctx context.Context, rev string) (string, error)
	MergeBase(ctx context.Context, a, b string) (string, error)
	IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error)

	CreateBranch(ctx context.Context, branchName, at string) error
	DeleteBranch(ctx context.Context, branchName string) error

	// Rebase replays Upstream..Branch onto Onto and moves Branch.
	// A conflict is reported through the outcome, not the error.
	Rebase(ctx context.Context, req RebaseRequest) (RebaseOutcome, error)
	RebaseContinue(ctx context.Context) (RebaseOutcome, error)
	RebaseAbort(ctx context.Context) error
	RebaseInProgress(ctx context.Context) (bool, error)
}

// LinkStorage persists branch links.
// ApplyLinks must be all-or-nothing.
type LinkStorage interface {
	LoadLinks(ctx context.Context) (map[string]Link, error)
	ApplyLinks(ctx context.Context, batch LinkBatch) error
}

// StateStore persists the state of a restack halted by a conflict.
type StateStore interface {
	// LoadRestackState returns nil, nil when no restack is halted
	LoadRestackState() (*RestackState, error)
	SaveRestackState(state *RestackState) error
	ClearRestackState() error
}
