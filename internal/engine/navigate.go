package engine

import (
	"context"

	"stackit.dev/st/internal/errors"
)

// Top checks out the last branch of the current stack
func (e *Engine) Top(ctx context.Context) (Move, error) {
	stack, current, err := e.navigationStack(ctx)
	if err != nil {
		return Move{}, err
	}
	if stack.ForkPoint != "" {
		return Move{}, errors.NewAmbiguousStackError(stack.ForkPoint, stack.ForkChildren)
	}
	if stack.Len() <= 1 {
		return Move{}, errors.ErrNoStackFound
	}
	return e.moveTo(ctx, current, stack.Top())
}

// Bottom checks out the first branch above trunk in the current stack
func (e *Engine) Bottom(ctx context.Context) (Move, error) {
	stack, current, err := e.navigationStack(ctx)
	if err != nil {
		return Move{}, err
	}
	if stack.Len() <= 1 {
		if stack.ForkPoint != "" {
			return Move{}, errors.NewAmbiguousStackError(stack.ForkPoint, stack.ForkChildren)
		}
		return Move{}, errors.ErrNoStackFound
	}
	return e.moveTo(ctx, current, stack.Branches[1])
}

// Up checks out the branch above the current one. At the top of the stack
// it succeeds without moving.
func (e *Engine) Up(ctx context.Context) (Move, error) {
	stack, current, err := e.navigationStack(ctx)
	if err != nil {
		return Move{}, err
	}
	if stack.Len() <= 1 && stack.ForkPoint == "" {
		return Move{}, errors.ErrNoStackFound
	}
	idx := stack.IndexOf(current)
	if idx < 0 {
		return Move{}, errors.NewBranchNotTrackedError(current)
	}
	if idx == stack.Len()-1 {
		if stack.ForkPoint == current {
			return Move{}, errors.NewAmbiguousStackError(current, stack.ForkChildren)
		}
		return Move{Kind: AlreadyAtTop, Branch: current, From: current}, nil
	}
	return e.moveTo(ctx, current, stack.Branches[idx+1])
}

// Down checks out the branch below the current one. On trunk it succeeds
// without moving.
func (e *Engine) Down(ctx context.Context) (Move, error) {
	stack, current, err := e.navigationStack(ctx)
	if err != nil {
		return Move{}, err
	}
	if stack.Len() <= 1 && stack.ForkPoint == "" {
		return Move{}, errors.ErrNoStackFound
	}
	idx := stack.IndexOf(current)
	if idx < 0 {
		return Move{}, errors.NewBranchNotTrackedError(current)
	}
	if idx == 0 {
		return Move{Kind: AlreadyAtTrunk, Branch: current, From: current}, nil
	}
	return e.moveTo(ctx, current, stack.Branches[idx-1])
}

// Checkout switches to a tracked branch or trunk
func (e *Engine) Checkout(ctx context.Context, branchName string) (Move, error) {
	if err := e.ensureIdle(); err != nil {
		return Move{}, err
	}
	if !e.IsTrunk(branchName) && !e.IsBranchTracked(branchName) {
		if err := e.requireExists(ctx, branchName); err != nil {
			return Move{}, err
		}
		return Move{}, errors.NewBranchNotTrackedError(branchName)
	}
	current, err := e.CurrentBranch(ctx)
	if err != nil {
		current = ""
	}
	return e.moveTo(ctx, current, branchName)
}

func (e *Engine) navigationStack(ctx context.Context) (Stack, string, error) {
	if err := e.ensureIdle(); err != nil {
		return Stack{}, "", err
	}
	return e.CurrentStack(ctx)
}

func (e *Engine) moveTo(ctx context.Context, from, target string) (Move, error) {
	if target != from {
		if err := e.repo.CheckoutBranch(ctx, target); err != nil {
			return Move{}, err
		}
	}
	return Move{Kind: Moved, Branch: target, From: from}, nil
}
