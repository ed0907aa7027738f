package engine

import (
	"context"
	"fmt"

	"stackit.dev/st/internal/errors"
)

// SetParent links branchName onto parentName.
// It fails with ErrUnknownBranch when either branch is missing from git and
// with ErrCycleDetected when parentName is branchName or one of its descendants.
func (e *Engine) SetParent(ctx context.Context, branchName, parentName string) error {
	if err := e.requireExists(ctx, branchName, parentName); err != nil {
		return err
	}
	g := e.snapshot()
	if err := g.checkParent(branchName, parentName); err != nil {
		return err
	}

	base, err := e.repo.MergeBase(ctx, branchName, parentName)
	if err != nil {
		return fmt.Errorf("failed to get merge base of %s and %s: %w", branchName, parentName, err)
	}

	link, tracked := g.link(branchName)
	if !tracked || link.Parent != parentName {
		link.Seq = g.nextSeq()
	}
	link.Parent = parentName
	link.ParentRevision = base

	return e.commit(ctx, LinkBatch{Upsert: map[string]Link{branchName: link}})
}

// Remove detaches branchName from the graph. Its children are re-parented
// onto its former parent so the stack closes over the gap; each child keeps
// its recorded base, so a later restack drops the removed branch's commits.
func (e *Engine) Remove(ctx context.Context, branchName string) (RemoveResult, error) {
	g := e.snapshot()
	if !g.isTracked(branchName) {
		return RemoveResult{}, errors.NewBranchNotTrackedError(branchName)
	}
	batch, result := g.removal(branchName)
	if err := e.commit(ctx, batch); err != nil {
		return RemoveResult{}, err
	}
	return result, nil
}

// Track starts tracking branchName on top of parentName.
// The parent must be trunk or already tracked.
func (e *Engine) Track(ctx context.Context, branchName, parentName string) error {
	if err := e.ensureIdle(); err != nil {
		return err
	}
	if e.IsTrunk(branchName) {
		return errors.NewTrunkOperationError(branchName)
	}
	if err := e.requireExists(ctx, branchName, parentName); err != nil {
		return err
	}
	if !e.IsTrunk(parentName) && !e.IsBranchTracked(parentName) {
		return errors.NewParentNotTrackedError(parentName)
	}
	if err := e.SetParent(ctx, branchName, parentName); err != nil {
		return err
	}
	e.log.Debug("tracked branch", "branch", branchName, "parent", parentName)
	return nil
}

// Untrack removes the stack metadata of branchName; the git branch is kept
func (e *Engine) Untrack(ctx context.Context, branchName string) (RemoveResult, error) {
	if err := e.ensureIdle(); err != nil {
		return RemoveResult{}, err
	}
	if e.IsTrunk(branchName) {
		return RemoveResult{}, errors.NewTrunkOperationError(branchName)
	}
	result, err := e.Remove(ctx, branchName)
	if err != nil {
		return RemoveResult{}, err
	}
	e.log.Debug("untracked branch", "branch", branchName, "reparented", result.Reparented)
	return result, nil
}

// Create makes a new branch at the tip of the current branch, tracks it
// on the current branch and checks it out. If tracking fails the new
// branch is left untracked rather than half linked.
func (e *Engine) Create(ctx context.Context, branchName string) (string, error) {
	if err := e.ensureIdle(); err != nil {
		return "", err
	}
	if branchName == "" {
		return "", fmt.Errorf("branch name cannot be empty")
	}
	existing, err := e.existingBranches(ctx)
	if err != nil {
		return "", err
	}
	if existing[branchName] {
		return "", errors.NewBranchExistsError(branchName)
	}

	current, err := e.CurrentBranch(ctx)
	if err != nil {
		return "", err
	}
	if !e.IsTrunk(current) && !e.IsBranchTracked(current) {
		return "", errors.NewBranchNotTrackedError(current)
	}

	tip, err := e.repo.Revision(ctx, current)
	if err != nil {
		return "", fmt.Errorf("failed to get revision of %s: %w", current, err)
	}
	if err := e.repo.CreateBranch(ctx, branchName, tip); err != nil {
		return "", err
	}

	link := Link{
		Parent:         current,
		ParentRevision: tip,
		Seq:            e.snapshot().nextSeq(),
	}
	if err := e.commit(ctx, LinkBatch{Upsert: map[string]Link{branchName: link}}); err != nil {
		return "", fmt.Errorf("created %s but left it untracked: %w", branchName, err)
	}

	if err := e.repo.CheckoutBranch(ctx, branchName); err != nil {
		return "", err
	}
	e.log.Debug("created branch", "branch", branchName, "parent", current, "at", tip)
	return current, nil
}

// Delete removes branchName from git and from the graph, re-parenting its
// children. The links are committed first and restored if git refuses the
// deletion, so a failure never leaves a link to a missing branch.
func (e *Engine) Delete(ctx context.Context, branchName string) (RemoveResult, error) {
	if err := e.ensureIdle(); err != nil {
		return RemoveResult{}, err
	}
	if e.IsTrunk(branchName) {
		return RemoveResult{}, errors.NewTrunkOperationError(branchName)
	}
	current, err := e.CurrentBranch(ctx)
	if err == nil && current == branchName {
		return RemoveResult{}, errors.NewDeleteCurrentBranchError(branchName)
	}

	g := e.snapshot()
	if !g.isTracked(branchName) {
		return RemoveResult{}, errors.NewBranchNotTrackedError(branchName)
	}
	batch, result := g.removal(branchName)
	undo := g.inverse(batch)

	if err := e.commit(ctx, batch); err != nil {
		return RemoveResult{}, err
	}
	if err := e.repo.DeleteBranch(ctx, branchName); err != nil {
		if rbErr := e.commit(ctx, undo); rbErr != nil {
			return RemoveResult{}, fmt.Errorf("failed to delete %s and failed to restore its links: %w (restore error: %v)", branchName, err, rbErr)
		}
		return RemoveResult{}, err
	}
	e.log.Debug("deleted branch", "branch", branchName, "reparented", result.Reparented)
	return result, nil
}
