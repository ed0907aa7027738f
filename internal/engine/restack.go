package engine

import (
	"context"
	"fmt"
	"slices"

	"stackit.dev/st/internal/errors"
)

// RestackStack restacks the stack around anchorName, limited by scope.
// Branches are visited parents first, trunk excluded.
func (e *Engine) RestackStack(ctx context.Context, anchorName string, scope RestackScope) (*RestackReport, error) {
	if err := e.ensureIdle(); err != nil {
		return nil, err
	}
	if !e.IsTrunk(anchorName) && !e.IsBranchTracked(anchorName) {
		return nil, errors.NewBranchNotTrackedError(anchorName)
	}

	g := e.snapshot()
	var work []string
	switch scope {
	case ScopeOnly:
		work = []string{anchorName}
	case ScopeUpstack:
		work = append([]string{anchorName}, g.descendants(anchorName)...)
	case ScopeDownstack:
		work = append(g.ancestors(anchorName), anchorName)
	default:
		work = append(g.ancestors(anchorName), anchorName)
		work = append(work, g.descendants(anchorName)...)
	}
	return e.Restack(ctx, work)
}

// Restack rebases each branch of work onto the current tip of its parent,
// in order. It stops at the first conflict, persisting the remaining work so
// Continue can pick it up. Branches already based on their parent's tip are
// visited without touching git or the stored links.
func (e *Engine) Restack(ctx context.Context, work []string) (*RestackReport, error) {
	if err := e.ensureIdle(); err != nil {
		return nil, err
	}
	original, err := e.CurrentBranch(ctx)
	if err != nil {
		original = ""
	}
	return e.runRestack(ctx, work, original, false)
}

// Continue resumes a restack halted by a conflict. If the rebase is still in
// progress it is continued; if it was finished by hand the branch is accepted
// as is, and if it was aborted by hand the branch is attempted again.
func (e *Engine) Continue(ctx context.Context) (*RestackReport, error) {
	st, err := e.RestackInProgress()
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, errors.ErrNoRestackInProgress
	}

	inProgress, err := e.repo.RebaseInProgress(ctx)
	if err != nil {
		return nil, err
	}

	report := &RestackReport{}
	work := slices.Clone(st.Remaining)
	if inProgress {
		outcome, err := e.repo.RebaseContinue(ctx)
		if err != nil {
			return nil, err
		}
		if outcome.Conflict {
			report.Steps = append(report.Steps, RestackStep{Branch: st.Branch, Parent: st.Parent, Status: RestackConflicted})
			report.Conflict = st
			report.ConflictFiles = outcome.Files
			return report, nil
		}
		if err := e.recordBase(ctx, st.Branch, st.Onto); err != nil {
			return nil, err
		}
		report.Steps = append(report.Steps, RestackStep{Branch: st.Branch, Parent: st.Parent, Status: RestackDone})
	} else {
		rebased, err := e.repo.IsAncestor(ctx, st.Onto, st.Branch)
		if err != nil {
			return nil, err
		}
		if rebased {
			if err := e.recordBase(ctx, st.Branch, st.Onto); err != nil {
				return nil, err
			}
			report.Steps = append(report.Steps, RestackStep{Branch: st.Branch, Parent: st.Parent, Status: RestackDone})
		} else {
			e.log.Debug("rebase was abandoned outside st; retrying", "branch", st.Branch)
			work = append([]string{st.Branch}, work...)
		}
	}

	// The halted state stays on disk until the rest of the work succeeds.
	// Running continue again accepts st.Branch and skips branches that are
	// already on their parent's tip.
	rest, err := e.runRestack(ctx, work, st.OriginalBranch, true)
	if rest != nil {
		report.Steps = append(report.Steps, rest.Steps...)
		report.Conflict = rest.Conflict
		report.ConflictFiles = rest.ConflictFiles
	}
	if err != nil {
		return report, err
	}
	if report.Conflict != nil {
		return report, nil
	}
	if err := e.state.ClearRestackState(); err != nil {
		return report, fmt.Errorf("failed to clear restack state: %w", err)
	}
	return report, nil
}

// Abort rolls back the rebase in progress, discards the halted restack and
// returns to the branch the restack started from. Branches restacked before
// the conflict keep their new base.
func (e *Engine) Abort(ctx context.Context) (*RestackState, error) {
	st, err := e.RestackInProgress()
	if err != nil {
		return nil, err
	}
	inProgress, err := e.repo.RebaseInProgress(ctx)
	if err != nil {
		return nil, err
	}
	if st == nil && !inProgress {
		return nil, errors.ErrNoRestackInProgress
	}

	if inProgress {
		if err := e.repo.RebaseAbort(ctx); err != nil {
			return nil, err
		}
	}
	if err := e.state.ClearRestackState(); err != nil {
		return nil, fmt.Errorf("failed to clear restack state: %w", err)
	}

	if st != nil && st.OriginalBranch != "" {
		if err := e.returnTo(ctx, st.OriginalBranch); err != nil {
			return st, err
		}
	}
	return st, nil
}

func (e *Engine) runRestack(ctx context.Context, work []string, original string, restore bool) (*RestackReport, error) {
	report := &RestackReport{}
	for i, branchName := range work {
		if e.IsTrunk(branchName) {
			continue
		}
		link, ok := e.GetLink(branchName)
		if !ok {
			return report, errors.NewBranchNotTrackedError(branchName)
		}

		step := RestackStep{Branch: branchName, Parent: link.Parent, Status: RestackPending}
		parentTip, err := e.repo.Revision(ctx, link.Parent)
		if err != nil {
			return report, fmt.Errorf("failed to get revision of %s: %w", link.Parent, err)
		}
		if link.ParentRevision == parentTip {
			step.Status = RestackUnneeded
			report.Steps = append(report.Steps, step)
			continue
		}

		step.Status = RestackRebasing
		upstream, err := e.upstream(ctx, branchName, link)
		if err != nil {
			return report, err
		}
		e.log.Debug("restacking branch", "branch", branchName, "parent", link.Parent, "onto", parentTip, "upstream", upstream)

		restore = true
		outcome, err := e.repo.Rebase(ctx, RebaseRequest{
			Branch:   branchName,
			Onto:     parentTip,
			Upstream: upstream,
		})
		if err != nil {
			return report, fmt.Errorf("failed to restack %s: %w", branchName, err)
		}

		if outcome.Conflict {
			st := &RestackState{
				Branch:         branchName,
				Parent:         link.Parent,
				Onto:           parentTip,
				Remaining:      slices.Clone(work[i+1:]),
				OriginalBranch: original,
			}
			if err := e.state.SaveRestackState(st); err != nil {
				return report, fmt.Errorf("failed to persist restack state: %w", err)
			}
			step.Status = RestackConflicted
			report.Steps = append(report.Steps, step)
			report.Conflict = st
			report.ConflictFiles = outcome.Files
			return report, nil
		}

		if err := e.recordBase(ctx, branchName, parentTip); err != nil {
			return report, err
		}
		step.Status = RestackDone
		report.Steps = append(report.Steps, step)
	}

	if restore && original != "" {
		if err := e.returnTo(ctx, original); err != nil {
			return report, err
		}
	}
	return report, nil
}

// NeedsRestack reports whether branchName is no longer based on the tip of
// its parent. Trunk and untracked branches never need a restack.
func (e *Engine) NeedsRestack(ctx context.Context, branchName string) (bool, error) {
	link, ok := e.GetLink(branchName)
	if !ok {
		return false, nil
	}
	parentTip, err := e.repo.Revision(ctx, link.Parent)
	if err != nil {
		return false, fmt.Errorf("failed to get revision of %s: %w", link.Parent, err)
	}
	return link.ParentRevision != parentTip, nil
}

// upstream picks the commit to replay from: the recorded base when it is
// still in the branch's history, otherwise the merge base with the parent.
func (e *Engine) upstream(ctx context.Context, branchName string, link Link) (string, error) {
	if link.ParentRevision != "" {
		ok, err := e.repo.IsAncestor(ctx, link.ParentRevision, branchName)
		if err == nil && ok {
			return link.ParentRevision, nil
		}
	}
	base, err := e.repo.MergeBase(ctx, branchName, link.Parent)
	if err != nil {
		return "", fmt.Errorf("failed to get merge base of %s and %s: %w", branchName, link.Parent, err)
	}
	return base, nil
}

// recordBase stores onto as the parent revision of branchName
func (e *Engine) recordBase(ctx context.Context, branchName, onto string) error {
	link, ok := e.GetLink(branchName)
	if !ok {
		return errors.NewBranchNotTrackedError(branchName)
	}
	link.ParentRevision = onto
	return e.commit(ctx, LinkBatch{Upsert: map[string]Link{branchName: link}})
}

func (e *Engine) returnTo(ctx context.Context, branchName string) error {
	current, err := e.CurrentBranch(ctx)
	if err == nil && current == branchName {
		return nil
	}
	if err := e.requireExists(ctx, branchName); err != nil {
		e.log.Debug("original branch is gone; staying put", "branch", branchName)
		return nil
	}
	return e.repo.CheckoutBranch(ctx, branchName)
}
