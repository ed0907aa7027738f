package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"stackit.dev/st/internal/engine"
)

var _ engine.Repository = (*Repository)(nil)

// Rebase replays the commits of req.Branch after req.Upstream onto req.Onto.
// The branch is left checked out. A stop on conflicting changes is reported
// through the outcome; any other failure is returned as an error.
func (r *Repository) Rebase(ctx context.Context, req engine.RebaseRequest) (engine.RebaseOutcome, error) {
	_, err := r.runner.Run(ctx, "rebase", "--onto", req.Onto, req.Upstream, req.Branch)
	if err == nil {
		return engine.RebaseOutcome{}, nil
	}
	return r.rebaseStopped(ctx, err)
}

// RebaseContinue continues an in-progress rebase without opening an editor
func (r *Repository) RebaseContinue(ctx context.Context) (engine.RebaseOutcome, error) {
	_, err := r.runner.Run(ctx, "-c", "core.editor=true", "rebase", "--continue")
	if err == nil {
		return engine.RebaseOutcome{}, nil
	}
	return r.rebaseStopped(ctx, err)
}

// RebaseAbort aborts an in-progress rebase
func (r *Repository) RebaseAbort(ctx context.Context) error {
	if _, err := r.runner.Run(ctx, "rebase", "--abort"); err != nil {
		return fmt.Errorf("rebase abort failed: %w", err)
	}
	return nil
}

// RebaseInProgress checks for the rebase-merge or rebase-apply directories.
// This is more reliable than checking REBASE_HEAD which can persist after rebase.
func (r *Repository) RebaseInProgress(_ context.Context) (bool, error) {
	for _, dir := range []string{"rebase-merge", "rebase-apply"} {
		_, err := os.Stat(filepath.Join(r.gitDir, dir))
		if err == nil {
			return true, nil
		}
		if !os.IsNotExist(err) {
			return false, err
		}
	}
	return false, nil
}

// UnmergedFiles lists the paths with unresolved conflicts
func (r *Repository) UnmergedFiles(ctx context.Context) ([]string, error) {
	return r.runner.RunLines(ctx, "diff", "--name-only", "--diff-filter=U")
}

func (r *Repository) rebaseStopped(ctx context.Context, runErr error) (engine.RebaseOutcome, error) {
	inProgress, err := r.RebaseInProgress(ctx)
	if err != nil {
		return engine.RebaseOutcome{}, err
	}
	if !inProgress {
		return engine.RebaseOutcome{}, fmt.Errorf("rebase failed: %w", runErr)
	}
	files, err := r.UnmergedFiles(ctx)
	if err != nil {
		return engine.RebaseOutcome{}, err
	}
	return engine.RebaseOutcome{Conflict: true, Files: files}, nil
}
