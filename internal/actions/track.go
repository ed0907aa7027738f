package actions

import (
	"fmt"

	"stackit.dev/st/internal/output"
	"stackit.dev/st/internal/runtime"
)

// TrackOptions contains options for the track command
type TrackOptions struct {
	BranchName string
	Parent     string
}

// TrackAction starts tracking a branch on top of a parent. Without a parent
// the user picks one of the tracked branches.
func TrackAction(ctx *runtime.Context, opts TrackOptions) error {
	branchName, err := branchOrCurrent(ctx, opts.BranchName)
	if err != nil {
		return err
	}

	parent := opts.Parent
	if parent == "" {
		selected, err := selectBranch(ctx, fmt.Sprintf("Select a parent for %s:", branchName))
		if err != nil {
			return err
		}
		parent = selected
	}

	if err := ctx.Engine.Track(ctx, branchName, parent); err != nil {
		return err
	}
	ctx.Splog.Info("Tracked %s on %s.",
		output.ColorBranchName(branchName, false),
		output.ColorBranchName(parent, false))
	return nil
}

func branchOrCurrent(ctx *runtime.Context, branchName string) (string, error) {
	if branchName != "" {
		return branchName, nil
	}
	return ctx.Engine.CurrentBranch(ctx)
}
