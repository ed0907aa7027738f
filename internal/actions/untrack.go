package actions

import (
	"stackit.dev/st/internal/output"
	"stackit.dev/st/internal/runtime"
)

// UntrackOptions contains options for the untrack command
type UntrackOptions struct {
	BranchName string
}

// UntrackAction stops tracking a branch. Its children move onto its parent.
func UntrackAction(ctx *runtime.Context, opts UntrackOptions) error {
	branchName, err := branchOrCurrent(ctx, opts.BranchName)
	if err != nil {
		return err
	}

	result, err := ctx.Engine.Untrack(ctx, branchName)
	if err != nil {
		return err
	}
	ctx.Splog.Info("Stopped tracking %s.", output.ColorBranchName(branchName, false))
	printReparented(ctx, result.Reparented, result.Parent)
	return nil
}

func printReparented(ctx *runtime.Context, children []string, parent string) {
	for _, child := range children {
		ctx.Splog.Info("Moved %s onto %s.",
			output.ColorBranchName(child, false),
			output.ColorBranchName(parent, false))
	}
}
