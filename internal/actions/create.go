package actions

import (
	"fmt"

	"stackit.dev/st/internal/output"
	"stackit.dev/st/internal/runtime"
	"stackit.dev/st/internal/utils"
)

// CreateOptions contains options for the create command
type CreateOptions struct {
	BranchName string
}

// CreateAction creates a branch on top of the current one and checks it out
func CreateAction(ctx *runtime.Context, opts CreateOptions) error {
	branchName := utils.SanitizeBranchName(opts.BranchName)
	if branchName == "" {
		return fmt.Errorf("%q is not a usable branch name", opts.BranchName)
	}
	if branchName != opts.BranchName {
		ctx.Splog.Tip("Using %s as the branch name.", branchName)
	}

	parent, err := ctx.Engine.Create(ctx, branchName)
	if err != nil {
		return err
	}
	ctx.Splog.Info("Created %s on %s.",
		output.ColorBranchName(branchName, true),
		output.ColorBranchName(parent, false))
	return nil
}
