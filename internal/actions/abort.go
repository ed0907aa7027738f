package actions

import (
	"fmt"

	"stackit.dev/st/internal/output"
	"stackit.dev/st/internal/runtime"
)

// AbortOptions contains options for the abort command
type AbortOptions struct {
	Force bool
}

// AbortAction cancels a halted restack
func AbortAction(ctx *runtime.Context, opts AbortOptions) error {
	if !opts.Force {
		msg := "Abort the restack in progress? The conflicted branch is rolled back."
		confirmed, err := ctx.Prompter.Confirm(msg, false)
		if err != nil {
			return fmt.Errorf("failed to get confirmation: %w", err)
		}
		if !confirmed {
			ctx.Splog.Info("Abort canceled.")
			return nil
		}
	}

	st, err := ctx.Engine.Abort(ctx)
	if err != nil {
		return err
	}
	if st == nil {
		ctx.Splog.Info("Aborted rebase.")
		return nil
	}
	ctx.Splog.Info("Aborted restack of %s.", output.ColorBranchName(st.Branch, false))
	if st.OriginalBranch == "" {
		return nil
	}
	current, err := ctx.Engine.CurrentBranch(ctx)
	if err != nil {
		ctx.Splog.Warn("%s no longer exists.", output.ColorBranchName(st.OriginalBranch, false))
		return nil
	}
	if current != st.OriginalBranch {
		ctx.Splog.Warn("%s no longer exists. Staying on %s.",
			output.ColorBranchName(st.OriginalBranch, false),
			output.ColorBranchName(current, true))
		return nil
	}
	ctx.Splog.Info("Returned to %s.", output.ColorBranchName(st.OriginalBranch, true))
	return nil
}
