package actions

import (
	"fmt"

	"stackit.dev/st/internal/output"
	"stackit.dev/st/internal/runtime"
)

// CheckoutOptions specifies options for the checkout command
type CheckoutOptions struct {
	BranchName    string // Optional: branch to checkout directly
	CheckoutTrunk bool   // Checkout trunk directly
}

// CheckoutAction switches to a tracked branch or trunk, prompting for one
// when no branch is given
func CheckoutAction(ctx *runtime.Context, opts CheckoutOptions) error {
	branchName := opts.BranchName
	if opts.CheckoutTrunk {
		branchName = ctx.Engine.Trunk()
	}
	if branchName == "" {
		selected, err := selectBranch(ctx, "Checkout a branch:")
		if err != nil {
			return err
		}
		branchName = selected
	}

	move, err := ctx.Engine.Checkout(ctx, branchName)
	if err != nil {
		return err
	}
	if move.From == move.Branch {
		ctx.Splog.Info("Already on %s.", output.ColorBranchName(branchName, true))
		return nil
	}
	ctx.Splog.Info("Checked out %s.", output.ColorBranchName(branchName, true))
	return nil
}

// stackBranches returns trunk followed by every tracked branch, parents
// before children
func stackBranches(ctx *runtime.Context) []string {
	trunk := ctx.Engine.Trunk()
	return append([]string{trunk}, ctx.Engine.GetUpstack(trunk)...)
}

// selectBranch prompts for one of the tracked branches, defaulting to the
// current one
func selectBranch(ctx *runtime.Context, message string) (string, error) {
	current, err := ctx.Engine.CurrentBranch(ctx)
	if err != nil {
		current = ""
	}
	selected, err := ctx.Prompter.Select(message, stackBranches(ctx), current)
	if err != nil {
		return "", fmt.Errorf("no branch selected: %w", err)
	}
	return selected, nil
}
