package actions

import (
	"fmt"

	"stackit.dev/st/internal/output"
	"stackit.dev/st/internal/runtime"
)

// DeleteOptions contains options for the delete command
type DeleteOptions struct {
	BranchName string
	Force      bool
}

// DeleteAction deletes a branch and restacks the branches that were on it
// onto its parent
func DeleteAction(ctx *runtime.Context, opts DeleteOptions) error {
	branchName := opts.BranchName
	if !opts.Force {
		msg := fmt.Sprintf("Delete %s? Its commits will be lost.", branchName)
		confirmed, err := ctx.Prompter.Confirm(msg, false)
		if err != nil {
			return fmt.Errorf("failed to get confirmation: %w", err)
		}
		if !confirmed {
			ctx.Splog.Info("Delete canceled.")
			return nil
		}
	}

	result, err := ctx.Engine.Delete(ctx, branchName)
	if err != nil {
		return err
	}
	ctx.Splog.Info("Deleted %s.", output.ColorBranchName(branchName, false))
	printReparented(ctx, result.Reparented, result.Parent)

	if len(result.Reparented) == 0 {
		return nil
	}
	var work []string
	for _, child := range result.Reparented {
		work = append(work, child)
		work = append(work, ctx.Engine.GetUpstack(child)...)
	}
	report, err := ctx.Engine.Restack(ctx, work)
	if err != nil {
		return err
	}
	return printRestackReport(ctx, report)
}
