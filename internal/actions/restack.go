package actions

import (
	"stackit.dev/st/internal/engine"
	"stackit.dev/st/internal/errors"
	"stackit.dev/st/internal/output"
	"stackit.dev/st/internal/runtime"
)

// RestackOptions contains options for the restack command
type RestackOptions struct {
	BranchName string
	Scope      engine.RestackScope
}

// RestackAction rebases the stack around a branch onto its parents' tips
func RestackAction(ctx *runtime.Context, opts RestackOptions) error {
	branchName, err := branchOrCurrent(ctx, opts.BranchName)
	if err != nil {
		return err
	}

	report, err := ctx.Engine.RestackStack(ctx, branchName, opts.Scope)
	if err != nil {
		return err
	}
	if len(report.Steps) == 0 {
		ctx.Splog.Info("No branches to restack.")
		return nil
	}
	return printRestackReport(ctx, report)
}

// printRestackReport prints one line per visited branch. A halted pass
// prints the conflict and returns a RebaseConflictError.
func printRestackReport(ctx *runtime.Context, report *engine.RestackReport) error {
	current, err := ctx.Engine.CurrentBranch(ctx)
	if err != nil {
		current = ""
	}
	for _, step := range report.Steps {
		branch := output.ColorBranchName(step.Branch, step.Branch == current)
		parent := output.ColorBranchName(step.Parent, false)
		switch step.Status {
		case engine.RestackDone:
			ctx.Splog.Info("Restacked %s on %s.", branch, parent)
		case engine.RestackUnneeded:
			ctx.Splog.Info("%s does not need to be restacked on %s.", branch, parent)
		}
	}

	if !report.Halted() {
		return nil
	}
	PrintConflictStatus(ctx, report)
	return errors.NewRebaseConflictError(report.Conflict.Branch, report.Conflict.Remaining)
}
