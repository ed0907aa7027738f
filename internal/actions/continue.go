package actions

import (
	"stackit.dev/st/internal/output"
	"stackit.dev/st/internal/runtime"
)

// ContinueAction resumes a restack halted by a conflict
func ContinueAction(ctx *runtime.Context) error {
	st, err := ctx.Engine.RestackInProgress()
	if err != nil {
		return err
	}

	report, err := ctx.Engine.Continue(ctx)
	if err != nil {
		return err
	}
	if !report.Halted() && st != nil {
		ctx.Splog.Info("Resolved rebase conflict for %s.", output.ColorBranchName(st.Branch, false))
	}
	return printRestackReport(ctx, report)
}
