package actions

import (
	"fmt"

	"stackit.dev/st/internal/engine"
	"stackit.dev/st/internal/output"
	"stackit.dev/st/internal/runtime"
)

// PrintConflictStatus displays conflict information and instructions to the user
func PrintConflictStatus(ctx *runtime.Context, report *engine.RestackReport) {
	splog := ctx.Splog
	splog.Info("%s", output.ColorRed(fmt.Sprintf("Hit conflict restacking %s on %s.", report.Conflict.Branch, report.Conflict.Parent)))
	splog.Newline()

	if len(report.ConflictFiles) > 0 {
		splog.Info("%s", output.ColorYellow("Unmerged files:"))
		for _, file := range report.ConflictFiles {
			splog.Info("%s", output.ColorRed(file))
		}
		splog.Newline()
	}

	if n := len(report.Conflict.Remaining); n > 0 {
		splog.Info("%d more branch(es) will be restacked afterwards.", n)
		splog.Newline()
	}

	splog.Info("%s", output.ColorYellow("To fix and continue the restack:"))
	splog.Info("(1) resolve the listed merge conflicts")
	splog.Info("(2) mark them as resolved with %s", output.ColorCyan("git add ."))
	splog.Info("(3) run %s to finish restacking", output.ColorCyan("st continue"))
	splog.Info("Run %s to stop and return to where you started.", output.ColorCyan("st abort"))
}
