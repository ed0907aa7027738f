package actions

import (
	"strings"

	"stackit.dev/st/internal/output"
	"stackit.dev/st/internal/runtime"
)

// LogAction prints every tracked branch as a tree rooted at trunk
func LogAction(ctx *runtime.Context) error {
	current, err := ctx.Engine.CurrentBranch(ctx)
	if err != nil {
		current = ""
	}

	renderer := output.NewStackTreeRenderer(
		current,
		ctx.Engine.Trunk(),
		ctx.Engine.GetChildren,
		func(branchName string) bool {
			needs, err := ctx.Engine.NeedsRestack(ctx, branchName)
			if err != nil {
				ctx.Splog.Debug("could not check %s: %v", branchName, err)
				return false
			}
			return needs
		},
	)
	ctx.Splog.Page(strings.Join(renderer.Render(), "\n") + "\n")
	return nil
}
