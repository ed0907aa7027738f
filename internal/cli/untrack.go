package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/st/internal/actions"
	"stackit.dev/st/internal/runtime"
)

// newUntrackCmd creates the untrack command
func newUntrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "untrack [branch]",
		Short: "Stop tracking a branch. The git branch is kept.",
		Long: `Stop tracking a branch. The git branch is kept.

Defaults to the current branch. Its children move onto its parent.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts actions.UntrackOptions
			if len(args) > 0 {
				opts.BranchName = args[0]
			}
			return run(cmd, func(ctx *runtime.Context) error {
				return actions.UntrackAction(ctx, opts)
			})
		},
	}
}
