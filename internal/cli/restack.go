package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/st/internal/actions"
	"stackit.dev/st/internal/engine"
	"stackit.dev/st/internal/runtime"
)

// newRestackCmd creates the restack command
func newRestackCmd() *cobra.Command {
	var (
		branch    string
		only      bool
		upstack   bool
		downstack bool
	)

	cmd := &cobra.Command{
		Use:   "restack",
		Short: "Ensure each branch in the current stack has its parent in its Git commit history, rebasing if necessary",
		Long: `Ensure each branch in the current stack has its parent in its Git commit history, rebasing if necessary.

If a rebase hits a conflict, resolve it and run 'st continue', or run
'st abort' to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope := engine.ScopeStack
			switch {
			case only:
				scope = engine.ScopeOnly
			case upstack:
				scope = engine.ScopeUpstack
			case downstack:
				scope = engine.ScopeDownstack
			}
			return run(cmd, func(ctx *runtime.Context) error {
				return actions.RestackAction(ctx, actions.RestackOptions{
					BranchName: branch,
					Scope:      scope,
				})
			})
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "", "Which branch to run this command from. Defaults to the current branch.")
	cmd.Flags().BoolVar(&downstack, "downstack", false, "Only restack this branch and its ancestors.")
	cmd.Flags().BoolVar(&only, "only", false, "Only restack this branch.")
	cmd.Flags().BoolVar(&upstack, "upstack", false, "Only restack this branch and its descendants.")
	cmd.MarkFlagsMutuallyExclusive("only", "upstack", "downstack")
	_ = cmd.RegisterFlagCompletionFunc("branch", completeBranches)

	return cmd
}
