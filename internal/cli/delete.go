package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/st/internal/actions"
	"stackit.dev/st/internal/runtime"
)

// newDeleteCmd creates the delete command
func newDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <branch>",
		Aliases: []string{"d"},
		Short:   "Delete a branch and its metadata",
		Long: `Delete a branch and its metadata.

Branches stacked on the deleted branch move onto its parent and are
restacked without its commits.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx *runtime.Context) error {
				return actions.DeleteAction(ctx, actions.DeleteOptions{
					BranchName: args[0],
					Force:      force,
				})
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not prompt for confirmation; delete immediately.")

	return cmd
}
