package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/st/internal/actions"
	"stackit.dev/st/internal/runtime"
)

// newCreateCmd creates the create command
func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "create <name>",
		Aliases: []string{"c"},
		Short:   "Create a new branch stacked on top of the current branch and check it out",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx *runtime.Context) error {
				return actions.CreateAction(ctx, actions.CreateOptions{BranchName: args[0]})
			})
		},
	}
}
