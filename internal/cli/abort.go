package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/st/internal/actions"
	"stackit.dev/st/internal/runtime"
)

// newAbortCmd creates the abort command
func newAbortCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "abort",
		Short: "Abort a restack halted by a rebase conflict",
		Long: `Abort a restack halted by a rebase conflict.

The conflicted branch is rolled back and the branch the restack started
from is checked out again. Branches restacked before the conflict keep
their new base.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx *runtime.Context) error {
				return actions.AbortAction(ctx, actions.AbortOptions{Force: force})
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not prompt for confirmation; abort immediately.")

	return cmd
}
