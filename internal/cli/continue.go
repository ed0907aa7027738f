package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/st/internal/actions"
)

// newContinueCmd creates the continue command
func newContinueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "continue",
		Short: "Continue a restack halted by a rebase conflict",
		Long: `Continue a restack halted by a rebase conflict.

Resolve the conflicts and stage them first. A rebase finished by hand is
accepted as is; one aborted by hand is attempted again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, actions.ContinueAction)
		},
	}
}
