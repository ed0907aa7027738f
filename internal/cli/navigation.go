package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/st/internal/actions"
	"stackit.dev/st/internal/runtime"
)

func newNavigationCmd(use, short, long string, direction actions.Direction) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx *runtime.Context) error {
				return actions.SwitchBranchAction(ctx, direction)
			})
		},
	}
}

// newTopCmd creates the top command
func newTopCmd() *cobra.Command {
	return newNavigationCmd("top",
		"Switch to the tip branch of the current stack",
		`Switch to the tip branch of the current stack.

If the stack forks and the way up is not clear from the current branch,
you are asked which branch to follow.`,
		actions.DirectionTop)
}

// newBottomCmd creates the bottom command
func newBottomCmd() *cobra.Command {
	return newNavigationCmd("bottom",
		"Switch to the branch closest to trunk in the current stack",
		"Switch to the first branch above trunk in the current stack.",
		actions.DirectionBottom)
}

// newUpCmd creates the up command
func newUpCmd() *cobra.Command {
	return newNavigationCmd("up",
		"Switch to the child of the current branch",
		`Switch to the child of the current branch.

If the current branch has several children you are asked which one to take.`,
		actions.DirectionUp)
}

// newDownCmd creates the down command
func newDownCmd() *cobra.Command {
	return newNavigationCmd("down",
		"Switch to the parent of the current branch",
		"Switch to the parent of the current branch. Does nothing on trunk.",
		actions.DirectionDown)
}
