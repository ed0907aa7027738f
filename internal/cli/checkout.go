package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/st/internal/actions"
	"stackit.dev/st/internal/runtime"
)

// newCheckoutCmd creates the checkout command
func newCheckoutCmd() *cobra.Command {
	var trunk bool

	cmd := &cobra.Command{
		Use:               "checkout [branch]",
		Aliases:           []string{"co"},
		Short:             "Switch to a tracked branch. If no branch is provided, prompts for one.",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := actions.CheckoutOptions{CheckoutTrunk: trunk}
			if len(args) > 0 {
				opts.BranchName = args[0]
			}
			return run(cmd, func(ctx *runtime.Context) error {
				return actions.CheckoutAction(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVarP(&trunk, "trunk", "t", false, "Checkout the current trunk")

	return cmd
}
