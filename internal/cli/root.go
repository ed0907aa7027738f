package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "st",
		Short: "st keeps stacks of dependent git branches in order",
		Long: `st keeps stacks of dependent git branches in order.

Each tracked branch records the branch it is stacked on. st moves through
those stacks and rebases them onto their parents after the parents change.`,
		Version:       version + " (" + commit + ", " + date + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("cwd", "C", "", "Run as if st was started in this directory")

	rootCmd.AddCommand(
		newInitCmd(),
		newTopCmd(),
		newBottomCmd(),
		newUpCmd(),
		newDownCmd(),
		newCheckoutCmd(),
		newCreateCmd(),
		newDeleteCmd(),
		newTrackCmd(),
		newUntrackCmd(),
		newRestackCmd(),
		newContinueCmd(),
		newAbortCmd(),
		newLogCmd(),
	)

	return rootCmd
}
