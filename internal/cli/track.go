package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/st/internal/actions"
	"stackit.dev/st/internal/runtime"
)

// newTrackCmd creates the track command
func newTrackCmd() *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "track [branch]",
		Short: "Start tracking a branch by recording its parent",
		Long: `Start tracking a branch by recording its parent.

Defaults to the current branch. Without --parent you are asked to pick one
of the tracked branches. Tracking an already tracked branch moves it.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := actions.TrackOptions{Parent: parent}
			if len(args) > 0 {
				opts.BranchName = args[0]
			}
			return run(cmd, func(ctx *runtime.Context) error {
				return actions.TrackAction(ctx, opts)
			})
		},
	}

	cmd.Flags().StringVarP(&parent, "parent", "p", "", "The tracked branch's parent. Must be trunk or a tracked branch.")
	_ = cmd.RegisterFlagCompletionFunc("parent", completeBranches)

	return cmd
}
