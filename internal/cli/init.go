package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/st/internal/actions"
	"stackit.dev/st/internal/git"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	var trunk string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set the trunk branch of the repository",
		Long: `Set the trunk branch of the repository.

Without --trunk the first of main, master, development and develop that
exists is used. Other commands do this on first use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			splog := newSplog(cmd)
			defer splog.Close()

			repo, err := git.Open(cmd.Context(), workDir(cmd))
			if err != nil {
				return err
			}
			return actions.InitAction(cmd.Context(), repo, splog, actions.InitOptions{Trunk: trunk})
		},
	}

	cmd.Flags().StringVar(&trunk, "trunk", "", "The name of your trunk branch")

	return cmd
}
