package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/st/internal/output"
	"stackit.dev/st/internal/runtime"
)

// workDir returns the directory given with --cwd, or the current directory
func workDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("cwd")
	if dir == "" {
		return "."
	}
	return dir
}

// newSplog writes to the command's output and to the st log file
func newSplog(cmd *cobra.Command) *output.Splog {
	splog, err := output.NewSplogWithConfig(cmd.OutOrStdout(), output.GetLogFilePath())
	if err != nil {
		splog, _ = output.NewSplogWithConfig(cmd.OutOrStdout(), "")
		splog.Debug("logging to the console only: %v", err)
	}
	return splog
}

// run opens the repository and hands the command context to fn
func run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	splog := newSplog(cmd)
	defer splog.Close()

	ctx, err := runtime.Open(cmd.Context(), workDir(cmd), splog)
	if err != nil {
		return err
	}
	return fn(ctx)
}

// completeBranches completes trunk and tracked branch names
func completeBranches(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var branches []string
	err := run(cmd, func(ctx *runtime.Context) error {
		trunk := ctx.Engine.Trunk()
		branches = append([]string{trunk}, ctx.Engine.GetUpstack(trunk)...)
		return nil
	})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return branches, cobra.ShellCompDirectiveNoFileComp
}
