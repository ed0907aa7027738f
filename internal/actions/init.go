package actions

import (
	"context"
	"fmt"
	"slices"

	"stackit.dev/st/internal/config"
	"stackit.dev/st/internal/errors"
	"stackit.dev/st/internal/git"
	"stackit.dev/st/internal/output"
)

// InitOptions contains options for the init command
type InitOptions struct {
	Trunk string
}

// InitAction stores the trunk branch of the repository. Without an explicit
// trunk a well-known name is inferred.
func InitAction(ctx context.Context, repo *git.Repository, splog *output.Splog, opts InitOptions) error {
	branches, err := repo.BranchNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list branches: %w", err)
	}

	trunk := opts.Trunk
	if trunk == "" {
		trunk = config.InferTrunk(branches)
		if trunk == "" {
			return fmt.Errorf("could not infer a trunk branch; pass --trunk")
		}
	}
	if !slices.Contains(branches, trunk) {
		return errors.NewUnknownBranchError(trunk)
	}

	if err := config.SetTrunk(repo.GitDir(), trunk); err != nil {
		return err
	}
	splog.Info("Trunk set to %s.", output.ColorBranchName(trunk, false))
	return nil
}
