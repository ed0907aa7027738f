package runtime

import (
	"context"
	"fmt"

	"stackit.dev/st/internal/config"
	"stackit.dev/st/internal/engine"
	"stackit.dev/st/internal/git"
	"stackit.dev/st/internal/output"
)

// Context provides access to engine and output for commands
type Context struct {
	context.Context
	Engine   *engine.Engine
	Splog    *output.Splog
	Prompter output.Prompter
	RepoRoot string
	GitDir   string
}

// NewContext creates a context around an existing engine
func NewContext(ctx context.Context, eng *engine.Engine, splog *output.Splog) *Context {
	return &Context{
		Context:  ctx,
		Engine:   eng,
		Splog:    splog,
		Prompter: output.SurveyPrompter{},
	}
}

// Open builds a context for the repository containing path. A repository
// without a configured trunk is initialized with an inferred one.
func Open(ctx context.Context, path string, splog *output.Splog) (*Context, error) {
	repo, err := git.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	trunk, err := EnsureTrunk(ctx, repo, splog)
	if err != nil {
		return nil, err
	}

	eng, err := engine.New(ctx, engine.Options{
		Trunk:      trunk,
		Repository: repo,
		Links:      git.NewMetadataStore(repo),
		State:      config.NewContinuationStore(repo.GitDir()),
		Logger:     splog.Logger(),
	})
	if err != nil {
		return nil, err
	}

	c := NewContext(ctx, eng, splog)
	c.RepoRoot = repo.Root()
	c.GitDir = repo.GitDir()
	return c, nil
}

// EnsureTrunk returns the configured trunk, writing an inferred one first
// when the repository has not been initialized
func EnsureTrunk(ctx context.Context, repo *git.Repository, splog *output.Splog) (string, error) {
	if config.IsInitialized(repo.GitDir()) {
		return config.GetTrunk(repo.GitDir())
	}

	branches, err := repo.BranchNames(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list branches: %w", err)
	}
	trunk := config.InferTrunk(branches)
	if trunk == "" {
		trunk = config.DefaultTrunk
	}
	if err := config.SetTrunk(repo.GitDir(), trunk); err != nil {
		return "", fmt.Errorf("failed to initialize st: %w", err)
	}
	splog.Debug("initialized trunk %s", trunk)
	return trunk, nil
}
