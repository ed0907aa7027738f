package git_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"stackit.dev/st/internal/errors"
	"stackit.dev/st/internal/git"
	"stackit.dev/st/testhelpers"
)

func TestOpen(t *testing.T) {
	t.Run("finds the repository from a subdirectory", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		sub := filepath.Join(scene.Dir, "nested", "dir")
		require.NoError(t, os.MkdirAll(sub, 0750))

		repo, err := git.Open(t.Context(), sub)
		require.NoError(t, err)

		root, err := filepath.EvalSymlinks(scene.Dir)
		require.NoError(t, err)
		gotRoot, err := filepath.EvalSymlinks(repo.Root())
		require.NoError(t, err)
		require.Equal(t, root, gotRoot)

		gotGitDir, err := filepath.EvalSymlinks(repo.GitDir())
		require.NoError(t, err)
		require.Equal(t, filepath.Join(root, ".git"), gotGitDir)
	})

	t.Run("fails outside a repository", func(t *testing.T) {
		_, err := git.Open(t.Context(), t.TempDir())
		require.Error(t, err)
	})
}

func TestBranches(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.StackSceneSetup("branch1", "branch2"))
	repo, err := git.Open(t.Context(), scene.Dir)
	require.NoError(t, err)

	t.Run("current branch", func(t *testing.T) {
		current, err := repo.CurrentBranchName(t.Context())
		require.NoError(t, err)
		require.Equal(t, "branch2", current)
	})

	t.Run("branch names are sorted", func(t *testing.T) {
		names, err := repo.BranchNames(t.Context())
		require.NoError(t, err)
		require.Equal(t, []string{"branch1", "branch2", "main"}, names)
	})

	t.Run("revision", func(t *testing.T) {
		want, err := scene.Repo.GetRevision("branch1")
		require.NoError(t, err)

		got, err := repo.Revision(t.Context(), "branch1")
		require.NoError(t, err)
		require.Equal(t, want, got)

		got, err = repo.Revision(t.Context(), want)
		require.NoError(t, err)
		require.Equal(t, want, got)

		_, err = repo.Revision(t.Context(), "missing")
		require.Error(t, err)
	})

	t.Run("merge base and ancestry", func(t *testing.T) {
		mainRev, err := scene.Repo.GetRevision("main")
		require.NoError(t, err)

		base, err := repo.MergeBase(t.Context(), "branch2", "main")
		require.NoError(t, err)
		require.Equal(t, mainRev, base)

		ok, err := repo.IsAncestor(t.Context(), "branch1", "branch2")
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = repo.IsAncestor(t.Context(), "branch2", "branch1")
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = repo.IsAncestor(t.Context(), "branch1", "branch1")
		require.NoError(t, err)
		require.True(t, ok)
	})
}

func TestBranchOps(t *testing.T) {
	t.Run("create, checkout and delete", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo, err := git.Open(t.Context(), scene.Dir)
		require.NoError(t, err)

		require.NoError(t, repo.CreateBranch(t.Context(), "feature", "main"))
		require.True(t, scene.Repo.BranchExists("feature"))

		current, err := repo.CurrentBranchName(t.Context())
		require.NoError(t, err)
		require.Equal(t, "main", current, "creating does not check out")

		require.NoError(t, repo.CheckoutBranch(t.Context(), "feature"))
		current, err = repo.CurrentBranchName(t.Context())
		require.NoError(t, err)
		require.Equal(t, "feature", current)

		require.Error(t, repo.CreateBranch(t.Context(), "feature", "main"))

		require.NoError(t, repo.CheckoutBranch(t.Context(), "main"))
		require.NoError(t, repo.DeleteBranch(t.Context(), "feature"))
		require.False(t, scene.Repo.BranchExists("feature"))
	})

	t.Run("detached HEAD has no current branch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CheckoutDetached("main"))
		repo, err := git.Open(t.Context(), scene.Dir)
		require.NoError(t, err)

		_, err = repo.CurrentBranchName(t.Context())
		require.ErrorIs(t, err, errors.ErrNotOnBranch)
	})

	t.Run("checkout of a missing branch fails", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo, err := git.Open(t.Context(), scene.Dir)
		require.NoError(t, err)

		err = repo.CheckoutBranch(t.Context(), "missing")
		var gitErr *errors.GitCommandError
		require.ErrorAs(t, err, &gitErr)
	})
}
