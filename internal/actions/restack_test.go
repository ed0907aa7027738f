package actions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackit.dev/st/internal/actions"
	"stackit.dev/st/internal/engine"
	"stackit.dev/st/internal/errors"
)

func newMovedTrunkScene(t *testing.T) *actionScene {
	t.Helper()
	s := newActionScene(t)
	s.Stack(t, "main", "a", "b")
	s.Repo.Commit("main", "main update")
	s.Repo.SetHead("b")
	return s
}

func TestRestackAction(t *testing.T) {
	t.Run("reports each branch", func(t *testing.T) {
		s := newMovedTrunkScene(t)

		require.NoError(t, actions.RestackAction(s.Context, actions.RestackOptions{}))
		assert.Equal(t, []string{
			"Restacked a on main.",
			"Restacked b on a.",
		}, s.Lines())
		assert.Equal(t, "b", s.Current(t))
	})

	t.Run("nothing to do", func(t *testing.T) {
		s := newActionScene(t)
		s.Stack(t, "main", "a")

		require.NoError(t, actions.RestackAction(s.Context, actions.RestackOptions{BranchName: "a", Scope: engine.ScopeOnly}))
		assert.Equal(t, []string{"a does not need to be restacked on main."}, s.Lines())
	})

	t.Run("empty scope", func(t *testing.T) {
		s := newActionScene(t)

		require.NoError(t, actions.RestackAction(s.Context, actions.RestackOptions{BranchName: "main", Scope: engine.ScopeOnly}))
		assert.Equal(t, []string{"No branches to restack."}, s.Lines())
	})

	t.Run("conflict halts with instructions", func(t *testing.T) {
		s := newMovedTrunkScene(t)
		s.Repo.ConflictOn("a", 1)

		err := actions.RestackAction(s.Context, actions.RestackOptions{})
		var conflict *errors.RebaseConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "a", conflict.BranchName)
		assert.Equal(t, []string{"b"}, conflict.Remaining)

		lines := s.Lines()
		assert.Contains(t, lines, "Hit conflict restacking a on main.")
		assert.Contains(t, lines, "a_test.txt")
		assert.Contains(t, lines, "(3) run st continue to finish restacking")
	})
}

func TestContinueAction(t *testing.T) {
	t.Run("finishes the halted restack", func(t *testing.T) {
		s := newMovedTrunkScene(t)
		s.Repo.ConflictOn("a", 1)
		require.Error(t, actions.RestackAction(s.Context, actions.RestackOptions{}))
		s.Lines()

		require.NoError(t, actions.ContinueAction(s.Context))
		assert.Equal(t, []string{
			"Resolved rebase conflict for a.",
			"Restacked a on main.",
			"Restacked b on a.",
		}, s.Lines())
		assert.Equal(t, "b", s.Current(t))
	})

	t.Run("conflicts again", func(t *testing.T) {
		s := newMovedTrunkScene(t)
		s.Repo.ConflictOn("a", 2)
		require.Error(t, actions.RestackAction(s.Context, actions.RestackOptions{}))

		err := actions.ContinueAction(s.Context)
		require.ErrorIs(t, err, errors.ErrRestackConflict)
	})

	t.Run("nothing to continue", func(t *testing.T) {
		s := newActionScene(t)
		require.ErrorIs(t, actions.ContinueAction(s.Context), errors.ErrNoRestackInProgress)
	})
}

func TestAbortAction(t *testing.T) {
	newHalted := func(t *testing.T) *actionScene {
		s := newMovedTrunkScene(t)
		s.Repo.ConflictOn("a", 1)
		require.Error(t, actions.RestackAction(s.Context, actions.RestackOptions{}))
		s.Lines()
		return s
	}

	t.Run("force skips the confirmation", func(t *testing.T) {
		s := newHalted(t)

		require.NoError(t, actions.AbortAction(s.Context, actions.AbortOptions{Force: true}))
		assert.Equal(t, []string{"Aborted restack of a.", "Returned to b."}, s.Lines())
		assert.Equal(t, "b", s.Current(t))
		assert.Empty(t, s.Prompter.Asked)

		st, err := s.RestackInProgress()
		require.NoError(t, err)
		assert.Nil(t, st)
	})

	t.Run("warns when the original branch is gone", func(t *testing.T) {
		s := newHalted(t)
		require.NoError(t, s.Repo.DeleteBranch(t.Context(), "b"))

		require.NoError(t, actions.AbortAction(s.Context, actions.AbortOptions{Force: true}))
		assert.Equal(t, []string{"Aborted restack of a.", "⚠️  b no longer exists. Staying on a."}, s.Lines())
		assert.Equal(t, "a", s.Current(t))
	})

	t.Run("declined confirmation keeps the state", func(t *testing.T) {
		s := newHalted(t)
		s.Prompter.Confirmations = []bool{false}

		require.NoError(t, actions.AbortAction(s.Context, actions.AbortOptions{}))
		assert.Equal(t, []string{"Abort canceled."}, s.Lines())

		st, err := s.RestackInProgress()
		require.NoError(t, err)
		require.NotNil(t, st)
	})

	t.Run("nothing to abort", func(t *testing.T) {
		s := newActionScene(t)
		err := actions.AbortAction(s.Context, actions.AbortOptions{Force: true})
		require.ErrorIs(t, err, errors.ErrNoRestackInProgress)
	})
}
