package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackit.dev/st/internal/engine"
	"stackit.dev/st/internal/errors"
	"stackit.dev/st/testhelpers"
)

func TestTrack(t *testing.T) {
	t.Run("tracks a branch onto trunk", func(t *testing.T) {
		f := testhelpers.NewFakeEngine(t)
		f.Repo.Branch("a", "main", "a")

		require.NoError(t, f.Track(t.Context(), "a", "main"))

		parent, ok := f.GetParent("a")
		require.True(t, ok)
		assert.Equal(t, "main", parent)

		link, ok := f.GetLink("a")
		require.True(t, ok)
		mainRev, err := f.Repo.Revision(t.Context(), "main")
		require.NoError(t, err)
		assert.Equal(t, mainRev, link.ParentRevision)
		assert.Contains(t, f.Links.Links(), "a")
	})

	t.Run("re-tracking moves the branch", func(t *testing.T) {
		f := testhelpers.NewFakeEngine(t)
		f.Stack(t, "main", "a", "b")
		f.Stack(t, "main", "x")

		require.NoError(t, f.Track(t.Context(), "b", "x"))

		parent, _ := f.GetParent("b")
		assert.Equal(t, "x", parent)
		assert.Empty(t, f.GetChildren("a"))
		assert.Equal(t, []string{"b"}, f.GetChildren("x"))
	})

	t.Run("children keep insertion order", func(t *testing.T) {
		f := testhelpers.NewFakeEngine(t)
		f.Stack(t, "main", "a")
		for _, name := range []string{"z", "m", "b"} {
			f.Stack(t, "a", name)
		}
		assert.Equal(t, []string{"z", "m", "b"}, f.GetChildren("a"))
	})

	t.Run("rejects bad requests", func(t *testing.T) {
		f := testhelpers.NewFakeEngine(t)
		f.Stack(t, "main", "a", "b")
		f.Repo.Branch("loose", "main", "loose")
		f.Repo.Branch("other", "loose", "other")

		tests := []struct {
			name   string
			branch string
			parent string
			want   error
		}{
			{name: "trunk", branch: "main", parent: "a", want: errors.ErrTrunkOperation},
			{name: "unknown branch", branch: "missing", parent: "main", want: errors.ErrUnknownBranch},
			{name: "unknown parent", branch: "loose", parent: "missing", want: errors.ErrUnknownBranch},
			{name: "untracked parent", branch: "other", parent: "loose", want: errors.ErrParentNotTracked},
			{name: "onto itself", branch: "a", parent: "a", want: errors.ErrCycleDetected},
			{name: "onto a child", branch: "a", parent: "b", want: errors.ErrCycleDetected},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				writes := f.Links.Writes
				err := f.Track(t.Context(), tt.branch, tt.parent)
				require.ErrorIs(t, err, tt.want)
				assert.Equal(t, writes, f.Links.Writes)
			})
		}

		parent, _ := f.GetParent("a")
		assert.Equal(t, "main", parent)
	})
}

func TestUntrack(t *testing.T) {
	t.Run("closes the gap in the stack", func(t *testing.T) {
		f := newLinearStack(t, "c")

		result, err := f.Untrack(t.Context(), "b")
		require.NoError(t, err)
		assert.Equal(t, "a", result.Parent)
		assert.Equal(t, []string{"c"}, result.Reparented)

		assert.False(t, f.IsBranchTracked("b"))
		assert.True(t, f.Repo.HasBranch("b"), "untrack keeps the git branch")

		stack, _, err := f.CurrentStack(t.Context())
		require.NoError(t, err)
		assert.Equal(t, []string{"main", "a", "c"}, stack.Branches)
	})

	t.Run("survives a reload", func(t *testing.T) {
		f := newLinearStack(t, "c")
		_, err := f.Untrack(t.Context(), "b")
		require.NoError(t, err)

		f.Reload(t)
		parent, _ := f.GetParent("c")
		assert.Equal(t, "a", parent)
		assert.NotContains(t, f.Links.Links(), "b")
	})

	t.Run("rejects trunk and untracked branches", func(t *testing.T) {
		f := newLinearStack(t, "main")
		f.Repo.Branch("loose", "main", "loose")

		_, err := f.Untrack(t.Context(), "main")
		require.ErrorIs(t, err, errors.ErrTrunkOperation)
		_, err = f.Untrack(t.Context(), "loose")
		require.ErrorIs(t, err, errors.ErrBranchNotTracked)
	})
}

func TestCreate(t *testing.T) {
	t.Run("creates on top of the current branch", func(t *testing.T) {
		f := newLinearStack(t, "c")

		parent, err := f.Create(t.Context(), "d")
		require.NoError(t, err)
		assert.Equal(t, "c", parent)

		current, err := f.CurrentBranch(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "d", current)

		link, ok := f.GetLink("d")
		require.True(t, ok)
		assert.Equal(t, "c", link.Parent)
		cRev, err := f.Repo.Revision(t.Context(), "c")
		require.NoError(t, err)
		assert.Equal(t, cRev, link.ParentRevision)

		stack, _, err := f.CurrentStack(t.Context())
		require.NoError(t, err)
		assert.Equal(t, []string{"main", "a", "b", "c", "d"}, stack.Branches)
	})

	t.Run("creates on trunk", func(t *testing.T) {
		f := testhelpers.NewFakeEngine(t)

		parent, err := f.Create(t.Context(), "a")
		require.NoError(t, err)
		assert.Equal(t, "main", parent)
		assert.True(t, f.IsBranchTracked("a"))
	})

	t.Run("rejects an existing name", func(t *testing.T) {
		f := newLinearStack(t, "c")

		_, err := f.Create(t.Context(), "a")
		require.ErrorIs(t, err, errors.ErrBranchExists)
	})

	t.Run("rejects an untracked current branch", func(t *testing.T) {
		f := newLinearStack(t, "main")
		f.Repo.Branch("loose", "main", "loose")
		f.Repo.SetHead("loose")

		_, err := f.Create(t.Context(), "d")
		require.ErrorIs(t, err, errors.ErrBranchNotTracked)
		assert.False(t, f.Repo.HasBranch("d"))
	})

	t.Run("writes nothing when git fails", func(t *testing.T) {
		f := newLinearStack(t, "c")
		f.Repo.FailOn("CreateBranch", assert.AnError)
		writes := f.Links.Writes

		_, err := f.Create(t.Context(), "d")
		require.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, writes, f.Links.Writes)
		assert.False(t, f.IsBranchTracked("d"))
	})

	t.Run("leaves the branch untracked when tracking fails", func(t *testing.T) {
		f := newLinearStack(t, "c")
		f.Links.Err = assert.AnError

		_, err := f.Create(t.Context(), "d")
		require.ErrorIs(t, err, assert.AnError)
		assert.True(t, f.Repo.HasBranch("d"))
		assert.False(t, f.IsBranchTracked("d"))

		current, err := f.CurrentBranch(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "c", current)
	})
}

func TestDelete(t *testing.T) {
	t.Run("deletes a middle branch and closes the gap", func(t *testing.T) {
		f := newLinearStack(t, "main")

		result, err := f.Delete(t.Context(), "b")
		require.NoError(t, err)
		assert.Equal(t, []string{"c"}, result.Reparented)

		assert.False(t, f.Repo.HasBranch("b"))
		assert.False(t, f.IsBranchTracked("b"))
		parent, _ := f.GetParent("c")
		assert.Equal(t, "a", parent)

		stack, err := f.DiscoverStack(t.Context(), "c")
		require.NoError(t, err)
		assert.Equal(t, []string{"main", "a", "c"}, stack.Branches)
	})

	t.Run("rejects the current branch and trunk", func(t *testing.T) {
		f := newLinearStack(t, "b")

		_, err := f.Delete(t.Context(), "b")
		require.ErrorIs(t, err, errors.ErrDeleteCurrentBranch)
		_, err = f.Delete(t.Context(), "main")
		require.ErrorIs(t, err, errors.ErrTrunkOperation)
		assert.True(t, f.Repo.HasBranch("b"))
	})

	t.Run("rejects untracked branches", func(t *testing.T) {
		f := newLinearStack(t, "main")
		f.Repo.Branch("loose", "main", "loose")

		_, err := f.Delete(t.Context(), "loose")
		require.ErrorIs(t, err, errors.ErrBranchNotTracked)
		assert.True(t, f.Repo.HasBranch("loose"))
	})

	t.Run("restores links when git refuses", func(t *testing.T) {
		f := newLinearStack(t, "main")
		before := f.Links.Links()
		f.Repo.FailOn("DeleteBranch", assert.AnError)

		_, err := f.Delete(t.Context(), "b")
		require.ErrorIs(t, err, assert.AnError)

		assert.Equal(t, before, f.Links.Links())
		parent, _ := f.GetParent("c")
		assert.Equal(t, "b", parent)
		assert.True(t, f.IsBranchTracked("b"))
	})
}

func TestMutations_RestackInProgress(t *testing.T) {
	f := newLinearStack(t, "c")
	require.NoError(t, f.State.SaveRestackState(&engine.RestackState{Branch: "b", Parent: "a"}))
	f.Repo.Branch("loose", "main", "loose")

	require.ErrorIs(t, f.Track(t.Context(), "loose", "main"), errors.ErrRestackInProgress)
	_, err := f.Untrack(t.Context(), "b")
	require.ErrorIs(t, err, errors.ErrRestackInProgress)
	_, err = f.Create(t.Context(), "d")
	require.ErrorIs(t, err, errors.ErrRestackInProgress)
	_, err = f.Delete(t.Context(), "a")
	require.ErrorIs(t, err, errors.ErrRestackInProgress)
	_, err = f.RestackStack(t.Context(), "a", engine.ScopeStack)
	require.ErrorIs(t, err, errors.ErrRestackInProgress)
}
