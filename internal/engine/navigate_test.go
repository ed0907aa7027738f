package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackit.dev/st/internal/engine"
	"stackit.dev/st/internal/errors"
	"stackit.dev/st/testhelpers"
)

func newLinearStack(t *testing.T, current string) *testhelpers.FakeEngine {
	t.Helper()
	f := testhelpers.NewFakeEngine(t)
	f.Stack(t, "main", "a", "b", "c")
	f.Repo.SetHead(current)
	return f
}

func TestNavigation(t *testing.T) {
	type navigate func(*testhelpers.FakeEngine) (engine.Move, error)
	top := func(f *testhelpers.FakeEngine) (engine.Move, error) { return f.Top(t.Context()) }
	bottom := func(f *testhelpers.FakeEngine) (engine.Move, error) { return f.Bottom(t.Context()) }
	up := func(f *testhelpers.FakeEngine) (engine.Move, error) { return f.Up(t.Context()) }
	down := func(f *testhelpers.FakeEngine) (engine.Move, error) { return f.Down(t.Context()) }

	tests := []struct {
		name     string
		current  string
		op       navigate
		wantKind engine.MoveKind
		want     string
	}{
		{name: "top from the middle", current: "b", op: top, wantKind: engine.Moved, want: "c"},
		{name: "top from trunk", current: "main", op: top, wantKind: engine.Moved, want: "c"},
		{name: "top at the top", current: "c", op: top, wantKind: engine.Moved, want: "c"},
		{name: "bottom from the top", current: "c", op: bottom, wantKind: engine.Moved, want: "a"},
		{name: "bottom from trunk", current: "main", op: bottom, wantKind: engine.Moved, want: "a"},
		{name: "up from the bottom", current: "a", op: up, wantKind: engine.Moved, want: "b"},
		{name: "up from trunk", current: "main", op: up, wantKind: engine.Moved, want: "a"},
		{name: "up at the top", current: "c", op: up, wantKind: engine.AlreadyAtTop, want: "c"},
		{name: "down from the top", current: "c", op: down, wantKind: engine.Moved, want: "b"},
		{name: "down from the bottom", current: "a", op: down, wantKind: engine.Moved, want: "main"},
		{name: "down on trunk", current: "main", op: down, wantKind: engine.AlreadyAtTrunk, want: "main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLinearStack(t, tt.current)

			move, err := tt.op(f)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, move.Kind)
			assert.Equal(t, tt.want, move.Branch)
			assert.Equal(t, tt.current, move.From)

			current, err := f.CurrentBranch(t.Context())
			require.NoError(t, err)
			assert.Equal(t, tt.want, current)

			if tt.want == tt.current {
				assert.Zero(t, f.Repo.CheckoutCalls, "staying put must not check out")
			}
		})
	}
}

func TestNavigation_Errors(t *testing.T) {
	t.Run("every direction needs a stack", func(t *testing.T) {
		f := testhelpers.NewFakeEngine(t)

		for _, op := range []func() (engine.Move, error){
			func() (engine.Move, error) { return f.Top(t.Context()) },
			func() (engine.Move, error) { return f.Bottom(t.Context()) },
			func() (engine.Move, error) { return f.Up(t.Context()) },
			func() (engine.Move, error) { return f.Down(t.Context()) },
		} {
			_, err := op()
			require.ErrorIs(t, err, errors.ErrNoStackFound)
		}
		assert.Zero(t, f.Repo.CheckoutCalls)
	})

	t.Run("untracked current branch", func(t *testing.T) {
		f := newLinearStack(t, "main")
		f.Repo.Branch("loose", "main", "loose")
		f.Repo.SetHead("loose")

		for _, op := range []func() (engine.Move, error){
			func() (engine.Move, error) { return f.Top(t.Context()) },
			func() (engine.Move, error) { return f.Bottom(t.Context()) },
			func() (engine.Move, error) { return f.Up(t.Context()) },
			func() (engine.Move, error) { return f.Down(t.Context()) },
		} {
			_, err := op()
			require.ErrorIs(t, err, errors.ErrBranchNotTracked)
		}
		assert.Zero(t, f.Repo.CheckoutCalls)
	})

	t.Run("checkout failure propagates", func(t *testing.T) {
		f := newLinearStack(t, "a")
		boom := assert.AnError
		f.Repo.FailOn("CheckoutBranch", boom)

		_, err := f.Up(t.Context())
		require.ErrorIs(t, err, boom)

		current, err := f.CurrentBranch(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "a", current)
	})

	t.Run("refuses to move during a restack", func(t *testing.T) {
		f := newLinearStack(t, "a")
		require.NoError(t, f.State.SaveRestackState(&engine.RestackState{Branch: "b", Parent: "a"}))

		_, err := f.Up(t.Context())
		require.ErrorIs(t, err, errors.ErrRestackInProgress)
		_, err = f.Checkout(t.Context(), "c")
		require.ErrorIs(t, err, errors.ErrRestackInProgress)
	})
}

func TestNavigation_FanOut(t *testing.T) {
	// main -> a -> {b, c}
	newFork := func(t *testing.T, current string) *testhelpers.FakeEngine {
		f := testhelpers.NewFakeEngine(t)
		f.Stack(t, "main", "a", "b")
		f.Stack(t, "a", "c")
		f.Repo.SetHead(current)
		return f
	}

	t.Run("top at a fork is ambiguous", func(t *testing.T) {
		f := newFork(t, "a")

		_, err := f.Top(t.Context())
		require.ErrorIs(t, err, errors.ErrAmbiguousStack)

		var ambiguous *errors.AmbiguousStackError
		require.ErrorAs(t, err, &ambiguous)
		assert.Equal(t, "a", ambiguous.BranchName)
		assert.Equal(t, []string{"b", "c"}, ambiguous.Children)
	})

	t.Run("up at a fork is ambiguous", func(t *testing.T) {
		f := newFork(t, "a")

		_, err := f.Up(t.Context())
		require.ErrorIs(t, err, errors.ErrAmbiguousStack)
	})

	t.Run("bottom and down ignore the fork", func(t *testing.T) {
		f := newFork(t, "c")

		move, err := f.Bottom(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "a", move.Branch)

		f.Repo.SetHead("c")
		move, err = f.Down(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "a", move.Branch)
	})

	t.Run("top and bottom on trunk with two stacks are ambiguous", func(t *testing.T) {
		f := testhelpers.NewFakeEngine(t)
		f.Stack(t, "main", "a", "b")
		f.Stack(t, "main", "x", "y")
		f.Repo.SetHead("main")

		for _, op := range []func() (engine.Move, error){
			func() (engine.Move, error) { return f.Top(t.Context()) },
			func() (engine.Move, error) { return f.Bottom(t.Context()) },
			func() (engine.Move, error) { return f.Up(t.Context()) },
		} {
			_, err := op()
			var ambiguous *errors.AmbiguousStackError
			require.ErrorAs(t, err, &ambiguous)
			assert.Equal(t, "main", ambiguous.BranchName)
			assert.Equal(t, []string{"a", "x"}, ambiguous.Children)
		}

		move, err := f.Down(t.Context())
		require.NoError(t, err)
		assert.Equal(t, engine.AlreadyAtTrunk, move.Kind)
		assert.Zero(t, f.Repo.CheckoutCalls)
	})

	t.Run("a branch on one side of the fork sees its own path", func(t *testing.T) {
		f := newFork(t, "b")

		move, err := f.Top(t.Context())
		require.NoError(t, err)
		assert.Equal(t, engine.Moved, move.Kind)
		assert.Equal(t, "b", move.Branch)

		move, err = f.Up(t.Context())
		require.NoError(t, err)
		assert.Equal(t, engine.AlreadyAtTop, move.Kind)
	})
}

func TestCheckout(t *testing.T) {
	t.Run("switches to a tracked branch", func(t *testing.T) {
		f := newLinearStack(t, "main")

		move, err := f.Checkout(t.Context(), "b")
		require.NoError(t, err)
		assert.Equal(t, engine.Moved, move.Kind)
		assert.Equal(t, "b", move.Branch)
		assert.Equal(t, 1, f.Repo.CheckoutCalls)
	})

	t.Run("switches to trunk", func(t *testing.T) {
		f := newLinearStack(t, "c")

		move, err := f.Checkout(t.Context(), "main")
		require.NoError(t, err)
		assert.Equal(t, "main", move.Branch)
	})

	t.Run("rejects untracked and unknown branches", func(t *testing.T) {
		f := newLinearStack(t, "main")
		f.Repo.Branch("loose", "main", "loose")

		_, err := f.Checkout(t.Context(), "loose")
		require.ErrorIs(t, err, errors.ErrBranchNotTracked)

		_, err = f.Checkout(t.Context(), "missing")
		require.ErrorIs(t, err, errors.ErrUnknownBranch)
	})
}
