package engine

import (
	"context"
	"slices"

	"stackit.dev/st/internal/errors"
)

// DiscoverStack returns the stack anchorName belongs to, trunk first.
//
// The walk goes up the parent links to trunk, then down through the single
// child of each branch. Where a branch has several children, only the one on
// the current branch's lineage is followed; if there is none the stack ends
// at that branch and the fork is recorded. Only one path is walked.
func (e *Engine) DiscoverStack(ctx context.Context, anchorName string) (Stack, error) {
	current, err := e.CurrentBranch(ctx)
	if err != nil {
		// Detached HEAD has no lineage to disambiguate with.
		current = ""
	}
	g := e.snapshot()
	if !e.IsTrunk(anchorName) && !g.isTracked(anchorName) {
		return Stack{}, errors.NewBranchNotTrackedError(anchorName)
	}
	return g.discover(anchorName, g.lineage(current)), nil
}

// CurrentStack discovers the stack of the checked out branch
func (e *Engine) CurrentStack(ctx context.Context) (Stack, string, error) {
	current, err := e.CurrentBranch(ctx)
	if err != nil {
		return Stack{}, "", err
	}
	stack, err := e.DiscoverStack(ctx, current)
	if err != nil {
		return Stack{}, "", err
	}
	return stack, current, nil
}

func (g *linkGraph) discover(anchorName string, lineage map[string]bool) Stack {
	branches := g.ancestors(anchorName)
	branches = append(branches, anchorName)

	seen := make(map[string]bool, len(branches))
	for _, b := range branches {
		seen[b] = true
	}

	stack := Stack{}
	for cur := anchorName; ; {
		kids := g.children[cur]
		var next string
		switch len(kids) {
		case 0:
		case 1:
			next = kids[0]
		default:
			onLineage := slices.DeleteFunc(slices.Clone(kids), func(k string) bool {
				return !lineage[k]
			})
			if len(onLineage) == 1 {
				next = onLineage[0]
			} else {
				stack.ForkPoint = cur
				stack.ForkChildren = slices.Clone(kids)
			}
		}
		if next == "" || seen[next] {
			break
		}
		seen[next] = true
		branches = append(branches, next)
		cur = next
	}
	stack.Branches = branches
	return stack
}
