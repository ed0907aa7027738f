package engine

import (
	"cmp"
	"maps"
	"slices"

	"stackit.dev/st/internal/errors"
)

// linkGraph is the in-memory index over persisted links.
// Every tracked branch has exactly one parent; trunk has none.
type linkGraph struct {
	trunk    string
	links    map[string]Link
	children map[string][]string // parent -> children ordered by Seq
	maxSeq   int64
}

func newLinkGraph(trunk string, links map[string]Link) *linkGraph {
	g := &linkGraph{
		trunk: trunk,
		links: make(map[string]Link, len(links)),
	}
	maps.Copy(g.links, links)
	g.reindex()
	return g
}

// reindex rebuilds the children index from links
func (g *linkGraph) reindex() {
	g.children = make(map[string][]string)
	g.maxSeq = 0
	for name, link := range g.links {
		g.children[link.Parent] = append(g.children[link.Parent], name)
		g.maxSeq = max(g.maxSeq, link.Seq)
	}
	for parent, kids := range g.children {
		slices.SortFunc(kids, func(a, b string) int {
			if c := cmp.Compare(g.links[a].Seq, g.links[b].Seq); c != 0 {
				return c
			}
			return cmp.Compare(a, b)
		})
		g.children[parent] = kids
	}
}

func (g *linkGraph) link(branchName string) (Link, bool) {
	link, ok := g.links[branchName]
	return link, ok
}

func (g *linkGraph) parent(branchName string) (string, bool) {
	link, ok := g.links[branchName]
	if !ok {
		return "", false
	}
	return link.Parent, true
}

func (g *linkGraph) isTracked(branchName string) bool {
	_, ok := g.links[branchName]
	return ok
}

// childrenOf returns a copy of the children of branchName in insertion order
func (g *linkGraph) childrenOf(branchName string) []string {
	return slices.Clone(g.children[branchName])
}

func (g *linkGraph) nextSeq() int64 {
	return g.maxSeq + 1
}

// reaches reports whether target is from or one of its ancestors
func (g *linkGraph) reaches(from, target string) bool {
	seen := make(map[string]bool)
	for cur := from; ; {
		if cur == target {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
		parent, ok := g.parent(cur)
		if !ok {
			return false
		}
		cur = parent
	}
}

// checkParent rejects parent assignments that would close a loop
func (g *linkGraph) checkParent(branchName, parentName string) error {
	if branchName == g.trunk {
		return errors.NewTrunkOperationError(branchName)
	}
	if g.reaches(parentName, branchName) {
		return errors.NewCycleError(branchName, parentName)
	}
	return nil
}

// removal builds the batch that detaches branchName and hands its
// children to its former parent
func (g *linkGraph) removal(branchName string) (LinkBatch, RemoveResult) {
	link := g.links[branchName]
	batch := LinkBatch{
		Upsert: make(map[string]Link),
		Delete: []string{branchName},
	}
	result := RemoveResult{Parent: link.Parent}
	for _, child := range g.children[branchName] {
		childLink := g.links[child]
		childLink.Parent = link.Parent
		batch.Upsert[child] = childLink
		result.Reparented = append(result.Reparented, child)
	}
	return batch, result
}

// inverse builds the batch that undoes batch against the current graph
func (g *linkGraph) inverse(batch LinkBatch) LinkBatch {
	undo := LinkBatch{Upsert: make(map[string]Link)}
	for name := range batch.Upsert {
		if old, ok := g.links[name]; ok {
			undo.Upsert[name] = old
		} else {
			undo.Delete = append(undo.Delete, name)
		}
	}
	for _, name := range batch.Delete {
		if old, ok := g.links[name]; ok {
			undo.Upsert[name] = old
		}
	}
	return undo
}

// apply returns a new graph with batch applied
func (g *linkGraph) apply(batch LinkBatch) *linkGraph {
	links := maps.Clone(g.links)
	for _, name := range batch.Delete {
		delete(links, name)
	}
	maps.Copy(links, batch.Upsert)
	return newLinkGraph(g.trunk, links)
}

// descendants returns every branch above branchName, parents before children
func (g *linkGraph) descendants(branchName string) []string {
	var out []string
	queue := g.childrenOf(branchName)
	seen := map[string]bool{branchName: true}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		out = append(out, cur)
		queue = append(queue, g.children[cur]...)
	}
	return out
}

// ancestors returns the path from trunk down to the parent of branchName
func (g *linkGraph) ancestors(branchName string) []string {
	var path []string
	seen := map[string]bool{branchName: true}
	for cur := branchName; ; {
		parent, ok := g.parent(cur)
		if !ok || seen[parent] {
			break
		}
		seen[parent] = true
		path = append(path, parent)
		cur = parent
	}
	slices.Reverse(path)
	return path
}

// lineage returns branchName and all of its ancestors
func (g *linkGraph) lineage(branchName string) map[string]bool {
	out := map[string]bool{}
	if branchName == "" {
		return out
	}
	out[branchName] = true
	for _, b := range g.ancestors(branchName) {
		out[b] = true
	}
	return out
}

// loadLinkGraph validates stored links against the branches that exist.
// Links of vanished branches are dropped and links to vanished parents are
// resolved to the nearest surviving ancestor; nothing is written back.
func loadLinkGraph(trunk string, stored map[string]Link, existing map[string]bool) (*linkGraph, []string, error) {
	links := make(map[string]Link)
	for name, link := range stored {
		if name == trunk || !existing[name] {
			continue
		}
		links[name] = link
	}

	var repaired []string
	for _, name := range slices.Sorted(maps.Keys(links)) {
		link := links[name]
		if link.Parent == trunk {
			continue
		}
		if _, ok := links[link.Parent]; ok {
			continue
		}
		link.Parent = survivingAncestor(trunk, link.Parent, stored, links)
		links[name] = link
		repaired = append(repaired, name)
	}

	g := newLinkGraph(trunk, links)
	for _, name := range slices.Sorted(maps.Keys(links)) {
		seen := map[string]bool{}
		for cur := name; cur != trunk; {
			if seen[cur] {
				return nil, nil, &errors.CorruptMetadataError{BranchName: name, Reason: "parent links form a cycle"}
			}
			seen[cur] = true
			parent, ok := g.parent(cur)
			if !ok {
				break
			}
			cur = parent
		}
	}
	return g, repaired, nil
}

func survivingAncestor(trunk, start string, stored, live map[string]Link) string {
	seen := map[string]bool{}
	for cur := start; !seen[cur]; {
		seen[cur] = true
		if cur == trunk {
			return trunk
		}
		if _, ok := live[cur]; ok {
			return cur
		}
		link, ok := stored[cur]
		if !ok {
			break
		}
		cur = link.Parent
	}
	return trunk
}
