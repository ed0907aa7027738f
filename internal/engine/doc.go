// Package engine manages the state and relationships of stacked branches.
//
// It is the core of st, responsible for:
//   - Tracking parent-child links between branches
//   - Discovering the ordered stack a branch belongs to
//   - Navigating up and down a stack
//   - Restacking branches onto their parents, resumable after conflicts
//
// The engine does not run git itself. It drives a Repository and persists
// links through a LinkStorage, both supplied by the caller.
package engine
