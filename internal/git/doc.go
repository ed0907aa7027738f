// Package git provides the repository operations st needs.
//
// It wraps git command execution and go-git and offers:
//   - Branch queries and management (list, resolve, create, delete, checkout)
//   - Ancestry queries (merge base, is-ancestor)
//   - Rebase control (rebase --onto, continue, abort, conflict detection)
//   - Branch link storage as JSON blobs under refs/branch-metadata/
//
// This package should be the only place where direct git commands are executed.
package git
