// Package config manages st configuration and state persistence.
//
// It handles:
//   - Repository-specific configuration (the trunk branch)
//   - Continuation state for a restack halted by a conflict
package config
