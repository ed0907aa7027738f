// Package runtime provides the execution context for st commands.
//
// It opens the repository, wires the engine to git and the on-disk stores,
// and carries the logger and prompter used by actions.
package runtime
