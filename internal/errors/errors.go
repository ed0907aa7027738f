// Package errors provides sentinel errors and custom error types for st.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrNoStackFound indicates the stack contains nothing but trunk
	ErrNoStackFound = errors.New("no stack found")

	// ErrBranchNotTracked indicates a branch has no stack metadata
	ErrBranchNotTracked = errors.New("branch is not tracked")

	// ErrUnknownBranch indicates that a branch does not exist in git
	ErrUnknownBranch = errors.New("branch does not exist")

	// ErrParentNotTracked indicates an attempt to stack onto an untracked branch
	ErrParentNotTracked = errors.New("parent branch is not tracked")

	// ErrCycleDetected indicates a parent assignment would create a loop
	ErrCycleDetected = errors.New("cycle detected")

	// ErrAmbiguousStack indicates a branch has several children and none can be picked
	ErrAmbiguousStack = errors.New("ambiguous stack")

	// ErrRestackConflict indicates that a restack halted on a rebase conflict
	ErrRestackConflict = errors.New("restack conflict")

	// ErrRestackInProgress indicates a halted restack must be continued or aborted first
	ErrRestackInProgress = errors.New("restack in progress")

	// ErrNoRestackInProgress indicates there is nothing to continue or abort
	ErrNoRestackInProgress = errors.New("no restack in progress")

	// ErrTrunkOperation indicates an invalid operation on the trunk branch
	ErrTrunkOperation = errors.New("invalid operation on trunk branch")

	// ErrDeleteCurrentBranch indicates an attempt to delete the checked out branch
	ErrDeleteCurrentBranch = errors.New("cannot delete the current branch")

	// ErrBranchExists indicates a branch with that name already exists
	ErrBranchExists = errors.New("branch already exists")

	// ErrCorruptMetadata indicates the persisted links are inconsistent
	ErrCorruptMetadata = errors.New("corrupt branch metadata")
)

// BranchError ties a sentinel kind to the branch it concerns.
type BranchError struct {
	Kind       error
	BranchName string
}

func (e *BranchError) Error() string {
	switch e.Kind {
	case ErrBranchNotTracked:
		return fmt.Sprintf("branch %s is not tracked; run 'st track %s' first", e.BranchName, e.BranchName)
	case ErrUnknownBranch:
		return fmt.Sprintf("branch %s does not exist", e.BranchName)
	case ErrParentNotTracked:
		return fmt.Sprintf("parent branch %s is not tracked", e.BranchName)
	case ErrBranchExists:
		return fmt.Sprintf("branch %s already exists", e.BranchName)
	case ErrDeleteCurrentBranch:
		return fmt.Sprintf("cannot delete %s while it is checked out", e.BranchName)
	case ErrTrunkOperation:
		return fmt.Sprintf("invalid operation on trunk branch %s", e.BranchName)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.BranchName)
}

// Is reports whether target is the sentinel kind of this error
func (e *BranchError) Is(target error) bool {
	return target == e.Kind
}

// NewBranchNotTrackedError creates an ErrBranchNotTracked error for branchName
func NewBranchNotTrackedError(branchName string) *BranchError {
	return &BranchError{Kind: ErrBranchNotTracked, BranchName: branchName}
}

// NewUnknownBranchError creates an ErrUnknownBranch error for branchName
func NewUnknownBranchError(branchName string) *BranchError {
	return &BranchError{Kind: ErrUnknownBranch, BranchName: branchName}
}

// NewParentNotTrackedError creates an ErrParentNotTracked error for branchName
func NewParentNotTrackedError(branchName string) *BranchError {
	return &BranchError{Kind: ErrParentNotTracked, BranchName: branchName}
}

// NewBranchExistsError creates an ErrBranchExists error for branchName
func NewBranchExistsError(branchName string) *BranchError {
	return &BranchError{Kind: ErrBranchExists, BranchName: branchName}
}

// NewDeleteCurrentBranchError creates an ErrDeleteCurrentBranch error for branchName
func NewDeleteCurrentBranchError(branchName string) *BranchError {
	return &BranchError{Kind: ErrDeleteCurrentBranch, BranchName: branchName}
}

// NewTrunkOperationError creates an ErrTrunkOperation error for branchName
func NewTrunkOperationError(branchName string) *BranchError {
	return &BranchError{Kind: ErrTrunkOperation, BranchName: branchName}
}

// CycleError reports a parent assignment that would loop back onto the branch
type CycleError struct {
	BranchName string
	ParentName string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cannot stack %s onto %s: %s is already upstack of %s", e.BranchName, e.ParentName, e.ParentName, e.BranchName)
}

// Is returns true if the target error is ErrCycleDetected
func (e *CycleError) Is(target error) bool {
	return target == ErrCycleDetected
}

// NewCycleError creates a new CycleError
func NewCycleError(branchName, parentName string) *CycleError {
	return &CycleError{BranchName: branchName, ParentName: parentName}
}

// AmbiguousStackError reports a fan-out that navigation cannot resolve on its own
type AmbiguousStackError struct {
	BranchName string
	Children   []string
}

func (e *AmbiguousStackError) Error() string {
	return fmt.Sprintf("%s has multiple children (%s); pick one explicitly", e.BranchName, strings.Join(e.Children, ", "))
}

// Is returns true if the target error is ErrAmbiguousStack
func (e *AmbiguousStackError) Is(target error) bool {
	return target == ErrAmbiguousStack
}

// NewAmbiguousStackError creates a new AmbiguousStackError
func NewAmbiguousStackError(branchName string, children []string) *AmbiguousStackError {
	return &AmbiguousStackError{BranchName: branchName, Children: children}
}

// RebaseConflictError represents a restack halted on a conflicting branch
type RebaseConflictError struct {
	BranchName string
	Remaining  []string
}

func (e *RebaseConflictError) Error() string {
	msg := fmt.Sprintf("hit conflict restacking %s", e.BranchName)
	if len(e.Remaining) > 0 {
		msg += fmt.Sprintf(" (%d branch(es) still to restack)", len(e.Remaining))
	}
	return msg
}

// Is returns true if the target error is ErrRestackConflict
func (e *RebaseConflictError) Is(target error) bool {
	return target == ErrRestackConflict
}

// NewRebaseConflictError creates a new RebaseConflictError
func NewRebaseConflictError(branchName string, remaining []string) *RebaseConflictError {
	return &RebaseConflictError{
		BranchName: branchName,
		Remaining:  remaining,
	}
}

// CorruptMetadataError reports links that cannot form a forest
type CorruptMetadataError struct {
	BranchName string
	Reason     string
}

func (e *CorruptMetadataError) Error() string {
	return fmt.Sprintf("corrupt metadata for %s: %s", e.BranchName, e.Reason)
}

// Is returns true if the target error is ErrCorruptMetadata
func (e *CorruptMetadataError) Is(target error) bool {
	return target == ErrCorruptMetadata
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
