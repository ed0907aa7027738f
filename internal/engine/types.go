package engine

import "slices"

// Link records the parent a branch is stacked on
type Link struct {
	Parent string
	// ParentRevision is the parent commit the branch was last based on
	ParentRevision string
	// Seq orders siblings by the time they were linked
	Seq int64
}

// LinkBatch is a set of link changes committed together
type LinkBatch struct {
	Upsert map[string]Link
	Delete []string
}

// IsEmpty reports whether the batch changes nothing
func (b LinkBatch) IsEmpty() bool {
	return len(b.Upsert) == 0 && len(b.Delete) == 0
}

// RebaseRequest describes a rebase of Branch from Upstream onto Onto
type RebaseRequest struct {
	Branch   string
	Onto     string
	Upstream string
}

// RebaseOutcome is the result of a rebase step
type RebaseOutcome struct {
	Conflict bool
	// Files lists unmerged paths when Conflict is set
	Files []string
}

// Stack is an ordered chain of branches, trunk first
type Stack struct {
	Branches []string
	// ForkPoint is set when downward discovery stopped at a branch
	// with several children, none of which could be chosen
	ForkPoint    string
	ForkChildren []string
}

// Len returns the number of branches in the stack, trunk included
func (s Stack) Len() int {
	return len(s.Branches)
}

// IndexOf returns the position of branchName, or -1
func (s Stack) IndexOf(branchName string) int {
	return slices.Index(s.Branches, branchName)
}

// Top returns the last branch of the stack
func (s Stack) Top() string {
	if len(s.Branches) == 0 {
		return ""
	}
	return s.Branches[len(s.Branches)-1]
}

// MoveKind distinguishes a checkout from a boundary no-op
type MoveKind int

const (
	// Moved indicates the target branch was checked out
	Moved MoveKind = iota
	// AlreadyAtTop indicates there was nothing above the current branch
	AlreadyAtTop
	// AlreadyAtTrunk indicates the current branch is trunk
	AlreadyAtTrunk
)

// Move is the outcome of a navigation command
type Move struct {
	Kind MoveKind
	// Branch is the checked out branch after the move
	Branch string
	// From is the branch checked out before the move
	From string
}

// RestackStatus is the state of one branch during a restack pass
type RestackStatus int

const (
	// RestackPending indicates the branch has not been visited yet
	RestackPending RestackStatus = iota
	// RestackRebasing indicates the branch is being rebased
	RestackRebasing
	// RestackDone indicates the branch was rebased onto its parent
	RestackDone
	// RestackUnneeded indicates the branch was already based on its parent tip
	RestackUnneeded
	// RestackConflicted indicates the rebase stopped on a conflict
	RestackConflicted
)

func (s RestackStatus) String() string {
	switch s {
	case RestackPending:
		return "pending"
	case RestackRebasing:
		return "rebasing"
	case RestackDone:
		return "done"
	case RestackUnneeded:
		return "unneeded"
	case RestackConflicted:
		return "conflicted"
	}
	return "unknown"
}

// RestackStep records what happened to one branch
type RestackStep struct {
	Branch string
	Parent string
	Status RestackStatus
}

// RestackState is persisted while a restack is halted on a conflict
type RestackState struct {
	Branch         string   `json:"branch"`
	Parent         string   `json:"parent"`
	Onto           string   `json:"onto"`
	Remaining      []string `json:"remaining,omitempty"`
	OriginalBranch string   `json:"originalBranch,omitempty"`
}

// RestackReport summarizes a restack pass
type RestackReport struct {
	Steps []RestackStep
	// Conflict is set when the pass halted
	Conflict      *RestackState
	ConflictFiles []string
}

// Halted reports whether the pass stopped on a conflict
func (r *RestackReport) Halted() bool {
	return r.Conflict != nil
}

// Rebased returns the branches that were rewritten
func (r *RestackReport) Rebased() []string {
	var out []string
	for _, step := range r.Steps {
		if step.Status == RestackDone {
			out = append(out, step.Branch)
		}
	}
	return out
}

// RestackScope selects which part of a stack is restacked
type RestackScope int

const (
	// ScopeStack restacks the anchor's ancestors, the anchor and everything above it
	ScopeStack RestackScope = iota
	// ScopeOnly restacks the anchor alone
	ScopeOnly
	// ScopeUpstack restacks the anchor and everything above it
	ScopeUpstack
	// ScopeDownstack restacks the anchor and its ancestors
	ScopeDownstack
)

// RemoveResult describes a branch detached from the graph
type RemoveResult struct {
	Parent     string
	Reparented []string
}
