package githist

import "github.com/go-git/go-git/v5/plumbing"

// FoldState is the tri-state fold status of an entry. An entry leaves
// FoldUnknown exactly once, when its fork point resolves; after that
// Folded and Unfolded alternate under user control.
type FoldState int

const (
	// FoldUnknown means the fork point is unresolved and the fold
	// status is indeterminate.
	FoldUnknown FoldState = iota
	// Folded hides the entry's children.
	Folded
	// Unfolded shows the entry's children.
	Unfolded
)

func (s FoldState) String() string {
	switch s {
	case Folded:
		return "folded"
	case Unfolded:
		return "unfolded"
	}
	return "unknown"
}

// Entry is one display row: a shared commit record plus its position in
// the foldable tree. Entries are addressed by index only; the same
// identity may legitimately occupy several positions.
type Entry struct {
	Commit *Commit
	// Level is the nesting depth, 0 for top-level linear history.
	Level int
	Role  Role
	State FoldState
	// HasChildren reports whether the entry can be unfolded at all,
	// independent of the current fold state.
	HasChildren bool
	// Parent is the index of the enclosing entry, -1 at top level. A
	// navigation aid, never an ownership link.
	Parent int

	forkPoint     plumbing.Hash
	forkResolved  bool
	forkFound     bool
	pendingUnfold bool
}

// ForkPoint returns the commit at which this entry's subtree reconnects
// with its enclosing branch. ok is false while unresolved and for
// merges whose branch shares no history with the mainline.
func (e *Entry) ForkPoint() (plumbing.Hash, bool) {
	return e.forkPoint, e.forkResolved && e.forkFound
}

// Resolved reports whether fork point computation has completed for
// this entry, regardless of outcome.
func (e *Entry) Resolved() bool { return e.forkResolved }

// Pending reports whether an unfold is queued behind fork point
// resolution. Rendering layers show this as an in-progress indicator.
func (e *Entry) Pending() bool { return e.pendingUnfold }
