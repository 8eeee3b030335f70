package githist

import "github.com/gerunddev/gitfold/subject"

// Role is the structural classification of a history entry: what the
// row is, given its position in the walk that materialized it.
type Role int

const (
	// RoleCommit is a plain single-parent commit mid-sequence.
	RoleCommit Role = iota
	// RoleMerge is a multi-parent commit, foldable unless resolution
	// shows its branch brought nothing in.
	RoleMerge
	// RoleFoldable is a merge recognized as a subtree import/pull.
	RoleFoldable
	// RoleForkPoint marks the row where an unfolded branch rejoins its
	// enclosing branch.
	RoleForkPoint
	// RoleCommitLink is a pointer row: the subtree continues into a
	// commit already rendered elsewhere.
	RoleCommitLink
	// RoleInitial is a commit without parents.
	RoleInitial
	// RoleLast is the final entry of a bounded walk that stopped at the
	// range boundary, not at a root.
	RoleLast
)

func (r Role) String() string {
	switch r {
	case RoleCommit:
		return "commit"
	case RoleMerge:
		return "merge"
	case RoleFoldable:
		return "foldable"
	case RoleForkPoint:
		return "fork-point"
	case RoleCommitLink:
		return "commit-link"
	case RoleInitial:
		return "initial"
	case RoleLast:
		return "last"
	}
	return "unknown"
}

// classifyCtx is the walk context a role depends on. Classification is
// a pure function of (commit, context); it never touches the graph.
type classifyCtx struct {
	// boundary marks the final entry of a bounded walk.
	boundary bool
	// forkPoint marks the entry equal to the resolved fork point of the
	// unfold in progress.
	forkPoint bool
	// linked marks an entry whose identity is already materialized at
	// another position in the tree.
	linked bool
}

func classify(c *Commit, ctx classifyCtx) Role {
	switch {
	case c.IsRoot():
		return RoleInitial
	case ctx.boundary:
		return RoleLast
	case ctx.forkPoint:
		return RoleForkPoint
	case ctx.linked:
		return RoleCommitLink
	case c.IsMerge():
		// The semantic classifier only refines; an unknown subject
		// falls back to a plain merge.
		if subject.Parse(c.Subject).IsSubtree() {
			return RoleFoldable
		}
		return RoleMerge
	default:
		return RoleCommit
	}
}
