package githist

import (
	"fmt"
	"slices"

	"github.com/go-git/go-git/v5/plumbing"
)

// DefaultBatch is how many top-level entries a fill loads at once.
const DefaultBatch = 50

// History is the mutable display sequence over a commit range: a flat
// slice of entries in display order, extended lazily at the bottom and
// expanded in place by unfolding merges. History is single-writer; the
// resolver only produces results, which the owner feeds back through
// Apply.
type History struct {
	src       Source
	resolver  *Resolver
	walker    *Walker
	entries   []*Entry
	exhausted bool
}

// New opens a history over the ancestry of start. A non-zero end bounds
// the walk with end..start range semantics. ErrNoCommits is returned
// when the range is empty.
func New(src Source, resolver *Resolver, start, end plumbing.Hash) (*History, error) {
	var w *Walker
	if end.IsZero() {
		w = NewWalker(src, start)
	} else {
		w = NewRangeWalker(src, start, end)
	}
	h := &History{src: src, resolver: resolver, walker: w}
	if _, err := h.LoadMore(DefaultBatch); err != nil {
		return nil, err
	}
	if len(h.entries) == 0 {
		return nil, ErrNoCommits
	}
	return h, nil
}

// Len returns the number of currently materialized entries.
func (h *History) Len() int { return len(h.entries) }

// Entry returns the entry at display position i, or nil out of range.
func (h *History) Entry(i int) *Entry {
	if i < 0 || i >= len(h.entries) {
		return nil
	}
	return h.entries[i]
}

// Exhausted reports whether the top-level walk has reached its end;
// further LoadMore calls append nothing.
func (h *History) Exhausted() bool { return h.exhausted }

// LoadMore appends up to n further top-level entries from the range
// walk and returns how many were added.
func (h *History) LoadMore(n int) (int, error) {
	added := 0
	for added < n && !h.exhausted {
		c, err := h.walker.Next()
		if err != nil {
			return added, err
		}
		if c == nil {
			h.exhausted = true
			h.markBoundary()
			break
		}
		e := h.newEntry(c, 0, -1, classifyCtx{})
		h.entries = append(h.entries, e)
		added++
	}
	return added, nil
}

// markBoundary retags the final top-level entry once a bounded walk
// stops at the range end rather than a root.
func (h *History) markBoundary() {
	if !h.walker.Boundary() {
		return
	}
	for i := len(h.entries) - 1; i >= 0; i-- {
		e := h.entries[i]
		if e.Level != 0 {
			continue
		}
		// Reclassify with boundary standing, which beats everything
		// except a root.
		if role := classify(e.Commit, classifyCtx{boundary: true}); role == RoleLast {
			e.Role = RoleLast
			e.HasChildren = false
			e.forkResolved = true
			e.State = Folded
			e.pendingUnfold = false
		}
		return
	}
}

// Unfold expands the children of the foldable entry at i. While the
// fork point is still unresolved the unfold is queued and performed
// when the resolver's result is applied; the entry reports Pending
// until then. Unfolding an entry without children is a contract error.
func (h *History) Unfold(i int) error {
	e := h.Entry(i)
	if e == nil {
		return wrapContract(ErrBadIndex, "unfold %d of %d", i, len(h.entries))
	}
	if !e.HasChildren {
		return wrapContract(ErrNotFoldable, "unfold %s (%s)", e.Commit.ShortID(), e.Role)
	}
	switch e.State {
	case Unfolded:
		return nil
	case FoldUnknown:
		e.pendingUnfold = true
		// Memoized, so a repeat request is cheap even when the entry
		// already asked at materialization time.
		h.requestForkPoint(e.Commit)
		return nil
	default:
		return h.unfoldResolved(i)
	}
}

// Fold hides the children of the entry at i, removing the contiguous
// run of deeper entries that follows it. Idempotent when already folded
// or still unresolved; folding an entry without children is a contract
// error.
func (h *History) Fold(i int) error {
	e := h.Entry(i)
	if e == nil {
		return wrapContract(ErrBadIndex, "fold %d of %d", i, len(h.entries))
	}
	if !e.HasChildren {
		return wrapContract(ErrNotFoldable, "fold %s (%s)", e.Commit.ShortID(), e.Role)
	}
	e.pendingUnfold = false
	if e.State != Unfolded {
		return nil
	}
	j := i + 1
	for j < len(h.entries) && h.entries[j].Level > e.Level {
		j++
	}
	h.entries = slices.Delete(h.entries, i+1, j)
	h.shiftParents(j, -(j - i - 1))
	e.State = Folded
	return nil
}

// Toggle folds an unfolded entry and unfolds anything else, going
// through resolution first when necessary.
func (h *History) Toggle(i int) error {
	e := h.Entry(i)
	if e == nil {
		return wrapContract(ErrBadIndex, "toggle %d of %d", i, len(h.entries))
	}
	if e.State == Unfolded {
		return h.Fold(i)
	}
	return h.Unfold(i)
}

// Apply feeds a resolver result into the tree. Every still-unresolved
// entry wrapping the matching merge transitions to Folded (or is
// demoted, see below) and any queued unfold runs. Applying the same
// result twice is a no-op, as is a result for entries meanwhile folded
// away. Returns whether anything changed.
func (h *History) Apply(res ForkPointResult) (bool, error) {
	changed := false
	for i := 0; i < len(h.entries); i++ {
		e := h.entries[i]
		if e.Commit.ID != res.Merge || e.forkResolved {
			continue
		}
		if first, ok := e.Commit.Below(); !ok || first != res.First {
			continue
		}
		e.forkResolved = true
		e.forkFound = res.Found
		e.forkPoint = res.ForkPoint
		changed = true

		branched := e.Commit.Branched()
		switch {
		case res.Found && len(branched) > 0 && res.ForkPoint == branched[0]:
			// The mainline already contained the whole branch; nothing
			// to unfold.
			h.demote(e)
		case !res.Found && e.Role != RoleFoldable:
			// No shared history and no subtree pattern: grafted or
			// shallow. Disable unfolding instead of walking forever.
			h.demote(e)
		default:
			e.State = Folded
			if e.pendingUnfold {
				e.pendingUnfold = false
				if err := h.unfoldResolved(i); err != nil {
					return changed, err
				}
			}
		}
	}
	return changed, nil
}

func (h *History) demote(e *Entry) {
	e.HasChildren = false
	e.State = Folded
	e.pendingUnfold = false
	if e.Role == RoleFoldable {
		e.Role = RoleMerge
	}
}

// unfoldResolved inserts the merge's child run directly after entry i.
// The run ends at the fork point: shown as a fork point row when it is
// not the next mainline commit, as a link row when its identity is
// already materialized elsewhere, and omitted entirely otherwise.
func (h *History) unfoldResolved(i int) error {
	e := h.entries[i]
	fork, found := e.ForkPoint()
	run, err := ChildHistory(h.src, e.Commit, fork, found)
	if err != nil {
		return err
	}

	level := e.Level + 1
	children := make([]*Entry, 0, len(run)+1)
	for _, c := range run {
		children = append(children, h.newEntry(c, level, i, classifyCtx{}))
	}

	if found {
		below, _ := e.Commit.Below()
		// The reconnection row is only worth a spot when the reader
		// cannot see it in the enclosing chain anyway.
		if fork != below && !h.onMainlineBelow(i, e.Level, fork) {
			fc, err := h.src.Commit(fork)
			if err != nil {
				return fmt.Errorf("fork point %s: %w", fork.String()[:8], err)
			}
			ctx := classifyCtx{forkPoint: true}
			if h.materialized(fork) {
				ctx = classifyCtx{linked: true}
			}
			children = append(children, h.newEntry(fc, level, i, ctx))
		}
	}

	h.entries = slices.Insert(h.entries, i+1, children...)
	h.shiftParents(i+1, len(children))
	e.State = Unfolded
	return nil
}

// shiftParents adjusts stored parent indexes after entries moved: every
// reference to a position at or past from (in pre-move indexing) moves
// by delta. Children always reference a parent above the insertion
// point and are unaffected.
func (h *History) shiftParents(from, delta int) {
	for _, e := range h.entries {
		if e.Parent >= from {
			e.Parent += delta
		}
	}
}

// onMainlineBelow reports whether id is already rendered further down
// the chain enclosing entry i, at the same depth or shallower.
func (h *History) onMainlineBelow(i, level int, id plumbing.Hash) bool {
	for j := i + 1; j < len(h.entries); j++ {
		if h.entries[j].Level <= level && h.entries[j].Commit.ID == id {
			return true
		}
	}
	return false
}

// materialized reports whether id already has an entry somewhere in the
// tree.
func (h *History) materialized(id plumbing.Hash) bool {
	for _, e := range h.entries {
		if e.Commit.ID == id {
			return true
		}
	}
	return false
}

// newEntry wraps a commit record into an entry and, for foldable rows,
// eagerly schedules fork point resolution so a later unfold usually
// finds the answer memoized.
func (h *History) newEntry(c *Commit, level, parent int, ctx classifyCtx) *Entry {
	role := classify(c, ctx)
	// The subtree refinement holds only while this merge is the sole
	// consumer of its branch head; a branch merged elsewhere too is a
	// plain merge.
	if role == RoleFoldable && h.branchMergedElsewhere(c) {
		role = RoleMerge
	}
	e := &Entry{Commit: c, Level: level, Parent: parent, Role: role}
	if role == RoleMerge || role == RoleFoldable {
		e.HasChildren = true
		h.requestForkPoint(c)
	} else {
		// Non-foldable rows have nothing to resolve.
		e.forkResolved = true
		e.State = Folded
	}
	return e
}

// branchMergedElsewhere reports whether another materialized commit
// also lists c's branch head among its parents.
func (h *History) branchMergedElsewhere(c *Commit) bool {
	branched := c.Branched()
	if len(branched) == 0 {
		return false
	}
	for _, e := range h.entries {
		if e.Commit.ID == c.ID {
			continue
		}
		for _, p := range e.Commit.Parents {
			if p == branched[0] {
				return true
			}
		}
	}
	return false
}

func (h *History) requestForkPoint(c *Commit) {
	if h.resolver == nil {
		return
	}
	first, ok := c.Below()
	if !ok {
		return
	}
	branched := c.Branched()
	if len(branched) == 0 {
		return
	}
	h.resolver.Request(ForkPointRequest{Merge: c.ID, First: first, Second: branched[0]})
}
