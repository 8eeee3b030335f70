package githist

import "github.com/go-git/go-git/v5/plumbing"

// Walker is a lazy cursor over a first-parent chain of commit records,
// yielding descendants before ancestors. With an end commit set the
// walk covers the range end..start: commits reachable from start but
// not from end, the end's own ancestry excluded.
type Walker struct {
	src      Source
	next     plumbing.Hash
	hasNext  bool
	end      plumbing.Hash
	hasEnd   bool
	boundary bool
}

// NewWalker returns a cursor over the full first-parent ancestry of
// start, down to the root.
func NewWalker(src Source, start plumbing.Hash) *Walker {
	return &Walker{src: src, next: start, hasNext: true}
}

// NewRangeWalker returns a cursor over end..start. When start itself is
// reachable from end the sequence is empty; start == end likewise.
func NewRangeWalker(src Source, start, end plumbing.Hash) *Walker {
	return &Walker{src: src, next: start, hasNext: true, end: end, hasEnd: true}
}

// Next returns the next commit record, or nil when the walk is
// exhausted. Errors come from the underlying Source only.
func (w *Walker) Next() (*Commit, error) {
	if !w.hasNext {
		return nil, nil
	}
	if w.hasEnd {
		if w.next == w.end {
			w.stop(true)
			return nil, nil
		}
		reachable, err := w.src.IsAncestor(w.next, w.end)
		if err != nil {
			return nil, err
		}
		if reachable {
			w.stop(true)
			return nil, nil
		}
	}
	c, err := w.src.Commit(w.next)
	if err != nil {
		return nil, err
	}
	if below, ok := c.Below(); ok {
		w.next = below
	} else {
		w.stop(false)
	}
	return c, nil
}

// Boundary reports whether an exhausted walk stopped at the range end
// rather than at a root commit. The distinction drives the structural
// role of the final entry.
func (w *Walker) Boundary() bool { return w.boundary }

func (w *Walker) stop(atBoundary bool) {
	w.hasNext = false
	w.boundary = atBoundary
}

// ChildHistory walks the subgraph a merge brought in: from the merge's
// second parent along first-parent links, stopping at the fork point,
// exclusive. Without a fork point (a root import) the walk runs to the
// root. The caller decides whether the fork point itself becomes a row.
func ChildHistory(src Source, merge *Commit, fork plumbing.Hash, hasFork bool) ([]*Commit, error) {
	branched := merge.Branched()
	if len(branched) == 0 {
		return nil, wrapContract(ErrNotFoldable, "commit %s is not a merge", merge.ShortID())
	}
	start := branched[0]
	if hasFork && start == fork {
		return nil, nil
	}
	var w *Walker
	if hasFork {
		w = NewRangeWalker(src, start, fork)
	} else {
		w = NewWalker(src, start)
	}
	var run []*Commit
	for {
		c, err := w.Next()
		if err != nil {
			return nil, err
		}
		if c == nil {
			return run, nil
		}
		run = append(run, c)
	}
}
