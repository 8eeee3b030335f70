package githist

import (
	"container/heap"

	"github.com/go-git/go-git/v5/plumbing"
)

const (
	markA = 1 << iota
	markB
)

// MergeBase returns the nearest common ancestor of a and b, exploring
// both ancestries in lockstep in reverse-chronological order. found is
// false when the two commits share no history. When several common
// ancestors sit at equal distance the one reached via first-parent
// paths wins, matching conventional merge-base tie-breaking.
func MergeBase(src Source, a, b plumbing.Hash) (plumbing.Hash, bool, error) {
	marks := map[plumbing.Hash]uint8{}
	frontier := &commitQueue{}
	heap.Init(frontier)

	push := func(id plumbing.Hash, mark uint8) error {
		if marks[id]&mark == mark {
			return nil
		}
		marks[id] |= mark
		c, err := src.Commit(id)
		if err != nil {
			return err
		}
		frontier.push(c)
		return nil
	}

	if err := push(a, markA); err != nil {
		return plumbing.ZeroHash, false, err
	}
	if err := push(b, markB); err != nil {
		return plumbing.ZeroHash, false, err
	}

	for frontier.Len() > 0 {
		c := frontier.pop()
		m := marks[c.ID]
		if m == markA|markB {
			return c.ID, true, nil
		}
		// First parent first, so first-parent paths surface before
		// side-branch paths of the same age.
		for _, p := range c.Parents {
			if err := push(p, m); err != nil {
				return plumbing.ZeroHash, false, err
			}
		}
	}
	return plumbing.ZeroHash, false, nil
}

// commitQueue is a max-heap over committer time. Insertion order breaks
// timestamp ties so exploration stays deterministic.
type commitQueue struct {
	items []queued
	seq   int
}

type queued struct {
	commit *Commit
	seq    int
}

func (q *commitQueue) Len() int { return len(q.items) }

func (q *commitQueue) Less(i, j int) bool {
	ti, tj := q.items[i].commit.Committer.When, q.items[j].commit.Committer.When
	if !ti.Equal(tj) {
		return ti.After(tj)
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *commitQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *commitQueue) Push(x any) { q.items = append(q.items, x.(queued)) }

func (q *commitQueue) Pop() any {
	last := q.items[len(q.items)-1]
	q.items = q.items[:len(q.items)-1]
	return last
}

func (q *commitQueue) push(c *Commit) {
	heap.Push(q, queued{commit: c, seq: q.seq})
	q.seq++
}

func (q *commitQueue) pop() *Commit {
	return heap.Pop(q).(queued).commit
}
