package githist

import (
	"crypto/sha1"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

// fakeSource is a map-backed Source for exercising walks and folding
// without a repository on disk.
type fakeSource struct {
	commits map[plumbing.Hash]*Commit
}

func (f *fakeSource) Resolve(rev string) (plumbing.Hash, error) {
	h := hashOf(rev)
	if _, ok := f.commits[h]; !ok {
		return plumbing.ZeroHash, fmt.Errorf("%q: %w", rev, ErrRevisionNotFound)
	}
	return h, nil
}

func (f *fakeSource) Commit(id plumbing.Hash) (*Commit, error) {
	c, ok := f.commits[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id.String()[:8], ErrCommitNotFound)
	}
	return c, nil
}

func (f *fakeSource) Parents(id plumbing.Hash) ([]plumbing.Hash, error) {
	c, err := f.Commit(id)
	if err != nil {
		return nil, err
	}
	return c.Parents, nil
}

func (f *fakeSource) IsAncestor(a, b plumbing.Hash) (bool, error) {
	if a == b {
		return true, nil
	}
	seen := map[plumbing.Hash]bool{}
	queue := []plumbing.Hash{b}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		seen[id] = true
		c, ok := f.commits[id]
		if !ok {
			continue
		}
		for _, p := range c.Parents {
			if p == a {
				return true, nil
			}
			queue = append(queue, p)
		}
	}
	return false, nil
}

func hashOf(name string) plumbing.Hash {
	return plumbing.Hash(sha1.Sum([]byte(name)))
}

// graphBuilder assembles a fake commit graph by name. Committer
// timestamps increase with insertion order so that timestamp-ordered
// traversals see later commits first.
type graphBuilder struct {
	src  *fakeSource
	when time.Time
}

func newGraph() *graphBuilder {
	return &graphBuilder{
		src:  &fakeSource{commits: map[plumbing.Hash]*Commit{}},
		when: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (g *graphBuilder) commit(name, subject string, parents ...string) *graphBuilder {
	g.when = g.when.Add(time.Minute)
	ids := make([]plumbing.Hash, len(parents))
	for i, p := range parents {
		ids[i] = hashOf(p)
	}
	sig := Signature{Name: "dev", Email: "dev@example.com", When: g.when}
	g.src.commits[hashOf(name)] = &Commit{
		ID:        hashOf(name),
		Parents:   ids,
		Author:    sig,
		Committer: sig,
		Subject:   subject,
	}
	return g
}

func (g *graphBuilder) build() *fakeSource { return g.src }
