package githist

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// GitSource adapts an on-disk repository to the Source interface. Commit
// records are cached per hash; refs are loaded once at open and refreshed
// with Reload when the repository changes under us. One instance is
// shared between the fork point resolver's workers and the view, so the
// cache and reference maps are guarded by a lock.
type GitSource struct {
	repo   *git.Repository
	gitDir string

	mu    sync.RWMutex
	cache map[plumbing.Hash]*Commit
	refs  map[plumbing.Hash][]string
	head  plumbing.Hash
}

// Open locates the repository containing path, searching parent
// directories the way the git CLI does.
func Open(path string) (*GitSource, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", path, err)
	}
	s := &GitSource{repo: repo, cache: make(map[plumbing.Hash]*Commit)}
	if fst, ok := repo.Storer.(*filesystem.Storage); ok {
		s.gitDir = fst.Filesystem().Root()
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// GitDir returns the .git directory backing the repository, for change
// watching. Empty when the storage is not filesystem based.
func (s *GitSource) GitDir() string { return s.gitDir }

// Reload re-reads HEAD and the reference decoration map and drops the
// commit cache. The fresh state is built aside and swapped in under the
// lock, so in-flight readers see either the old view or the new one.
func (s *GitSource) Reload() error {
	head := plumbing.ZeroHash
	if h, err := s.repo.Head(); err == nil {
		head = h.Hash()
	}

	refs := make(map[plumbing.Hash][]string)
	iter, err := s.repo.References()
	if err != nil {
		return fmt.Errorf("list references: %w", err)
	}
	defer iter.Close()
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name()
		switch {
		case name == plumbing.HEAD:
		case name.IsBranch():
			refs[ref.Hash()] = append(refs[ref.Hash()], name.Short())
		case name.IsRemote():
			refs[ref.Hash()] = append(refs[ref.Hash()], name.Short())
		case name.IsTag():
			refs[ref.Hash()] = append(refs[ref.Hash()], "tag: "+name.Short())
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache = make(map[plumbing.Hash]*Commit)
	s.refs = refs
	s.head = head
	s.mu.Unlock()
	return nil
}

// References returns every branch and tag name in the repository, for
// revision pickers.
func (s *GitSource) References() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	seen := make(map[string]bool)
	for _, names := range s.refs {
		for _, n := range names {
			n = strings.TrimPrefix(n, "tag: ")
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}

// Resolve maps a revision expression (branch, tag, HEAD, abbreviated
// hash) to a commit hash.
func (s *GitSource) Resolve(rev string) (plumbing.Hash, error) {
	h, err := s.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return plumbing.ZeroHash, fmt.Errorf("%q: %w", rev, ErrRevisionNotFound)
		}
		return plumbing.ZeroHash, fmt.Errorf("resolve %q: %w", rev, err)
	}
	return *h, nil
}

// Commit loads the commit record for id.
func (s *GitSource) Commit(id plumbing.Hash) (*Commit, error) {
	s.mu.RLock()
	c, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return c, nil
	}
	obj, err := s.repo.CommitObject(id)
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, fmt.Errorf("%s: %w", id.String()[:8], ErrCommitNotFound)
		}
		return nil, fmt.Errorf("load commit %s: %w", id.String()[:8], err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// A concurrent loader may have won; keep record identity stable.
	if c, ok := s.cache[id]; ok {
		return c, nil
	}
	c = s.convert(obj)
	s.cache[id] = c
	return c, nil
}

// Parents returns the parent hashes of id in recorded order.
func (s *GitSource) Parents(id plumbing.Hash) ([]plumbing.Hash, error) {
	c, err := s.Commit(id)
	if err != nil {
		return nil, err
	}
	return c.Parents, nil
}

// IsAncestor reports whether a is reachable from b.
func (s *GitSource) IsAncestor(a, b plumbing.Hash) (bool, error) {
	if a == b {
		return true, nil
	}
	ca, err := s.repo.CommitObject(a)
	if err != nil {
		return false, fmt.Errorf("load commit %s: %w", a.String()[:8], err)
	}
	cb, err := s.repo.CommitObject(b)
	if err != nil {
		return false, fmt.Errorf("load commit %s: %w", b.String()[:8], err)
	}
	return ca.IsAncestor(cb)
}

// convert builds a commit record. The caller holds mu, covering the
// refs and head reads.
func (s *GitSource) convert(obj *object.Commit) *Commit {
	subject, body, _ := strings.Cut(obj.Message, "\n")
	return &Commit{
		ID:      obj.Hash,
		Parents: append([]plumbing.Hash(nil), obj.ParentHashes...),
		Author: Signature{
			Name:  obj.Author.Name,
			Email: obj.Author.Email,
			When:  obj.Author.When,
		},
		Committer: Signature{
			Name:  obj.Committer.Name,
			Email: obj.Committer.Email,
			When:  obj.Committer.When,
		},
		Subject:    strings.TrimRight(subject, "\r"),
		Body:       strings.TrimLeft(body, "\n"),
		References: append([]string(nil), s.refs[obj.Hash]...),
		IsHead:     obj.Hash == s.head,
	}
}
