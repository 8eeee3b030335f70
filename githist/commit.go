package githist

import (
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

// Signature identifies an author or committer together with a timestamp.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// Commit is an immutable record describing a single commit. Records are
// produced by a Source, cached by identity for the session and shared
// read-only between history entries; when a commit is reachable via
// several paths, every entry points at the same record.
type Commit struct {
	ID         plumbing.Hash
	Parents    []plumbing.Hash
	Author     Signature
	Committer  Signature
	Subject    string
	Body       string
	References []string
	IsHead     bool
}

// IsMerge reports whether the commit has two or more parents.
func (c *Commit) IsMerge() bool { return len(c.Parents) >= 2 }

// IsRoot reports whether the commit has no parents.
func (c *Commit) IsRoot() bool { return len(c.Parents) == 0 }

// Below returns the first parent, the commit directly below this one on
// the first-parent chain. ok is false for a root commit.
func (c *Commit) Below() (plumbing.Hash, bool) {
	if len(c.Parents) == 0 {
		return plumbing.ZeroHash, false
	}
	return c.Parents[0], true
}

// Branched returns the second and later parents, the heads of the
// branches this commit merged in. Empty for non-merges.
func (c *Commit) Branched() []plumbing.Hash {
	if len(c.Parents) < 2 {
		return nil
	}
	return c.Parents[1:]
}

// ShortID returns an abbreviated identity for display.
func (c *Commit) ShortID() string { return c.ID.String()[:8] }
