package githist

import "github.com/go-git/go-git/v5/plumbing"

// Source is the repository collaborator: it resolves revisions and
// loads commit records. Implementations must be read-only from the
// caller's perspective so results can be cached freely.
type Source interface {
	// Resolve turns a revision spec into a commit identity. A spec that
	// names nothing returns an error wrapping ErrRevisionNotFound.
	Resolve(rev string) (plumbing.Hash, error)

	// Commit returns the record for id. Repeated calls for the same id
	// return the same record.
	Commit(id plumbing.Hash) (*Commit, error)

	// Parents lists id's parent identities in commit order.
	Parents(id plumbing.Hash) ([]plumbing.Hash, error)

	// IsAncestor reports whether a is an ancestor of b.
	IsAncestor(a, b plumbing.Hash) (bool, error)
}
