package githist

import (
	"errors"
	"fmt"
)

// Data errors: the repository could not answer. These propagate to the
// caller unretried; retry policy belongs to the interaction layer.
var (
	ErrRevisionNotFound = errors.New("revision not found")
	ErrCommitNotFound   = errors.New("commit not found")
	ErrNoCommits        = errors.New("no commits in range")
)

// ContractErr marks a violation of an operation's calling contract. It
// is a distinct type so callers can tell a malformed request apart from
// a repository failure.
type ContractErr struct {
	msg string
}

func (e *ContractErr) Error() string { return e.msg }

// Contract errors returned by History operations.
var (
	ErrNotFoldable = &ContractErr{msg: "entry is not foldable"}
	ErrBadIndex    = &ContractErr{msg: "entry index out of range"}
)

// IsContractErr reports whether err stems from a contract violation
// rather than from repository data.
func IsContractErr(err error) bool {
	var ce *ContractErr
	return errors.As(err, &ce)
}

func wrapContract(sentinel *ContractErr, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}
