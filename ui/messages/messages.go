package messages

import "github.com/gerunddev/gitfold/githist"

// ForkPointMsg carries a completed fork point computation into the
// update loop.
type ForkPointMsg struct {
	Result githist.ForkPointResult
}

// RepoChangedMsg is sent when the watched repository changed on disk.
type RepoChangedMsg struct{}

// ErrorMsg surfaces a non-fatal error to the status line.
type ErrorMsg struct {
	Err error
}
