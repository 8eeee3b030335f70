// Package subject classifies commit subject lines. The classification
// feeds two consumers: the history view picks an icon per subject kind,
// and the folding engine treats subtree import and update merges as
// foldable subtrees.
package subject

import (
	"regexp"
	"strings"
)

// Kind is the semantic category of a subject line.
type Kind int

const (
	KindSimple Kind = iota
	KindConventional
	KindPullRequest
	KindSubtreeImport
	KindSubtreeUpdate
	KindSubtreeSplit
	KindFixup
	KindRevert
	KindRelease
)

func (k Kind) String() string {
	switch k {
	case KindConventional:
		return "conventional"
	case KindPullRequest:
		return "pull-request"
	case KindSubtreeImport:
		return "subtree-import"
	case KindSubtreeUpdate:
		return "subtree-update"
	case KindSubtreeSplit:
		return "subtree-split"
	case KindFixup:
		return "fixup"
	case KindRevert:
		return "revert"
	case KindRelease:
		return "release"
	default:
		return "simple"
	}
}

// Subject is a parsed subject line.
type Subject struct {
	Kind Kind
	// Scope is the conventional-commit scope or the subtree module
	// name, when present.
	Scope string
	// Text is the subject with any recognized prefix stripped.
	Text string
}

var (
	reUpdate       = regexp.MustCompile(`^Update :(\S+)(?: to (\S+))?`)
	reImport       = regexp.MustCompile(`(?i)^.* Import .*`)
	reSplit        = regexp.MustCompile(`^Split .*`)
	rePullRequest  = regexp.MustCompile(`^Merge (?:pull request|PR) #(\d+)`)
	reFixup        = regexp.MustCompile(`(?i)^(?:fixup|squash|amend)!\s+`)
	reRevert       = regexp.MustCompile(`(?i)^Revert:?\s*`)
	reRelease      = regexp.MustCompile(`(?i)^(?:release|bump):?\s*`)
	reConventional = regexp.MustCompile(`^(\w+)(?:\((.+)\))?!?: (.+)`)
)

// Parse classifies a raw subject line.
func Parse(raw string) Subject {
	raw = strings.TrimSpace(raw)
	if m := reUpdate.FindStringSubmatch(raw); m != nil {
		return Subject{Kind: KindSubtreeUpdate, Scope: m[1], Text: raw}
	}
	if reSplit.MatchString(raw) {
		return Subject{Kind: KindSubtreeSplit, Text: raw}
	}
	if reImport.MatchString(raw) {
		return Subject{Kind: KindSubtreeImport, Text: raw}
	}
	if m := rePullRequest.FindStringSubmatch(raw); m != nil {
		return Subject{Kind: KindPullRequest, Scope: m[1], Text: raw}
	}
	if loc := reFixup.FindStringIndex(raw); loc != nil {
		return Subject{Kind: KindFixup, Text: raw[loc[1]:]}
	}
	if loc := reRevert.FindStringIndex(raw); loc != nil {
		return Subject{Kind: KindRevert, Text: raw[loc[1]:]}
	}
	if loc := reRelease.FindStringIndex(raw); loc != nil {
		return Subject{Kind: KindRelease, Text: raw[loc[1]:]}
	}
	if m := reConventional.FindStringSubmatch(raw); m != nil {
		return Subject{Kind: KindConventional, Scope: m[2], Text: m[3]}
	}
	return Subject{Kind: KindSimple, Text: raw}
}

// IsSubtree reports whether the subject marks a subtree import or
// update merge, the pattern the folding engine treats as a foldable
// subtree boundary.
func (s Subject) IsSubtree() bool {
	return s.Kind == KindSubtreeImport || s.Kind == KindSubtreeUpdate
}

// Icon returns a one-cell marker for the subject kind, for the history
// row. Simple subjects get a blank.
func (s Subject) Icon() string {
	switch s.Kind {
	case KindSubtreeUpdate:
		return "⇤"
	case KindSubtreeImport:
		return "⮈"
	case KindSubtreeSplit:
		return "⎇"
	case KindPullRequest:
		return "⇄"
	case KindFixup:
		return "!"
	case KindRevert:
		return "↩"
	case KindRelease:
		return "⏷"
	case KindConventional:
		return "·"
	default:
		return " "
	}
}
