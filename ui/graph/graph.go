// Package graph renders the tree prefix of history rows: one node
// glyph per row plus connector arrows showing where merges open and
// where subtrees rejoin, indented by fold depth.
package graph

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/gitfold/githist"
	"github.com/gerunddev/gitfold/subject"
)

// Node and connector symbols
const (
	SymbolCommit     = "●"
	SymbolRoot       = "◉"
	SymbolLink       = "⭞"
	SymbolVertical   = "│"
	SymbolSpace      = " "
	ArrowMergeOpen   = "─┐"
	ArrowMergeJoin   = "─┤"
	ArrowSubtreeOpen = "⇤╮"
	ArrowSubtreeJoin = "⇤┤"
	ArrowForkPoint   = "─┘"
)

// Renderer turns history entries into styled graph prefixes.
type Renderer struct {
	nodeStyle    lipgloss.Style
	lineStyle    lipgloss.Style
	pendingStyle lipgloss.Style
}

// NewRenderer creates a renderer with the given styles for node
// glyphs, connecting lines, and pending-resolution markers.
func NewRenderer(nodeStyle, lineStyle, pendingStyle lipgloss.Style) *Renderer {
	return &Renderer{
		nodeStyle:    nodeStyle,
		lineStyle:    lineStyle,
		pendingStyle: pendingStyle,
	}
}

// Prefix renders the graph cell for one entry. rebased marks merges
// whose branch was rebased onto the mainline before merging; they get
// the join connector instead of the open one.
func (r *Renderer) Prefix(e *githist.Entry, rebased bool) string {
	var b strings.Builder
	b.WriteString(r.lineStyle.Render(strings.Repeat(SymbolVertical+SymbolSpace, e.Level)))
	b.WriteString(r.node(e))
	if arrows := r.arrows(e, rebased); arrows != "" {
		b.WriteString(arrows)
	}
	return b.String()
}

// Width returns the display width of an entry's prefix in cells, for
// column alignment.
func Width(e *githist.Entry) int {
	w := e.Level*2 + 1
	if e.HasChildren || e.Role == githist.RoleForkPoint {
		w += 2
	}
	return w
}

func (r *Renderer) node(e *githist.Entry) string {
	switch e.Role {
	case githist.RoleInitial:
		return r.nodeStyle.Render(SymbolRoot)
	case githist.RoleCommitLink:
		return r.nodeStyle.Render(SymbolLink)
	default:
		return r.nodeStyle.Render(SymbolCommit)
	}
}

func (r *Renderer) arrows(e *githist.Entry, rebased bool) string {
	if e.Role == githist.RoleForkPoint {
		return r.lineStyle.Render(ArrowForkPoint)
	}
	if !e.HasChildren {
		return ""
	}
	if e.Pending() || !e.Resolved() {
		// Resolution still running; keep the slot but mark it.
		return r.pendingStyle.Render(ArrowMergeOpen)
	}

	open, join := ArrowMergeOpen, ArrowMergeJoin
	if subject.Parse(e.Commit.Subject).IsSubtree() {
		open, join = ArrowSubtreeOpen, ArrowSubtreeJoin
	}
	if rebased {
		return r.lineStyle.Render(join)
	}
	return r.lineStyle.Render(open)
}
