package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/gerunddev/gitfold/githist"
	"github.com/gerunddev/gitfold/subject"
	"github.com/gerunddev/gitfold/ui/graph"
)

// loadAhead is how close to the loaded bottom the cursor may get
// before the next batch is pulled in.
const loadAhead = 10

// HistoryPanel renders the foldable history and owns cursor movement,
// folding keys, and search.
type HistoryPanel struct {
	hist     *githist.History
	src      githist.Source
	renderer *graph.Renderer
	keys     KeyMap

	cursor int
	offset int
	width  int
	height int

	searchTerm string
	rebased    map[plumbing.Hash]bool
	status     string
}

// NewHistoryPanel creates the panel over an already loaded history.
func NewHistoryPanel(hist *githist.History, src githist.Source) *HistoryPanel {
	return &HistoryPanel{
		hist:     hist,
		src:      src,
		renderer: graph.NewRenderer(GraphStyle, GraphStyle, PendingStyle),
		keys:     DefaultKeyMap(),
		rebased:  make(map[plumbing.Hash]bool),
	}
}

// SetSize updates the panel dimensions.
func (p *HistoryPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.clampScroll()
}

// Selected returns the entry under the cursor, nil for an empty view.
func (p *HistoryPanel) Selected() *githist.Entry {
	return p.hist.Entry(p.cursor)
}

// History exposes the underlying entry tree.
func (p *HistoryPanel) History() *githist.History { return p.hist }

// Status returns the transient status line text, cleared on the next
// key.
func (p *HistoryPanel) Status() string { return p.status }

// SearchActive reports whether a search term is set.
func (p *HistoryPanel) SearchActive() bool { return p.searchTerm != "" }

// Reset swaps in a freshly loaded history, keeping the cursor as close
// to its old position as the new tree allows.
func (p *HistoryPanel) Reset(hist *githist.History) {
	p.hist = hist
	p.rebased = make(map[plumbing.Hash]bool)
	if p.cursor >= hist.Len() {
		p.cursor = hist.Len() - 1
	}
	p.clampScroll()
}

// Apply feeds a fork point result through to the tree.
func (p *HistoryPanel) Apply(res githist.ForkPointResult) {
	if _, err := p.hist.Apply(res); err != nil {
		p.status = err.Error()
	}
	p.clampScroll()
}

// Search sets the active search term and jumps to its first match at
// or after the cursor.
func (p *HistoryPanel) Search(term string) {
	p.searchTerm = term
	if term == "" {
		return
	}
	if !p.findMatch(p.cursor, +1) {
		p.status = fmt.Sprintf("no match for %q", term)
	}
}

func (p *HistoryPanel) Update(msg tea.Msg) (*HistoryPanel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	p.status = ""

	switch {
	case key.Matches(keyMsg, p.keys.Up):
		p.moveCursor(-1)
	case key.Matches(keyMsg, p.keys.Down):
		p.moveCursor(+1)
	case key.Matches(keyMsg, p.keys.PageUp):
		p.moveCursor(-p.pageSize())
	case key.Matches(keyMsg, p.keys.PageDown):
		p.moveCursor(+p.pageSize())
	case key.Matches(keyMsg, p.keys.Home):
		p.cursor = 0
		p.clampScroll()
	case key.Matches(keyMsg, p.keys.End):
		p.loadAll()
		p.cursor = p.hist.Len() - 1
		p.clampScroll()

	case key.Matches(keyMsg, p.keys.Fold):
		p.fold()
	case key.Matches(keyMsg, p.keys.Unfold):
		p.unfold()
	case key.Matches(keyMsg, p.keys.Toggle):
		p.toggle()
	case key.Matches(keyMsg, p.keys.Follow):
		p.follow()

	case key.Matches(keyMsg, p.keys.NextMatch):
		if p.searchTerm != "" && !p.findMatch(p.cursor+1, +1) {
			p.status = "no further match"
		}
	case key.Matches(keyMsg, p.keys.PrevMatch):
		if p.searchTerm != "" && !p.findMatch(p.cursor-1, -1) {
			p.status = "no earlier match"
		}
	}
	return p, nil
}

func (p *HistoryPanel) View() string {
	if p.height < 1 {
		return ""
	}
	var rows []string
	end := min(p.offset+p.pageSize(), p.hist.Len())
	for i := p.offset; i < end; i++ {
		rows = append(rows, p.renderRow(i))
	}
	for len(rows) < p.pageSize() {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

func (p *HistoryPanel) pageSize() int {
	if p.height < 1 {
		return 1
	}
	return p.height
}

func (p *HistoryPanel) moveCursor(delta int) {
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor > p.hist.Len()-loadAhead && !p.hist.Exhausted() {
		if _, err := p.hist.LoadMore(githist.DefaultBatch); err != nil {
			p.status = err.Error()
		}
	}
	if p.cursor >= p.hist.Len() {
		p.cursor = p.hist.Len() - 1
	}
	p.clampScroll()
}

func (p *HistoryPanel) loadAll() {
	for !p.hist.Exhausted() {
		if _, err := p.hist.LoadMore(githist.DefaultBatch); err != nil {
			p.status = err.Error()
			return
		}
	}
}

func (p *HistoryPanel) clampScroll() {
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+p.pageSize() {
		p.offset = p.cursor - p.pageSize() + 1
	}
	if p.offset < 0 {
		p.offset = 0
	}
}

func (p *HistoryPanel) fold() {
	e := p.Selected()
	if e == nil {
		return
	}
	// Folding on a child collapses its enclosing subtree, like closing
	// a directory from inside.
	i := p.cursor
	if !e.HasChildren || e.State != githist.Unfolded {
		if e.Parent < 0 {
			return
		}
		i = e.Parent
	}
	if err := p.hist.Fold(i); err != nil {
		p.status = err.Error()
		return
	}
	p.cursor = i
	p.clampScroll()
}

func (p *HistoryPanel) unfold() {
	e := p.Selected()
	if e == nil || !e.HasChildren {
		return
	}
	if err := p.hist.Unfold(p.cursor); err != nil {
		p.status = err.Error()
		return
	}
	if e.Pending() {
		p.status = "resolving fork point..."
	}
	p.clampScroll()
}

func (p *HistoryPanel) toggle() {
	e := p.Selected()
	if e == nil || !e.HasChildren {
		return
	}
	if e.State == githist.Unfolded {
		p.fold()
	} else {
		p.unfold()
	}
}

// follow jumps from a link row to the real row of the same commit.
func (p *HistoryPanel) follow() {
	e := p.Selected()
	if e == nil || e.Role != githist.RoleCommitLink {
		return
	}
	for i := 0; i < p.hist.Len(); i++ {
		t := p.hist.Entry(i)
		if i != p.cursor && t.Commit.ID == e.Commit.ID && t.Role != githist.RoleCommitLink {
			p.cursor = i
			p.clampScroll()
			return
		}
	}
	p.status = "link target not loaded"
}

// findMatch scans loaded entries starting at from in the given
// direction, wrapping around the ends, until every entry has been
// visited once. Scanning past the loaded bottom pulls in the next batch
// first.
func (p *HistoryPanel) findMatch(from, dir int) bool {
	term := strings.ToLower(p.searchTerm)
	if p.hist.Len() == 0 {
		return false
	}
	i := from
	for seen := 0; seen <= p.hist.Len(); seen++ {
		if i >= p.hist.Len() && !p.hist.Exhausted() {
			if _, err := p.hist.LoadMore(githist.DefaultBatch); err != nil {
				p.status = err.Error()
				return false
			}
		}
		if i >= p.hist.Len() {
			i = 0
		}
		if i < 0 {
			i = p.hist.Len() - 1
		}
		if p.matches(p.hist.Entry(i), term) {
			p.cursor = i
			p.clampScroll()
			return true
		}
		i += dir
	}
	return false
}

func (p *HistoryPanel) matches(e *githist.Entry, term string) bool {
	c := e.Commit
	if strings.Contains(strings.ToLower(c.Subject), term) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Author.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Committer.Name), term) {
		return true
	}
	for _, ref := range c.References {
		if strings.Contains(strings.ToLower(ref), term) {
			return true
		}
	}
	return strings.HasPrefix(c.ID.String(), term)
}

func (p *HistoryPanel) renderRow(i int) string {
	e := p.hist.Entry(i)
	c := e.Commit

	prefix := p.renderer.Prefix(e, p.isRebased(c))
	id := CommitIDStyle.Render(c.ShortID())
	when := TimestampStyle.Render(humanize.Time(c.Committer.When))
	author := AuthorStyle.Render(c.Author.Name)

	var refs string
	if len(c.References) > 0 {
		style := RefStyle
		if c.IsHead {
			style = HeadRefStyle
		}
		refs = style.Render("("+strings.Join(c.References, ", ")+")") + " "
	}

	parsed := subject.Parse(c.Subject)
	subj := parsed.Icon() + " " + c.Subject
	switch {
	case p.searchTerm != "" && p.matches(e, strings.ToLower(p.searchTerm)):
		subj = MatchStyle.Render(subj)
	case e.Role == githist.RoleCommitLink:
		subj = DimmedStyle.Render(subj)
	default:
		subj = SubjectStyle.Render(subj)
	}

	row := fmt.Sprintf("%s %s %s %s %s%s", prefix, id, when, author, refs, subj)
	if i == p.cursor {
		row = SelectedRowStyle.Width(p.width).Render(row)
	}
	return row
}

// isRebased reports whether a merge's first parent was already an
// ancestor of the branch it merged, which flips the connector glyph.
func (p *HistoryPanel) isRebased(c *githist.Commit) bool {
	if !c.IsMerge() {
		return false
	}
	if v, ok := p.rebased[c.ID]; ok {
		return v
	}
	first, _ := c.Below()
	v, err := p.src.IsAncestor(first, c.Branched()[0])
	if err != nil {
		v = false
	}
	p.rebased[c.ID] = v
	return v
}
