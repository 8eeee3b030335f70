package floating

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/gerunddev/gitfold/githist"
)

var detailLabelStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("243")).
	Width(11)

// DetailOverlay is a floating window showing the full record of one
// commit: identities, signatures, references, and the message body.
type DetailOverlay struct {
	viewport viewport.Model
	commit   *githist.Commit
	width    int
	height   int
	ready    bool
}

// NewDetailOverlay creates a detail window for the given commit.
func NewDetailOverlay(c *githist.Commit) *DetailOverlay {
	return &DetailOverlay{commit: c}
}

func (d *DetailOverlay) Init() tea.Cmd {
	return nil
}

func (d *DetailOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "up", "k":
			d.viewport.LineUp(1)
		case "down", "j":
			d.viewport.LineDown(1)
		case "pgup":
			d.viewport.HalfViewUp()
		case "pgdown":
			d.viewport.HalfViewDown()
		}
	}
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

func (d *DetailOverlay) View() string {
	if !d.ready {
		return ""
	}
	return renderFrame("Commit "+d.commit.ShortID(), d.viewport.View(), d.width, d.height)
}

func (d *DetailOverlay) SetSize(width, height int) {
	d.width = width
	d.height = height

	contentWidth := min(76, width-6)
	contentHeight := height - 4
	if !d.ready {
		d.viewport = viewport.New(contentWidth, contentHeight)
		d.ready = true
	} else {
		d.viewport.Width = contentWidth
		d.viewport.Height = contentHeight
	}
	d.viewport.SetContent(d.renderDetail())
}

func (d *DetailOverlay) renderDetail() string {
	c := d.commit
	var lines []string

	row := func(label, value string) {
		lines = append(lines, detailLabelStyle.Render(label)+value)
	}

	row("commit", c.ID.String())
	for i, p := range c.Parents {
		row(fmt.Sprintf("parent %d", i+1), p.String())
	}
	row("author", fmt.Sprintf("%s <%s>", c.Author.Name, c.Author.Email))
	row("date", fmt.Sprintf("%s (%s)",
		c.Author.When.Format("2006-01-02 15:04:05 -0700"),
		humanize.Time(c.Author.When)))
	if c.Committer.Name != c.Author.Name || !c.Committer.When.Equal(c.Author.When) {
		row("committer", fmt.Sprintf("%s <%s>", c.Committer.Name, c.Committer.Email))
		row("committed", humanize.Time(c.Committer.When))
	}
	if len(c.References) > 0 {
		row("refs", strings.Join(c.References, ", "))
	}

	lines = append(lines, "", "  "+c.Subject)
	if c.Body != "" {
		lines = append(lines, "")
		for _, l := range strings.Split(c.Body, "\n") {
			lines = append(lines, "  "+l)
		}
	}

	return strings.Join(lines, "\n")
}
