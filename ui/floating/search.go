package floating

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var searchPromptStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("3")).
	Bold(true)

// SearchInput is the inline search prompt shown at the bottom of the
// screen while typing a query.
type SearchInput struct {
	input textinput.Model
	width int
}

// NewSearchInput creates a focused, empty search prompt.
func NewSearchInput() *SearchInput {
	ti := textinput.New()
	ti.Placeholder = "subject, author or hash prefix"
	ti.Prompt = searchPromptStyle.Render("/")
	ti.CharLimit = 200
	ti.Focus()
	return &SearchInput{input: ti}
}

func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

func (s *SearchInput) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SearchInput) View() string {
	return s.input.View()
}

// SetSize fits the input to the given width.
func (s *SearchInput) SetSize(width int) {
	s.width = width
	s.input.Width = width - 4
}

// Value returns the current query text.
func (s *SearchInput) Value() string {
	return s.input.Value()
}
