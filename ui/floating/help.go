package floating

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay is a floating window showing the full keybinding help.
type HelpOverlay struct {
	viewport viewport.Model
	help     help.Model
	keymap   help.KeyMap
	width    int
	height   int
	ready    bool
}

// NewHelpOverlay creates a new floating help window
func NewHelpOverlay(keymap help.KeyMap) *HelpOverlay {
	return &HelpOverlay{
		help:   help.New(),
		keymap: keymap,
	}
}

func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "up", "k":
			h.viewport.LineUp(1)
		case "down", "j":
			h.viewport.LineDown(1)
		case "pgup", "ctrl+u":
			h.viewport.HalfViewUp()
		case "pgdown", "ctrl+d":
			h.viewport.HalfViewDown()
		case "g", "home":
			h.viewport.GotoTop()
		case "G", "end":
			h.viewport.GotoBottom()
		}
	}

	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

func (h *HelpOverlay) View() string {
	if !h.ready {
		return ""
	}
	return renderFrame("Help", h.viewport.View(), h.width, h.height)
}

func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height

	contentWidth := width - 4
	contentHeight := height - 2

	if !h.ready {
		h.viewport = viewport.New(contentWidth, contentHeight)
		h.ready = true
	} else {
		h.viewport.Width = contentWidth
		h.viewport.Height = contentHeight
	}
	h.viewport.SetContent(h.renderHelp())
}

func (h *HelpOverlay) renderHelp() string {
	var sections []string

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("4")).
		MarginBottom(1)
	sections = append(sections, titleStyle.Render("gitfold"))

	descStyle := lipgloss.NewStyle().MarginBottom(1)
	sections = append(sections, descStyle.Render("Foldable first-parent history for git repositories"))

	h.help.ShowAll = true
	h.help.Width = h.viewport.Width
	sections = append(sections, h.help.View(h.keymap))

	notes := []string{
		"",
		"Merges fold their branch history away; unfold to descend.",
		"Subtree imports (⇤╮) unfold into the imported project's own",
		"history. Link rows (⭞) point at commits rendered elsewhere;",
		"press f to jump there.",
	}
	sections = append(sections, strings.Join(notes, "\n"))

	return strings.Join(sections, "\n")
}
