package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/gerunddev/gitfold/githist"
	"github.com/gerunddev/gitfold/ui/floating"
	"github.com/gerunddev/gitfold/ui/messages"
	"github.com/gerunddev/gitfold/watch"
)

// App is the main application model
type App struct {
	src      *githist.GitSource
	resolver *githist.Resolver
	watcher  *watch.Watcher
	logger   *log.Logger

	// Revision expressions the view was opened with, re-resolved on
	// reload so the view follows moving refs.
	startRev string
	endRev   string

	panel  *HistoryPanel
	mode   Mode
	search *floating.SearchInput
	detail *floating.DetailOverlay
	help   *floating.HelpOverlay
	keys   KeyMap

	width  int
	height int
	ready  bool
	err    string
}

// NewApp assembles the application around an opened repository and a
// loaded history. watcher may be nil when the repository is not
// watchable.
func NewApp(src *githist.GitSource, resolver *githist.Resolver, watcher *watch.Watcher,
	hist *githist.History, startRev, endRev string, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}
	return &App{
		src:      src,
		resolver: resolver,
		watcher:  watcher,
		logger:   logger,
		startRev: startRev,
		endRev:   endRev,
		panel:    NewHistoryPanel(hist, src),
		keys:     DefaultKeyMap(),
	}
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.waitForkPoint()}
	if a.watcher != nil {
		cmds = append(cmds, a.waitRepoChange())
	}
	return tea.Batch(cmds...)
}

// waitForkPoint subscribes to the next resolver result.
func (a *App) waitForkPoint() tea.Cmd {
	return func() tea.Msg {
		return messages.ForkPointMsg{Result: <-a.resolver.Results()}
	}
}

// waitRepoChange subscribes to the next repository change burst.
func (a *App) waitRepoChange() tea.Cmd {
	return func() tea.Msg {
		<-a.watcher.Changes()
		return messages.RepoChangedMsg{}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		a.ready = true
		return a, nil

	case messages.ForkPointMsg:
		a.panel.Apply(msg.Result)
		return a, a.waitForkPoint()

	case messages.RepoChangedMsg:
		a.reload()
		return a, a.waitRepoChange()

	case messages.ErrorMsg:
		a.err = msg.Err.Error()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.err = ""

	switch a.mode {
	case ModeSearch:
		switch {
		case key.Matches(msg, a.keys.Escape):
			a.mode = ModeBrowse
			a.search = nil
			return a, nil
		case msg.Type == tea.KeyEnter:
			a.panel.Search(a.search.Value())
			a.mode = ModeBrowse
			a.search = nil
			return a, nil
		default:
			_, cmd := a.search.Update(msg)
			return a, cmd
		}

	case ModeDetail:
		switch {
		case key.Matches(msg, a.keys.Escape), key.Matches(msg, a.keys.Detail):
			a.mode = ModeBrowse
			a.detail = nil
			return a, nil
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		default:
			_, cmd := a.detail.Update(msg)
			return a, cmd
		}

	case ModeHelp:
		switch {
		case key.Matches(msg, a.keys.Escape), key.Matches(msg, a.keys.Help):
			a.mode = ModeBrowse
			a.help = nil
			return a, nil
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		default:
			_, cmd := a.help.Update(msg)
			return a, cmd
		}
	}

	// Browse mode
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help = floating.NewHelpOverlay(a.keys)
		a.help.SetSize(a.overlayWidth(), a.contentHeight())
		a.mode = ModeHelp
		return a, nil

	case key.Matches(msg, a.keys.Search):
		a.search = floating.NewSearchInput()
		a.search.SetSize(a.width)
		a.mode = ModeSearch
		return a, a.search.Init()

	case key.Matches(msg, a.keys.Detail):
		if e := a.panel.Selected(); e != nil {
			a.detail = floating.NewDetailOverlay(e.Commit)
			a.detail.SetSize(a.overlayWidth(), a.contentHeight())
			a.mode = ModeDetail
		}
		return a, nil

	case key.Matches(msg, a.keys.Reload):
		a.reload()
		return a, nil
	}

	_, cmd := a.panel.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	if !a.ready {
		return "Loading history..."
	}

	content := a.panel.View()

	switch a.mode {
	case ModeDetail:
		content = lipgloss.Place(a.width, a.contentHeight(),
			lipgloss.Center, lipgloss.Center, a.detail.View())
	case ModeHelp:
		content = lipgloss.Place(a.width, a.contentHeight(),
			lipgloss.Center, lipgloss.Center, a.help.View())
	}

	var bottom string
	switch {
	case a.mode == ModeSearch:
		bottom = a.search.View()
	case a.err != "":
		bottom = HelpBarStyle.Width(a.width).Render(MatchStyle.Render(a.err))
	case a.panel.Status() != "":
		bottom = HelpBarStyle.Width(a.width).Render(a.panel.Status())
	default:
		bottom = RenderContextualHelpBar(a.helpContext(), a.width)
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, bottom)
}

func (a *App) helpContext() HelpBarContext {
	ctx := HelpBarContext{Mode: a.mode, Searching: a.panel.SearchActive()}
	if e := a.panel.Selected(); e != nil {
		ctx.CanUnfold = e.HasChildren && e.State != githist.Unfolded
		ctx.CanFold = (e.HasChildren && e.State == githist.Unfolded) || e.Parent >= 0
		ctx.IsLink = e.Role == githist.RoleCommitLink
		ctx.Pending = e.Pending()
	}
	return ctx
}

func (a *App) contentHeight() int {
	return max(a.height-1, 1)
}

func (a *App) overlayWidth() int {
	return min(a.width-4, 84)
}

func (a *App) updateLayout() {
	a.panel.SetSize(a.width, a.contentHeight())
	if a.search != nil {
		a.search.SetSize(a.width)
	}
	if a.detail != nil {
		a.detail.SetSize(a.overlayWidth(), a.contentHeight())
	}
	if a.help != nil {
		a.help.SetSize(a.overlayWidth(), a.contentHeight())
	}
}

// reload re-reads the repository and rebuilds the history, keeping the
// cursor near its old position.
func (a *App) reload() {
	if err := a.src.Reload(); err != nil {
		a.err = fmt.Sprintf("reload: %v", err)
		return
	}
	start, err := a.src.Resolve(a.startRev)
	if err != nil {
		a.err = fmt.Sprintf("resolve %s: %v", a.startRev, err)
		return
	}
	end := plumbing.ZeroHash
	if a.endRev != "" {
		if end, err = a.src.Resolve(a.endRev); err != nil {
			a.err = fmt.Sprintf("resolve %s: %v", a.endRev, err)
			return
		}
	}
	hist, err := githist.New(a.src, a.resolver, start, end)
	if err != nil {
		a.err = fmt.Sprintf("reload history: %v", err)
		return
	}
	a.logger.Info("history reloaded", "start", a.startRev)
	a.panel.Reset(hist)
}
