package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the application
// TODO: Make this configurable via config file
type KeyMap struct {
	// Global
	Quit   key.Binding
	Help   key.Binding
	Escape key.Binding
	Reload key.Binding

	// List navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Folding
	Fold   key.Binding
	Unfold key.Binding
	Toggle key.Binding

	// Actions
	Detail key.Binding
	Follow key.Binding

	// Search
	Search    key.Binding
	NextMatch key.Binding
	PrevMatch key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close/back"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),

		// List navigation (emacs-style alternates)
		Up: key.NewBinding(
			key.WithKeys("up", "k", "ctrl+p"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "ctrl+n"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "alt+v"),
			key.WithHelp("M-v", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+v"),
			key.WithHelp("C-v", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "alt+<"),
			key.WithHelp("M-<", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "alt+>"),
			key.WithHelp("M->", "bottom"),
		),

		// Folding
		Fold: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "fold"),
		),
		Unfold: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "unfold"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "tab"),
			key.WithHelp("space", "toggle fold"),
		),

		// Actions
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Follow: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "follow link"),
		),

		// Search
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "prev match"),
		),
	}
}

// ShortHelp returns a short help string for the status bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Toggle,
		k.Search,
		k.Help,
		k.Quit,
	}
}

// FullHelp returns all keybindings for the help screen
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Fold, k.Unfold, k.Toggle, k.Follow},
		{k.Search, k.NextMatch, k.PrevMatch},
		{k.Detail, k.Reload, k.Escape, k.Help, k.Quit},
	}
}
