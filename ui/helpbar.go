package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Mode is the top-level input mode of the application.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeDetail
	ModeHelp
)

// HelpBarContext captures the current UI state for help bar rendering
type HelpBarContext struct {
	Mode      Mode
	CanFold   bool // selected entry is unfolded, or sits inside a subtree
	CanUnfold bool // selected entry has children and is not unfolded
	IsLink    bool // selected entry points at a row elsewhere
	Pending   bool // selected entry awaits fork point resolution
	Searching bool // a search term is active
}

// HelpHint represents a single hint (key + description)
type HelpHint struct {
	Key  string
	Desc string
}

// Format renders a hint as "key desc" in uniform dim color
func (h HelpHint) Format() string {
	return HelpDescStyle.Render(h.Key + " " + h.Desc)
}

// getActionHints returns context-specific action hints (left section)
func getActionHints(ctx HelpBarContext) []HelpHint {
	switch ctx.Mode {
	case ModeSearch:
		return []HelpHint{
			{Key: "↵", Desc: "search"},
			{Key: "esc", Desc: "cancel"},
		}
	case ModeDetail, ModeHelp:
		return []HelpHint{
			{Key: "esc", Desc: "close"},
		}
	}

	var hints []HelpHint
	if ctx.Pending {
		hints = append(hints, HelpHint{Key: "…", Desc: "resolving"})
	}
	if ctx.CanUnfold {
		hints = append(hints, HelpHint{Key: "→", Desc: "unfold"})
	}
	if ctx.CanFold {
		hints = append(hints, HelpHint{Key: "←", Desc: "fold"})
	}
	if ctx.IsLink {
		hints = append(hints, HelpHint{Key: "f", Desc: "follow"})
	}
	hints = append(hints, HelpHint{Key: "↵", Desc: "details"})
	return hints
}

// getNavigationHints returns context-specific navigation hints (center section)
func getNavigationHints(ctx HelpBarContext) []HelpHint {
	switch ctx.Mode {
	case ModeSearch:
		return nil
	case ModeDetail, ModeHelp:
		return []HelpHint{
			{Key: "↑↓", Desc: "scroll"},
		}
	}
	hints := []HelpHint{
		{Key: "↑↓", Desc: "move"},
		{Key: "/", Desc: "search"},
	}
	if ctx.Searching {
		hints = append(hints, HelpHint{Key: "n/N", Desc: "matches"})
	}
	return hints
}

// getAlwaysHints returns hints that are always shown (right section)
func getAlwaysHints() []HelpHint {
	return []HelpHint{
		{Key: "r", Desc: "↻"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}
}

// formatHints joins hints with double spaces
func formatHints(hints []HelpHint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = h.Format()
	}
	return strings.Join(parts, "  ")
}

// RenderContextualHelpBar renders the three-section help bar
func RenderContextualHelpBar(ctx HelpBarContext, width int) string {
	leftSection := formatHints(getActionHints(ctx))
	centerSection := formatHints(getNavigationHints(ctx))
	rightSection := formatHints(getAlwaysHints())

	leftWidth := lipgloss.Width(leftSection)
	centerWidth := lipgloss.Width(centerSection)
	rightWidth := lipgloss.Width(rightSection)

	totalContentWidth := leftWidth + centerWidth + rightWidth
	availableSpace := width - totalContentWidth

	if availableSpace < 6 {
		return HelpBarStyle.Width(width).Render(
			leftSection + "  " + centerSection + "  " + rightSection,
		)
	}

	// Layout: [left].....[center].....[right]
	midPoint := width / 2
	centerStart := midPoint - centerWidth/2

	leftToCenter := max(centerStart-leftWidth, 2)
	centerEnd := centerStart + centerWidth
	rightStart := width - rightWidth
	centerToRight := max(rightStart-centerEnd, 2)

	var bar string
	if leftWidth > 0 {
		bar = leftSection + strings.Repeat(" ", leftToCenter) + centerSection + strings.Repeat(" ", centerToRight) + rightSection
	} else {
		leftPadding := max(centerStart, 0)
		bar = strings.Repeat(" ", leftPadding) + centerSection + strings.Repeat(" ", centerToRight) + rightSection
	}

	return HelpBarStyle.Width(width).Render(bar)
}
