package floating

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("3")).
			Padding(0, 1)
	frameTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")).
			Bold(true)
)

// renderFrame draws content inside a rounded border with a title line,
// sized to fit within the given bounds.
func renderFrame(title, content string, width, height int) string {
	inner := lipgloss.JoinVertical(lipgloss.Left,
		frameTitleStyle.Render(title),
		content,
	)
	w := min(width-2, lipgloss.Width(inner)+4)
	return frameStyle.Width(w).MaxHeight(height).Render(inner)
}
