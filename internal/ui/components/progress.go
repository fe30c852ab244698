package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/rote/internal/ui/theme"
)

// ProgressBar displays a horizontal bar filled to Ratio.
type ProgressBar struct {
	Label string
	Ratio float64
	Width int // bar cells, excluding label and percentage
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, ratio float64, width int) ProgressBar {
	return ProgressBar{Label: label, Ratio: ratio, Width: width}
}

func (p ProgressBar) cells() (filled, empty int) {
	width := p.Width
	if width < 4 {
		width = 4
	}
	filled = int(float64(width) * p.Ratio)
	filled = max(0, min(filled, width))
	return filled, width - filled
}

func (p ProgressBar) percent() string {
	return fmt.Sprintf("%d%%", int(p.Ratio*100+0.5))
}

// View renders the bar with theme colours.
func (p ProgressBar) View() string {
	filled, empty := p.cells()

	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  ")
	}
	b.WriteString(lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + p.percent()))
	return b.String()
}

// Plain renders the bar without escape sequences, e.g. "label [###-] 75%".
func (p ProgressBar) Plain() string {
	filled, empty := p.cells()
	bar := "[" + strings.Repeat("#", filled) + strings.Repeat("-", empty) + "] " + p.percent()
	if p.Label == "" {
		return bar
	}
	return p.Label + " " + bar
}
