package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/chance/internal/ui/theme"
)

// StepBar shows how far through a fixed number of steps the player is.
type StepBar struct {
	Current int // 1-based
	Total   int
	Width   int
}

// NewStepBar creates a step bar for step current of total.
func NewStepBar(current, total, width int) StepBar {
	return StepBar{Current: current, Total: total, Width: width}
}

// Label returns the "N of M" text.
func (p StepBar) Label() string {
	return fmt.Sprintf("Experiment %d of %d", p.Current, p.Total)
}

// View renders the label followed by the bar.
func (p StepBar) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label()) + "  "

	barWidth := p.Width - lipgloss.Width(label)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := 0
	if p.Total > 0 {
		filled = barWidth * p.Current / p.Total
	}
	filled = max(0, min(filled, barWidth))

	return label +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))
}
