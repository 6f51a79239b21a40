package experiment

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/chance/internal/quiz"
	"github.com/abhisek/chance/internal/ui/components"
	"github.com/abhisek/chance/internal/ui/layout"
	"github.com/abhisek/chance/internal/ui/theme"
)

func (s *ExperimentScreen) View(width, height int) string {
	v := s.view
	if v.Item == nil {
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim),
			"\n\n  Setting up the lab...")
	}
	item := v.Item

	cw := min(width-4, 76)
	var sections []string

	sections = append(sections, components.NewStepBar(v.Position, v.Total, cw).View())
	sections = append(sections, "")

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(item.Title))
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(item.Description))
	sections = append(sections, "")

	if len(item.Visual) > 0 {
		sections = append(sections, renderVisual(item.Visual))
		sections = append(sections, "")
	}

	outcome := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Outcome: ") +
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(item.Outcome)
	sections = append(sections, theme.OutcomeCard.Render(outcome))
	sections = append(sections, "")

	sections = append(sections, s.options.View())

	if v.Phase == quiz.PhaseLocked {
		sections = append(sections, "", s.renderVerdict(v))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderVisual lays the glyph tokens out in a single spaced row.
func renderVisual(glyphs []string) string {
	return lipgloss.NewStyle().
		Padding(0, 1).
		Render(strings.Join(glyphs, "  "))
}

// renderVerdict renders the line shown while the answer is locked.
func (s *ExperimentScreen) renderVerdict(v quiz.View) string {
	if v.LastCorrect {
		return lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!")
	}
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true).
		Render("Not quite. ") +
		lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("This outcome is "+strings.ToLower(s.expected().DisplayName())+".")
}
