package gameover

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chance/internal/quiz"
	"github.com/abhisek/chance/internal/router"
	"github.com/abhisek/chance/internal/screen"
	"github.com/abhisek/chance/internal/ui/components"
	"github.com/abhisek/chance/internal/ui/layout"
	"github.com/abhisek/chance/internal/ui/theme"
)

// GameOverScreen shows the final score, the feedback message and a recap of
// every answer.
type GameOverScreen struct {
	feedback  quiz.Feedback
	results   []quiz.AnswerRecord
	playAgain func() screen.Screen
}

var _ screen.Screen = (*GameOverScreen)(nil)
var _ screen.KeyHintProvider = (*GameOverScreen)(nil)
var _ screen.StatusProvider = (*GameOverScreen)(nil)

// New creates a GameOverScreen. playAgain builds the screen that replaces
// this one when the player starts another round.
func New(fb quiz.Feedback, results []quiz.AnswerRecord, playAgain func() screen.Screen) *GameOverScreen {
	return &GameOverScreen{
		feedback:  fb,
		results:   results,
		playAgain: playAgain,
	}
}

func (s *GameOverScreen) Init() tea.Cmd {
	return nil
}

func (s *GameOverScreen) Title() string {
	return "Results"
}

func (s *GameOverScreen) Status() string {
	return fmt.Sprintf("Final %d/%d", s.feedback.Score, s.feedback.Total)
}

func (s *GameOverScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Play again"},
		{Key: "Esc", Description: "Home"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *GameOverScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "r":
			if s.playAgain == nil {
				return s, func() tea.Msg { return router.PopToRootMsg{} }
			}
			next := s.playAgain()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	}
	return s, nil
}

func (s *GameOverScreen) View(width, height int) string {
	fb := s.feedback

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Lab complete!"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("Your score: %d / %d", fb.Score, fb.Total)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TierColor(string(fb.Tier))).
		Render(fb.Message))
	b.WriteString("\n\n")

	if len(s.results) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", max(min(width-8, 60), 0)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Answers")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, r := range s.results {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, recapLine(r)))
			b.WriteString("\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

// recapLine renders one answered experiment.
func recapLine(r quiz.AnswerRecord) string {
	mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	if !r.Correct {
		mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}

	answer := lipgloss.NewStyle().
		Foreground(components.ClassificationColor(r.Choice)).
		Render(r.Choice.DisplayName())
	if !r.Correct {
		answer += lipgloss.NewStyle().Foreground(theme.TextDim).Render(" (was ") +
			lipgloss.NewStyle().
				Foreground(components.ClassificationColor(r.Expected)).
				Render(r.Expected.DisplayName()) +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(")")
	}

	title := lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("%-22s", r.Title))
	return fmt.Sprintf("%s %2d. %s  %s", mark, r.Index+1, title, answer)
}
