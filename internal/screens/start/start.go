package start

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chance/internal/catalog"
	"github.com/abhisek/chance/internal/router"
	"github.com/abhisek/chance/internal/screen"
	"github.com/abhisek/chance/internal/ui/components"
	"github.com/abhisek/chance/internal/ui/layout"
	"github.com/abhisek/chance/internal/ui/theme"
)

// StartScreen is the landing page with the Start and Quit menu.
type StartScreen struct {
	menu  components.Menu
	total int
}

var _ screen.Screen = (*StartScreen)(nil)
var _ screen.KeyHintProvider = (*StartScreen)(nil)

// New creates a StartScreen. newGame builds the experiment screen pushed on
// Start; total is the number of experiments in the catalog.
func New(newGame func() screen.Screen, total int) *StartScreen {
	items := []components.MenuItem{
		{Label: "START", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: newGame()}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	return &StartScreen{
		menu:  components.NewMenu(items),
		total: total,
	}
}

func (s *StartScreen) Init() tea.Cmd {
	return nil
}

func (s *StartScreen) Title() string {
	return "Probability Lab"
}

func (s *StartScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *StartScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *StartScreen) View(width, height int) string {
	intro := []string{
		"Is it impossible, possible, or certain?",
		fmt.Sprintf("Work through %d experiments and classify each outcome.", s.total),
	}

	sections := []string{
		RenderBanner(width),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(intro[0]),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(intro[1]),
		"",
		legend(),
		"",
		theme.Card.Render(s.menu.View()),
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// legend explains the three classifications in their display colors.
func legend() string {
	meaning := map[catalog.Classification]string{
		catalog.Impossible: "it can never happen",
		catalog.Possible:   "it might happen",
		catalog.Certain:    "it will always happen",
	}
	lines := make([]string, 0, len(meaning))
	for _, c := range catalog.AllClassifications() {
		lines = append(lines,
			lipgloss.NewStyle().
				Foreground(components.ClassificationColor(c)).
				Bold(true).
				Render(fmt.Sprintf("%-10s", c.DisplayName()))+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render("  "+meaning[c]))
	}
	return strings.Join(lines, "\n")
}
