package gameover

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/chance/internal/catalog"
	"github.com/abhisek/chance/internal/quiz"
	"github.com/abhisek/chance/internal/router"
	"github.com/abhisek/chance/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "" }
func (s *stubScreen) Title() string                           { return "Experiment" }

func sampleResults() []quiz.AnswerRecord {
	return []quiz.AnswerRecord{
		{Index: 0, Title: "Rolling a Die", Choice: catalog.Impossible, Expected: catalog.Impossible, Correct: true},
		{Index: 1, Title: "Flipping a Coin", Choice: catalog.Certain, Expected: catalog.Possible, Correct: false},
	}
}

func TestView_ShowsScoreAndMessage(t *testing.T) {
	fb := quiz.Evaluate(1, 2)
	s := New(fb, sampleResults(), nil)

	view := s.View(100, 30)
	for _, want := range []string{"1 / 2", fb.Message, "Rolling a Die", "Flipping a Coin", "(was ", "Possible"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if got := s.Status(); got != "Final 1/2" {
		t.Errorf("Status() = %q", got)
	}
}

func TestEnter_PlaysAgain(t *testing.T) {
	built := 0
	s := New(quiz.Evaluate(10, 10), nil, func() screen.Screen {
		built++
		return &stubScreen{}
	})

	for _, k := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: 'r', Text: "r"}} {
		_, cmd := s.Update(k)
		if cmd == nil {
			t.Fatalf("expected a command for %q", k.String())
		}
		msg, ok := cmd().(router.ReplaceScreenMsg)
		if !ok {
			t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
		}
		if msg.Screen.Title() != "Experiment" {
			t.Errorf("replaced with %q", msg.Screen.Title())
		}
	}
	if built != 2 {
		t.Errorf("factory called %d times, want 2", built)
	}
}

func TestEnter_WithoutFactoryGoesHome(t *testing.T) {
	s := New(quiz.Evaluate(0, 10), nil, nil)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Errorf("expected PopToRootMsg, got %T", cmd())
	}
}

func TestOtherKeysIgnored(t *testing.T) {
	s := New(quiz.Evaluate(5, 10), nil, nil)
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"}); cmd != nil {
		t.Error("expected no command for an unbound key")
	}
}
