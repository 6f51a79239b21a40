package experiment

import (
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/chance/internal/catalog"
	"github.com/abhisek/chance/internal/cue"
	"github.com/abhisek/chance/internal/quiz"
	"github.com/abhisek/chance/internal/router"
	"github.com/abhisek/chance/internal/screen"
	"github.com/abhisek/chance/internal/screens/gameover"
	"github.com/abhisek/chance/internal/ui/components"
	"github.com/abhisek/chance/internal/ui/layout"
)

// Deps are the collaborators shared by every experiment screen.
type Deps struct {
	Controller *quiz.Controller
	Cue        *cue.Safe
	Logger     *zap.Logger
}

var restartKey = key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("Ctrl+R", "Restart"))

// ExperimentScreen presents the active experiment and forwards the player's
// answer to the controller.
type ExperimentScreen struct {
	deps    Deps
	options components.Options
	view    quiz.View
	last    *quiz.AnswerEvaluated
}

var _ screen.Screen = (*ExperimentScreen)(nil)
var _ screen.KeyHintProvider = (*ExperimentScreen)(nil)
var _ screen.StatusProvider = (*ExperimentScreen)(nil)

// New creates an ExperimentScreen. The session begins in Init.
func New(deps Deps) *ExperimentScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Cue == nil {
		deps.Cue = cue.NewSafe(nil, deps.Logger)
	}
	return &ExperimentScreen{
		deps:    deps,
		options: components.NewOptions(),
	}
}

// Init starts the first session, or restarts when the controller has
// already been used.
func (s *ExperimentScreen) Init() tea.Cmd {
	ctrl := s.deps.Controller
	var (
		signals []quiz.Signal
		err     error
	)
	if ctrl.Phase() == quiz.PhaseNotStarted {
		signals, err = ctrl.Start()
	} else {
		signals, err = ctrl.Restart()
	}
	if err != nil {
		s.deps.Logger.Error("begin session", zap.Error(err))
		return nil
	}
	return s.apply(signals)
}

func (s *ExperimentScreen) Title() string {
	return "Experiment"
}

func (s *ExperimentScreen) Status() string {
	return fmt.Sprintf("Score %d", s.view.Score)
}

func (s *ExperimentScreen) KeyHints() []layout.KeyHint {
	if s.view.Phase == quiz.PhaseLocked {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Home"},
			{Key: "Ctrl+R", Description: "Restart"},
		}
	}
	hints := s.options.Keys.HelpHints()
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

func (s *ExperimentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.OptionChosenMsg:
		return s, s.dispatch(quiz.SubmitEvent(msg.Choice))

	case advanceMsg:
		return s, s.dispatch(quiz.AdvanceEvent(msg.Ticket))

	case tea.KeyPressMsg:
		if key.Matches(msg, restartKey) {
			return s, s.dispatch(quiz.RestartEvent())
		}
		var cmd tea.Cmd
		s.options, cmd = s.options.Update(msg)
		return s, cmd
	}
	return s, nil
}

// dispatch sends ev to the controller. Rejected events are no-ops.
func (s *ExperimentScreen) dispatch(ev quiz.Event) tea.Cmd {
	signals, err := s.deps.Controller.Dispatch(ev)
	if err != nil {
		if !errors.Is(err, quiz.ErrInvalidTransition) {
			s.deps.Logger.Error("dispatch", zap.Stringer("event", ev.Kind), zap.Error(err))
		}
		return nil
	}
	return s.apply(signals)
}

// apply turns controller signals into screen state and commands.
func (s *ExperimentScreen) apply(signals []quiz.Signal) tea.Cmd {
	var cmds []tea.Cmd
	for _, sig := range signals {
		switch sig := sig.(type) {
		case quiz.ItemLoaded:
			s.options = components.NewOptions()
			s.last = nil

		case quiz.AnswerEvaluated:
			s.options = s.options.Lock(sig.Choice, sig.Expected)
			s.last = &sig
			cmds = append(cmds, s.playCue(sig.Correct))

		case quiz.AdvanceScheduled:
			cmds = append(cmds, advanceAfter(sig.Delay, sig.Ticket))

		case quiz.SessionEnded:
			over := gameover.New(sig.Feedback, s.deps.Controller.Results(), func() screen.Screen {
				return New(s.deps)
			})
			cmds = append(cmds, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: over}
			})
		}
	}
	s.view = s.deps.Controller.View()
	return tea.Batch(cmds...)
}

// playCue rings the answer cue off the update loop. Failures are absorbed
// by cue.Safe.
func (s *ExperimentScreen) playCue(correct bool) tea.Cmd {
	player := s.deps.Cue
	return func() tea.Msg {
		player.Play(cue.For(correct))
		return nil
	}
}

func advanceAfter(d time.Duration, t quiz.Ticket) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return advanceMsg{Ticket: t}
	})
}

// expected returns the correct answer for the locked item.
func (s *ExperimentScreen) expected() catalog.Classification {
	if s.last == nil {
		return ""
	}
	return s.last.Expected
}
