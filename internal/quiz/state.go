package quiz

import "github.com/abhisek/chance/internal/catalog"

// Phase is the controller's state.
type Phase int

const (
	PhaseNotStarted     Phase = iota
	PhaseAwaitingAnswer       // active item, no answer yet
	PhaseLocked               // answer submitted, advance pending
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseLocked:
		return "locked"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// AnswerRecord is the scored answer for one item.
type AnswerRecord struct {
	Index    int
	Title    string
	Choice   catalog.Classification
	Expected catalog.Classification
	Correct  bool
}

// View is the render snapshot handed to the presentation layer.
type View struct {
	Phase     Phase
	SessionID string

	// Index is the 0-based active item, or Total once finished.
	Index int

	// Position is the 1-based indicator for the active item (0 before start).
	Position int
	Total    int
	Score    int

	// Selected is empty while the active item is unanswered.
	Selected catalog.Classification

	// LastCorrect reports the evaluation of Selected. Valid in PhaseLocked.
	LastCorrect bool

	// Item is the active experiment, nil before start and after finish.
	Item *catalog.Item

	// Feedback is set once the session is finished.
	Feedback *Feedback
}

// Answered reports whether the active item is locked.
func (v View) Answered() bool {
	return v.Selected != ""
}
