package quiz

import (
	"time"

	"github.com/abhisek/chance/internal/catalog"
)

// EventKind identifies an inbound event.
type EventKind int

const (
	EventStart EventKind = iota
	EventSubmit
	EventAdvance
	EventRestart
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventSubmit:
		return "submit"
	case EventAdvance:
		return "advance"
	case EventRestart:
		return "restart"
	}
	return "unknown"
}

// Ticket is the handle of a scheduled advance. The zero Ticket names no advance.
type Ticket uint64

// Event is an inbound event sent by the presentation layer.
type Event struct {
	Kind   EventKind
	Choice catalog.Classification // EventSubmit only
	Ticket Ticket                 // EventAdvance only
}

// StartEvent returns an EventStart event.
func StartEvent() Event { return Event{Kind: EventStart} }

// SubmitEvent returns an EventSubmit event for choice.
func SubmitEvent(choice catalog.Classification) Event {
	return Event{Kind: EventSubmit, Choice: choice}
}

// AdvanceEvent returns an EventAdvance event carrying t.
func AdvanceEvent(t Ticket) Event { return Event{Kind: EventAdvance, Ticket: t} }

// RestartEvent returns an EventRestart event.
func RestartEvent() Event { return Event{Kind: EventRestart} }

// Signal is an outbound instruction for the presentation layer.
type Signal interface {
	signal()
}

// ItemLoaded is emitted when a new experiment becomes the active item.
type ItemLoaded struct {
	SessionID string
	Index     int
	Total     int
	Item      catalog.Item
}

// AnswerEvaluated is emitted once per item when its answer is scored.
// Presentation uses it for the selection highlight and the audio cue.
type AnswerEvaluated struct {
	SessionID string
	Index     int
	Choice    catalog.Classification
	Correct   bool
	Expected  catalog.Classification
}

// AdvanceScheduled asks the presentation layer to send AdvanceEvent(Ticket)
// after Delay.
type AdvanceScheduled struct {
	Ticket Ticket
	Delay  time.Duration
}

// SessionEnded is emitted when the last item has been advanced past.
type SessionEnded struct {
	SessionID string
	Score     int
	Total     int
	Feedback  Feedback
}

func (ItemLoaded) signal()       {}
func (AnswerEvaluated) signal()  {}
func (AdvanceScheduled) signal() {}
func (SessionEnded) signal()     {}
