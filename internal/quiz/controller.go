// Package quiz implements the session state machine: it serves catalog items
// one at a time, locks and scores one answer per item, schedules the advance
// and produces the final feedback.
package quiz

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/chance/internal/catalog"
)

// DefaultAdvanceDelay is how long feedback stays on screen before the next item.
const DefaultAdvanceDelay = 1800 * time.Millisecond

var (
	// ErrInvalidTransition is returned for an event the current state does
	// not accept. State is unchanged.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrAnswerLocked is returned when the active item already has an answer.
	ErrAnswerLocked = fmt.Errorf("%w: answer already locked", ErrInvalidTransition)

	// ErrStaleTicket is returned for an advance that is no longer pending.
	ErrStaleTicket = fmt.Errorf("%w: stale advance ticket", ErrInvalidTransition)
)

// Source provides the experiments for a session.
type Source interface {
	Len() int
	Get(index int) (catalog.Item, error)
}

// Options configures a Controller. Zero values select defaults.
type Options struct {
	// AdvanceDelay is the delay carried by AdvanceScheduled. Negative means
	// DefaultAdvanceDelay; zero advances immediately.
	AdvanceDelay time.Duration

	Logger *zap.Logger

	// NewSessionID generates session IDs. Defaults to random UUIDs.
	NewSessionID func() string
}

type handler func(c *Controller, ev Event) ([]Signal, error)

// dispatch routes each inbound event kind to its transition.
var dispatch = map[EventKind]handler{
	EventStart:   (*Controller).handleStart,
	EventSubmit:  (*Controller).handleSubmit,
	EventAdvance: (*Controller).handleAdvance,
	EventRestart: (*Controller).handleRestart,
}

// Controller owns a single SessionState. It is not safe for concurrent use;
// all events must be delivered from one goroutine.
type Controller struct {
	source Source
	delay  time.Duration
	log    *zap.Logger
	newID  func() string

	phase     Phase
	sessionID string
	index     int
	score     int
	selected  catalog.Classification
	results   []AnswerRecord

	lastTicket Ticket
	pending    Ticket
}

// New creates a Controller in PhaseNotStarted.
func New(source Source, opts Options) *Controller {
	if opts.AdvanceDelay < 0 {
		opts.AdvanceDelay = DefaultAdvanceDelay
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.NewSessionID == nil {
		opts.NewSessionID = func() string { return uuid.New().String() }
	}
	return &Controller{
		source: source,
		delay:  opts.AdvanceDelay,
		log:    opts.Logger.Named("quiz"),
		newID:  opts.NewSessionID,
	}
}

// Dispatch applies ev and returns the signals it produced. A rejected event
// returns an error wrapping ErrInvalidTransition and leaves state unchanged.
func (c *Controller) Dispatch(ev Event) ([]Signal, error) {
	h, ok := dispatch[ev.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown event %d", ErrInvalidTransition, ev.Kind)
	}
	signals, err := h(c, ev)
	if err != nil {
		c.log.Debug("event rejected",
			zap.Stringer("event", ev.Kind),
			zap.Stringer("phase", c.phase),
			zap.String("session", c.sessionID),
			zap.Error(err))
		return nil, err
	}
	return signals, nil
}

// Start begins the first session.
func (c *Controller) Start() ([]Signal, error) { return c.Dispatch(StartEvent()) }

// Submit locks and scores choice for the active item.
func (c *Controller) Submit(choice catalog.Classification) ([]Signal, error) {
	return c.Dispatch(SubmitEvent(choice))
}

// Advance applies a scheduled advance.
func (c *Controller) Advance(t Ticket) ([]Signal, error) { return c.Dispatch(AdvanceEvent(t)) }

// Restart discards the current session and starts a new one.
func (c *Controller) Restart() ([]Signal, error) { return c.Dispatch(RestartEvent()) }

func (c *Controller) handleStart(_ Event) ([]Signal, error) {
	if c.phase != PhaseNotStarted {
		return nil, fmt.Errorf("%w: start in %s", ErrInvalidTransition, c.phase)
	}
	return c.beginSession(), nil
}

func (c *Controller) handleRestart(_ Event) ([]Signal, error) {
	prev := c.sessionID
	signals := c.beginSession()
	if prev != "" {
		c.log.Info("session restarted",
			zap.String("previous", prev),
			zap.String("session", c.sessionID))
	}
	return signals, nil
}

func (c *Controller) handleSubmit(ev Event) ([]Signal, error) {
	switch c.phase {
	case PhaseAwaitingAnswer:
	case PhaseLocked:
		return nil, ErrAnswerLocked
	default:
		return nil, fmt.Errorf("%w: submit in %s", ErrInvalidTransition, c.phase)
	}
	if !ev.Choice.Valid() {
		return nil, fmt.Errorf("%w: choice %q", ErrInvalidTransition, ev.Choice)
	}

	item := c.mustItem(c.index)
	correct := ev.Choice == item.Correct

	c.phase = PhaseLocked
	c.selected = ev.Choice
	if correct {
		c.score++
	}
	c.results = append(c.results, AnswerRecord{
		Index:    c.index,
		Title:    item.Title,
		Choice:   ev.Choice,
		Expected: item.Correct,
		Correct:  correct,
	})

	c.lastTicket++
	c.pending = c.lastTicket

	c.log.Info("answer evaluated",
		zap.String("session", c.sessionID),
		zap.Int("index", c.index),
		zap.String("choice", string(ev.Choice)),
		zap.Bool("correct", correct),
		zap.Int("score", c.score))

	return []Signal{
		AnswerEvaluated{
			SessionID: c.sessionID,
			Index:     c.index,
			Choice:    ev.Choice,
			Correct:   correct,
			Expected:  item.Correct,
		},
		AdvanceScheduled{Ticket: c.pending, Delay: c.delay},
	}, nil
}

func (c *Controller) handleAdvance(ev Event) ([]Signal, error) {
	// A pending ticket exists only in PhaseLocked.
	if ev.Ticket == 0 || ev.Ticket != c.pending {
		c.log.Debug("dropping stale advance",
			zap.String("session", c.sessionID),
			zap.Uint64("ticket", uint64(ev.Ticket)))
		return nil, fmt.Errorf("%w: ticket %d in %s", ErrStaleTicket, ev.Ticket, c.phase)
	}

	c.pending = 0
	c.index++
	c.selected = ""

	if c.index < c.source.Len() {
		c.phase = PhaseAwaitingAnswer
		return []Signal{c.itemLoaded()}, nil
	}

	c.phase = PhaseFinished
	fb := Evaluate(c.score, c.source.Len())
	c.log.Info("session ended",
		zap.String("session", c.sessionID),
		zap.Int("score", c.score),
		zap.Int("total", c.source.Len()),
		zap.String("tier", string(fb.Tier)))

	return []Signal{SessionEnded{
		SessionID: c.sessionID,
		Score:     c.score,
		Total:     c.source.Len(),
		Feedback:  fb,
	}}, nil
}

// beginSession replaces all session state and loads the first item. Any
// pending advance is cancelled.
func (c *Controller) beginSession() []Signal {
	c.sessionID = c.newID()
	c.phase = PhaseAwaitingAnswer
	c.index = 0
	c.score = 0
	c.selected = ""
	c.results = nil
	c.pending = 0

	c.log.Info("session started",
		zap.String("session", c.sessionID),
		zap.Int("total", c.source.Len()))

	return []Signal{c.itemLoaded()}
}

func (c *Controller) itemLoaded() ItemLoaded {
	return ItemLoaded{
		SessionID: c.sessionID,
		Index:     c.index,
		Total:     c.source.Len(),
		Item:      c.mustItem(c.index),
	}
}

// mustItem fetches an item the transition logic guarantees is in range.
func (c *Controller) mustItem(i int) catalog.Item {
	item, err := c.source.Get(i)
	if err != nil {
		panic(fmt.Sprintf("quiz: session %s: %v", c.sessionID, err))
	}
	return item
}

// Phase returns the current state.
func (c *Controller) Phase() Phase { return c.phase }

// SessionID returns the active session's ID, empty before the first start.
func (c *Controller) SessionID() string { return c.sessionID }

// Index returns the 0-based active item, equal to the catalog length once finished.
func (c *Controller) Index() int { return c.index }

// Score returns the number of correct answers in the current session.
func (c *Controller) Score() int { return c.score }

// Selected returns the locked answer for the active item, empty if none.
func (c *Controller) Selected() catalog.Classification { return c.selected }

// PendingAdvance returns the ticket of the scheduled advance, if any.
func (c *Controller) PendingAdvance() (Ticket, bool) {
	return c.pending, c.pending != 0
}

// Results returns the answers scored so far in the current session.
func (c *Controller) Results() []AnswerRecord {
	return append([]AnswerRecord(nil), c.results...)
}

// View returns a render snapshot of the current state.
func (c *Controller) View() View {
	v := View{
		Phase:     c.phase,
		SessionID: c.sessionID,
		Index:     c.index,
		Total:     c.source.Len(),
		Score:     c.score,
		Selected:  c.selected,
	}

	switch c.phase {
	case PhaseAwaitingAnswer, PhaseLocked:
		item := c.mustItem(c.index)
		v.Item = &item
		v.Position = c.index + 1
		if c.phase == PhaseLocked && len(c.results) > 0 {
			v.LastCorrect = c.results[len(c.results)-1].Correct
		}
	case PhaseFinished:
		fb := Evaluate(c.score, c.source.Len())
		v.Feedback = &fb
		v.Position = c.source.Len()
	}
	return v
}
