package quiz

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/chance/internal/catalog"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()
	n := 0
	return New(catalog.Default(), Options{
		AdvanceDelay: DefaultAdvanceDelay,
		NewSessionID: func() string {
			n++
			return fmt.Sprintf("session-%d", n)
		},
	})
}

// scheduled extracts the AdvanceScheduled signal from a submit result.
func scheduled(t *testing.T, signals []Signal) AdvanceScheduled {
	t.Helper()
	for _, s := range signals {
		if as, ok := s.(AdvanceScheduled); ok {
			return as
		}
	}
	t.Fatalf("no AdvanceScheduled in %v", signals)
	return AdvanceScheduled{}
}

func evaluated(t *testing.T, signals []Signal) AnswerEvaluated {
	t.Helper()
	for _, s := range signals {
		if ae, ok := s.(AnswerEvaluated); ok {
			return ae
		}
	}
	t.Fatalf("no AnswerEvaluated in %v", signals)
	return AnswerEvaluated{}
}

// answerAndAdvance submits choice and applies the resulting advance.
func answerAndAdvance(t *testing.T, c *Controller, choice catalog.Classification) []Signal {
	t.Helper()
	signals, err := c.Submit(choice)
	require.NoError(t, err)
	out, err := c.Advance(scheduled(t, signals).Ticket)
	require.NoError(t, err)
	return out
}

func TestNew_NotStarted(t *testing.T) {
	c := newTestController(t)
	assert.Equal(t, PhaseNotStarted, c.Phase())
	assert.Empty(t, c.SessionID())
	v := c.View()
	assert.Nil(t, v.Item)
	assert.Equal(t, 0, v.Position)
	assert.Equal(t, 10, v.Total)
}

func TestStart_ResetsState(t *testing.T) {
	c := newTestController(t)
	signals, err := c.Start()
	require.NoError(t, err)

	assert.Equal(t, PhaseAwaitingAnswer, c.Phase())
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 0, c.Score())
	assert.Empty(t, c.Selected())
	assert.Equal(t, "session-1", c.SessionID())

	require.Len(t, signals, 1)
	loaded, ok := signals[0].(ItemLoaded)
	require.True(t, ok)
	assert.Equal(t, 0, loaded.Index)
	assert.Equal(t, 10, loaded.Total)
	assert.Equal(t, "Rolling a Die", loaded.Item.Title)

	v := c.View()
	assert.Equal(t, 1, v.Position)
	require.NotNil(t, v.Item)
	assert.Equal(t, "Rolling a 7", v.Item.Outcome)
}

func TestStart_OnlyFromNotStarted(t *testing.T) {
	c := newTestController(t)
	_, err := c.Start()
	require.NoError(t, err)
	_, err = c.Submit(catalog.Possible)
	require.NoError(t, err)

	signals, err := c.Start()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, signals)
	assert.Equal(t, PhaseLocked, c.Phase())
	assert.Equal(t, "session-1", c.SessionID())
}

func TestSubmit_CorrectFirstItem(t *testing.T) {
	c := newTestController(t)
	_, _ = c.Start()

	signals, err := c.Submit(catalog.Impossible)
	require.NoError(t, err)

	ae := evaluated(t, signals)
	assert.True(t, ae.Correct)
	assert.Equal(t, 0, ae.Index)
	assert.Equal(t, catalog.Impossible, ae.Choice)
	assert.Equal(t, 1, c.Score())
	assert.Equal(t, PhaseLocked, c.Phase())
	assert.Equal(t, catalog.Impossible, c.Selected())

	as := scheduled(t, signals)
	assert.Equal(t, 1800*time.Millisecond, as.Delay)
	pending, ok := c.PendingAdvance()
	assert.True(t, ok)
	assert.Equal(t, as.Ticket, pending)
}

func TestSubmit_IncorrectFirstItem(t *testing.T) {
	c := newTestController(t)
	_, _ = c.Start()

	signals, err := c.Submit(catalog.Possible)
	require.NoError(t, err)

	ae := evaluated(t, signals)
	assert.False(t, ae.Correct)
	assert.Equal(t, catalog.Impossible, ae.Expected)
	assert.Equal(t, 0, c.Score())
	assert.False(t, c.View().LastCorrect)
}

func TestSubmit_SecondSubmissionIsNoop(t *testing.T) {
	c := newTestController(t)
	_, _ = c.Start()

	_, err := c.Submit(catalog.Possible)
	require.NoError(t, err)
	before := c.View()
	ticket, _ := c.PendingAdvance()

	signals, err := c.Submit(catalog.Impossible)
	assert.ErrorIs(t, err, ErrAnswerLocked)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, signals)

	assert.Equal(t, before, c.View())
	assert.Equal(t, 0, c.Score())
	after, _ := c.PendingAdvance()
	assert.Equal(t, ticket, after)
	assert.Len(t, c.Results(), 1)
}

func TestSubmit_InvalidChoiceRejected(t *testing.T) {
	c := newTestController(t)
	_, _ = c.Start()

	for _, choice := range []catalog.Classification{"", "likely", "IMPOSSIBLE"} {
		signals, err := c.Submit(choice)
		assert.ErrorIs(t, err, ErrInvalidTransition, "choice %q", choice)
		assert.Nil(t, signals)
	}
	assert.Equal(t, PhaseAwaitingAnswer, c.Phase())
	assert.Empty(t, c.Selected())
	assert.Equal(t, 0, c.Score())
}

func TestSubmit_RejectedOutsideSession(t *testing.T) {
	c := newTestController(t)
	_, err := c.Submit(catalog.Certain)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, PhaseNotStarted, c.Phase())
}

func TestAdvance_MovesToNextItem(t *testing.T) {
	c := newTestController(t)
	_, _ = c.Start()

	signals := answerAndAdvance(t, c, catalog.Impossible)

	assert.Equal(t, 1, c.Index())
	assert.Empty(t, c.Selected())
	assert.Equal(t, PhaseAwaitingAnswer, c.Phase())
	_, ok := c.PendingAdvance()
	assert.False(t, ok)

	require.Len(t, signals, 1)
	loaded, ok := signals[0].(ItemLoaded)
	require.True(t, ok)
	assert.Equal(t, 1, loaded.Index)
	assert.Equal(t, "Flipping a Coin", loaded.Item.Title)
	assert.Equal(t, 2, c.View().Position)
}

func TestAdvance_WithoutPendingIsRejected(t *testing.T) {
	c := newTestController(t)
	_, _ = c.Start()

	_, err := c.Advance(1)
	assert.ErrorIs(t, err, ErrStaleTicket)
	assert.Equal(t, 0, c.Index())

	_, err = c.Advance(0)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAdvance_TicketUsableOnce(t *testing.T) {
	c := newTestController(t)
	_, _ = c.Start()

	signals, _ := c.Submit(catalog.Impossible)
	ticket := scheduled(t, signals).Ticket

	_, err := c.Advance(ticket)
	require.NoError(t, err)
	_, err = c.Advance(ticket)
	assert.ErrorIs(t, err, ErrStaleTicket)
	assert.Equal(t, 1, c.Index())
}

func TestFullSession_AllCorrect(t *testing.T) {
	c := newTestController(t)
	_, _ = c.Start()

	var last []Signal
	for _, it := range catalog.Default().Items() {
		last = answerAndAdvance(t, c, it.Correct)
	}

	assert.Equal(t, PhaseFinished, c.Phase())
	assert.Equal(t, 10, c.Score())
	assert.Equal(t, 10, c.Index())

	require.Len(t, last, 1)
	ended, ok := last[0].(SessionEnded)
	require.True(t, ok)
	assert.Equal(t, 10, ended.Score)
	assert.Equal(t, 10, ended.Total)
	assert.Equal(t, TierExcellent, ended.Feedback.Tier)

	v := c.View()
	assert.Nil(t, v.Item)
	require.NotNil(t, v.Feedback)
	assert.Equal(t, TierExcellent, v.Feedback.Tier)
}

func TestFullSession_ScoreMatchesCorrectCount(t *testing.T) {
	items := catalog.Default().Items()
	wrong := map[catalog.Classification]catalog.Classification{
		catalog.Impossible: catalog.Possible,
		catalog.Possible:   catalog.Certain,
		catalog.Certain:    catalog.Impossible,
	}

	for correctCount := 0; correctCount <= len(items); correctCount++ {
		t.Run(fmt.Sprintf("correct=%d", correctCount), func(t *testing.T) {
			c := newTestController(t)
			_, _ = c.Start()

			for i, it := range items {
				choice := wrong[it.Correct]
				if i < correctCount {
					choice = it.Correct
				}
				answerAndAdvance(t, c, choice)
				assert.LessOrEqual(t, c.Score(), len(items))
			}

			assert.Equal(t, PhaseFinished, c.Phase())
			assert.Equal(t, correctCount, c.Score())
			assert.Equal(t, Evaluate(correctCount, len(items)), *c.View().Feedback)

			results := c.Results()
			require.Len(t, results, len(items))
			for i, r := range results {
				assert.Equal(t, i, r.Index)
				assert.Equal(t, i < correctCount, r.Correct)
			}
		})
	}
}

func TestFinished_RejectsSubmitAndAdvance(t *testing.T) {
	c := newTestController(t)
	_, _ = c.Start()
	for _, it := range catalog.Default().Items() {
		answerAndAdvance(t, c, it.Correct)
	}

	_, err := c.Submit(catalog.Certain)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = c.Advance(1)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 10, c.Score())
	assert.Equal(t, PhaseFinished, c.Phase())
}

func TestRestart_FromFinished(t *testing.T) {
	c := newTestController(t)
	_, _ = c.Start()
	for _, it := range catalog.Default().Items() {
		answerAndAdvance(t, c, it.Correct)
	}

	signals, err := c.Restart()
	require.NoError(t, err)
	assert.Equal(t, PhaseAwaitingAnswer, c.Phase())
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 0, c.Score())
	assert.Empty(t, c.Results())
	assert.Equal(t, "session-2", c.SessionID())

	require.Len(t, signals, 1)
	_, ok := signals[0].(ItemLoaded)
	assert.True(t, ok)
}

func TestRestart_CancelsPendingAdvance(t *testing.T) {
	c := newTestController(t)
	_, _ = c.Start()

	// Answer item 0 and item 1, leaving item 1's advance pending.
	answerAndAdvance(t, c, catalog.Impossible)
	signals, err := c.Submit(catalog.Possible)
	require.NoError(t, err)
	stale := scheduled(t, signals).Ticket

	_, err = c.Restart()
	require.NoError(t, err)
	_, ok := c.PendingAdvance()
	assert.False(t, ok)

	// The old timer fires against the new session.
	_, err = c.Advance(stale)
	assert.ErrorIs(t, err, ErrStaleTicket)
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, PhaseAwaitingAnswer, c.Phase())

	// Even once the new session has its own pending advance.
	signals, err = c.Submit(catalog.Impossible)
	require.NoError(t, err)
	fresh := scheduled(t, signals).Ticket
	assert.NotEqual(t, stale, fresh)

	_, err = c.Advance(stale)
	assert.ErrorIs(t, err, ErrStaleTicket)
	assert.Equal(t, 0, c.Index())

	_, err = c.Advance(fresh)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Index())
}

func TestRestart_FromNotStarted(t *testing.T) {
	c := newTestController(t)
	_, err := c.Restart()
	require.NoError(t, err)
	assert.Equal(t, PhaseAwaitingAnswer, c.Phase())
	assert.Equal(t, 0, c.Index())
}

func TestDispatch_UnknownEvent(t *testing.T) {
	c := newTestController(t)
	_, err := c.Dispatch(Event{Kind: EventKind(42)})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestNew_DelayDefaults(t *testing.T) {
	c := New(catalog.Default(), Options{AdvanceDelay: -1})
	_, _ = c.Start()
	signals, _ := c.Submit(catalog.Certain)
	assert.Equal(t, DefaultAdvanceDelay, scheduled(t, signals).Delay)

	c = New(catalog.Default(), Options{})
	_, _ = c.Start()
	signals, _ = c.Submit(catalog.Certain)
	assert.Equal(t, time.Duration(0), scheduled(t, signals).Delay)
	assert.NotEmpty(t, c.SessionID())
}

func TestSmallCatalog(t *testing.T) {
	cat, err := catalog.New([]catalog.Item{
		{Title: "Coin", Outcome: "Heads", Correct: catalog.Possible},
	})
	require.NoError(t, err)

	c := New(cat, Options{})
	_, _ = c.Start()
	signals := answerAndAdvance(t, c, catalog.Possible)

	require.Len(t, signals, 1)
	ended := signals[0].(SessionEnded)
	assert.Equal(t, 1, ended.Score)
	assert.Equal(t, TierExcellent, ended.Feedback.Tier)
}
