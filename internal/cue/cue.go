// Package cue plays the short audio cue after an answer is evaluated.
package cue

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Kind is the cue to play.
type Kind int

const (
	CueCorrect Kind = iota
	CueIncorrect
)

func (k Kind) String() string {
	if k == CueCorrect {
		return "correct"
	}
	return "incorrect"
}

// ErrUnavailable is returned by players that cannot produce sound.
var ErrUnavailable = errors.New("audio unavailable")

// Player plays a cue. Implementations may fail; callers should wrap them in
// Safe so failures never reach game state.
type Player interface {
	Play(k Kind) error
}

// Bell rings the terminal bell: once for a correct answer, twice for an
// incorrect one.
type Bell struct {
	mu  sync.Mutex
	out io.Writer
}

// NewBell returns a Bell writing to out.
func NewBell(out io.Writer) *Bell {
	return &Bell{out: out}
}

func (b *Bell) Play(k Kind) error {
	if b == nil || b.out == nil {
		return ErrUnavailable
	}
	seq := "\a"
	if k == CueIncorrect {
		seq = "\a\a"
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := io.WriteString(b.out, seq); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}

// Silent is a Player that does nothing. Used when sound is disabled.
type Silent struct{}

func (Silent) Play(Kind) error { return nil }

// Safe wraps a Player and swallows its errors after logging them.
type Safe struct {
	inner Player
	log   *zap.Logger
}

// NewSafe returns a Safe wrapping p. A nil logger discards failures silently.
func NewSafe(p Player, log *zap.Logger) *Safe {
	if p == nil {
		p = Silent{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Safe{inner: p, log: log.Named("cue")}
}

// Play plays k, recovering from panics and dropping errors.
func (s *Safe) Play(k Kind) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn("cue panicked", zap.Stringer("cue", k), zap.Any("panic", r))
		}
	}()
	if err := s.inner.Play(k); err != nil {
		s.log.Warn("cue playback failed", zap.Stringer("cue", k), zap.Error(err))
	}
}

// For returns the cue matching an evaluation result.
func For(correct bool) Kind {
	if correct {
		return CueCorrect
	}
	return CueIncorrect
}
