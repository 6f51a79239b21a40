// Package plain runs the lab as a line-oriented prompt for terminals without
// full-screen support and for scripted input.
package plain

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/abhisek/chance/internal/catalog"
	"github.com/abhisek/chance/internal/cue"
	"github.com/abhisek/chance/internal/quiz"
)

// ErrInputClosed is returned when input ends before the session finishes.
var ErrInputClosed = errors.New("plain: input closed before the lab was finished")

// Options configures Run.
type Options struct {
	In         io.Reader
	Out        io.Writer
	Controller *quiz.Controller
	Cue        *cue.Safe
	Logger     *zap.Logger

	// NoColor disables ANSI colors regardless of the terminal.
	NoColor bool
}

type palette struct {
	title, dim, good, bad, accent *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		title:  color.New(color.FgCyan, color.Bold),
		dim:    color.New(color.FgHiBlack),
		good:   color.New(color.FgGreen, color.Bold),
		bad:    color.New(color.FgRed, color.Bold),
		accent: color.New(color.FgYellow),
	}
	if noColor {
		for _, c := range []*color.Color{p.title, p.dim, p.good, p.bad, p.accent} {
			c.DisableColor()
		}
	}
	return p
}

type runner struct {
	opts   Options
	ctrl   *quiz.Controller
	out    io.Writer
	lines  *bufio.Scanner
	colors palette
	log    *zap.Logger
}

// Run plays one session to completion. It returns nil once the final score
// is printed or the player quits, and ErrInputClosed if input runs out first.
func Run(ctx context.Context, opts Options) error {
	if opts.Controller == nil {
		return errors.New("plain: controller is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Cue == nil {
		opts.Cue = cue.NewSafe(nil, opts.Logger)
	}

	r := &runner{
		opts:   opts,
		ctrl:   opts.Controller,
		out:    opts.Out,
		lines:  bufio.NewScanner(opts.In),
		colors: newPalette(opts.NoColor),
		log:    opts.Logger.Named("plain"),
	}

	begin := r.ctrl.Start
	if r.ctrl.Phase() != quiz.PhaseNotStarted {
		begin = r.ctrl.Restart
	}
	signals, err := begin()
	if err != nil {
		return fmt.Errorf("plain: begin session: %w", err)
	}
	r.printIntro()

	for {
		done, err := r.apply(ctx, signals)
		if err != nil || done {
			return err
		}

		signals, done, err = r.prompt()
		if err != nil || done {
			return err
		}
	}
}

// prompt reads lines until one produces signals. done reports a quit.
func (r *runner) prompt() (signals []quiz.Signal, done bool, err error) {
	for {
		fmt.Fprint(r.out, r.colors.accent.Sprint("> "))
		if !r.lines.Scan() {
			if err := r.lines.Err(); err != nil {
				return nil, false, fmt.Errorf("plain: read input: %w", err)
			}
			fmt.Fprintln(r.out)
			return nil, false, ErrInputClosed
		}

		line := strings.ToLower(strings.TrimSpace(r.lines.Text()))
		switch line {
		case "":
			continue
		case "q", "quit":
			r.colors.dim.Fprintln(r.out, "Goodbye!")
			return nil, true, nil
		case "r", "restart":
			signals, err := r.ctrl.Restart()
			return signals, false, err
		}

		choice, err := parseChoice(line)
		if err != nil {
			r.colors.bad.Fprintln(r.out, "Please answer impossible, possible or certain (1, 2 or 3).")
			continue
		}
		signals, err = r.ctrl.Submit(choice)
		if errors.Is(err, quiz.ErrInvalidTransition) {
			r.log.Debug("answer rejected", zap.Error(err))
			continue
		}
		return signals, false, err
	}
}

// apply prints each signal. Scheduled advances are waited out and applied
// immediately, and their signals are printed in turn.
func (r *runner) apply(ctx context.Context, signals []quiz.Signal) (done bool, err error) {
	for len(signals) > 0 {
		var next []quiz.Signal
		for _, sig := range signals {
			switch sig := sig.(type) {
			case quiz.ItemLoaded:
				r.printItem(sig)

			case quiz.AnswerEvaluated:
				r.printVerdict(sig)
				r.opts.Cue.Play(cue.For(sig.Correct))

			case quiz.AdvanceScheduled:
				if err := wait(ctx, sig.Delay); err != nil {
					return false, err
				}
				out, err := r.ctrl.Advance(sig.Ticket)
				if err != nil {
					return false, fmt.Errorf("plain: advance: %w", err)
				}
				next = append(next, out...)

			case quiz.SessionEnded:
				r.printFinal(sig)
				return true, nil
			}
		}
		signals = next
	}
	return false, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// parseChoice accepts a classification name or its 1-3 shortcut.
func parseChoice(s string) (catalog.Classification, error) {
	switch s {
	case "1", "i":
		return catalog.Impossible, nil
	case "2", "p":
		return catalog.Possible, nil
	case "3", "c":
		return catalog.Certain, nil
	}
	return catalog.ParseClassification(s)
}

func (r *runner) printIntro() {
	r.colors.title.Fprintln(r.out, "Probability Lab")
	r.colors.dim.Fprintln(r.out, "Classify each outcome as impossible (1), possible (2) or certain (3).")
	r.colors.dim.Fprintln(r.out, "Type r to restart or q to quit.")
}

func (r *runner) printItem(sig quiz.ItemLoaded) {
	item := sig.Item
	fmt.Fprintln(r.out)
	r.colors.dim.Fprintf(r.out, "Experiment %d of %d\n", sig.Index+1, sig.Total)
	r.colors.title.Fprintln(r.out, item.Title)
	fmt.Fprintln(r.out, item.Description)
	if len(item.Visual) > 0 {
		fmt.Fprintln(r.out, strings.Join(item.Visual, "  "))
	}
	fmt.Fprintf(r.out, "Outcome: %s\n", item.Outcome)
}

func (r *runner) printVerdict(sig quiz.AnswerEvaluated) {
	if sig.Correct {
		r.colors.good.Fprintln(r.out, "Correct!")
		return
	}
	r.colors.bad.Fprintf(r.out, "Not quite. This outcome is %s.\n",
		strings.ToLower(sig.Expected.DisplayName()))
}

func (r *runner) printFinal(sig quiz.SessionEnded) {
	fmt.Fprintln(r.out)
	r.colors.title.Fprintf(r.out, "Final score: %d/%d\n", sig.Score, sig.Total)
	c := r.colors.accent
	switch sig.Feedback.Tier {
	case quiz.TierExcellent:
		c = r.colors.good
	case quiz.TierGood:
		c = r.colors.title
	}
	c.Fprintln(r.out, sig.Feedback.Message)
}
