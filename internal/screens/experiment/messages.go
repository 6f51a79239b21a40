package experiment

import "github.com/abhisek/chance/internal/quiz"

// advanceMsg is delivered when an answer's feedback delay has elapsed.
type advanceMsg struct {
	Ticket quiz.Ticket
}
