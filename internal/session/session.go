package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/examstack/examstack/internal/exam"
	"github.com/examstack/examstack/internal/grading"
)

var (
	ErrNoSession    = errors.New("session not found")
	ErrNoExam       = errors.New("exam not initialized")
	ErrSubmitted    = errors.New("already submitted")
	ErrNotSubmitted = errors.New("not submitted")
	ErrBadIndex     = errors.New("question index out of range")
)

// ValidationError reports bad candidate input.
type ValidationError struct{ Field string }

func (e *ValidationError) Error() string { return fmt.Sprintf("%s must not be blank", e.Field) }

// Candidate identifies who is taking the exam. Set once at session creation,
// immutable afterward.
type Candidate struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Session is one candidate's single attempt, from identity entry through
// result display. All mutation goes through the Manager.
type Session struct {
	ID        string
	Candidate Candidate

	Sample  *exam.Sample
	Answers []grading.AnswerValue

	Submitted   bool
	Outcome     *grading.Outcome
	SubmittedAt time.Time
	SinkWarning string

	CreatedAt time.Time
	LastSeen  time.Time
}

// Answered counts the questions with a recorded answer.
func (s *Session) Answered() int {
	n := 0
	for _, a := range s.Answers {
		if a.Kind != "" && a.Kind != grading.KindNone {
			n++
		}
	}
	return n
}
