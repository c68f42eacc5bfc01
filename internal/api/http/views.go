package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/examstack/examstack/internal/bank"
	"github.com/examstack/examstack/internal/exam"
	"github.com/examstack/examstack/internal/grading"
	"github.com/examstack/examstack/internal/session"
)

type sessionView struct {
	Candidate session.Candidate `json:"candidate"`
	Submitted bool              `json:"submitted"`
	Answered  int               `json:"answered"`
	Total     int               `json:"total"`
}

func newSessionView(s *session.Session) sessionView {
	v := sessionView{Candidate: s.Candidate, Submitted: s.Submitted, Answered: s.Answered()}
	if s.Sample != nil {
		v.Total = len(s.Sample.Questions)
	}
	return v
}

type optionView struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type questionView struct {
	Index   int          `json:"index"`
	Stem    string       `json:"stem"`
	Type    string       `json:"type"`
	Options []optionView `json:"options"`
}

// examView is the student-safe rendering of a sample: stems and options
// only, canonical answers stripped.
type examView struct {
	Total         int            `json:"total"`
	BreakSingle   int            `json:"break_single"`
	BreakMultiple int            `json:"break_multiple"`
	SingleScore   int            `json:"single_score"`
	MultipleScore int            `json:"multiple_score"`
	Questions     []questionView `json:"questions"`
}

func newExamView(s *exam.Sample, w grading.Weights) examView {
	v := examView{
		Total:         len(s.Questions),
		BreakSingle:   s.BreakSingle,
		BreakMultiple: s.BreakMultiple,
		SingleScore:   w.Single,
		MultipleScore: w.Multiple,
		Questions:     make([]questionView, 0, len(s.Questions)),
	}
	for i, q := range s.Questions {
		opts := q.Options()
		qv := questionView{Index: i, Stem: q.Stem, Type: string(bank.Classify(q)), Options: make([]optionView, 0, len(opts))}
		for _, o := range opts {
			qv.Options = append(qv.Options, optionView{Label: o.Label, Text: o.Text})
		}
		v.Questions = append(v.Questions, qv)
	}
	return v
}

type resultView struct {
	Candidate   session.Candidate `json:"candidate"`
	Total       int               `json:"total"`
	Correct     int               `json:"correct"`
	SubmittedAt time.Time         `json:"submitted_at"`
	Details     []grading.Detail  `json:"details"`
	Warning     string            `json:"warning,omitempty"`
}

func newResultView(r session.Result) resultView {
	return resultView{
		Candidate:   r.Candidate,
		Total:       r.Outcome.Total,
		Correct:     r.Outcome.Correct,
		SubmittedAt: r.SubmittedAt,
		Details:     r.Outcome.Details,
		Warning:     r.SinkWarning,
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	var ve *session.ValidationError
	switch {
	case errors.As(err, &ve):
		http.Error(w, ve.Error(), http.StatusBadRequest)
	case errors.Is(err, session.ErrNoSession):
		http.Error(w, "session not found", http.StatusUnauthorized)
	case errors.Is(err, session.ErrBadIndex):
		http.Error(w, "question index out of range", http.StatusBadRequest)
	case errors.Is(err, session.ErrSubmitted):
		http.Error(w, "already submitted", http.StatusConflict)
	case errors.Is(err, session.ErrNotSubmitted):
		http.Error(w, "not submitted", http.StatusConflict)
	case errors.Is(err, session.ErrNoExam):
		http.Error(w, "exam not initialized", http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
