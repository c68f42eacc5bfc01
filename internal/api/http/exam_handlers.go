package http

import (
	"encoding/json"
	"net/http"

	"github.com/examstack/examstack/internal/auth"
	"github.com/examstack/examstack/internal/exam"
	"github.com/examstack/examstack/internal/grading"
	"github.com/examstack/examstack/internal/session"
)

// GetExamHandler attaches the sampled exam to the caller's session (first
// request only; re-entry returns the same sample) and serves the student
// view.
func GetExamHandler(mgr *session.Manager, build func() *exam.Sample, weights grading.Weights) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sample, err := mgr.InitExam(auth.SessionIDFromContext(r.Context()), build)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, newExamView(sample, weights))
	}
}

// RecordAnswerHandler overwrites one answer. The client sends the value
// shaped for the question's type; answers are rejected once submitted.
func RecordAnswerHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Index int                 `json:"index"`
			Value grading.AnswerValue `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if err := mgr.RecordAnswer(auth.SessionIDFromContext(r.Context()), req.Index, req.Value); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SubmitHandler performs the one-shot submit. Repeat calls replay the cached
// result; the sink is written at most once.
func SubmitHandler(mgr *session.Manager, weights grading.Weights) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := mgr.Submit(r.Context(), auth.SessionIDFromContext(r.Context()), weights)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, newResultView(res))
	}
}

func GetResultHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := mgr.Result(auth.SessionIDFromContext(r.Context()))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, newResultView(res))
	}
}
