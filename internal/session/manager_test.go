package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/examstack/examstack/internal/bank"
	"github.com/examstack/examstack/internal/exam"
	"github.com/examstack/examstack/internal/grading"
	"github.com/examstack/examstack/internal/scores"
	"github.com/examstack/examstack/internal/session"
)

type fakeSink struct {
	inserts []scores.Record
	fail    bool
}

func (f *fakeSink) Insert(_ context.Context, rec scores.Record) error {
	f.inserts = append(f.inserts, rec)
	if f.fail {
		return errors.New("sink down")
	}
	return nil
}

func (f *fakeSink) ListAll(_ context.Context) ([]scores.Record, error) {
	return f.inserts, nil
}

var weights = grading.Weights{Single: 1, Multiple: 2}

func testSample() *exam.Sample {
	return exam.New([]bank.Question{
		{Stem: "q1", OptionA: "A. x", OptionB: "B. y", Answer: "A"},
		{Stem: "q2", OptionA: "A. x", OptionB: "B. y", Answer: "BD"},
	}, exam.Counts{Single: 1, Multiple: 1}, 1)
}

func TestCreateValidation(t *testing.T) {
	mgr := session.NewManager(time.Hour, &fakeSink{})

	var ve *session.ValidationError
	_, err := mgr.Create(session.Candidate{Name: "  ", ID: "42"})
	if !errors.As(err, &ve) {
		t.Fatalf("blank name: got %v, want ValidationError", err)
	}
	_, err = mgr.Create(session.Candidate{Name: "Zhou", ID: ""})
	if !errors.As(err, &ve) {
		t.Fatalf("blank id: got %v, want ValidationError", err)
	}

	s, err := mgr.Create(session.Candidate{Name: " Zhou ", ID: " 42 "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.Candidate.Name != "Zhou" || s.Candidate.ID != "42" {
		t.Fatalf("candidate not trimmed: %+v", s.Candidate)
	}
}

func TestInitExamIdempotent(t *testing.T) {
	mgr := session.NewManager(time.Hour, &fakeSink{})
	s, _ := mgr.Create(session.Candidate{Name: "Zhou", ID: "42"})

	builds := 0
	build := func() *exam.Sample { builds++; return testSample() }

	a, err := mgr.InitExam(s.ID, build)
	if err != nil {
		t.Fatalf("init exam: %v", err)
	}
	b, err := mgr.InitExam(s.ID, build)
	if err != nil {
		t.Fatalf("re-init exam: %v", err)
	}
	if a != b {
		t.Fatal("re-entry must return the same sample, not a resampled one")
	}
	if builds != 1 {
		t.Fatalf("sample built %d times, want 1", builds)
	}
}

func TestRecordAnswerGuards(t *testing.T) {
	mgr := session.NewManager(time.Hour, &fakeSink{})
	s, _ := mgr.Create(session.Candidate{Name: "Zhou", ID: "42"})

	if err := mgr.RecordAnswer(s.ID, 0, grading.Single("A")); !errors.Is(err, session.ErrNoExam) {
		t.Fatalf("answer before exam: got %v, want ErrNoExam", err)
	}

	if _, err := mgr.InitExam(s.ID, testSample); err != nil {
		t.Fatalf("init exam: %v", err)
	}
	if err := mgr.RecordAnswer(s.ID, 5, grading.Single("A")); !errors.Is(err, session.ErrBadIndex) {
		t.Fatalf("out of range: got %v, want ErrBadIndex", err)
	}
	if err := mgr.RecordAnswer(s.ID, 0, grading.Single("A")); err != nil {
		t.Fatalf("record: %v", err)
	}
	// overwrite is allowed until submit
	if err := mgr.RecordAnswer(s.ID, 0, grading.Single("B")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	if _, err := mgr.Submit(context.Background(), s.ID, weights); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := mgr.RecordAnswer(s.ID, 0, grading.Single("A")); !errors.Is(err, session.ErrSubmitted) {
		t.Fatalf("answer after submit: got %v, want ErrSubmitted", err)
	}
}

func TestSubmitOnce(t *testing.T) {
	sink := &fakeSink{}
	mgr := session.NewManager(time.Hour, sink)
	s, _ := mgr.Create(session.Candidate{Name: "Zhou", ID: "42"})
	if _, err := mgr.InitExam(s.ID, testSample); err != nil {
		t.Fatalf("init exam: %v", err)
	}
	if err := mgr.RecordAnswer(s.ID, 0, grading.Single("A")); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := mgr.RecordAnswer(s.ID, 1, grading.Multiple([]string{"B", "D"})); err != nil {
		t.Fatalf("record: %v", err)
	}

	first, err := mgr.Submit(context.Background(), s.ID, weights)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if first.Replayed {
		t.Fatal("first submit reported as replay")
	}
	if first.Outcome.Total != 3 || first.Outcome.Correct != 2 {
		t.Fatalf("outcome = %d/%d, want 3/2", first.Outcome.Total, first.Outcome.Correct)
	}

	again, err := mgr.Submit(context.Background(), s.ID, weights)
	if err != nil {
		t.Fatalf("re-submit: %v", err)
	}
	if !again.Replayed {
		t.Fatal("second submit not reported as replay")
	}
	if again.Outcome.Total != first.Outcome.Total || !again.SubmittedAt.Equal(first.SubmittedAt) {
		t.Fatal("replay must return the cached result")
	}
	if len(sink.inserts) != 1 {
		t.Fatalf("sink inserts = %d, want exactly 1", len(sink.inserts))
	}
	if rec := sink.inserts[0]; rec.Name != "Zhou" || rec.CandidateID != "42" || rec.Score != 3 {
		t.Fatalf("sink record = %+v", rec)
	}
}

func TestSubmitSinkFailureIsNonFatal(t *testing.T) {
	sink := &fakeSink{fail: true}
	mgr := session.NewManager(time.Hour, sink)
	s, _ := mgr.Create(session.Candidate{Name: "Zhou", ID: "42"})
	if _, err := mgr.InitExam(s.ID, testSample); err != nil {
		t.Fatalf("init exam: %v", err)
	}

	res, err := mgr.Submit(context.Background(), s.ID, weights)
	if err != nil {
		t.Fatalf("submit with failing sink: %v", err)
	}
	if res.SinkWarning == "" {
		t.Fatal("expected a sink warning")
	}

	// still submitted, and the replay carries the warning without retrying
	again, err := mgr.Submit(context.Background(), s.ID, weights)
	if err != nil {
		t.Fatalf("re-submit: %v", err)
	}
	if !again.Replayed || again.SinkWarning == "" {
		t.Fatalf("replay = %+v", again)
	}
	if len(sink.inserts) != 1 {
		t.Fatalf("sink insert attempts = %d, want exactly 1", len(sink.inserts))
	}
}

func TestResultBeforeSubmit(t *testing.T) {
	mgr := session.NewManager(time.Hour, &fakeSink{})
	s, _ := mgr.Create(session.Candidate{Name: "Zhou", ID: "42"})
	if _, err := mgr.Result(s.ID); !errors.Is(err, session.ErrNotSubmitted) {
		t.Fatal("result before submit must fail")
	}
}

func TestTTLAndSweep(t *testing.T) {
	mgr := session.NewManager(20*time.Millisecond, &fakeSink{})
	old, _ := mgr.Create(session.Candidate{Name: "Old", ID: "1"})

	time.Sleep(30 * time.Millisecond)
	fresh, _ := mgr.Create(session.Candidate{Name: "Fresh", ID: "2"})

	if n := mgr.Sweep(); n != 1 {
		t.Fatalf("sweep dropped %d, want 1", n)
	}
	if _, err := mgr.Get(old.ID); !errors.Is(err, session.ErrNoSession) {
		t.Fatal("expired session still reachable")
	}
	if _, err := mgr.Get(fresh.ID); err != nil {
		t.Fatalf("fresh session gone: %v", err)
	}
}

func TestDelete(t *testing.T) {
	mgr := session.NewManager(time.Hour, &fakeSink{})
	s, _ := mgr.Create(session.Candidate{Name: "Zhou", ID: "42"})
	mgr.Delete(s.ID)
	if _, err := mgr.Get(s.ID); !errors.Is(err, session.ErrNoSession) {
		t.Fatal("deleted session still reachable")
	}
}
