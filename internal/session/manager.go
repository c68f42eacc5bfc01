package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/examstack/examstack/internal/exam"
	"github.com/examstack/examstack/internal/grading"
	"github.com/examstack/examstack/internal/scores"
)

// Manager holds all in-progress attempts, keyed by session ID. Each session
// is mutated by one candidate's serial requests; the map itself is shared.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	sink     scores.Sink
	now      func() time.Time
}

func NewManager(ttl time.Duration, sink scores.Sink) *Manager {
	return &Manager{
		sessions: map[string]*Session{},
		ttl:      ttl,
		sink:     sink,
		now:      time.Now,
	}
}

// Create starts a session for the candidate. Blank name or id (after
// trimming) is a *ValidationError.
func (m *Manager) Create(c Candidate) (*Session, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.ID = strings.TrimSpace(c.ID)
	if c.Name == "" {
		return nil, &ValidationError{Field: "name"}
	}
	if c.ID == "" {
		return nil, &ValidationError{Field: "id"}
	}

	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		Candidate: c,
		CreatedAt: now,
		LastSeen:  now,
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

// Get looks up a live session and touches its idle timer. An expired session
// is dropped and reported as missing.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getLocked(id)
}

func (m *Manager) getLocked(id string) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNoSession
	}
	now := m.now()
	if m.ttl > 0 && now.Sub(s.LastSeen) > m.ttl {
		delete(m.sessions, id)
		return nil, ErrNoSession
	}
	s.LastSeen = now
	return s, nil
}

// Delete tears the session down (logout).
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Sweep drops every session idle past the TTL and returns how many went.
func (m *Manager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for id, s := range m.sessions {
		if now.Sub(s.LastSeen) > m.ttl {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// InitExam attaches the sampled exam to the session exactly once. Re-entry
// returns the already-attached sample untouched; resampling mid-attempt would
// silently change the candidate's exam.
func (m *Manager) InitExam(id string, build func() *exam.Sample) (*exam.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.getLocked(id)
	if err != nil {
		return nil, err
	}
	if s.Sample == nil {
		s.Sample = build()
		s.Answers = make([]grading.AnswerValue, len(s.Sample.Questions))
		for i := range s.Answers {
			s.Answers[i] = grading.None()
		}
	}
	return s.Sample, nil
}

// RecordAnswer overwrites the answer at index. The caller shapes the value to
// the question's type; the manager only guards the index and the submitted
// flag.
func (m *Manager) RecordAnswer(id string, index int, v grading.AnswerValue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.getLocked(id)
	if err != nil {
		return err
	}
	if s.Sample == nil {
		return ErrNoExam
	}
	if s.Submitted {
		return ErrSubmitted
	}
	if index < 0 || index >= len(s.Answers) {
		return ErrBadIndex
	}
	s.Answers[index] = v
	return nil
}

// Result is what a submission (or its replay) reports back.
type Result struct {
	Candidate   Candidate
	Outcome     grading.Outcome
	SubmittedAt time.Time
	Replayed    bool
	SinkWarning string
}

// Submit moves the session from answering to submitted, scores it and makes
// exactly one best-effort sink insert. A repeat call returns the cached
// result without rescoring or re-inserting. Sink failure only produces a
// warning; the session stays submitted either way.
func (m *Manager) Submit(ctx context.Context, id string, w grading.Weights) (Result, error) {
	m.mu.Lock()
	s, err := m.getLocked(id)
	if err != nil {
		m.mu.Unlock()
		return Result{}, err
	}
	if s.Sample == nil {
		m.mu.Unlock()
		return Result{}, ErrNoExam
	}
	if s.Submitted {
		res := Result{
			Candidate:   s.Candidate,
			Outcome:     *s.Outcome,
			SubmittedAt: s.SubmittedAt,
			Replayed:    true,
			SinkWarning: s.SinkWarning,
		}
		m.mu.Unlock()
		return res, nil
	}

	outcome := grading.Score(s.Sample.Questions, s.Answers, w)
	s.Submitted = true
	s.Outcome = &outcome
	s.SubmittedAt = m.now()
	rec := scores.Record{
		Name:        s.Candidate.Name,
		CandidateID: s.Candidate.ID,
		Score:       outcome.Total,
		SubmittedAt: s.SubmittedAt,
	}
	m.mu.Unlock()

	var warning string
	if err := m.sink.Insert(ctx, rec); err != nil {
		warning = "score could not be saved remotely: " + err.Error()
		m.mu.Lock()
		s.SinkWarning = warning
		m.mu.Unlock()
	}
	return Result{
		Candidate:   s.Candidate,
		Outcome:     outcome,
		SubmittedAt: rec.SubmittedAt,
		SinkWarning: warning,
	}, nil
}

// Result returns the cached submission result, or ErrNotSubmitted.
func (m *Manager) Result(id string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.getLocked(id)
	if err != nil {
		return Result{}, err
	}
	if !s.Submitted {
		return Result{}, ErrNotSubmitted
	}
	return Result{
		Candidate:   s.Candidate,
		Outcome:     *s.Outcome,
		SubmittedAt: s.SubmittedAt,
		Replayed:    true,
		SinkWarning: s.SinkWarning,
	}, nil
}
