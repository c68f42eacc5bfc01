package exam_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/examstack/examstack/internal/bank"
	"github.com/examstack/examstack/internal/exam"
)

func buildPool(singles, multiples, trueFalses int) []bank.Question {
	var pool []bank.Question
	for i := 0; i < singles; i++ {
		pool = append(pool, bank.Question{
			Stem: fmt.Sprintf("single %d", i), OptionA: "A. x", OptionB: "B. y", Answer: "A",
		})
	}
	for i := 0; i < multiples; i++ {
		pool = append(pool, bank.Question{
			Stem: fmt.Sprintf("multiple %d", i), OptionA: "A. x", OptionB: "B. y", Answer: "AB",
		})
	}
	for i := 0; i < trueFalses; i++ {
		pool = append(pool, bank.Question{
			Stem: fmt.Sprintf("judge %d", i), OptionA: "A. 对", OptionB: "B. 错", Answer: "A",
		})
	}
	return pool
}

func TestNewDeterministic(t *testing.T) {
	pool := buildPool(20, 15, 8)
	counts := exam.Counts{Single: 10, Multiple: 5, TrueFalse: 3}

	a := exam.New(pool, counts, 42)
	b := exam.New(pool, counts, 42)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same pool and seed must yield the identical exam")
	}

	c := exam.New(pool, counts, 43)
	if reflect.DeepEqual(a.Questions, c.Questions) {
		t.Fatal("different seeds should reorder the exam")
	}
}

func TestNewSectionLayout(t *testing.T) {
	pool := buildPool(20, 15, 8)
	s := exam.New(pool, exam.Counts{Single: 10, Multiple: 5, TrueFalse: 3}, 42)

	if got := len(s.Questions); got != 18 {
		t.Fatalf("questions = %d, want 18", got)
	}
	if s.BreakSingle != 10 || s.BreakMultiple != 15 {
		t.Fatalf("breaks = %d/%d, want 10/15", s.BreakSingle, s.BreakMultiple)
	}
	for i, q := range s.Questions {
		typ := bank.Classify(q)
		switch {
		case i < s.BreakSingle:
			if typ != bank.TypeSingle {
				t.Fatalf("question %d: type %s in single section", i, typ)
			}
		case i < s.BreakMultiple:
			if typ != bank.TypeMultiple {
				t.Fatalf("question %d: type %s in multiple section", i, typ)
			}
		default:
			if typ != bank.TypeTrueFalse {
				t.Fatalf("question %d: type %s in true/false section", i, typ)
			}
		}
	}

	seen := map[string]bool{}
	for _, q := range s.Questions {
		if seen[q.Stem] {
			t.Fatalf("question %q sampled twice", q.Stem)
		}
		seen[q.Stem] = true
	}
}

func TestNewShortBank(t *testing.T) {
	// short bucket yields a short section, silently
	pool := buildPool(4, 2, 0)
	s := exam.New(pool, exam.Counts{Single: 10, Multiple: 5, TrueFalse: 3}, 42)
	if got := len(s.Questions); got != 6 {
		t.Fatalf("questions = %d, want 6", got)
	}
	if s.BreakSingle != 4 || s.BreakMultiple != 6 {
		t.Fatalf("breaks = %d/%d, want 4/6", s.BreakSingle, s.BreakMultiple)
	}
}

func TestNewDropsEmptyAnswers(t *testing.T) {
	pool := buildPool(3, 0, 0)
	pool = append(pool, bank.Question{Stem: "blank", OptionA: "A. x", OptionB: "B. y", Answer: "  "})
	s := exam.New(pool, exam.Counts{Single: 10}, 42)
	if got := len(s.Questions); got != 3 {
		t.Fatalf("questions = %d, want 3", got)
	}
}

func TestMemoReturnsSameSample(t *testing.T) {
	pool := buildPool(10, 5, 2)
	counts := exam.Counts{Single: 5, Multiple: 3, TrueFalse: 1}

	var m exam.Memo
	a := m.Sample(pool, counts, 42)
	b := m.Sample(pool, counts, 42)
	if a != b {
		t.Fatal("memo must return the same sample pointer for unchanged inputs")
	}

	c := m.Sample(pool, counts, 7)
	if a == c {
		t.Fatal("memo must rebuild when the seed changes")
	}
}
