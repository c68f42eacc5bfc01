package exam

import (
	"math/rand"

	"github.com/examstack/examstack/internal/bank"
)

// Counts configures how many questions of each type an exam draws.
type Counts struct {
	Single    int
	Multiple  int
	TrueFalse int
}

// Sample is one realized exam: single-choice questions first, then
// multiple-choice, then true/false. BreakSingle is the count of single-choice
// items; BreakMultiple is where the true/false section begins. A Sample is
// immutable once built and may be shared between sessions.
type Sample struct {
	Questions     []bank.Question
	BreakSingle   int
	BreakMultiple int
}

// New draws an exam from the pool. Questions with an empty normalized answer
// are dropped, the rest are bucketed by type, shuffled with the given seed and
// truncated to the configured counts. A short bucket yields a short section,
// not an error. The same pool order and seed always produce the same exam.
func New(pool []bank.Question, counts Counts, seed int64) *Sample {
	var singles, multiples, trueFalses []bank.Question
	for _, q := range pool {
		q.Answer = bank.NormalizeAnswer(q.Answer)
		if q.Answer == "" {
			continue
		}
		switch bank.Classify(q) {
		case bank.TypeTrueFalse:
			trueFalses = append(trueFalses, q)
		case bank.TypeSingle:
			singles = append(singles, q)
		case bank.TypeMultiple:
			multiples = append(multiples, q)
		}
	}

	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(singles), func(i, j int) { singles[i], singles[j] = singles[j], singles[i] })
	r.Shuffle(len(multiples), func(i, j int) { multiples[i], multiples[j] = multiples[j], multiples[i] })
	r.Shuffle(len(trueFalses), func(i, j int) { trueFalses[i], trueFalses[j] = trueFalses[j], trueFalses[i] })

	singles = singles[:min(counts.Single, len(singles))]
	multiples = multiples[:min(counts.Multiple, len(multiples))]
	trueFalses = trueFalses[:min(counts.TrueFalse, len(trueFalses))]

	qs := make([]bank.Question, 0, len(singles)+len(multiples)+len(trueFalses))
	qs = append(qs, singles...)
	qs = append(qs, multiples...)
	qs = append(qs, trueFalses...)

	return &Sample{
		Questions:     qs,
		BreakSingle:   len(singles),
		BreakMultiple: len(singles) + len(multiples),
	}
}
