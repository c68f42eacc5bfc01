package grading

import (
	"sort"
	"strings"

	"github.com/examstack/examstack/internal/bank"
)

// Weights are the per-item point values. Any question whose canonical answer
// has more than one letter is worth Multiple points, the rest Single.
type Weights struct {
	Single   int
	Multiple int
}

// Detail is the outcome for one question. Given is the candidate's letters,
// sorted, or "unanswered".
type Detail struct {
	Index     int    `json:"index"`
	Correct   bool   `json:"correct"`
	Canonical string `json:"canonical"`
	Given     string `json:"given"`
	Awarded   int    `json:"awarded"`
}

// Outcome is one submission's full scoring result.
type Outcome struct {
	Total   int      `json:"total"`
	Correct int      `json:"correct"`
	Details []Detail `json:"details"`
}

// Score grades recorded answers against the canonical answers. Correctness is
// exact set equality, no partial credit. Pure: same inputs, same outcome.
func Score(questions []bank.Question, answers []AnswerValue, w Weights) Outcome {
	out := Outcome{Details: make([]Detail, 0, len(questions))}
	for i, q := range questions {
		trueSet := letterSet(q.Answer)
		var userSet map[string]struct{}
		if i < len(answers) {
			userSet = answers[i].Set()
		} else {
			userSet = map[string]struct{}{}
		}

		correct := setEqual(trueSet, userSet)
		points := w.Single
		if len(trueSet) > 1 {
			points = w.Multiple
		}
		awarded := 0
		if correct {
			awarded = points
			out.Correct++
		}
		out.Total += awarded

		out.Details = append(out.Details, Detail{
			Index:     i,
			Correct:   correct,
			Canonical: joinSorted(trueSet),
			Given:     givenString(userSet),
			Awarded:   awarded,
		})
	}
	return out
}

func letterSet(answer string) map[string]struct{} {
	m := make(map[string]struct{}, len(answer))
	for _, r := range answer {
		m[string(r)] = struct{}{}
	}
	return m
}

func setEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func joinSorted(set map[string]struct{}) string {
	letters := make([]string, 0, len(set))
	for l := range set {
		letters = append(letters, l)
	}
	sort.Strings(letters)
	return strings.Join(letters, "")
}

func givenString(set map[string]struct{}) string {
	if len(set) == 0 {
		return "unanswered"
	}
	return joinSorted(set)
}
