package bank

import (
	"regexp"
	"strings"
)

// Question is one record of the question bank. Options beyond A and B are
// optional; an absent option is the empty string. Answer holds the canonical
// correct letter(s), stored normalized (trimmed, upper-cased).
type Question struct {
	Stem    string `json:"stem"`
	OptionA string `json:"option_a,omitempty"`
	OptionB string `json:"option_b,omitempty"`
	OptionC string `json:"option_c,omitempty"`
	OptionD string `json:"option_d,omitempty"`
	OptionE string `json:"option_e,omitempty"`
	OptionF string `json:"option_f,omitempty"`
	Answer  string `json:"answer"`
}

// Option is one labeled choice of a question.
type Option struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// Options returns the present (non-blank) options in label order.
func (q Question) Options() []Option {
	texts := []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.OptionE, q.OptionF}
	out := make([]Option, 0, len(texts))
	for i, t := range texts {
		if strings.TrimSpace(t) != "" {
			out = append(out, Option{Label: optionLabels[i], Text: t})
		}
	}
	return out
}

// NormalizeAnswer trims and upper-cases a raw answer cell.
func NormalizeAnswer(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// QuestionType is derived from a question, never stored in the bank.
type QuestionType string

const (
	TypeSingle    QuestionType = "single"
	TypeMultiple  QuestionType = "multiple"
	TypeTrueFalse QuestionType = "true_false"
)

var (
	labelPrefix = regexp.MustCompile(`(?i)^[A-Z]\.\s*`)
	trueWords   = []string{"对", "正确", "是"}
	falseWords  = []string{"错", "错误", "否"}
)

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Classify decides the type of a question. The true/false check runs before
// the answer-length checks: a true/false item's answer is usually a single
// letter and would otherwise be mistaken for single-choice. The caller
// guarantees q.Answer is normalized and non-empty.
func Classify(q Question) QuestionType {
	a := labelPrefix.ReplaceAllString(strings.TrimSpace(q.OptionA), "")
	b := labelPrefix.ReplaceAllString(strings.TrimSpace(q.OptionB), "")
	if containsAny(a, trueWords) && containsAny(b, falseWords) {
		return TypeTrueFalse
	}
	if len(q.Answer) == 1 {
		return TypeSingle
	}
	return TypeMultiple
}
