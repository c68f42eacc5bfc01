package grading

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Kind tags an AnswerValue. The UI layer picks the kind from the question's
// classified type; it is never inferred from the runtime shape of a value.
type Kind string

const (
	KindNone     Kind = "none"
	KindSingle   Kind = "single"
	KindMultiple Kind = "multiple"
)

// AnswerValue is a candidate's recorded answer for one question: nothing yet,
// a single letter, or a set of letters.
type AnswerValue struct {
	Kind    Kind
	Letter  string   // set when Kind == KindSingle
	Letters []string // set when Kind == KindMultiple
}

// None is the unanswered value.
func None() AnswerValue { return AnswerValue{Kind: KindNone} }

// Single wraps one chosen letter.
func Single(letter string) AnswerValue {
	return AnswerValue{Kind: KindSingle, Letter: strings.ToUpper(strings.TrimSpace(letter))}
}

// Multiple wraps a set of chosen letters.
func Multiple(letters []string) AnswerValue {
	out := make([]string, 0, len(letters))
	for _, l := range letters {
		if s := strings.ToUpper(strings.TrimSpace(l)); s != "" {
			out = append(out, s)
		}
	}
	return AnswerValue{Kind: KindMultiple, Letters: out}
}

// Set returns the answer as a letter set; empty when unanswered.
func (v AnswerValue) Set() map[string]struct{} {
	m := map[string]struct{}{}
	switch v.Kind {
	case KindSingle:
		if v.Letter != "" {
			m[v.Letter] = struct{}{}
		}
	case KindMultiple:
		for _, l := range v.Letters {
			m[l] = struct{}{}
		}
	}
	return m
}

// Wire encoding: null | {"type":"single","letter":"A"} |
// {"type":"multiple","letters":["B","D"]}.

type answerWire struct {
	Type    Kind     `json:"type"`
	Letter  string   `json:"letter,omitempty"`
	Letters []string `json:"letters,omitempty"`
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.Kind == "" || v.Kind == KindNone {
		return []byte("null"), nil
	}
	return json.Marshal(answerWire{Type: v.Kind, Letter: v.Letter, Letters: v.Letters})
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = None()
		return nil
	}
	var w answerWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Type {
	case KindNone:
		*v = None()
	case KindSingle:
		*v = Single(w.Letter)
	case KindMultiple:
		*v = Multiple(w.Letters)
	default:
		return fmt.Errorf("unknown answer type %q", w.Type)
	}
	return nil
}
