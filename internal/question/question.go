package question

import (
	"errors"
	"strings"
)

var (
	// ErrEmptySequence is returned when a sequence has no children.
	ErrEmptySequence = errors.New("sequence question has no content")
	// ErrUnknownType is returned when a record carries an unrecognized type tag.
	ErrUnknownType = errors.New("unknown question type")
)

// Question is either an *Atomic or a *Sequence. The set is closed: the
// unexported marker keeps other packages from adding variants, and every
// score operation below switches over the two concrete types.
type Question interface {
	question()
}

// Atomic is a single prompt with one expected answer.
type Atomic struct {
	Prompt        string
	Answer        string
	Note          *string
	Score         int
	PreviousRaise int
}

// Sequence is an ordered group of atomic facts. Each child keeps its own
// score; the group is ranked by its weakest child.
type Sequence struct {
	Content []*Atomic
}

func (*Atomic) question()   {}
func (*Sequence) question() {}

// NewAtomic creates an atomic question with a zero score.
func NewAtomic(prompt, answer string) *Atomic {
	return &Atomic{Prompt: prompt, Answer: answer}
}

// NewSequence creates a sequence from the given children.
func NewSequence(children ...*Atomic) (*Sequence, error) {
	if len(children) == 0 {
		return nil, ErrEmptySequence
	}
	return &Sequence{Content: children}, nil
}

// HasNote reports whether the question carries a non-empty note.
func (a *Atomic) HasNote() bool {
	return a.Note != nil && *a.Note != ""
}

// Check reports whether submitted matches the expected answer, ignoring case
// and surrounding whitespace on both sides.
func (a *Atomic) Check(submitted string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(a.Answer))
}

// MinScore returns the lowest score reachable within q. An empty sequence
// reports 0.
func MinScore(q Question) int {
	switch v := q.(type) {
	case *Atomic:
		return v.Score
	case *Sequence:
		if len(v.Content) == 0 {
			return 0
		}
		lowest := v.Content[0].Score
		for _, c := range v.Content[1:] {
			if c.Score < lowest {
				lowest = c.Score
			}
		}
		return lowest
	}
	return 0
}

// DecreaseScore subtracts amount from every score contained in q.
func DecreaseScore(q Question, amount int) {
	switch v := q.(type) {
	case *Atomic:
		v.Score -= amount
	case *Sequence:
		for _, c := range v.Content {
			c.Score -= amount
		}
	}
}

// Clone returns a deep copy of q.
func Clone(q Question) Question {
	switch v := q.(type) {
	case *Atomic:
		return v.clone()
	case *Sequence:
		return v.clone()
	}
	return nil
}

// CloneAll deep-copies every question in qs.
func CloneAll(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = Clone(q)
	}
	return out
}

// Atomics returns the number of atomic facts contained in q.
func Atomics(q Question) int {
	switch v := q.(type) {
	case *Atomic:
		return 1
	case *Sequence:
		return len(v.Content)
	}
	return 0
}

func (a *Atomic) clone() *Atomic {
	c := *a
	if a.Note != nil {
		note := *a.Note
		c.Note = &note
	}
	return &c
}

func (s *Sequence) clone() *Sequence {
	content := make([]*Atomic, len(s.Content))
	for i, c := range s.Content {
		content[i] = c.clone()
	}
	return &Sequence{Content: content}
}
