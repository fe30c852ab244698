package question

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Record type tags.
const (
	TypeAtomic   = "atomic"
	TypeSequence = "sequence"
)

type atomicFields struct {
	Question      string  `json:"question" yaml:"question"`
	Answer        string  `json:"answer" yaml:"answer"`
	Score         int     `json:"score" yaml:"score"`
	Note          *string `json:"note" yaml:"note"`
	PreviousRaise int     `json:"previous_raise" yaml:"previous_raise"`
}

type atomicRecord struct {
	Type         string `json:"type" yaml:"type"`
	atomicFields `yaml:",inline"`
}

type sequenceRecord struct {
	Type    string         `json:"type" yaml:"type"`
	Content []atomicFields `json:"content" yaml:"content"`
}

// Record is the decoded shape of one serialized question, covering both
// variants. Fields that do not belong to Type are ignored.
type Record struct {
	Type         string `json:"type" yaml:"type"`
	atomicFields `yaml:",inline"`
	Content      []atomicFields `json:"content" yaml:"content"`
}

// ToRecords converts questions into their serializable form.
func ToRecords(qs []Question) []any {
	out := make([]any, 0, len(qs))
	for _, q := range qs {
		switch v := q.(type) {
		case *Atomic:
			out = append(out, atomicRecord{Type: TypeAtomic, atomicFields: fieldsOf(v)})
		case *Sequence:
			content := make([]atomicFields, len(v.Content))
			for i, c := range v.Content {
				content[i] = fieldsOf(c)
			}
			out = append(out, sequenceRecord{Type: TypeSequence, Content: content})
		}
	}
	return out
}

// FromRecords converts decoded records into questions. The index of the
// first offending record is reported on error.
func FromRecords(rs []Record) ([]Question, error) {
	out := make([]Question, 0, len(rs))
	for i, r := range rs {
		switch r.Type {
		case TypeAtomic:
			out = append(out, r.atomicFields.toAtomic())
		case TypeSequence:
			children := make([]*Atomic, len(r.Content))
			for j, c := range r.Content {
				children[j] = c.toAtomic()
			}
			seq, err := NewSequence(children...)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			out = append(out, seq)
		default:
			return nil, fmt.Errorf("record %d: %w %q", i, ErrUnknownType, r.Type)
		}
	}
	return out, nil
}

// MarshalJSON encodes questions as an indented JSON array.
func MarshalJSON(qs []Question) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ToRecords(qs)); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON array of question records.
func UnmarshalJSON(data []byte) ([]Question, error) {
	var rs []Record
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return FromRecords(rs)
}

// MarshalYAML encodes questions as a YAML sequence.
func MarshalYAML(qs []Question) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToRecords(qs)); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a YAML sequence of question records.
func UnmarshalYAML(data []byte) ([]Question, error) {
	var rs []Record
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return FromRecords(rs)
}

func fieldsOf(a *Atomic) atomicFields {
	f := atomicFields{
		Question:      a.Prompt,
		Answer:        a.Answer,
		Score:         a.Score,
		PreviousRaise: a.PreviousRaise,
	}
	if a.Note != nil {
		note := *a.Note
		f.Note = &note
	}
	return f
}

func (f atomicFields) toAtomic() *Atomic {
	return &Atomic{
		Prompt:        f.Question,
		Answer:        f.Answer,
		Note:          f.Note,
		Score:         f.Score,
		PreviousRaise: f.PreviousRaise,
	}
}
