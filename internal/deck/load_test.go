package deck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/rote/internal/question"
)

const jsonDeck = `[
  {"type": "atomic", "question": "largest planet", "answer": "Jupiter", "score": 2, "note": "gas giant"},
  {"type": "sequence", "content": [
    {"question": "1st planet", "answer": "Mercury", "score": 0},
    {"question": "2nd planet", "answer": "Venus", "score": 1, "previous_raise": 1, "note": null}
  ]}
]`

const yamlDeck = `
- type: atomic
  question: largest planet
  answer: Jupiter
  score: 2
  note: gas giant
- type: sequence
  content:
    - question: 1st planet
      answer: Mercury
      score: 0
    - question: 2nd planet
      answer: Venus
      score: 1
      previous_raise: 1
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse_JSON(t *testing.T) {
	qs, err := Parse([]byte(jsonDeck), FormatJSON)
	require.NoError(t, err)
	require.Len(t, qs, 2)

	a, ok := qs[0].(*question.Atomic)
	require.True(t, ok)
	assert.Equal(t, "Jupiter", a.Answer)
	require.NotNil(t, a.Note)
	assert.Equal(t, "gas giant", *a.Note)

	s, ok := qs[1].(*question.Sequence)
	require.True(t, ok)
	require.Len(t, s.Content, 2)
	assert.Equal(t, 1, s.Content[1].PreviousRaise)
	assert.Equal(t, 0, question.MinScore(s))
}

func TestParse_YAMLMatchesJSON(t *testing.T) {
	fromJSON, err := Parse([]byte(jsonDeck), FormatJSON)
	require.NoError(t, err)
	fromYAML, err := Parse([]byte(yamlDeck), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, fromJSON, fromYAML)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `[{"type":`},
		{"not an array", `{"type":"atomic","question":"q","answer":"a","score":0}`},
		{"unknown type", `[{"type":"simple","question":"q","answer":"a","score":0}]`},
		{"missing answer", `[{"type":"atomic","question":"q","score":0}]`},
		{"fractional score", `[{"type":"atomic","question":"q","answer":"a","score":1.5}]`},
		{"negative streak", `[{"type":"atomic","question":"q","answer":"a","score":0,"previous_raise":-1}]`},
		{"empty sequence", `[{"type":"sequence","content":[]}]`},
		{"child missing score", `[{"type":"sequence","content":[{"question":"q","answer":"a"}]}]`},
		{"sequence with atomic type", `[{"type":"atomic","content":[{"question":"q","answer":"a","score":0}]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatJSON)
			assert.ErrorIs(t, err, ErrInvalidDeck)
		})
	}
}

func TestParse_IgnoresUnknownKeys(t *testing.T) {
	data := `[
	  {"type": "atomic", "question": "q", "answer": "a", "score": 1, "hint": "x"},
	  {"type": "sequence", "tags": ["t"], "content": [
	    {"type": "atomic", "question": "c", "answer": "d", "score": 0, "extra": true}
	  ]}
	]`
	qs, err := Parse([]byte(data), FormatJSON)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "a", qs[0].(*question.Atomic).Answer)
	assert.Equal(t, 1, question.MinScore(qs[0]))
	s, ok := qs[1].(*question.Sequence)
	require.True(t, ok)
	assert.Equal(t, "d", s.Content[0].Answer)

	fromYAML, err := Parse([]byte(`- type: atomic
  question: q
  answer: a
  score: 1
  hint: x
`), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, qs[0], fromYAML[0])
}

func TestParse_EmptyDeck(t *testing.T) {
	qs, err := Parse([]byte(`[]`), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, qs)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "planets.yml", yamlDeck)

	qs, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, qs, 2)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, dir, "notes.txt", "hello"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(writeFile(t, dir, "bad.json", `[{"type":"atomic"}]`))
	assert.ErrorIs(t, err, ErrInvalidDeck)
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.json", FormatJSON, false},
		{"dir/A.JSON", FormatJSON, false},
		{"a.yaml", FormatYAML, false},
		{"a.yml", FormatYAML, false},
		{"a.toml", 0, true},
		{"json", 0, true},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if tt.wantErr {
			assert.Error(t, err, tt.path)
			continue
		}
		assert.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}
