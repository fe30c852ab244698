package drill

import (
	"strings"
	"unicode"
)

// MarkKind classifies a run of characters in answer feedback.
type MarkKind int

const (
	// MarkMatch is input that equals the expected text.
	MarkMatch MarkKind = iota
	// MarkCase is input that differs from the expected text only by case.
	MarkCase
	// MarkWrong is input that differs from, or runs past, the expected text.
	MarkWrong
	// MarkMissing is expected text the input never reached.
	MarkMissing
)

// Mark is a run of characters sharing one classification.
type Mark struct {
	Kind MarkKind
	Text string
}

// Diff compares submitted to expected rune by rune. Runs of equal kind are
// merged. Wrong marks carry the submitted characters; missing marks carry
// the expected tail.
func Diff(submitted, expected string) []Mark {
	got := []rune(submitted)
	want := []rune(expected)

	var marks []Mark
	push := func(kind MarkKind, r rune) {
		if n := len(marks); n > 0 && marks[n-1].Kind == kind {
			marks[n-1].Text += string(r)
			return
		}
		marks = append(marks, Mark{Kind: kind, Text: string(r)})
	}

	for i, r := range got {
		switch {
		case i >= len(want):
			push(MarkWrong, r)
		case r == want[i]:
			push(MarkMatch, r)
		case unicode.ToLower(r) == unicode.ToLower(want[i]):
			push(MarkCase, r)
		default:
			push(MarkWrong, r)
		}
	}
	if len(got) < len(want) {
		marks = append(marks, Mark{Kind: MarkMissing, Text: string(want[len(got):])})
	}
	return marks
}

// plainDiff renders marks without colour, bracketing everything that is
// not an exact match. Used when styling is disabled.
func plainDiff(marks []Mark) string {
	var b strings.Builder
	for _, m := range marks {
		switch m.Kind {
		case MarkMatch:
			b.WriteString(m.Text)
		case MarkCase:
			b.WriteString("~" + m.Text + "~")
		case MarkWrong:
			b.WriteString("[" + m.Text + "]")
		case MarkMissing:
			b.WriteString("_" + m.Text + "_")
		}
	}
	return b.String()
}
