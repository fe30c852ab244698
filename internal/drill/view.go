package drill

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/rote/internal/question"
	"github.com/abhisek/rote/internal/roster"
	"github.com/abhisek/rote/internal/ui/components"
	"github.com/abhisek/rote/internal/ui/theme"
)

// view writes drill output. With plain set, no ANSI styling is emitted.
type view struct {
	out   io.Writer
	plain bool
}

func (v view) style(s lipgloss.Style, text string) string {
	if v.plain {
		return text
	}
	return s.Render(text)
}

func (v view) println(parts ...string) {
	fmt.Fprintln(v.out, strings.Join(parts, " "))
}

func (v view) renderPrompt(a *question.Atomic, part string) {
	v.println()
	if part != "" {
		v.println(v.style(theme.Hint, part))
	}
	v.println(v.style(theme.Question, a.Prompt))
	if a.HasNote() {
		v.println(v.style(theme.Note, "note: "+*a.Note))
	}
	v.println(
		v.style(theme.Score, fmt.Sprintf("score %d", a.Score)),
		v.style(theme.Streak, fmt.Sprintf("streak %d", a.PreviousRaise)),
	)
	v.println(v.style(theme.Hint, Help))
}

func (v view) renderFeedback(correct bool, submitted string, a *question.Atomic) {
	marks := Diff(submitted, a.Answer)
	var verdict string
	if correct {
		verdict = v.style(theme.Correct, "✓ correct")
	} else {
		verdict = v.style(theme.Incorrect, "✗ wrong")
	}
	v.println(verdict, v.renderMarks(marks))
	if !correct {
		v.println(v.style(theme.Hint, "try again"))
	}
}

func (v view) renderMarks(marks []Mark) string {
	if v.plain {
		return plainDiff(marks)
	}
	var b strings.Builder
	for _, m := range marks {
		switch m.Kind {
		case MarkMatch:
			b.WriteString(theme.DiffMatch.Render(m.Text))
		case MarkCase:
			b.WriteString(theme.DiffCase.Render(m.Text))
		case MarkWrong:
			b.WriteString(theme.DiffWrong.Render(m.Text))
		case MarkMissing:
			b.WriteString(theme.DiffMissing.Render(m.Text))
		}
	}
	return b.String()
}

func (v view) renderReveal(a *question.Atomic) {
	v.println(v.style(theme.Reveal, a.Prompt+" →"), v.style(theme.Body, a.Answer))
}

func (v view) renderSkip(cmd Command, a *question.Atomic) {
	v.println(v.style(theme.Warning, cmd.String()+":"), v.style(theme.Body, a.Answer))
}

func (v view) renderSaved() {
	v.println(v.style(theme.Correct, "saved"))
}

func (v view) renderSaveFailed(err error) {
	v.println(v.style(theme.Incorrect, "save failed:"), err.Error())
}

// RenderLevels writes a level table for a freshly built roster.
func RenderLevels(w io.Writer, levels []roster.Level, plain bool) {
	v := view{out: w, plain: plain}
	v.println(v.style(theme.Title, "Levels"))
	for _, l := range levels {
		v.println(
			v.style(theme.Score, fmt.Sprintf("%4d", l.Score)),
			v.style(theme.Body, fmt.Sprintf("%d question(s)", l.Len())),
		)
	}
}

// RenderTally writes the end-of-session summary.
func RenderTally(w io.Writer, level roster.Level, t Tally, plain bool) {
	v := view{out: w, plain: plain}
	v.println()
	v.println(v.style(theme.Title, fmt.Sprintf("Drilled level %d (%d question(s))", level.Score, level.Len())))
	v.println(v.style(theme.Correct, fmt.Sprintf("first try %d", t.FirstTry)),
		v.style(theme.Incorrect, fmt.Sprintf("missed %d", t.Missed)),
		v.style(theme.Warning, fmt.Sprintf("skipped %d", t.Skipped)))
	if t.Drilled > 0 {
		bar := components.NewProgressBar("accuracy", t.Accuracy(), 20)
		if v.plain {
			v.println(bar.Plain())
		} else {
			v.println(bar.View())
		}
	}
}
