package drill

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/abhisek/rote/internal/question"
	"github.com/abhisek/rote/internal/roster"
)

// ErrToggleSkipNotImplemented is returned when the reserved toggle-skip
// command is entered.
var ErrToggleSkipNotImplemented = errors.New("toggle skip command is not implemented")

// LineReader yields one line of user input per call.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// Outcome describes how a single answer event ended.
type Outcome string

const (
	OutcomeCorrect     Outcome = "correct"
	OutcomeIncorrect   Outcome = "incorrect"
	OutcomeSkipNeutral Outcome = "skip_neutral"
	OutcomeSkipCorrect Outcome = "skip_correct"
)

// AnswerEvent captures one answer or skip for a prompt.
type AnswerEvent struct {
	Prompt        string
	Submitted     string
	Outcome       Outcome
	ScoreBefore   int
	ScoreAfter    int
	PreviousRaise int
}

// Recorder receives answer events, e.g. for session history.
type Recorder interface {
	RecordAnswer(ctx context.Context, ev AnswerEvent) error
}

const (
	answerPrompt   = "› "
	continuePrompt = "press enter to continue "
)

// Engine runs the interactive question/answer loop.
type Engine struct {
	in       LineReader
	view     view
	recorder Recorder
	logger   *slog.Logger
	tally    Tally
}

var _ roster.Interrogator = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithRecorder reports every answer event to r.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithPlainOutput disables ANSI styling.
func WithPlainOutput() Option {
	return func(e *Engine) { e.view.plain = true }
}

// NewEngine creates an engine reading answers from in and writing prompts
// and feedback to out.
func NewEngine(in LineReader, out io.Writer, opts ...Option) *Engine {
	e := &Engine{in: in, view: view{out: out}}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

// Tally returns the counts accumulated so far.
func (e *Engine) Tally() Tally {
	return e.tally
}

// Interrogate drills q and returns an updated copy; q itself is not
// modified. checkpoint may be nil, in which case the save command only
// reports that saving is unavailable.
func (e *Engine) Interrogate(ctx context.Context, q question.Question, checkpoint roster.Checkpoint) (question.Question, error) {
	work := question.Clone(q)

	switch v := work.(type) {
	case *question.Atomic:
		save := func(ctx context.Context) error { return callCheckpoint(ctx, checkpoint, v) }
		if err := e.drillAtomic(ctx, v, "", save); err != nil {
			return nil, err
		}
	case *question.Sequence:
		if err := e.drillSequence(ctx, v, checkpoint); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("interrogate %T: %w", q, question.ErrUnknownType)
	}
	return work, nil
}

// drillSequence asks only the children sitting at the group's minimum
// score when the pass starts; the rest are revealed.
func (e *Engine) drillSequence(ctx context.Context, s *question.Sequence, checkpoint roster.Checkpoint) error {
	floor := question.MinScore(s)
	save := func(ctx context.Context) error { return callCheckpoint(ctx, checkpoint, s) }

	for i, child := range s.Content {
		if child.Score != floor {
			e.view.renderReveal(child)
			e.tally.Revealed++
			continue
		}
		part := fmt.Sprintf("part %d/%d", i+1, len(s.Content))
		if err := e.drillAtomic(ctx, child, part, save); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) drillAtomic(ctx context.Context, a *question.Atomic, part string, save func(context.Context) error) error {
	pass := question.NewPass(a)

	for {
		e.view.renderPrompt(a, part)

		line, err := e.in.ReadLine(ctx, answerPrompt)
		if err != nil {
			return fmt.Errorf("read answer: %w", err)
		}

		if cmd, ok := ParseCommand(line); ok {
			done, err := e.runCommand(ctx, cmd, a, pass, save)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
			continue
		}

		before := a.Score
		if a.Check(line) {
			if !pass.Missed() {
				e.tally.FirstTry++
			}
			pass.Correct()
			e.view.renderFeedback(true, line, a)
			e.record(ctx, a, line, OutcomeCorrect, before)
			e.tally.Drilled++
			// End of input stands in for the acknowledgment.
			if _, err := e.in.ReadLine(ctx, continuePrompt); err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("read acknowledgment: %w", err)
			}
			return nil
		}

		if !pass.Missed() {
			e.tally.Missed++
		}
		pass.Incorrect()
		e.view.renderFeedback(false, line, a)
		e.record(ctx, a, line, OutcomeIncorrect, before)
	}
}

// runCommand executes cmd and reports whether the prompt is finished.
func (e *Engine) runCommand(ctx context.Context, cmd Command, a *question.Atomic, pass *question.Pass, save func(context.Context) error) (bool, error) {
	before := a.Score

	switch cmd {
	case CmdSave:
		if err := save(ctx); err != nil {
			e.logger.Warn("checkpoint failed", "error", err)
			e.view.renderSaveFailed(err)
			return false, nil
		}
		e.tally.Saves++
		e.view.renderSaved()
		return false, nil

	case CmdSkipNeutral:
		e.view.renderSkip(cmd, a)
		e.record(ctx, a, "", OutcomeSkipNeutral, before)
		e.tally.Skipped++
		e.tally.Drilled++
		return true, nil

	case CmdSkipCorrect:
		pass.SkipCorrect()
		e.view.renderSkip(cmd, a)
		e.record(ctx, a, "", OutcomeSkipCorrect, before)
		e.tally.Skipped++
		e.tally.Drilled++
		return true, nil

	case CmdToggleSkip:
		return false, ErrToggleSkipNotImplemented
	}
	return false, fmt.Errorf("unhandled command %d", cmd)
}

func (e *Engine) record(ctx context.Context, a *question.Atomic, submitted string, outcome Outcome, before int) {
	if e.recorder == nil {
		return
	}
	ev := AnswerEvent{
		Prompt:        a.Prompt,
		Submitted:     submitted,
		Outcome:       outcome,
		ScoreBefore:   before,
		ScoreAfter:    a.Score,
		PreviousRaise: a.PreviousRaise,
	}
	// A failed write never interrupts the drill.
	if err := e.recorder.RecordAnswer(ctx, ev); err != nil {
		e.logger.Warn("failed to record answer", "error", err)
	}
}

var errNoCheckpoint = errors.New("saving is not available in this session")

func callCheckpoint(ctx context.Context, cp roster.Checkpoint, inProgress question.Question) error {
	if cp == nil {
		return errNoCheckpoint
	}
	return cp(ctx, inProgress)
}
