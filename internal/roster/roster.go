package roster

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/abhisek/rote/internal/question"
)

// Checkpoint persists the current session state with inProgress standing in
// for the question being drilled.
type Checkpoint func(ctx context.Context, inProgress question.Question) error

// Interrogator drills one question and returns its updated copy.
type Interrogator interface {
	Interrogate(ctx context.Context, q question.Question, checkpoint Checkpoint) (question.Question, error)
}

// Persister writes a flat question list to a destination.
type Persister interface {
	Write(ctx context.Context, qs []question.Question, dest string) error
}

// Roster owns every question of a session. The flat list is the only
// owned representation; levels are indices into it and go stale as soon
// as a drill writes results back.
type Roster struct {
	questions []question.Question
	altered   []question.Question
	levels    []Level
	leveled   bool
	rng       *rand.Rand
	logger    *slog.Logger
}

// Option configures a Roster.
type Option func(*Roster)

// WithRand sets the source used to shuffle questions before leveling.
func WithRand(rng *rand.Rand) Option {
	return func(r *Roster) { r.rng = rng }
}

// WithLogger sets the logger for level summaries and selector diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Roster) { r.logger = l }
}

// New creates a roster that takes ownership of qs.
func New(qs []question.Question, opts ...Option) *Roster {
	r := &Roster{questions: qs}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Len returns the number of questions owned by the roster.
func (r *Roster) Len() int {
	return len(r.questions) + len(r.altered)
}

// Add tracks a question created during the session. It joins the flat list
// when levels are destructed.
func (r *Roster) Add(q question.Question) {
	r.altered = append(r.altered, q)
}

// BuildLevels shuffles, sorts and normalizes the question list, then
// partitions it into levels of ascending score.
func (r *Roster) BuildLevels() []Level {
	r.mergeAltered()
	r.shuffle()
	normalize(r.questions)
	r.levels = partition(r.questions)
	r.leveled = true

	for _, l := range r.levels {
		r.logger.Info("level built", "score", l.Score, "questions", l.Len())
	}
	return r.Levels()
}

// Levels returns a copy of the current level view, or nil when stale.
func (r *Roster) Levels() []Level {
	if !r.leveled {
		return nil
	}
	out := make([]Level, len(r.levels))
	for i, l := range r.levels {
		out[i] = Level{Score: l.Score, Indices: append([]int(nil), l.Indices...)}
	}
	return out
}

// DestructLevels drops the level view and returns a deep copy of the flat
// question list, including questions added during the session.
func (r *Roster) DestructLevels() []question.Question {
	r.mergeAltered()
	r.levels = nil
	r.leveled = false
	return question.CloneAll(r.questions)
}

// InterrogateLowest drills every question of the selected level in order
// and writes each result back into the roster. Levels are built first if
// needed and are stale afterwards. The checkpoint handed to it writes a
// normalized snapshot to dest through p.
func (r *Roster) InterrogateLowest(ctx context.Context, it Interrogator, minSize int, p Persister, dest string) (Level, error) {
	if !r.leveled {
		r.BuildLevels()
	}

	idx, fallback, err := SelectLevel(r.levels, minSize)
	if err != nil {
		return Level{}, err
	}
	if fallback {
		r.logger.Warn("no level meets minimum size, drilling lowest level",
			"min_size", minSize, "level_score", r.levels[idx].Score, "level_size", r.levels[idx].Len())
	}

	target := r.levels[idx]
	for _, qi := range target.Indices {
		checkpoint := func(ctx context.Context, inProgress question.Question) error {
			snap := r.snapshotWith(qi, inProgress)
			r.logger.Info("checkpoint", "dest", dest, "questions", len(snap))
			return p.Write(ctx, snap, dest)
		}

		updated, err := it.Interrogate(ctx, question.Clone(r.questions[qi]), checkpoint)
		if err != nil {
			r.leveled = false
			return target, fmt.Errorf("interrogate question %d: %w", qi, err)
		}
		r.questions[qi] = updated
	}

	r.leveled = false
	return target, nil
}

// Snapshot returns a deep copy of every question, sorted ascending and
// shifted so the lowest score is zero. The roster itself is not modified.
func (r *Roster) Snapshot() []question.Question {
	return r.snapshotWith(-1, nil)
}

// Save writes a snapshot to dest through p.
func (r *Roster) Save(ctx context.Context, p Persister, dest string) error {
	snap := r.Snapshot()
	for _, l := range partition(snap) {
		r.logger.Info("saving level", "score", l.Score, "questions", l.Len())
	}
	if err := p.Write(ctx, snap, dest); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}
	return nil
}

func (r *Roster) snapshotWith(replace int, inProgress question.Question) []question.Question {
	snap := make([]question.Question, 0, r.Len())
	for i, q := range r.questions {
		if i == replace && inProgress != nil {
			q = inProgress
		}
		snap = append(snap, question.Clone(q))
	}
	for _, q := range r.altered {
		snap = append(snap, question.Clone(q))
	}
	normalize(snap)
	return snap
}

func (r *Roster) mergeAltered() {
	if len(r.altered) == 0 {
		return
	}
	r.questions = append(r.questions, r.altered...)
	r.altered = nil
	r.leveled = false
}

func (r *Roster) shuffle() {
	swap := func(i, j int) { r.questions[i], r.questions[j] = r.questions[j], r.questions[i] }
	if r.rng != nil {
		r.rng.Shuffle(len(r.questions), swap)
		return
	}
	rand.Shuffle(len(r.questions), swap)
}
