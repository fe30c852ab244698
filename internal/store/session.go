package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session id has no row.
var ErrSessionNotFound = errors.New("session not found")

// Result holds the counters recorded when a session finishes.
type Result struct {
	LevelScore int
	LevelSize  int
	Drilled    int
	FirstTry   int
	Missed     int
	Skipped    int
	Revealed   int
	Saves      int
}

// Session is one drill run over a deck.
type Session struct {
	ID         string
	Deck       string
	StartedAt  time.Time
	FinishedAt time.Time // zero while the session is open
	Result     Result
}

// Finished reports whether the session was closed with a result.
func (s Session) Finished() bool {
	return !s.FinishedAt.IsZero()
}

// Answer is one answer or skip recorded during a session.
type Answer struct {
	SessionID     string
	Prompt        string
	Submitted     string
	Outcome       string
	ScoreBefore   int
	ScoreAfter    int
	PreviousRaise int
	AnsweredAt    time.Time
}

// SessionRepo records drill sessions and their answers.
type SessionRepo interface {
	// Start opens a session for deck and returns it with a fresh id.
	Start(ctx context.Context, deck string) (*Session, error)

	// Finish stores the result of an open session.
	Finish(ctx context.Context, id string, res Result) error

	// RecordAnswer appends an answer to its session.
	RecordAnswer(ctx context.Context, a Answer) error

	// Answers returns the answers of a session in the order recorded.
	Answers(ctx context.Context, sessionID string) ([]Answer, error)

	// Recent returns up to limit sessions, newest first.
	Recent(ctx context.Context, limit int) ([]Session, error)

	// Prune deletes all but the keep most recent sessions.
	Prune(ctx context.Context, keep int) error
}

type sessionRepo struct {
	db  *sql.DB
	now func() time.Time
}

func (r *sessionRepo) Start(ctx context.Context, deck string) (*Session, error) {
	s := &Session{
		ID:        uuid.NewString(),
		Deck:      deck,
		StartedAt: r.now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, deck, started_at) VALUES (?, ?, ?)`,
		s.ID, s.Deck, s.StartedAt.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return s, nil
}

func (r *sessionRepo) Finish(ctx context.Context, id string, res Result) error {
	out, err := r.db.ExecContext(ctx, `
		UPDATE sessions SET
			finished_at = ?, level_score = ?, level_size = ?, drilled = ?,
			first_try = ?, missed = ?, skipped = ?, revealed = ?, saves = ?
		WHERE id = ?`,
		r.now().UTC().UnixMilli(), res.LevelScore, res.LevelSize, res.Drilled,
		res.FirstTry, res.Missed, res.Skipped, res.Revealed, res.Saves, id)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	n, err := out.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

func (r *sessionRepo) RecordAnswer(ctx context.Context, a Answer) error {
	at := a.AnsweredAt
	if at.IsZero() {
		at = r.now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO answers (session_id, prompt, submitted, outcome,
			score_before, score_after, previous_raise, answered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.SessionID, a.Prompt, a.Submitted, a.Outcome,
		a.ScoreBefore, a.ScoreAfter, a.PreviousRaise, at.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("insert answer: %w", err)
	}
	return nil
}

func (r *sessionRepo) Answers(ctx context.Context, sessionID string) ([]Answer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT session_id, prompt, submitted, outcome,
			score_before, score_after, previous_raise, answered_at
		FROM answers WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []Answer
	for rows.Next() {
		var a Answer
		var at int64
		if err := rows.Scan(&a.SessionID, &a.Prompt, &a.Submitted, &a.Outcome,
			&a.ScoreBefore, &a.ScoreAfter, &a.PreviousRaise, &at); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		a.AnsweredAt = time.UnixMilli(at).UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *sessionRepo) Recent(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, deck, started_at, finished_at, level_score, level_size,
			drilled, first_try, missed, skipped, revealed, saves
		FROM sessions ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		var started int64
		var finished sql.NullInt64
		res := &s.Result
		if err := rows.Scan(&s.ID, &s.Deck, &started, &finished,
			&res.LevelScore, &res.LevelSize, &res.Drilled, &res.FirstTry,
			&res.Missed, &res.Skipped, &res.Revealed, &res.Saves); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.StartedAt = time.UnixMilli(started).UTC()
		if finished.Valid {
			s.FinishedAt = time.UnixMilli(finished.Int64).UTC()
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *sessionRepo) Prune(ctx context.Context, keep int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM sessions WHERE id NOT IN (
			SELECT id FROM sessions ORDER BY started_at DESC, rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("prune sessions: %w", err)
	}
	return nil
}
