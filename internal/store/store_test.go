package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// tickingClock advances one minute per call.
func tickingClock() func() time.Time {
	t := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "rote.db"), WithClock(tickingClock()))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rote.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		s.Close()
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSessionStartFinish(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	sess, err := repo.Start(ctx, "questions/planets.json")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("expected a session id")
	}
	if sess.Finished() {
		t.Fatal("new session must be open")
	}

	res := Result{LevelScore: 0, LevelSize: 4, Drilled: 4, FirstTry: 3, Missed: 1, Saves: 1}
	if err := repo.Finish(ctx, sess.ID, res); err != nil {
		t.Fatalf("finish: %v", err)
	}

	got, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("recent = %d sessions, want 1", len(got))
	}
	if got[0].ID != sess.ID || got[0].Deck != sess.Deck {
		t.Errorf("session = %+v, want id %s deck %s", got[0], sess.ID, sess.Deck)
	}
	if !got[0].StartedAt.Equal(sess.StartedAt) {
		t.Errorf("started_at = %v, want %v", got[0].StartedAt, sess.StartedAt)
	}
	if !got[0].Finished() || !got[0].FinishedAt.After(got[0].StartedAt) {
		t.Errorf("finished_at = %v, want after %v", got[0].FinishedAt, got[0].StartedAt)
	}
	if got[0].Result != res {
		t.Errorf("result = %+v, want %+v", got[0].Result, res)
	}
}

func TestFinishUnknownSession(t *testing.T) {
	s := openTestStore(t)
	err := s.SessionRepo().Finish(context.Background(), "missing", Result{})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestRecordAnswers(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	sess, err := repo.Start(ctx, "deck.json")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	answers := []Answer{
		{SessionID: sess.ID, Prompt: "2+2", Submitted: "5", Outcome: "incorrect", ScoreBefore: 0, ScoreAfter: -1},
		{SessionID: sess.ID, Prompt: "2+2", Submitted: "4", Outcome: "correct", ScoreBefore: -1, ScoreAfter: -1},
		{SessionID: sess.ID, Prompt: "3+3", Outcome: "skip_correct", ScoreBefore: 2, ScoreAfter: 3, PreviousRaise: 1},
	}
	for i, a := range answers {
		if err := repo.RecordAnswer(ctx, a); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	got, err := repo.Answers(ctx, sess.ID)
	if err != nil {
		t.Fatalf("answers: %v", err)
	}
	if len(got) != len(answers) {
		t.Fatalf("answers = %d, want %d", len(got), len(answers))
	}
	for i := range answers {
		if got[i].AnsweredAt.IsZero() {
			t.Errorf("answer %d: missing timestamp", i)
		}
		got[i].AnsweredAt = time.Time{}
		if got[i] != answers[i] {
			t.Errorf("answer %d = %+v, want %+v", i, got[i], answers[i])
		}
	}
}

func TestRecordAnswerRequiresSession(t *testing.T) {
	s := openTestStore(t)
	err := s.SessionRepo().RecordAnswer(context.Background(), Answer{SessionID: "nope", Prompt: "p", Outcome: "correct"})
	if err == nil {
		t.Fatal("expected foreign key violation")
	}
}

func TestRecentNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		sess, err := repo.Start(ctx, "deck.json")
		if err != nil {
			t.Fatalf("start %d: %v", i, err)
		}
		ids = append(ids, sess.ID)
	}

	got, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("recent = %d sessions, want 2", len(got))
	}
	if got[0].ID != ids[2] || got[1].ID != ids[1] {
		t.Errorf("recent ids = [%s %s], want [%s %s]", got[0].ID, got[1].ID, ids[2], ids[1])
	}

	none, err := repo.Recent(ctx, 0)
	if err != nil || len(none) != 0 {
		t.Errorf("recent(0) = %v, %v; want empty", none, err)
	}
}

func TestPruneCascadesAnswers(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	var first *Session
	for i := 0; i < 4; i++ {
		sess, err := repo.Start(ctx, "deck.json")
		if err != nil {
			t.Fatalf("start %d: %v", i, err)
		}
		if i == 0 {
			first = sess
		}
		if err := repo.RecordAnswer(ctx, Answer{SessionID: sess.ID, Prompt: "p", Outcome: "correct"}); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 3); err != nil {
		t.Fatalf("prune: %v", err)
	}

	got, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("remaining sessions = %d, want 3", len(got))
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM answers WHERE session_id = ?", first.ID).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("answers of pruned session = %d, want 0", count)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "history.db")
		t.Setenv("ROTE_DB", want)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
		if _, err := os.Stat(filepath.Dir(want)); err != nil {
			t.Errorf("parent dir not created: %v", err)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("ROTE_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if want := filepath.Join(dir, "rote", "rote.db"); got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})
}
