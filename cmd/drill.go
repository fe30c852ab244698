package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/abhisek/rote/internal/config"
	"github.com/abhisek/rote/internal/deck"
	"github.com/abhisek/rote/internal/drill"
	"github.com/abhisek/rote/internal/question"
	"github.com/abhisek/rote/internal/roster"
	"github.com/abhisek/rote/internal/store"
	"github.com/abhisek/rote/internal/terminal"
	"github.com/spf13/cobra"
)

var drillCmd = &cobra.Command{
	Use:   "drill [deck-path]",
	Short: "Drill the lowest level of a deck",
	Long: `Drill the lowest score level of a deck that holds at least --min-level-size
questions, then write the updated scores back to the deck file.

While answering, enter 1 to save progress, 2 to skip, or 3 to skip and count
the question as answered.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDrill,
}

func init() {
	addDrillFlags(drillCmd)
}

func addDrillFlags(cmd *cobra.Command) {
	cmd.Flags().Int("min-level-size", roster.DefaultMinLevelSize, "Smallest level worth drilling before falling back to the lowest")
	cmd.Flags().String("order", "asc", "Score order when saving the deck: asc or desc")
	cmd.Flags().Bool("no-history", false, "Do not record the session in the history database")
}

func runDrill(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	in := terminal.New(os.Stdin, out)
	plain := !terminal.IsTerminal(os.Stdout)

	order, err := deck.ParseOrder(cfg.SaveOrder)
	if err != nil {
		return err
	}

	path, qs, err := openDeck(ctx, cfg, args, in, out)
	if err != nil {
		return err
	}
	prompts := 0
	for _, q := range qs {
		prompts += question.Atomics(q)
	}
	logger.Debug("deck loaded", "path", path, "questions", len(qs), "prompts", prompts)

	r := roster.New(qs, roster.WithLogger(logger))
	drill.RenderLevels(out, r.BuildLevels(), plain)

	opts := []drill.Option{drill.WithLogger(logger)}
	if plain {
		opts = append(opts, drill.WithPlainOutput())
	}
	var hist *historyRecorder
	if cfg.History {
		hist, err = startHistory(ctx, cfg, path)
		if err != nil {
			logger.Warn("session history unavailable", "err", err)
		} else {
			defer hist.Close()
			opts = append(opts, drill.WithRecorder(hist))
		}
	}

	engine := drill.NewEngine(in, out, opts...)
	writer := deck.NewWriter(order)

	level, err := r.InterrogateLowest(ctx, engine, cfg.MinLevelSize, writer, path)
	if err != nil {
		return fmt.Errorf("drill %s: %w", path, err)
	}
	tally := engine.Tally()
	drill.RenderTally(out, level, tally, plain)

	if err := r.Save(ctx, writer, path); err != nil {
		return err
	}

	if hist != nil {
		if err := hist.finish(ctx, level, tally); err != nil {
			logger.Warn("finish history session", "err", err)
		}
	}
	return nil
}

// openDeck loads the deck named in args, or asks the user to pick one from
// the configured directory.
func openDeck(ctx context.Context, cfg *config.Config, args []string, in terminal.Reader, out io.Writer) (string, []question.Question, error) {
	if len(args) == 1 {
		qs, err := deck.Load(args[0])
		if err != nil {
			return "", nil, err
		}
		return args[0], qs, nil
	}
	return deck.NewSource(cfg.Dir).Select(ctx, in, out)
}

// historyRecorder writes answer events of one session to the store.
type historyRecorder struct {
	st      *store.Store
	repo    store.SessionRepo
	session *store.Session
}

var _ drill.Recorder = (*historyRecorder)(nil)

func startHistory(ctx context.Context, cfg *config.Config, deckPath string) (*historyRecorder, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	repo := st.SessionRepo()
	sess, err := repo.Start(ctx, deckPath)
	if err != nil {
		st.Close()
		return nil, err
	}
	return &historyRecorder{st: st, repo: repo, session: sess}, nil
}

func (h *historyRecorder) RecordAnswer(ctx context.Context, ev drill.AnswerEvent) error {
	return h.repo.RecordAnswer(ctx, store.Answer{
		SessionID:     h.session.ID,
		Prompt:        ev.Prompt,
		Submitted:     ev.Submitted,
		Outcome:       string(ev.Outcome),
		ScoreBefore:   ev.ScoreBefore,
		ScoreAfter:    ev.ScoreAfter,
		PreviousRaise: ev.PreviousRaise,
	})
}

func (h *historyRecorder) finish(ctx context.Context, level roster.Level, t drill.Tally) error {
	return h.repo.Finish(ctx, h.session.ID, store.Result{
		LevelScore: level.Score,
		LevelSize:  level.Len(),
		Drilled:    t.Drilled,
		FirstTry:   t.FirstTry,
		Missed:     t.Missed,
		Skipped:    t.Skipped,
		Revealed:   t.Revealed,
		Saves:      t.Saves,
	})
}

func (h *historyRecorder) Close() error {
	return h.st.Close()
}
