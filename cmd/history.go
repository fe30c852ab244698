package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/rote/internal/store"
	"github.com/abhisek/rote/internal/terminal"
	"github.com/abhisek/rote/internal/ui/theme"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent drill sessions",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 10, "Number of sessions to show")
	historyCmd.Flags().Int("keep", 0, "Delete all but the N most recent sessions before listing")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	keep, _ := cmd.Flags().GetInt("keep")

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	repo := st.SessionRepo()
	if keep > 0 {
		if err := repo.Prune(ctx, keep); err != nil {
			return err
		}
	}
	sessions, err := repo.Recent(ctx, limit)
	if err != nil {
		return err
	}
	return printSessions(cmd.OutOrStdout(), sessions, !terminal.IsTerminal(os.Stdout))
}

var sessionHeaders = []string{"STARTED", "DECK", "LEVEL", "DRILLED", "FIRST TRY", "MISSED", "SKIPPED"}

// printSessions renders sessions as a table. With plain set it uses an
// ASCII border and no colours.
func printSessions(w io.Writer, sessions []store.Session, plain bool) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded yet.")
		return err
	}

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		started := s.StartedAt.Local().Format(time.DateTime)
		if !s.Finished() {
			rows = append(rows, []string{started, s.Deck, "-", "-", "-", "-", "-"})
			continue
		}
		res := s.Result
		rows = append(rows, []string{
			started, s.Deck,
			fmt.Sprintf("%d (%d)", res.LevelScore, res.LevelSize),
			strconv.Itoa(res.Drilled), strconv.Itoa(res.FirstTry),
			strconv.Itoa(res.Missed), strconv.Itoa(res.Skipped),
		})
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().Headers(sessionHeaders...).Rows(rows...)
	if plain {
		t = t.Border(lipgloss.ASCIIBorder()).
			StyleFunc(func(row, col int) lipgloss.Style { return cell })
	} else {
		t = t.Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return theme.Title.Padding(0, 1)
				}
				return theme.Body.Padding(0, 1)
			})
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}
