package cmd

import (
	"os"

	"github.com/abhisek/rote/internal/deck"
	"github.com/abhisek/rote/internal/drill"
	"github.com/abhisek/rote/internal/roster"
	"github.com/abhisek/rote/internal/terminal"
	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels <deck-path>",
	Short: "Show the score levels of a deck without drilling",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		qs, err := deck.Load(args[0])
		if err != nil {
			return err
		}
		r := roster.New(qs, roster.WithLogger(logger))
		out := cmd.OutOrStdout()
		drill.RenderLevels(out, r.BuildLevels(), !terminal.IsTerminal(os.Stdout))
		return nil
	},
}
