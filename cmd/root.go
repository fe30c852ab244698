package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/rote/internal/config"
	"github.com/abhisek/rote/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rote [deck-path]",
	Short: "Drill question decks in the terminal",
	Long: `Rote drills question decks by score level. Each run picks the lowest level
with enough questions, asks every question in it, adjusts scores and writes
the deck back.

Without a deck path a deck is picked from the configured directory.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runDrill,
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/rote/config.yaml)")
	pf.String("dir", "questions", "Directory holding deck files")
	pf.String("db", "", "Path to SQLite history database (overrides ROTE_DB env var)")
	pf.String("log-level", "warn", "Log level: debug, info, warn or error")

	addDrillFlags(rootCmd)

	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"dir":            config.KeyDir,
	"db":             config.KeyDB,
	"log-level":      config.KeyLogLevel,
	"min-level-size": config.KeyMinLevelSize,
	"order":          config.KeySaveOrder,
}

// loadConfig resolves settings for cmd and builds the diagnostic logger.
// Flags are bound per invocation since drill flags exist on two commands.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	v := config.New()
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
		v.Set(config.KeyHistory, false)
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(v, config.Sources{ConfigFile: cfgFile})
	if err != nil {
		return nil, nil, err
	}
	logger, err := config.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// resolveDBPath returns the configured database path, then ROTE_DB, then
// the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
