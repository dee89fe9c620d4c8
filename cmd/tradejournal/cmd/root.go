package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/internal/logger"
	"github.com/rustyeddy/tradejournal/journal"
)

var rootCmd = &cobra.Command{
	Use:   "tradejournal",
	Short: "A personal trading journal with P/L analytics",
	Long: `Tradejournal records closed trades and reports on them.

It provides tools for:
  - Recording, editing and deleting trades
  - Per-trade gross/net P/L and return
  - Weekly, monthly, yearly and all-time statistics
  - Equity curves from a starting balance
  - CSV and Org-mode exports
  - A JSON HTTP API for frontends`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var (
	cfgFile  string
	dbPath   string
	logLevel string

	cfg *config.Config
	log zerolog.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
}

// loadConfig resolves the effective configuration and logger before any
// subcommand runs. Flags win over the environment, which wins over the file.
func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if dbPath != "" {
		c.Journal.DBPath = dbPath
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	cfg = c
	log = logger.NewWithWriter(logger.Config{Level: c.Log.Level, Pretty: c.Log.Pretty}, cmd.ErrOrStderr())
	logger.SetGlobalLogger(log)
	return nil
}

func openJournal() (*journal.SQLite, error) {
	j, err := journal.NewSQLite(cfg.Journal.DBPath, log)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}
