// Package cmd implements the calc command line.
package cmd

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc/currency"
	"github.com/zephyrtronium/calc/history"
	"github.com/zephyrtronium/calc/internal/config"
	"github.com/zephyrtronium/calc/internal/logging"
)

var (
	cfgFile  string
	logLevel string

	cfg      *config.Config
	logger   *slog.Logger
	closeLog func() error
)

var rootCmd = &cobra.Command{
	Use:   "calc",
	Short: "Standard, scientific, BMI, age, and currency calculators",
	Long: `calc is a multi-panel calculator.

Panels:
  standard    - four-function arithmetic
  scientific  - powers, roots, logarithms, and trigonometry in degrees
  bmi         - body mass index
  age         - age in years from a date of birth
  currency    - conversion at live exchange rates

Run "calc tui" for the interactive calculator.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $"+config.EnvVar+" or ./calc.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// setup loads the configuration and creates the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	lc := logging.Config{Level: cfg.Log.Level, File: cfg.Log.File, Output: cmd.ErrOrStderr()}
	if cmd == tuiCmd && lc.File == "" {
		// The interface owns the terminal.
		lc.Output = io.Discard
	}
	logger, closeLog, err = logging.New(lc)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	logger.Debug("configuration loaded", "command", cmd.Name(), "theme", cfg.Display.Theme, "history", cfg.History.Enabled)
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if closeLog != nil {
		return closeLog()
	}
	return nil
}

// openHistory returns the configured history recorder and a function to close
// it. If history is disabled or cannot be opened, entries are discarded.
func openHistory() (history.Recorder, func()) {
	if !cfg.History.Enabled {
		return history.Nop{}, func() {}
	}
	store, err := history.Open(history.Config{Path: cfg.History.Path})
	if err != nil {
		logger.Warn("history disabled", "path", cfg.History.Path, "error", err)
		return history.Nop{}, func() {}
	}
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close history", "error", err)
		}
	}
}

// newConverter creates a currency converter from the configuration.
func newConverter() *currency.Converter {
	client := currency.NewClient(cfg.Currency.BaseURL, cfg.Currency.Timeout.Duration)
	return currency.NewConverter(client, currency.NewCache(cfg.Currency.CacheTTL.Duration), logger)
}
