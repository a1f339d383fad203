package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc/internal/tui"
)

var tuiPanel string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive calculator",
	Long: `Start the interactive terminal calculator.

Navigation:
  Tab / Shift+Tab  - switch panels
  Ctrl+T           - toggle dark and light themes
  Enter            - evaluate or calculate
  Up / Down        - move between form fields
  Left / Right     - change the selected currency
  Esc / Ctrl+C     - quit

On the scientific panel, the letters s o t r l n p e type sin, cos, tan,
sqrt, log, ln, pi, and e.`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiPanel, "panel", "", "panel to start on (default from config)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	rec, closeHist := openHistory()
	defer closeHist()

	panel := cfg.Display.Panel
	if tuiPanel != "" {
		panel = tuiPanel
	}
	return tui.Run(tui.Config{
		Theme:     cfg.Display.Theme,
		Panel:     panel,
		Places:    &cfg.Display.Places,
		Converter: newConverter(),
		From:      cfg.Currency.From,
		To:        cfg.Currency.To,
		Timeout:   cfg.Currency.Timeout.Duration,
		History:   rec,
		Log:       logger,
	})
}
