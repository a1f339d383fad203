package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc/history"
)

var (
	historyLimit int
	historyPanel string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the calculation history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent calculations, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		var entries []history.Entry
		if historyPanel != "" {
			entries, err = store.ListPanel(cmd.Context(), historyPanel, historyLimit)
		} else {
			entries, err = store.List(cmd.Context(), historyLimit)
		}
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No calculations recorded.")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintln(out, e)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded calculation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		n, err := store.Clear(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d entries.\n", n)
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "maximum number of entries (0 for all)")
	historyListCmd.Flags().StringVar(&historyPanel, "panel", "", "only show entries from this panel")
	historyCmd.AddCommand(historyListCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func openStore() (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, fmt.Errorf("history is disabled in the configuration")
	}
	return history.Open(history.Config{Path: cfg.History.Path})
}
