package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc/currency"
	"github.com/zephyrtronium/calc/history"
	"github.com/zephyrtronium/calc/panel/age"
	"github.com/zephyrtronium/calc/panel/bmi"
)

var bmiCmd = &cobra.Command{
	Use:     "bmi <weight-kg> <height-cm>",
	Short:   "Compute body mass index",
	Example: "  calc bmi 70 175",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := fmt.Sprintf("%s kg, %s cm", args[0], args[1])
		r, err := bmi.Parse(args[0], args[1])
		if err != nil {
			record(cmd.Context(), history.PanelBMI, input, bmi.ErrInvalidInput.Error(), true)
			return err
		}
		record(cmd.Context(), history.PanelBMI, input, r.String(), false)
		fmt.Fprintln(cmd.OutOrStdout(), r)
		return nil
	},
}

var ageOn string

var ageCmd = &cobra.Command{
	Use:     "age <date-of-birth>",
	Short:   "Compute age in years from a YYYY-MM-DD date of birth",
	Example: "  calc age 1990-04-12\n  calc age 1990-04-12 --on 2020-01-01",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		today := time.Now()
		if ageOn != "" {
			d, err := age.Parse(ageOn)
			if err != nil {
				return fmt.Errorf("--on: %w", err)
			}
			today = d
		}
		r, err := age.Compute(args[0], today)
		if err != nil {
			record(cmd.Context(), history.PanelAge, args[0], age.Message(err), true)
			return err
		}
		record(cmd.Context(), history.PanelAge, args[0], r.String(), false)
		fmt.Fprintln(cmd.OutOrStdout(), r)
		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <amount> [from] [to]",
	Short: "Convert between currencies at live exchange rates",
	Long: `Convert an amount between currencies. From and to default to the
configured currencies.

Supported currencies: ` + strings.Join(currency.Codes(), ", "),
	Example: "  calc convert 100\n  calc convert 25 EUR JPY",
	Args:    cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to := cfg.Currency.From, cfg.Currency.To
		if len(args) > 1 {
			from = args[1]
		}
		if len(args) > 2 {
			to = args[2]
		}
		input := fmt.Sprintf("%s %s to %s", args[0], from, to)
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Currency.Timeout.Duration)
		defer cancel()
		c, err := newConverter().ConvertString(ctx, args[0], from, to)
		if err != nil {
			msg := currency.Message(err)
			record(cmd.Context(), history.PanelCurrency, input, msg, true)
			return err
		}
		record(cmd.Context(), history.PanelCurrency, input, c.String(), false)
		fmt.Fprintln(cmd.OutOrStdout(), c)
		return nil
	},
}

func init() {
	ageCmd.Flags().StringVar(&ageOn, "on", "", "compute the age on this YYYY-MM-DD date instead of today")
	rootCmd.AddCommand(bmiCmd, ageCmd, convertCmd)
}

// record writes one history entry, logging failures.
func record(ctx context.Context, panel, input, output string, failed bool) {
	rec, closeHist := openHistory()
	defer closeHist()
	if ctx == nil {
		ctx = context.Background()
	}
	e := history.Entry{Panel: panel, Input: input, Output: output, Failed: failed}
	if err := rec.Record(ctx, e); err != nil {
		logger.Warn("failed to record history", "panel", panel, "error", err)
	}
}
