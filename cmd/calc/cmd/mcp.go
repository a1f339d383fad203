package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the calculators as MCP tools over stdio",
	Long: `Serve the calculators to MCP clients over stdin and stdout.

Tools: evaluate, bmi, age, convert.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, closeHist := openHistory()
		defer closeHist()
		s := mcpserver.New(mcpserver.Config{
			Places:    &cfg.Display.Places,
			Converter: newConverter(),
			History:   rec,
			Log:       logger,
		})
		return s.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
