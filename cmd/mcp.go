package cmd

import (
	"github.com/huangsam/trendplot/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the trendplot MCP server",
	Long:  `Launch an MCP server that allows AI agents to normalize, smooth and chart time series via standard tools.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// Tools receive their inputs as arguments, so no positional args are validated here.
		return sharedSetup(rootCtx, cmd, nil)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, historyManager)
	},
}
