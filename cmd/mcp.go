package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vanshpreet5618/Helios/core"
	"github.com/vanshpreet5618/Helios/internal/contract"
	"github.com/vanshpreet5618/Helios/internal/mcp"
	"github.com/vanshpreet5618/Helios/internal/store"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Helios MCP server",
	Long: `Launch an MCP server over stdio that lets AI agents request the sales and
churn insights, or synthesize one from their own summary and question.

The server runs without a store; the report tools then answer with the
unavailable lines.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		var src core.ReportSource
		if cfg.HasDatabase() {
			st, err := store.NewStore(rootCtx, cfg.Backend, cfg.DSN)
			if err != nil {
				contract.LogWarn("Store unavailable for MCP server", err)
			} else {
				defer func() { _ = st.Close() }()
				src = st
			}
		} else {
			contract.LogWarn("Store unavailable for MCP server", cfg.RequireDatabase())
		}
		return mcp.StartMCPServer(rootCtx, src, newSynthesizer(), version)
	},
}
