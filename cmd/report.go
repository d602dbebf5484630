package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vanshpreet5618/Helios/core"
	"github.com/vanshpreet5618/Helios/internal/contract"
	"github.com/vanshpreet5618/Helios/internal/store"
)

// reportCmd prints the business report. It never fails the process.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the sales and churn business insights.",
	Long: `Summarize the latest forecast and the overall churn rate, and turn
each into a short recommendation.

When --generator-url is set the recommendation is generated and checked by
a quality gate; otherwise, or when the gate rejects the text, a fixed
template is used. A missing, malformed or unreachable store degrades the affected lines and the
command still exits 0.

Examples:
  # Template-only report
  helios report

  # Generated insights from a local Ollama server
  helios report --generator-url http://localhost:11434`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		var st *store.SQLStore
		if cfg.HasDatabase() {
			opened, err := openStore(rootCtx)
			if err != nil {
				contract.LogWarn("Store unavailable for report", err)
			} else {
				st = opened
				defer func() { _ = st.Close() }()
			}
		} else {
			contract.LogWarn("Store unavailable for report", cfg.RequireDatabase())
		}
		if err := core.ExecuteReport(rootCtx, cfg, newEnv(st)); err != nil {
			contract.LogWarn("Cannot print report", err)
		}
	},
}
