package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vanshpreet5618/Helios/core"
	"github.com/vanshpreet5618/Helios/internal/contract"
)

// trainCmd fits both models from the store.
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the sales forecast and the churn classifier.",
	Long: `Read the daily sales series and the subscriber table from the store,
fit both models and persist their outputs.

The forecast covers the next 90 days with 80% intervals and replaces the
sales_forecast table. The churn classifier is evaluated on a stratified
20% hold-out and saved as a versioned bundle under --artifact-dir.

Both steps always run. The command exits non-zero if either one failed.

Examples:
  # Train with the store from .env
  helios train

  # Keep the model bundle somewhere else
  helios train --artifact-dir /var/lib/helios/models

  # Machine-readable summary with the evaluation report
  helios train --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := withStore(core.ExecuteTrain); err != nil {
			contract.LogFatal("Cannot train models", err)
		}
	},
}
