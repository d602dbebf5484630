package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vanshpreet5618/Helios/core"
	"github.com/vanshpreet5618/Helios/internal/contract"
)

// modelCmd groups commands that read the churn model bundle.
var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Inspect and apply the saved churn model",
	Long: `Work with the churn classifier bundle saved by 'helios train'.

Subcommands:
  show  - Verify the bundle and print its manifest
  score - Rank stored subscribers by predicted churn probability

Examples:
  helios model show
  helios model score --limit 50 --output csv --output-file at-risk.csv`,
}

// modelShowCmd verifies and describes the saved bundle.
var modelShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Verify the model bundle and print its manifest",
	Long: `Load the bundle under --artifact-dir, verify every member checksum and
print the manifest. Exits non-zero when the bundle is missing or corrupt.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteModelShow(rootCtx, cfg, newEnv(nil)); err != nil {
			contract.LogFatal("Cannot load churn model", err)
		}
	},
}

// modelScoreCmd batch-scores the subscriber table.
var modelScoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Rank stored subscribers by churn probability",
	Long: `Score every row of the subscriber table with the saved classifier and
print the --limit subscribers most likely to churn.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := withStore(core.ExecuteModelScore); err != nil {
			contract.LogFatal("Cannot score subscribers", err)
		}
	},
}
