package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vanshpreet5618/Helios/core"
	"github.com/vanshpreet5618/Helios/internal/contract"
)

// forecastCmd groups commands that read the stored forecast.
var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Inspect the stored sales forecast",
	Long: `Read the sales_forecast table written by 'helios train'.

Subcommands:
  show   - Print the last --limit forecast days
  export - Write every forecast day (use --output csv/json/parquet)

Examples:
  helios forecast show --limit 14
  helios forecast export --output parquet --output-file forecast.parquet`,
}

// forecastShowCmd prints the tail of the forecast.
var forecastShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "Print the last forecast days",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := withStore(core.ExecuteForecastShow); err != nil {
			contract.LogFatal("Cannot show forecast", err)
		}
	},
}

// forecastExportCmd writes every forecast row.
var forecastExportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Export the whole forecast",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := withStore(core.ExecuteForecastExport); err != nil {
			contract.LogFatal("Cannot export forecast", err)
		}
	},
}
