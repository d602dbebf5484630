package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vanshpreet5618/Helios/core"
	"github.com/vanshpreet5618/Helios/internal/contract"
	"github.com/vanshpreet5618/Helios/internal/ingest"
)

// loadCmd groups commands that import source data into the store.
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Import source data into the store",
	Long: `Replace a source table with rows read from a file.

Subcommands:
  churn - Load the Telco customer churn CSV into telco_churn

Examples:
  helios load churn WA_Fn-UseC_-Telco-Customer-Churn.csv`,
}

// loadChurnCmd loads the subscriber CSV.
var loadChurnCmd = &cobra.Command{
	Use:     "churn <csv-file>",
	Short:   "Load the customer churn CSV into telco_churn",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			contract.LogFatal("Cannot open churn file", err)
		}
		defer func() { _ = f.Close() }()

		st, err := openStore(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot load churn data", err)
		}
		defer func() { _ = st.Close() }()

		n, err := core.LoadChurn(rootCtx, st, f)
		if err != nil {
			contract.LogFatal("Cannot load churn data", err)
		}
		fmt.Printf("Loaded %d subscribers into telco_churn.\n", n)
	},
}

// seedCmd groups commands that generate demo data.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate demo data in the store",
	Long: `Fill a source table with reproducible synthetic data.

Subcommands:
  sales - Generate a daily sales series with weekly and holiday seasonality

Examples:
  helios seed sales
  helios seed sales --days 730 --seed 7 --end 2025-12-31`,
}

// seedSalesCmd writes the synthetic sales series.
var seedSalesCmd = &cobra.Command{
	Use:     "sales",
	Short:   "Generate the daily sales series into sales_data",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		end := time.Now()
		if raw := viper.GetString("end"); raw != "" {
			parsed, err := time.Parse(contract.DateFormat, raw)
			if err != nil {
				contract.LogFatal("Invalid --end date", fmt.Errorf("expected YYYY-MM-DD: %w", err))
			}
			end = parsed
		}
		opts := ingest.SalesOptions{
			End:  end,
			Days: viper.GetInt("days"),
			Seed: viper.GetUint64("seed"),
		}

		st, err := openStore(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot seed sales data", err)
		}
		defer func() { _ = st.Close() }()

		n, err := core.SeedSales(rootCtx, st, opts)
		if err != nil {
			contract.LogFatal("Cannot seed sales data", err)
		}
		fmt.Printf("Seeded %d days of sales into sales_data.\n", n)
	},
}
