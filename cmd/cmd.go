// Package cmd defines the command-line interface for helios.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vanshpreet5618/Helios/internal/contract"
	"github.com/vanshpreet5618/Helios/internal/ingest"
	"github.com/vanshpreet5618/Helios/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(modelCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	forecastCmd.AddCommand(forecastShowCmd)
	forecastCmd.AddCommand(forecastExportCmd)

	modelCmd.AddCommand(modelShowCmd)
	modelCmd.AddCommand(modelScoreCmd)

	loadCmd.AddCommand(loadChurnCmd)
	seedCmd.AddCommand(seedSalesCmd)

	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeMigrateCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeRunsCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("database-url", "", "Store connection URL (prefer the DATABASE_URL env var)")
	rootCmd.PersistentFlags().String("artifact-dir", contract.DefaultArtifactDir, "Directory holding the churn model bundle")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-format", contract.DefaultLogFormat, "Log format: text or json")
	rootCmd.PersistentFlags().String("generator-url", "", "Base URL of an Ollama-compatible text generator (empty = templates only)")
	rootCmd.PersistentFlags().String("generator-model", contract.DefaultGeneratorModel, "Model name sent to the text generator")
	rootCmd.PersistentFlags().String("generator-timeout", contract.DefaultGeneratorTimeout.String(), "Timeout for one generation request")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of seedSalesCmd to Viper
	seedSalesCmd.Flags().Int("days", ingest.DefaultSalesDays, "Number of days of history to generate")
	seedSalesCmd.Flags().Uint64("seed", ingest.DefaultSalesSeed, "Random seed for the generated series")
	seedSalesCmd.Flags().String("end", "", "Last generated day in YYYY-MM-DD (default today)")
	if err := viper.BindPFlags(seedSalesCmd.Flags()); err != nil {
		contract.LogFatal("Error binding seed flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
