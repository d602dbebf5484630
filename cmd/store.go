package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vanshpreet5618/Helios/core"
	"github.com/vanshpreet5618/Helios/internal/contract"
	"github.com/vanshpreet5618/Helios/internal/store"
)

// storeCmd focused on store management.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the relational store behind DATABASE_URL",
	Long: `Inspect and maintain the store that holds sales, subscribers, forecasts
and training runs.

Supported backends: SQLite, MySQL and PostgreSQL, chosen from the scheme
of DATABASE_URL.

Subcommands:
  status  - Show schema version, run history and table sizes
  migrate - Move the schema to a specific version
  clear   - Remove every row from every table
  runs    - List recorded training runs

Examples:
  # Check store status
  helios store status

  # Export the run history
  helios store runs --output parquet --output-file runs.parquet`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display store statistics and connection details",
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		st, err := openStore(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot open store", err)
		}
		defer func() { _ = st.Close() }()

		status, err := st.GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Database URL: %s\n", contract.RedactDatabaseURL(cfg.DatabaseURL))
		store.PrintStoreStatus(cmd.OutOrStdout(), status)
	},
}

// storeMigrateCmd runs schema migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the store.

Every command already migrates to the latest version when it opens the
store. Use --target-version to pin or roll back the schema.

Examples:
  # Migrate to latest version (default)
  helios store migrate

  # Rollback to initial state
  helios store migrate --target-version 0`,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := cfg.RequireDatabase(); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		targetVersion := viper.GetInt("target-version")
		if err := store.Migrate(rootCtx, cfg.Backend, cfg.DSN, targetVersion, cmd.OutOrStdout()); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// storeClearCmd clears every table.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored data",
	Long: `Delete every row from the sales, subscriber, forecast and training run
tables. The schema and the model bundle are left in place.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		st, err := openStore(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot open store", err)
		}
		defer func() { _ = st.Close() }()

		if err := st.Clear(rootCtx); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeRunsCmd lists training runs.
var storeRunsCmd = &cobra.Command{
	Use:     "runs",
	Short:   "List recorded training runs",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := withStore(core.ExecuteRuns); err != nil {
			contract.LogFatal("Cannot list training runs", err)
		}
	},
}
