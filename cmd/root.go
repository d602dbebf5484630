package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"github.com/vanshpreet5618/Helios/core"
	"github.com/vanshpreet5618/Helios/core/insight"
	"github.com/vanshpreet5618/Helios/internal/artifact"
	"github.com/vanshpreet5618/Helios/internal/contract"
	"github.com/vanshpreet5618/Helios/internal/genai"
	"github.com/vanshpreet5618/Helios/internal/logging"
	"github.com/vanshpreet5618/Helios/internal/outwriter"
	"github.com/vanshpreet5618/Helios/internal/store"
	"github.com/vanshpreet5618/Helios/schema"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// dotEnvFile is loaded before configuration is resolved. Variables already
// present in the environment win over the file.
const dotEnvFile = ".env"

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "helios",
	Short: "Forecast sales, predict churn and turn both into business insights.",
	Long: `Helios trains a daily sales forecast and a customer churn classifier from
the relational store behind DATABASE_URL, and summarizes both as short
business recommendations.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in .env, config file and ENV variables if set.
func initConfig() {
	if err := gotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		contract.LogWarn("Error reading "+dotEnvFile, err)
	}

	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".helios") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("HELIOS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// The store URL is conventionally unprefixed
	if err := viper.BindEnv("database-url", "DATABASE_URL", "HELIOS_DATABASE_URL"); err != nil {
		contract.LogWarn("Error binding DATABASE_URL", err)
	}

	// Set defaults in Viper
	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("artifact-dir", contract.DefaultArtifactDir)
	viper.SetDefault("color", "yes")
	viper.SetDefault("log-level", contract.DefaultLogLevel)
	viper.SetDefault("log-format", contract.DefaultLogFormat)
	viper.SetDefault("generator-model", contract.DefaultGeneratorModel)
}

// sharedSetup unmarshals config, runs validation and configures logging.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	logging.Init(cfg.LogLevel, cfg.LogFormat)
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// openStore connects to the configured store and applies pending migrations.
func openStore(ctx context.Context) (*store.SQLStore, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	st, err := store.NewStore(ctx, cfg.Backend, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Backend, err)
	}
	return st, nil
}

// newSynthesizer wires the optional text generator into the insight synthesizer.
func newSynthesizer() *insight.Synthesizer {
	logger := logging.New("insight")
	if cfg.GeneratorURL == "" {
		return insight.NewSynthesizer(nil, logger)
	}
	client, err := genai.Connect(rootCtx, cfg.GeneratorURL, cfg.GeneratorModel, cfg.GeneratorTimeout)
	if err != nil {
		logger.Warn("text generator disabled", "error", err)
		return insight.NewSynthesizer(nil, logger)
	}
	logger.Debug("text generator enabled", "url", cfg.GeneratorURL, "model", client.Model())
	return insight.NewSynthesizer(client, logger)
}

// newEnv assembles the collaborators of a command. The store is left nil
// when st is nil so that executors see a nil interface.
func newEnv(st *store.SQLStore) *core.Env {
	env := &core.Env{
		Models: artifact.NewRepository(cfg.ArtifactDir),
		Synth:  newSynthesizer(),
		Out:    outwriter.NewOutWriter(),
		Logger: logging.New("core"),
	}
	if st != nil {
		env.Store = st
	}
	return env
}

// withStore opens the store, runs an executor and closes the store.
func withStore(exec core.ExecutorFunc) error {
	st, err := openStore(rootCtx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	return exec(rootCtx, cfg, newEnv(st))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
