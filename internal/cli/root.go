// Package cli wires the veritas commands: ingest, extract, assist,
// graph, config, version.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/veritaslabs/veritas/internal/logger"
	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/pipeline"
	"github.com/veritaslabs/veritas/internal/sources"
	"github.com/veritaslabs/veritas/internal/store"
)

var (
	cfgFile  string
	verbose  bool
	dbPath   string
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "veritas",
	Short: "Veritas - deterministic claim extraction and fact verification",
	Long: `Veritas extracts atomic factual claims from long-form text and links
each one to evidence candidates retrieved from structured public APIs.

Every verdict is auditable: the signals that fired during extraction,
the sources consulted, and the per-signal score contributions are
persisted alongside the result. No language models, no randomness —
identical input always produces identical output.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("veritas v0.3.1")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.veritas/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: veritas.sqlite)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("store.path", rootCmd.PersistentFlags().Lookup("db"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and VERITAS_* environment variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home + "/.veritas")
			viper.SetConfigType("yaml")
			viper.SetConfigName("config")
		}
	}

	viper.SetEnvPrefix("VERITAS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}

	level := logLevel
	if verbose && level == "warn" {
		level = "info"
	}
	if err := logger.Init(level, "console"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

// buildConfig assembles the effective configuration: defaults overlaid
// with config-file and environment overrides.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	if p := viper.GetString("store.path"); p != "" {
		cfg.Store.Path = p
	}
	if ua := viper.GetString("http.user_agent"); ua != "" {
		cfg.HTTP.UserAgent = ua
	}
	if w := viper.GetInt("concurrency.fetch_workers"); w > 0 {
		cfg.Concurrency.FetchWorkers = w
	}
	if t := viper.GetDuration("adapters.timeout"); t > 0 {
		cfg.Adapters.Timeout = t
	}
	if k := viper.GetInt("adapters.max_per_source"); k > 0 {
		cfg.Adapters.MaxPerSource = k
	}
	return cfg
}

// openEngine builds the store-backed engine every subcommand runs on.
func openEngine() (*pipeline.Engine, store.Store, error) {
	cfg := buildConfig()
	st, err := store.OpenSQLite(cfg.Store.Path)
	if err != nil {
		return nil, nil, err
	}
	registry := sources.NewRegistry(sources.NewClient(cfg))
	engine, err := pipeline.New(cfg, st, registry)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	return engine, st, nil
}
