package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/nodesim/config"
	"github.com/rustyeddy/nodesim/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nodesim",
	Short: "Insurance node and futures capital projection",
	Long: `nodesim projects a day by day ledger of futures trading capital funded
from an initial investment, the insurance nodes bought from its fees and
the airdrop income those nodes earn.

Results can be printed, paged in the terminal, served to a browser and
journaled to CSV, SQLite or Parquet.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	logLevel  string
	logFormat string
	logOutput string
	envFile   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text or json)")
	rootCmd.PersistentFlags().StringVar(&logOutput, "log-output", "stderr", "log destination (stderr, stdout or a file path)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "environment file loaded before running")
}

// Execute runs the root command and closes any log file it opened.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := logger.Get().Close(); err == nil {
		err = cerr
	}
	return err
}

func setup(cmd *cobra.Command, args []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env file: %w", err)
		}
	}
	return configureLogger(cmd, config.Default().Log)
}

// configureLogger applies lc, with explicitly set flags taking precedence.
func configureLogger(cmd *cobra.Command, lc config.LogConfig) error {
	opts := logger.Options{
		Level:      lc.Level,
		Format:     lc.Format,
		Output:     lc.Output,
		MaxAgeDays: lc.MaxAgeDays,
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") || opts.Level == "" {
		opts.Level = logLevel
	}
	if flags.Changed("log-format") || opts.Format == "" {
		opts.Format = logFormat
	}
	if flags.Changed("log-output") || opts.Output == "" {
		opts.Output = logOutput
	}
	return logger.Get().Configure(opts)
}
