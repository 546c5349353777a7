package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string

	datasetPath string
	threshold   int
	provider    string
	model       string

	cfg    config
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "qabot",
	Short: "Answer questions from a local QA dataset, falling back to a remote model",
	Long: `qabot looks for a close match to your question in a dataset of question/answer pairs.
When no stored question is similar enough, the question is sent to a remote LLM.
Every answer is tagged with its source.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error loading .env: %w", err)
		}

		var err error
		cfg, err = loadConfig(configPath, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		applyFlags(cmd, &cfg)

		level := parseLogLevel(cfg.LogLevel)
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// applyFlags overrides file values with the flags the user actually set.
func applyFlags(cmd *cobra.Command, c *config) {
	flags := cmd.Flags()
	if flags.Changed("dataset") {
		c.Dataset.CSV = datasetPath
	}
	if flags.Changed("threshold") {
		c.Matcher.Threshold = threshold
	}
	if flags.Changed("provider") {
		c.LLM.Provider = provider
	}
	if flags.Changed("model") {
		c.LLM.Model = model
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "Path to a CSV dataset (overrides config)")
	rootCmd.PersistentFlags().IntVar(&threshold, "threshold", 0, "Minimum similarity score (1-100) for dataset answers; 0 or below means the default of 80")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "Remote model provider")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "Remote model name")
}
