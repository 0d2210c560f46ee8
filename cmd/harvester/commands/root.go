package commands

import (
	"context"
	"fmt"
	"os"

	"trivia-harvester/internal/config"
	"trivia-harvester/internal/logger"

	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags "-X trivia-harvester/cmd/harvester/commands.Version=...".
var Version = "dev"

var configFile string

var rootCmd = &cobra.Command{
	Use:           "harvester",
	Short:         "harvester collects every multiple-choice question from Open Trivia DB into a JSON file.",
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       Version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to the config file (default ./config.yaml or ./config/config.yaml)")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

// setup loads the configuration, flag overrides included, and initializes the global logger.
func setup() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}
