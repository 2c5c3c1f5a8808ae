package commands

import (
	"os"

	"github.com/simonhull/firebird-suite/heron"
	"github.com/simonhull/firebird-suite/heron/internal/output"
	"github.com/simonhull/firebird-suite/heron/pkg/config"
	"github.com/simonhull/firebird-suite/heron/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
)

// RootCmd creates and returns the root command for the Heron CLI
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heron",
		Short: "API reference site generator",
		Long: `Heron turns extracted documentation nodes into a static API reference site.

It flattens namespaces, merges declarations that share a name across inputs,
groups symbols by their category tags and renders one page per symbol.

Learn more: https://github.com/simonhull/firebird-suite`,
		Version:       heron.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.FileName, "Path to configuration file")

	return cmd
}

// loadConfig reads and validates the configuration and builds the logger
// it asks for. --verbose forces debug logging.
func loadConfig() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level := logger.ParseLevel(cfg.Logging.Level)
	if verbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, os.Stderr, logger.Format(cfg.Logging.Format))
	logger.SetDefault(log)
	return cfg, log, nil
}
