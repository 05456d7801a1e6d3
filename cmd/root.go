// Package cmd defines the kgraph command-line interface.
package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/studymesh/kgraph/config"
	"github.com/studymesh/kgraph/logger"
)

var version = "0.3.0"

var (
	configPath string
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:     "kgraph",
	Short:   "Interactive knowledge-graph viewer",
	Long:    "kgraph serves an interactive force-directed view of subject knowledge graphs\nand exports them as static vector images.",
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "kgraph.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")
}

func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		color.Red("kgraph: %v", err)
		os.Exit(1)
	}
	if debugMode {
		cfg.Server.Debug = true
	}
	logger.SetDebug(cfg.Server.Debug)
	return cfg
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("kgraph: %v", err)
		os.Exit(1)
	}
}
