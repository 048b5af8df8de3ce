package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/scene-export/internal/config"
	"github.com/Faultbox/scene-export/internal/logger"
)

// GlobalFlags holds flags shared by every command.
type GlobalFlags struct {
	ConfigPath string
	Debug      bool
	LogFile    string
	Collection string
	Pick       bool
}

var globalFlags GlobalFlags

var rootCmd = &cobra.Command{
	Use:   "sceneexport",
	Short: "Export host scenes to engine collision and scene files",
	Long: `sceneexport - host scene exporter

Reads a host dump (YAML or JSON written by the host-side script) and writes
engine binary files:

  collision   CMSH collision mesh from the collision collection
  scene       SCNE chunked scene with typed objects and the collision path

When no output path is given, or --pick is set, a save dialog is shown.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalFlags.ConfigPath, "config", "", "config file (default: ./sceneexport.yaml or user config dir)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globalFlags.LogFile, "log-file", "", "also write JSON logs to this file")
	rootCmd.PersistentFlags().StringVar(&globalFlags.Collection, "collection", "", "host collection holding collision meshes")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Pick, "pick", false, "choose the output file with a save dialog")

	rootCmd.AddCommand(collisionCmd)
	rootCmd.AddCommand(sceneCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads configuration and starts logging. The returned function
// flushes the logger.
func setup(scale float32) (*config.Config, func(), error) {
	cfg, err := config.Load(globalFlags.ConfigPath, config.Overrides{
		Debug:      globalFlags.Debug,
		Scale:      scale,
		Collection: globalFlags.Collection,
		LogFile:    globalFlags.LogFile,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	logger.Debug("configuration loaded",
		zap.String("collection", cfg.Export.CollisionCollection),
		zap.Float32("scale", cfg.Export.Scale),
		zap.String("level", cfg.Logging.Level))

	return cfg, logger.Sync, nil
}
