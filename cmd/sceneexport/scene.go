package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/scene-export/internal/export"
	"github.com/Faultbox/scene-export/internal/host"
	"github.com/Faultbox/scene-export/internal/logger"
)

var sceneCmd = &cobra.Command{
	Use:   "scene <dump> [output]",
	Short: "Export typed scene objects as an SCNE file",
	Example: `  sceneexport scene level1.yaml level1.scne
  sceneexport scene level1.yaml --pick`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runScene,
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, done, err := setup(0)
	if err != nil {
		return err
	}
	defer done()

	dump, err := host.LoadDump(args[0])
	if err != nil {
		return err
	}

	output, ok, err := outputPath(args, cfg.Export.OutputDir, sceneFilter)
	if err != nil || !ok {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Source file: %s\n", sourceName(dump, args[0]))
	fmt.Fprintf(out, "Output path: %s\n", output)

	logger.Info("exporting scene",
		zap.String("dump", args[0]),
		zap.String("output", output))

	exp := export.New(logger.Named("scene"), out)
	_, err = exp.Scene(dump, output)
	return err
}
