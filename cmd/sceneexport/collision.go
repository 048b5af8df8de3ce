package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/scene-export/internal/export"
	"github.com/Faultbox/scene-export/internal/host"
	"github.com/Faultbox/scene-export/internal/logger"
)

var collisionScale float32

var collisionCmd = &cobra.Command{
	Use:   "collision <dump> [output] [scale]",
	Short: "Export the collision collection as a CMSH file",
	Example: `  sceneexport collision level1.yaml level1.cmsh
  sceneexport collision level1.yaml level1.cmsh 0.5
  sceneexport collision level1.yaml --pick`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runCollision,
}

func init() {
	collisionCmd.Flags().Float32Var(&collisionScale, "scale", 0, "uniform scale applied to vertices (default from config)")
}

func runCollision(cmd *cobra.Command, args []string) error {
	scale := collisionScale
	if len(args) == 3 {
		s, err := parseScale(args[2])
		if err != nil {
			return err
		}
		scale = s
	}
	if cmd.Flags().Changed("scale") && scale <= 0 {
		return fmt.Errorf("%w: %v", host.ErrInvalidScale, scale)
	}

	cfg, done, err := setup(scale)
	if err != nil {
		return err
	}
	defer done()

	dump, err := host.LoadDump(args[0])
	if err != nil {
		return err
	}

	output, ok, err := outputPath(args, cfg.Export.OutputDir, collisionFilter)
	if err != nil || !ok {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Source file: %s\n", sourceName(dump, args[0]))
	fmt.Fprintf(out, "Output path: %s\n", output)
	fmt.Fprintf(out, "Base scale: %v\n", cfg.Export.Scale)

	logger.Info("exporting collision mesh",
		zap.String("dump", args[0]),
		zap.String("output", output))

	exp := export.New(logger.Named("collision"), out)
	_, err = exp.Collision(dump, cfg.Export.CollisionCollection, cfg.Export.Scale, output)
	return err
}

// parseScale reads the positional scale argument.
func parseScale(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", host.ErrInvalidScale, s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: %v", host.ErrInvalidScale, v)
	}
	return float32(v), nil
}

func sourceName(dump *host.Dump, path string) string {
	if dump.Source != "" {
		return dump.Source
	}
	return path
}
