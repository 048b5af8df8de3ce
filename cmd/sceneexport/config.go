package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/scene-export/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the exporter configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()

		if len(args) == 1 {
			if err := cfg.SaveTo(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", args[0])
			return nil
		}

		path, err := cfg.Save()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
