package main

import (
	"github.com/spf13/cobra"

	"ml-universe/internal/config"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write or check the config file",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Write the default config to --config",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := config.Save(configPath, config.Default()); err != nil {
					return err
				}
				good.Printf("  wrote %s\n", configPath)
				return nil
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Load and validate --config",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load(configPath)
				if err != nil {
					return err
				}
				good.Printf("  %s ok: %d diagrams, %d markers\n", configPath, len(cfg.Diagrams), len(cfg.Markers))
				return nil
			},
		},
	)
	return cmd
}
