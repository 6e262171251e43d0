package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/lrcgen/internal/config"
)

func configCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "config [path]",
		Short: "Write a config file with the current settings",
		Long: `Write the effective configuration (defaults merged with any existing
config file) as TOML, so it can be edited by hand.`,
		Example: `  # Write ./lrcgen.toml
  lrcgen config lrcgen.toml

  # Overwrite the file lrcgen would read
  lrcgen config --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.GetConfigPath("")
			if len(args) == 1 {
				path = args[0]
			}
			if err := writeConfig(path, force); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

// writeConfig saves the effective settings to path. An existing file is
// read first so that its values survive, and is only replaced with force.
func writeConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	return config.SaveConfig(path, cfg)
}
