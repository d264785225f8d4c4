package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/windlass/ringview/pkg/config"
)

var (
	initForce   bool
	initExample bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a default configuration file (.ringview.toml) to the current
directory.

Use --example to include example source entries.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing configuration")
	initCmd.Flags().BoolVar(&initExample, "example", false, "include example source entries")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(cwd, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", configPath)
	}

	newCfg := config.NewDefaultConfig()

	if initExample {
		newCfg.Sources = []config.Source{
			{
				Name: "linux",
				URL:  "https://github.com/torvalds/linux.git",
				Type: config.SourceTypeGit,
			},
			{
				Name:   "cpu",
				Type:   config.SourceTypeSystem,
				Metric: config.MetricCPU,
				Unit:   "%",
			},
		}
	}

	if err := newCfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Created %s\n", configPath)
	return nil
}
