package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/omarluq/upswitch/internal/config"
)

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long:  `Load the configuration file, expand environment variables, and report every validation error found.`,
	RunE:  runConfigValidate,
}

func init() {
	configCmd.AddCommand(configValidateCmd)
}

func runConfigValidate(_ *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	path := resolveConfigPath()
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	fmt.Printf("✓ %s is valid (%d candidates, %d notification channels)\n",
		path, len(cfg.Candidates), len(cfg.Notify.Channels))
	return nil
}
