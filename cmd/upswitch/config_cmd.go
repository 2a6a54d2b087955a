package main

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage upswitch configuration",
	Long:  `Generate and validate upswitch configuration files.`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
