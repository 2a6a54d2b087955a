// Package main is the entry point for upswitch.
package main

import (
	"context"
	"os"

	"charm.land/fang/v2"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "upswitch.yaml"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "upswitch",
	Short: "Priority failover controller for nginx upstream targets",
	Long: `upswitch keeps nginx proxy_pass targets pointed at the best-reachable
member of a statically ranked candidate list. It is designed to be invoked
periodically by cron: each invocation is one idempotent evaluation that
probes the candidates, repoints stale rules, reloads nginx, and notifies
operators about failures, recoveries, and switches.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file path (default: ./"+defaultConfigFile+" or ~/.config/upswitch/"+defaultConfigFile+")")
}

func main() {
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}
