package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/omarluq/upswitch/cmd/upswitch/di"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one failover evaluation",
	Long: `Probe the configured candidates, reconcile nginx proxy_pass targets
against the best-reachable one, reload nginx if anything changed, and send
the notifications the run produced.

Exit code is non-zero only for configuration errors detected before any
probing begins; collaborator failures during the run are logged and the
run completes normally.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	// Secrets like the bot token come from the environment; a .env next to
	// the binary is honored the same way the config file's ${VAR} expansion
	// expects. A missing .env is not an error.
	_ = godotenv.Load()

	container := di.NewContainer(resolveConfigPath())

	ctrlSvc, err := di.Invoke[*di.ControllerService](container)
	if err != nil {
		// Fatal startup error: bad or missing configuration.
		log.Error().Err(err).Msg("startup failed")
		return err
	}

	return ctrlSvc.Controller.Run(cmd.Context())
}

// resolveConfigPath returns the --config value or searches the default
// locations.
func resolveConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		p := filepath.Join(home, ".config", "upswitch", defaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return defaultConfigFile // Default, will error if not found
}
