package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const defaultConfigTemplate = `# upswitch configuration
#
# Candidate order defines priority: the first entry is the most preferred
# upstream path. upswitch repoints proxy_pass rules at the first reachable
# candidate, failing back to a higher-priority one as soon as it recovers.

candidates:
  - name: nas
    address: 10.0.0.5
  - name: router
    address: 10.0.0.1

probe:
  attempts: 3
  timeout_ms: 5000
  port: 80 # dial port for candidates configured without one

nginx:
  conf_dir: /etc/nginx/sites-available
  reload_cmd: nginx -s reload
  backup: true # keep a .bak copy of each file before rewriting it

state:
  path: /var/lib/upswitch/state.toml

notify:
  channels: [telegram]
  down_threshold: 2 # all-down runs that still notify before going log-only
  telegram:
    bot_token: ${TELEGRAM_BOT_TOKEN}
    chat_id: ${TELEGRAM_CHAT_ID}
  # mail:
  #   host: smtp.example.com
  #   port: 587
  #   username: upswitch@example.com
  #   password: ${SMTP_PASSWORD}
  #   from: upswitch@example.com
  #   to: [ops@example.com]

logging:
  level: info
  format: console
  output: stderr
`

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default config file",
	Long:  `Generate a default upswitch configuration file at ~/.config/upswitch/upswitch.yaml`,
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().StringP("output", "o", "", "output path (default: ~/.config/upswitch/"+defaultConfigFile+")")
	configInitCmd.Flags().Bool("force", false, "overwrite existing config file")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}

	if output == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		output = filepath.Join(home, ".config", "upswitch", defaultConfigFile)
	}

	if _, err := os.Stat(output); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", output)
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(output, []byte(defaultConfigTemplate), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("✓ Config file created at %s\n", output)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the candidate list and nginx conf_dir")
	fmt.Println("  2. Export TELEGRAM_BOT_TOKEN / TELEGRAM_CHAT_ID (or use a .env file)")
	fmt.Println("  3. Validate with: upswitch config validate")
	fmt.Println("  4. Schedule it: */5 * * * * upswitch run --config " + output)

	return nil
}
