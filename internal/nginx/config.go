// Package nginx locates proxy_pass directives in an nginx site directory,
// rewrites their upstream targets in place, and triggers a reload of the
// running nginx process.
package nginx

import "strings"

// DefaultReloadCommand is run after any rewrite when no command is configured.
const DefaultReloadCommand = "nginx -s reload"

// DefaultBackup controls backups when backup is not explicitly configured.
const DefaultBackup = true

// Config defines the nginx integration settings.
type Config struct {
	// ConfDir is the directory holding site configuration files
	// (e.g. /etc/nginx/sites-available). Required.
	ConfDir string `yaml:"conf_dir" toml:"conf_dir"`

	// ReloadCmd is the command run once after any file changed.
	// Default: "nginx -s reload".
	ReloadCmd string `yaml:"reload_cmd" toml:"reload_cmd"`

	// Backup controls whether the pre-rewrite content is saved to a
	// sibling .bak file before a changed file is written.
	Backup *bool `yaml:"backup" toml:"backup"`
}

// BackupEnabled returns whether pre-rewrite backups are written.
// Returns true by default if not explicitly set.
func (c *Config) BackupEnabled() bool {
	if c.Backup == nil {
		return DefaultBackup
	}
	return *c.Backup
}

// GetReloadCommand returns the reload command with default fallback.
func (c *Config) GetReloadCommand() []string {
	cmd := c.ReloadCmd
	if strings.TrimSpace(cmd) == "" {
		cmd = DefaultReloadCommand
	}
	return strings.Fields(cmd)
}
