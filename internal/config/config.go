// Package config provides configuration loading, parsing, and validation
// for upswitch.
package config

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/omarluq/upswitch/internal/nginx"
	"github.com/omarluq/upswitch/internal/notify"
	"github.com/omarluq/upswitch/internal/probe"
)

// DefaultStatePath is used when state.path is not configured.
const DefaultStatePath = "/var/lib/upswitch/state.toml"

// Log level constants.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Config represents the complete upswitch configuration.
type Config struct {
	// Candidates lists the alternate upstream targets. List order defines
	// priority: the first entry is the most preferred path.
	Candidates []probe.Candidate `yaml:"candidates" toml:"candidates"`

	Probe   probe.Config  `yaml:"probe" toml:"probe"`
	Nginx   nginx.Config  `yaml:"nginx" toml:"nginx"`
	State   StateConfig   `yaml:"state" toml:"state"`
	Notify  notify.Config `yaml:"notify" toml:"notify"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// StateConfig defines where the run state record lives.
type StateConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// GetPath returns the state file path with default fallback.
func (s *StateConfig) GetPath() string {
	if s.Path == "" {
		return DefaultStatePath
	}
	return s.Path
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format" toml:"format"` // json, console, pretty
	Output string `yaml:"output" toml:"output"` // stdout, stderr, or file path
	Pretty bool   `yaml:"pretty" toml:"pretty"` // force colored console output
}

// ParseLevel converts the configured log level to zerolog.Level.
// Returns zerolog.InfoLevel if the level string is invalid.
func (l *LoggingConfig) ParseLevel() zerolog.Level {
	switch strings.ToLower(l.Level) {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
