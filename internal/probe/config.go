package probe

import (
	"time"

	"github.com/samber/mo"
)

// Defaults for probe behavior.
const (
	DefaultAttempts = 3
	DefaultTimeout  = 5 * time.Second
	DefaultPort     = 80
)

// Config defines reachability probe behavior.
type Config struct {
	// Attempts is the number of dial attempts before an address is declared
	// unreachable. Default: 3.
	Attempts int `yaml:"attempts" toml:"attempts"`

	// TimeoutMS is the per-attempt dial timeout in milliseconds. Default: 5000.
	TimeoutMS int `yaml:"timeout_ms" toml:"timeout_ms"`

	// Port is the dial port used when a candidate address carries no port.
	// Default: 80.
	Port int `yaml:"port" toml:"port"`
}

// GetAttempts returns the attempt count with default fallback.
func (c *Config) GetAttempts() int {
	if c.Attempts <= 0 {
		return DefaultAttempts
	}
	return c.Attempts
}

// GetTimeout returns the per-attempt timeout with default fallback.
func (c *Config) GetTimeout() time.Duration {
	return c.GetTimeoutOption().OrElse(DefaultTimeout)
}

// GetTimeoutOption returns the configured timeout as an Option.
// Returns None when TimeoutMS is unset (zero or negative).
func (c *Config) GetTimeoutOption() mo.Option[time.Duration] {
	if c.TimeoutMS <= 0 {
		return mo.None[time.Duration]()
	}
	return mo.Some(time.Duration(c.TimeoutMS) * time.Millisecond)
}

// GetPort returns the default dial port with default fallback.
func (c *Config) GetPort() int {
	if c.Port <= 0 {
		return DefaultPort
	}
	return c.Port
}
