package notify

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// Channel name constants.
const (
	ChannelTelegram = "telegram"
	ChannelMail     = "mail"
)

// DefaultDownThreshold is the number of consecutive all-down runs that still
// dispatch an all_down notification before alerting goes log-only.
const DefaultDownThreshold = 2

// Config defines notification behavior.
type Config struct {
	// Channels lists the enabled channel variants: "telegram", "mail".
	Channels []string `yaml:"channels" toml:"channels"`

	// DownThreshold caps how many consecutive all-down runs notify before
	// further occurrences are logged only. Default: 2.
	DownThreshold int `yaml:"down_threshold" toml:"down_threshold"`

	Telegram TelegramConfig `yaml:"telegram" toml:"telegram"`
	Mail     MailConfig     `yaml:"mail" toml:"mail"`
}

// GetDownThreshold returns the down-notification threshold with default
// fallback.
func (c *Config) GetDownThreshold() int {
	if c.DownThreshold <= 0 {
		return DefaultDownThreshold
	}
	return c.DownThreshold
}

// UnknownChannelError is returned when a configured channel name matches no
// variant.
type UnknownChannelError struct {
	Name string
}

func (e UnknownChannelError) Error() string {
	return fmt.Sprintf("notify: unknown channel %q (valid: %s, %s)", e.Name, ChannelTelegram, ChannelMail)
}

// BuildChannels instantiates the configured channel variants.
func (c *Config) BuildChannels(client *http.Client, logger *zerolog.Logger) ([]Channel, error) {
	channels := make([]Channel, 0, len(c.Channels))
	for _, name := range c.Channels {
		switch name {
		case ChannelTelegram:
			channels = append(channels, NewTelegramChannel(c.Telegram, client))
		case ChannelMail:
			channels = append(channels, NewMailChannel(c.Mail))
		default:
			return nil, UnknownChannelError{Name: name}
		}
	}
	if len(channels) == 0 && logger != nil {
		logger.Warn().Msg("no notification channels configured")
	}
	return channels, nil
}
