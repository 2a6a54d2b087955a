package config

import (
	"github.com/samber/lo"

	"github.com/omarluq/upswitch/internal/notify"
	"github.com/omarluq/upswitch/internal/probe"
)

// Valid notification channel names.
var validChannels = map[string]bool{
	notify.ChannelTelegram: true,
	notify.ChannelMail:     true,
}

// Valid logging levels.
var validLogLevels = map[string]bool{
	"":         true, // Empty defaults to info
	LevelDebug: true,
	LevelInfo:  true,
	LevelWarn:  true,
	LevelError: true,
}

// Valid logging formats.
var validLogFormats = map[string]bool{
	"":        true, // Empty defaults to console autodetect
	"json":    true,
	"console": true,
	"pretty":  true,
}

// Validate checks the configuration for errors.
// It validates all required fields, valid values, and cross-field
// constraints. Returns a ValidationError containing all errors found, or
// nil if valid.
func (c *Config) Validate() error {
	errs := &ValidationError{}

	validateCandidates(c, errs)
	validateNginx(c, errs)
	validateNotify(c, errs)
	validateLogging(c, errs)

	return errs.ToError()
}

// validateCandidates validates the candidate list.
func validateCandidates(c *Config, errs *ValidationError) {
	if len(c.Candidates) == 0 {
		errs.Add("candidates: at least one candidate is required")
		return
	}

	for i, cand := range c.Candidates {
		if cand.Name == "" {
			errs.Addf("candidates[%d]: name is required", i)
		}
		if cand.Address == "" {
			errs.Addf("candidates[%d]: address is required", i)
		}
	}

	dupes := lo.FindDuplicatesBy(c.Candidates, func(cand probe.Candidate) string {
		return cand.Address
	})
	for _, d := range dupes {
		errs.Addf("candidates: duplicate address %q", d.Address)
	}
}

// validateNginx validates the nginx integration section.
func validateNginx(c *Config, errs *ValidationError) {
	if c.Nginx.ConfDir == "" {
		errs.Add("nginx.conf_dir is required")
	}
}

// validateNotify validates the notification section.
func validateNotify(c *Config, errs *ValidationError) {
	for _, name := range c.Notify.Channels {
		if !validChannels[name] {
			errs.Addf("notify.channels: unknown channel %q", name)
		}
	}
	if c.Notify.DownThreshold < 0 {
		errs.Addf("notify.down_threshold must be >= 0, got %d", c.Notify.DownThreshold)
	}

	if lo.Contains(c.Notify.Channels, notify.ChannelTelegram) {
		if c.Notify.Telegram.BotToken == "" {
			errs.Add("notify.telegram.bot_token is required when the telegram channel is enabled")
		}
		if c.Notify.Telegram.ChatID == "" {
			errs.Add("notify.telegram.chat_id is required when the telegram channel is enabled")
		}
	}
	if lo.Contains(c.Notify.Channels, notify.ChannelMail) {
		if c.Notify.Mail.Host == "" {
			errs.Add("notify.mail.host is required when the mail channel is enabled")
		}
		if c.Notify.Mail.From == "" {
			errs.Add("notify.mail.from is required when the mail channel is enabled")
		}
		if len(c.Notify.Mail.To) == 0 {
			errs.Add("notify.mail.to requires at least one recipient")
		}
	}
}

// validateLogging validates the logging section.
func validateLogging(c *Config, errs *ValidationError) {
	if !validLogLevels[c.Logging.Level] {
		errs.Addf("logging.level: invalid level %q", c.Logging.Level)
	}
	if !validLogFormats[c.Logging.Format] {
		errs.Addf("logging.format: invalid format %q", c.Logging.Format)
	}
}
