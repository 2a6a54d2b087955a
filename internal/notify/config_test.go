package notify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarluq/upswitch/internal/notify"
)

func TestGetDownThresholdDefault(t *testing.T) {
	t.Parallel()

	cfg := notify.Config{}
	assert.Equal(t, notify.DefaultDownThreshold, cfg.GetDownThreshold())

	cfg.DownThreshold = 5
	assert.Equal(t, 5, cfg.GetDownThreshold())
}

func TestBuildChannels(t *testing.T) {
	t.Parallel()

	cfg := notify.Config{
		Channels: []string{notify.ChannelTelegram, notify.ChannelMail},
		Telegram: notify.TelegramConfig{BotToken: "t", ChatID: "c"},
		Mail:     notify.MailConfig{Host: "smtp.example.com", From: "a@b", To: []string{"c@d"}},
	}

	channels, err := cfg.BuildChannels(nil, nil)
	require.NoError(t, err)
	require.Len(t, channels, 2)
	assert.Equal(t, notify.ChannelTelegram, channels[0].Name())
	assert.Equal(t, notify.ChannelMail, channels[1].Name())
}

func TestBuildChannelsUnknownName(t *testing.T) {
	t.Parallel()

	cfg := notify.Config{Channels: []string{"pager"}}
	_, err := cfg.BuildChannels(nil, nil)
	require.Error(t, err)
	assert.ErrorAs(t, err, &notify.UnknownChannelError{})
}

func TestMailConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := notify.MailConfig{}
	assert.Equal(t, 587, cfg.GetPort())
	assert.Equal(t, "[upswitch]", cfg.GetSubjectPrefix())
}
