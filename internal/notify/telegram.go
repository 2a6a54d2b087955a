package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramConfig defines the bot-push channel settings.
type TelegramConfig struct {
	// BotToken is the Telegram bot API token. Supports ${ENV_VAR} in the
	// config file.
	BotToken string `yaml:"bot_token" toml:"bot_token"`

	// ChatID is the chat or user the bot pushes to.
	ChatID string `yaml:"chat_id" toml:"chat_id"`

	// Silent sends without a notification sound.
	Silent bool `yaml:"silent" toml:"silent"`
}

// TelegramChannel pushes messages through the Telegram bot sendMessage API.
type TelegramChannel struct {
	config  TelegramConfig
	client  *http.Client
	apiBase string
}

// NewTelegramChannel creates a TelegramChannel. A nil client gets a default
// with a 10s timeout.
func NewTelegramChannel(cfg TelegramConfig, client *http.Client) *TelegramChannel {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &TelegramChannel{config: cfg, client: client, apiBase: telegramAPIBase}
}

// Name returns the channel variant name.
func (t *TelegramChannel) Name() string {
	return ChannelTelegram
}

// Send posts the message as HTML, subject rendered as a bold first line.
func (t *TelegramChannel) Send(ctx context.Context, subject, body string) error {
	text := body
	if subject != "" {
		text = "<b>" + subject + "</b>\n\n" + body
	}

	payload, err := buildSendMessage(t.config.ChatID, text, t.config.Silent)
	if err != nil {
		return fmt.Errorf("telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.config.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("telegram response: %w", err)
	}

	if !gjson.GetBytes(respBody, "ok").Bool() {
		desc := gjson.GetBytes(respBody, "description").String()
		if desc == "" {
			desc = resp.Status
		}
		return fmt.Errorf("telegram API error: %s", desc)
	}
	return nil
}

// buildSendMessage assembles the sendMessage JSON body.
func buildSendMessage(chatID, text string, silent bool) ([]byte, error) {
	payload, err := sjson.SetBytes([]byte(`{}`), "chat_id", chatID)
	if err != nil {
		return nil, err
	}
	if payload, err = sjson.SetBytes(payload, "text", text); err != nil {
		return nil, err
	}
	if payload, err = sjson.SetBytes(payload, "parse_mode", "HTML"); err != nil {
		return nil, err
	}
	if payload, err = sjson.SetBytes(payload, "disable_notification", silent); err != nil {
		return nil, err
	}
	return payload, nil
}
