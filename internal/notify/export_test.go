package notify

// SetAPIBase points the channel at a test server instead of the real
// Telegram API.
func (t *TelegramChannel) SetAPIBase(base string) {
	t.apiBase = base
}
