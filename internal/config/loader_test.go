package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarluq/upswitch/internal/config"
)

const sampleConfig = `
candidates:
  - name: nas
    address: 10.0.0.5
  - name: router
    address: 10.0.0.1
probe:
  attempts: 2
  timeout_ms: 1500
nginx:
  conf_dir: /etc/nginx/sites-available
state:
  path: /tmp/upswitch-state.toml
notify:
  channels: [telegram]
  down_threshold: 2
  telegram:
    bot_token: ${UPSWITCH_TEST_TOKEN}
    chat_id: "42"
logging:
  level: debug
`

func TestLoadFromReader(t *testing.T) {
	t.Setenv("UPSWITCH_TEST_TOKEN", "secret-token")

	cfg, err := config.LoadFromReader(strings.NewReader(sampleConfig))
	require.NoError(t, err)

	require.Len(t, cfg.Candidates, 2)
	assert.Equal(t, "nas", cfg.Candidates[0].Name)
	assert.Equal(t, 1, cfg.Candidates[0].Priority, "first entry is the most preferred")
	assert.Equal(t, 2, cfg.Candidates[1].Priority)

	assert.Equal(t, 2, cfg.Probe.GetAttempts())
	assert.Equal(t, "secret-token", cfg.Notify.Telegram.BotToken, "env vars must be expanded")
	assert.Equal(t, "/tmp/upswitch-state.toml", cfg.State.GetPath())
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("UPSWITCH_TEST_TOKEN", "x")

	path := filepath.Join(t.TempDir(), "upswitch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFromReader(strings.NewReader("candidates: [:::"))
	assert.Error(t, err)
}

func TestStatePathDefault(t *testing.T) {
	t.Parallel()

	var s config.StateConfig
	assert.Equal(t, config.DefaultStatePath, s.GetPath())
}
