package nginx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omarluq/upswitch/internal/nginx"
)

func TestReloaderSuccess(t *testing.T) {
	t.Parallel()

	r := nginx.NewReloader([]string{"true"}, nil)
	assert.NoError(t, r.Reload(context.Background()))
}

func TestReloaderFailureIncludesOutput(t *testing.T) {
	t.Parallel()

	r := nginx.NewReloader([]string{"sh", "-c", "echo boom >&2; exit 3"}, nil)
	err := r.Reload(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestReloaderEmptyCommand(t *testing.T) {
	t.Parallel()

	r := nginx.NewReloader(nil, nil)
	assert.Error(t, r.Reload(context.Background()))
}

func TestGetReloadCommandDefault(t *testing.T) {
	t.Parallel()

	cfg := nginx.Config{}
	assert.Equal(t, []string{"nginx", "-s", "reload"}, cfg.GetReloadCommand())

	cfg.ReloadCmd = "systemctl reload nginx"
	assert.Equal(t, []string{"systemctl", "reload", "nginx"}, cfg.GetReloadCommand())
}

func TestBackupEnabledDefault(t *testing.T) {
	t.Parallel()

	boolPtr := func(b bool) *bool { return &b }

	cfg := nginx.Config{}
	assert.True(t, cfg.BackupEnabled(), "backups are on unless disabled")

	cfg.Backup = boolPtr(false)
	assert.False(t, cfg.BackupEnabled())

	cfg.Backup = boolPtr(true)
	assert.True(t, cfg.BackupEnabled())
}
