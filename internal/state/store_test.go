package state_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarluq/upswitch/internal/state"
)

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.toml")
	store := state.NewStore(path, nil)

	want := state.RunState{
		LastOverallReachable:         false,
		ConsecutiveDownNotifications: 3,
		RecoveryPending:              true,
	}
	require.NoError(t, store.Save(want))

	got := store.Load()
	assert.Equal(t, want, got)
}

func TestStoreLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	store := state.NewStore(filepath.Join(t.TempDir(), "nope", "state.toml"), nil)
	assert.Equal(t, state.Default(), store.Load())
}

func TestStoreLoadCorruptFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, os.WriteFile(path, []byte("{not toml at all"), 0o600))

	store := state.NewStore(path, nil)
	assert.Equal(t, state.Default(), store.Load())
}

func TestStoreSaveCreatesParentDirs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "state.toml")
	store := state.NewStore(path, nil)
	require.NoError(t, store.Save(state.Default()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestStoreSaveLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := state.NewStore(filepath.Join(dir, "state.toml"), nil)
	require.NoError(t, store.Save(state.Default()))
	require.NoError(t, store.Save(state.RunState{LastOverallReachable: true}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
