package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSettingsStore(t *testing.T) (*SettingsStore, *KV) {
	t.Helper()
	kv := newTestKV(t)
	return NewSettingsStore(kv, zap.NewNop()), kv
}

func TestSettingsStore_InstalledExtensions(t *testing.T) {
	store, _ := newTestSettingsStore(t)

	assert.Empty(t, store.InstalledExtensions())

	require.NoError(t, store.SetInstalledExtensions([]string{"word-count", "dark-mode"}))
	assert.Equal(t, []string{"word-count", "dark-mode"}, store.InstalledExtensions())
}

func TestSettingsStore_InstalledExtensions_CorruptRecord(t *testing.T) {
	store, kv := newTestSettingsStore(t)
	require.NoError(t, kv.Set(InstalledExtensionsKey, "oops"))

	assert.Empty(t, store.InstalledExtensions())
}

func TestSettingsStore_SidebarWidth(t *testing.T) {
	store, kv := newTestSettingsStore(t)

	assert.Equal(t, 250, store.SidebarWidth(250))

	require.NoError(t, store.SetSidebarWidth(320))
	assert.Equal(t, 320, store.SidebarWidth(250))

	require.NoError(t, kv.Set(SidebarWidthKey, "wide"))
	assert.Equal(t, 250, store.SidebarWidth(250))
}

func TestSettingsStore_LastOpenedPresentation(t *testing.T) {
	store, _ := newTestSettingsStore(t)

	assert.Equal(t, int64(0), store.LastOpenedPresentation())

	require.NoError(t, store.SetLastOpenedPresentation(1726000000000))
	assert.Equal(t, int64(1726000000000), store.LastOpenedPresentation())
}
