package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKV_SetGet(t *testing.T) {
	kv := newTestKV(t)

	require.NoError(t, kv.Set("greeting", "hello"))

	value, ok, err := kv.Get("greeting")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", value)
}

func TestKV_Get_AbsentKey(t *testing.T) {
	kv := newTestKV(t)

	value, ok, err := kv.Get("missing")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestKV_Set_LastWriteWins(t *testing.T) {
	kv := newTestKV(t)

	require.NoError(t, kv.Set("key", "first"))
	require.NoError(t, kv.Set("key", "second"))

	value, ok, err := kv.Get("key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", value)
}

func TestKV_Delete_Idempotent(t *testing.T) {
	kv := newTestKV(t)

	require.NoError(t, kv.Set("key", "value"))
	require.NoError(t, kv.Delete("key"))
	require.NoError(t, kv.Delete("key"))

	_, ok, err := kv.Get("key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKV_ListPrefix(t *testing.T) {
	kv := newTestKV(t)

	require.NoError(t, kv.Set("presentation_1", "a"))
	require.NoError(t, kv.Set("presentation_2", "b"))
	require.NoError(t, kv.Set("presentation_folders", "c"))
	require.NoError(t, kv.Set("sidebarWidth", "250"))

	entries, err := kv.ListPrefix("presentation_")

	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, "a", entries["presentation_1"])
	assert.NotContains(t, entries, "sidebarWidth")
}

func TestKV_ListPrefix_WildcardsMatchLiterally(t *testing.T) {
	kv := newTestKV(t)

	require.NoError(t, kv.Set("presentation_1", "a"))
	require.NoError(t, kv.Set("presentationX1", "b"))
	require.NoError(t, kv.Set("p%fix", "c"))

	entries, err := kv.ListPrefix("presentation_")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Contains(t, entries, "presentation_1")

	entries, err = kv.ListPrefix("p%")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Contains(t, entries, "p%fix")
}
