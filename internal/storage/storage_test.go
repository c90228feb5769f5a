package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nova-suite/internal/db"
)

// newTestKV opens a throwaway SQLite database in a temp directory
func newTestKV(t *testing.T) *KV {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewKV(database)
}
