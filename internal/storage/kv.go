package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Well-known storage keys and prefixes, kept byte-for-byte compatible with
// the browser clients' localStorage layout
const (
	DocumentsKey              = "novaDocs-documents"
	PresentationPrefix        = "presentation_"
	FoldersKey                = "presentation_folders"
	InstalledExtensionsKey    = "installedExtensions"
	SidebarWidthKey           = "sidebarWidth"
	LastOpenedPresentationKey = "lastOpenedPresentation"
)

// KV is a durable key-value store over SQLite. Values are opaque text;
// callers own serialization. Overwrite semantics: last write wins.
type KV struct {
	database *sql.DB
}

// NewKV creates a key-value store over the given database
func NewKV(database *sql.DB) *KV {
	return &KV{database: database}
}

// Set writes the value under key, replacing any previous value
func (kv *KV) Set(key, value string) error {
	query := `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := kv.database.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Get reads the value under key. The second return value reports presence.
func (kv *KV) Get(key string) (string, bool, error) {
	var value string
	err := kv.database.QueryRow(`SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (kv *KV) Delete(key string) error {
	if _, err := kv.database.Exec(`DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// likeEscaper neutralizes LIKE wildcards so prefixes match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ListPrefix returns every key/value pair whose key starts with prefix.
// Cost is linear in the number of stored keys under the prefix.
func (kv *KV) ListPrefix(prefix string) (map[string]string, error) {
	pattern := likeEscaper.Replace(prefix) + "%"
	rows, err := kv.database.Query(`SELECT key, value FROM kv_store WHERE key LIKE ? ESCAPE '\'`, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan prefix %q: %w", prefix, err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return result, nil
}
