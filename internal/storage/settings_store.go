package storage

import (
	"encoding/json"
	"strconv"

	"go.uber.org/zap"
)

// SettingsStore persists the small scalar records the clients keep alongside
// their documents: installed extensions, sidebar width and the last opened
// presentation
type SettingsStore struct {
	kv     *KV
	logger *zap.Logger
}

// NewSettingsStore creates a settings store over the given key-value store
func NewSettingsStore(kv *KV, logger *zap.Logger) *SettingsStore {
	return &SettingsStore{kv: kv, logger: logger}
}

// InstalledExtensions returns the installed extension ids
func (s *SettingsStore) InstalledExtensions() []string {
	raw, ok, err := s.kv.Get(InstalledExtensionsKey)
	if err != nil || !ok {
		return []string{}
	}
	var extensions []string
	if err := json.Unmarshal([]byte(raw), &extensions); err != nil {
		s.logger.Warn("installed extensions record is corrupt", zap.Error(err))
		return []string{}
	}
	return extensions
}

// SetInstalledExtensions replaces the installed extension ids
func (s *SettingsStore) SetInstalledExtensions(extensions []string) error {
	data, err := json.Marshal(extensions)
	if err != nil {
		return err
	}
	return s.kv.Set(InstalledExtensionsKey, string(data))
}

// SidebarWidth returns the stored sidebar width in pixels, or the fallback
func (s *SettingsStore) SidebarWidth(fallback int) int {
	raw, ok, err := s.kv.Get(SidebarWidthKey)
	if err != nil || !ok {
		return fallback
	}
	width, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return width
}

// SetSidebarWidth stores the sidebar width in pixels
func (s *SettingsStore) SetSidebarWidth(width int) error {
	return s.kv.Set(SidebarWidthKey, strconv.Itoa(width))
}

// LastOpenedPresentation returns the id of the last opened presentation,
// or zero when none is recorded
func (s *SettingsStore) LastOpenedPresentation() int64 {
	raw, ok, err := s.kv.Get(LastOpenedPresentationKey)
	if err != nil || !ok {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// SetLastOpenedPresentation records the id of the last opened presentation
func (s *SettingsStore) SetLastOpenedPresentation(id int64) error {
	return s.kv.Set(LastOpenedPresentationKey, strconv.FormatInt(id, 10))
}
