package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"nova-suite/internal/storage"
)

const defaultSidebarWidth = 250

// SettingsHandler handles HTTP requests for persisted UI settings
type SettingsHandler struct {
	settings *storage.SettingsStore
	logger   *zap.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settings *storage.SettingsStore, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, logger: logger}
}

// ExtensionsResponse lists the installed extension names
type ExtensionsResponse struct {
	Extensions []string `json:"extensions"`
}

// GetExtensions returns the installed extension list
// GET /api/settings/extensions
func (h *SettingsHandler) GetExtensions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ExtensionsResponse{Extensions: h.settings.InstalledExtensions()})
}

// SetExtensions replaces the installed extension list
// PUT /api/settings/extensions
func (h *SettingsHandler) SetExtensions(w http.ResponseWriter, r *http.Request) {
	var req ExtensionsResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.settings.SetInstalledExtensions(req.Extensions); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SidebarWidthResponse carries the persisted sidebar width in pixels
type SidebarWidthResponse struct {
	Width int `json:"width"`
}

// GetSidebarWidth returns the persisted sidebar width
// GET /api/settings/sidebar-width
func (h *SettingsHandler) GetSidebarWidth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SidebarWidthResponse{Width: h.settings.SidebarWidth(defaultSidebarWidth)})
}

// SetSidebarWidth persists the sidebar width
// PUT /api/settings/sidebar-width
func (h *SettingsHandler) SetSidebarWidth(w http.ResponseWriter, r *http.Request) {
	var req SidebarWidthResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if req.Width <= 0 {
		writeBadRequest(w, "width must be positive")
		return
	}
	if err := h.settings.SetSidebarWidth(req.Width); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// LastOpenedResponse carries the id of the most recently opened presentation,
// 0 when none has been opened yet
type LastOpenedResponse struct {
	PresentationID int64 `json:"presentationId"`
}

// GetLastOpened returns the most recently opened presentation id
// GET /api/settings/last-opened
func (h *SettingsHandler) GetLastOpened(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LastOpenedResponse{PresentationID: h.settings.LastOpenedPresentation()})
}
