package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"nova-suite/internal/services"
)

// Handlers bundles everything SetupRoutes wires into the router
type Handlers struct {
	Documents     *DocumentHandler
	Presentations *PresentationHandler
	Editor        *EditorHandler
	Notifications *NotificationHandler
	Settings      *SettingsHandler
	Auth          *AuthHandler
	Hub           *services.Hub
}

// SetupRoutes registers all API routes on the router
func SetupRoutes(router *mux.Router, h *Handlers) {
	api := router.PathPrefix("/api").Subrouter()

	// Documents
	api.HandleFunc("/documents", h.Documents.SaveDocument).Methods("POST")
	api.HandleFunc("/documents", h.Documents.ListDocuments).Methods("GET")
	api.HandleFunc("/documents/{name}", h.Documents.GetDocument).Methods("GET")
	api.HandleFunc("/documents/{name}", h.Documents.DeleteDocument).Methods("DELETE")
	api.HandleFunc("/documents/{name}/export", h.Documents.ExportDocument).Methods("GET")

	// Presentations
	api.HandleFunc("/presentations", h.Presentations.ListPresentations).Methods("GET")
	api.HandleFunc("/presentations/{id}", h.Presentations.GetPresentation).Methods("GET")
	api.HandleFunc("/presentations/{id}", h.Presentations.DeletePresentation).Methods("DELETE")
	api.HandleFunc("/presentations/{id}/slides/{slideId}/render", h.Presentations.RenderSlide).Methods("GET")
	api.HandleFunc("/presentations/{id}/export", h.Presentations.ExportPDF).Methods("GET")

	// Folders
	api.HandleFunc("/folders", h.Presentations.ListFolders).Methods("GET")
	api.HandleFunc("/folders", h.Presentations.CreateFolder).Methods("POST")
	api.HandleFunc("/folders/{name}", h.Presentations.DeleteFolder).Methods("DELETE")
	api.HandleFunc("/folders/{name}/presentations", h.Presentations.MoveToFolder).Methods("POST")

	// Editor sessions
	api.HandleFunc("/sessions", h.Editor.CreateSession).Methods("POST")
	api.HandleFunc("/sessions/{id}", h.Editor.GetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", h.Editor.CloseSession).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/title", h.Editor.SetTitle).Methods("PUT")
	api.HandleFunc("/sessions/{id}/grid", h.Editor.SetGrid).Methods("PUT")
	api.HandleFunc("/sessions/{id}/manager", h.Editor.SetManager).Methods("PUT")

	// Slides
	api.HandleFunc("/sessions/{id}/slides", h.Editor.AddSlide).Methods("POST")
	api.HandleFunc("/sessions/{id}/slides/reorder", h.Editor.ReorderSlides).Methods("POST")
	api.HandleFunc("/sessions/{id}/slides/{slideId}", h.Editor.DeleteSlide).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/slides/{slideId}/duplicate", h.Editor.DuplicateSlide).Methods("POST")
	api.HandleFunc("/sessions/{id}/slides/{slideId}/select", h.Editor.SelectSlide).Methods("POST")
	api.HandleFunc("/sessions/{id}/slides/{slideId}/background", h.Editor.SetSlideBackground).Methods("PUT")
	api.HandleFunc("/sessions/{id}/slides/{slideId}/content", h.Editor.SetSlideContent).Methods("PUT")

	// Elements
	api.HandleFunc("/sessions/{id}/elements", h.Editor.AddElement).Methods("POST")
	api.HandleFunc("/sessions/{id}/elements/selected", h.Editor.DeleteSelectedElement).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/elements/{elementId}/select", h.Editor.SelectElement).Methods("POST")
	api.HandleFunc("/sessions/{id}/elements/{elementId}/style", h.Editor.UpdateElementStyle).Methods("PUT")
	api.HandleFunc("/sessions/{id}/elements/{elementId}/zindex", h.Editor.UpdateElementZIndex).Methods("POST")
	api.HandleFunc("/sessions/{id}/elements/{elementId}/content", h.Editor.UpdateElementContent).Methods("PUT")
	api.HandleFunc("/sessions/{id}/selection", h.Editor.Deselect).Methods("DELETE")

	// Gestures
	api.HandleFunc("/sessions/{id}/drag/begin", h.Editor.BeginDrag).Methods("POST")
	api.HandleFunc("/sessions/{id}/drag/move", h.Editor.Drag).Methods("POST")
	api.HandleFunc("/sessions/{id}/drag/end", h.Editor.EndDrag).Methods("POST")
	api.HandleFunc("/sessions/{id}/resize/begin", h.Editor.BeginResize).Methods("POST")
	api.HandleFunc("/sessions/{id}/resize/move", h.Editor.Resize).Methods("POST")
	api.HandleFunc("/sessions/{id}/resize/end", h.Editor.EndResize).Methods("POST")

	// Clipboard
	api.HandleFunc("/sessions/{id}/clipboard/copy-element", h.Editor.CopyElement).Methods("POST")
	api.HandleFunc("/sessions/{id}/clipboard/copy-slide", h.Editor.CopySlide).Methods("POST")
	api.HandleFunc("/sessions/{id}/clipboard/paste", h.Editor.Paste).Methods("POST")

	// Presentation mode
	api.HandleFunc("/sessions/{id}/present", h.Editor.EnterPresentation).Methods("POST")
	api.HandleFunc("/sessions/{id}/present", h.Editor.ExitPresentation).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/present/key", h.Editor.PlayerKey).Methods("POST")

	// Notifications
	api.HandleFunc("/notifications", h.Notifications.ListNotifications).Methods("GET")
	api.HandleFunc("/notifications", h.Notifications.ShowNotification).Methods("POST")
	api.HandleFunc("/notifications/{id}", h.Notifications.DismissNotification).Methods("DELETE")

	// Settings
	api.HandleFunc("/settings/extensions", h.Settings.GetExtensions).Methods("GET")
	api.HandleFunc("/settings/extensions", h.Settings.SetExtensions).Methods("PUT")
	api.HandleFunc("/settings/sidebar-width", h.Settings.GetSidebarWidth).Methods("GET")
	api.HandleFunc("/settings/sidebar-width", h.Settings.SetSidebarWidth).Methods("PUT")
	api.HandleFunc("/settings/last-opened", h.Settings.GetLastOpened).Methods("GET")

	// Auth
	api.HandleFunc("/auth/me", h.Auth.Me).Methods("GET")
	api.HandleFunc("/auth/login", h.Auth.Login).Methods("GET")
	api.HandleFunc("/auth/logout", h.Auth.Logout).Methods("POST")

	// WebSocket event feed
	router.HandleFunc("/ws", h.Hub.ServeWS)

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
}
