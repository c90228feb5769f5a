package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"nova-suite/internal/services"
)

// NotificationHandler handles HTTP requests for toast notifications
type NotificationHandler struct {
	notifier *services.Notifier
	validate *validator.Validate
	logger   *zap.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifier *services.Notifier, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifier: notifier,
		validate: validator.New(),
		logger:   logger,
	}
}

// ListNotifications returns the currently visible toasts
// GET /api/notifications
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.notifier.Active())
}

// ShowNotificationRequest displays a toast. An omitted DurationMs falls back
// to the severity default; an explicit 0 makes the toast sticky.
type ShowNotificationRequest struct {
	Message    string `json:"message" validate:"required"`
	Severity   string `json:"severity" validate:"omitempty,oneof=info success warning error"`
	DurationMs *int   `json:"durationMs" validate:"omitempty,gte=0"`
}

// ShowNotification displays a toast
// POST /api/notifications
func (h *NotificationHandler) ShowNotification(w http.ResponseWriter, r *http.Request) {
	var req ShowNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeBadRequest(w, "message is required and severity must be info, success, warning or error")
		return
	}

	severity := services.SeverityInfo
	if req.Severity != "" {
		severity = services.Severity(req.Severity)
	}
	duration := services.DefaultToastDuration
	if severity == services.SeverityError {
		duration = 0
	}
	if req.DurationMs != nil {
		duration = time.Duration(*req.DurationMs) * time.Millisecond
	}

	toast := h.notifier.Show(req.Message, severity, duration)
	writeJSON(w, http.StatusCreated, toast)
}

// DismissNotification hides a toast before its timer fires
// DELETE /api/notifications/{id}
func (h *NotificationHandler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	h.notifier.Dismiss(mux.Vars(r)["id"])
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
