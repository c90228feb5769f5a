package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"nova-suite/internal/apperrors"
)

// writeJSON encodes a response body with the proper content type
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// errorResponse is the uniform error body
type errorResponse struct {
	Success bool   `json:"success"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// writeError maps an application error to its HTTP status
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.HTTPStatus, errorResponse{
			Success: false,
			Type:    string(appErr.Type),
			Message: appErr.Message,
		})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Success: false,
		Type:    string(apperrors.ErrorTypeInternal),
		Message: err.Error(),
	})
}

// writeBadRequest reports a malformed or invalid request body
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Success: false,
		Type:    string(apperrors.ErrorTypeValidation),
		Message: message,
	})
}
