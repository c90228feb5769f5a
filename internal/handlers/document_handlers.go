package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"nova-suite/internal/export"
	"nova-suite/internal/services"
	"nova-suite/internal/storage"
)

// DocumentHandler handles HTTP requests for rich-text documents
type DocumentHandler struct {
	store    *storage.DocumentStore
	notifier *services.Notifier
	validate *validator.Validate
	logger   *zap.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(store *storage.DocumentStore, notifier *services.Notifier, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		store:    store,
		notifier: notifier,
		validate: validator.New(),
		logger:   logger,
	}
}

// SaveDocumentRequest represents a request to save a document
type SaveDocumentRequest struct {
	Name    string `json:"name" validate:"required"`
	Content string `json:"content"`
}

// SaveDocumentResponse represents the response
type SaveDocumentResponse struct {
	Success bool   `json:"success"`
	Name    string `json:"name"`
}

// SaveDocument stores a document under its sanitized name
// POST /api/documents
func (h *DocumentHandler) SaveDocument(w http.ResponseWriter, r *http.Request) {
	var req SaveDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.notifier.Error("Document name cannot be empty")
		writeBadRequest(w, "name is required")
		return
	}

	name, err := h.store.Save(req.Name, req.Content)
	if err != nil {
		h.logger.Warn("failed to save document", zap.String("name", req.Name), zap.Error(err))
		h.notifier.Error("Failed to save document")
		writeError(w, err)
		return
	}

	h.notifier.Success("Document saved successfully")
	writeJSON(w, http.StatusOK, SaveDocumentResponse{Success: true, Name: name})
}

// GetDocument returns one document
// GET /api/documents/{name}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	doc, err := h.store.Load(name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// DeleteDocumentResponse represents the response
type DeleteDocumentResponse struct {
	Success bool `json:"success"`
}

// DeleteDocument removes a document
// DELETE /api/documents/{name}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := h.store.Delete(name); err != nil {
		h.notifier.Error("Failed to delete document")
		writeError(w, err)
		return
	}

	h.notifier.Success("Document deleted successfully")
	writeJSON(w, http.StatusOK, DeleteDocumentResponse{Success: true})
}

// ListDocumentsResponse represents the response
type ListDocumentsResponse struct {
	Documents interface{} `json:"documents"`
	Count     int         `json:"count"`
	Max       int         `json:"max"`
}

// ListDocuments returns all documents, most recently edited first
// GET /api/documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs := h.store.List()
	writeJSON(w, http.StatusOK, ListDocumentsResponse{
		Documents: docs,
		Count:     len(docs),
		Max:       storage.MaxDocuments,
	})
}

// ExportDocument downloads a document as plain text or a standalone HTML page
// GET /api/documents/{name}/export?format=txt|html
func (h *DocumentHandler) ExportDocument(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "txt"
	}

	doc, err := h.store.Load(name)
	if err != nil {
		writeError(w, err)
		return
	}

	switch format {
	case "txt":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".txt"))
		w.Write([]byte(export.Text(doc.Content)))
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".html"))
		w.Write([]byte(export.HTML(name, doc.Content)))
	default:
		writeBadRequest(w, "unsupported export format: "+format)
	}
}
