package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"nova-suite/internal/apperrors"
	"nova-suite/internal/models"
	"nova-suite/internal/render"
	"nova-suite/internal/services"
	"nova-suite/internal/storage"
)

// PresentationHandler handles HTTP requests for stored presentations and
// folders
type PresentationHandler struct {
	presentations *storage.PresentationStore
	folders       *storage.FolderStore
	editor        *services.EditorService
	renderer      *render.Renderer
	notifier      *services.Notifier
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewPresentationHandler creates a new presentation handler
func NewPresentationHandler(
	presentations *storage.PresentationStore,
	folders *storage.FolderStore,
	editor *services.EditorService,
	renderer *render.Renderer,
	notifier *services.Notifier,
	logger *zap.Logger,
) *PresentationHandler {
	return &PresentationHandler{
		presentations: presentations,
		folders:       folders,
		editor:        editor,
		renderer:      renderer,
		notifier:      notifier,
		validate:      validator.New(),
		logger:        logger,
	}
}

func presentationID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid presentation id: " + raw)
	}
	return id, nil
}

// PresentationSummary is a picker row
type PresentationSummary struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	SlideCount   int    `json:"slideCount"`
	LastModified string `json:"lastModified"`
	Folder       string `json:"folder"`
}

// ListPresentationsResponse represents the picker listing
type ListPresentationsResponse struct {
	Presentations []PresentationSummary `json:"presentations"`
	Folders       []*models.Folder      `json:"folders"`
	Count         int                   `json:"count"`
	Max           int                   `json:"max"`
}

// ListPresentations returns all presentations with their folder grouping,
// most recently modified first. Folder entries pointing at deleted
// presentations are filtered out here.
// GET /api/presentations
func (h *PresentationHandler) ListPresentations(w http.ResponseWriter, r *http.Request) {
	presentations, err := h.presentations.List()
	if err != nil {
		writeError(w, err)
		return
	}

	validIDs := make(map[int64]bool, len(presentations))
	for _, p := range presentations {
		validIDs[p.ID] = true
	}

	summaries := make([]PresentationSummary, 0, len(presentations))
	for _, p := range presentations {
		summaries = append(summaries, PresentationSummary{
			ID:           p.ID,
			Title:        p.Title,
			SlideCount:   len(p.Slides),
			LastModified: p.LastModified.Format(time.RFC3339),
			Folder:       h.folders.FolderOf(p.ID),
		})
	}

	writeJSON(w, http.StatusOK, ListPresentationsResponse{
		Presentations: summaries,
		Folders:       h.folders.List(validIDs),
		Count:         len(summaries),
		Max:           storage.MaxPresentations,
	})
}

// ListFolders returns the folder grouping with dangling entries filtered out
// GET /api/folders
func (h *PresentationHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	presentations, err := h.presentations.List()
	if err != nil {
		writeError(w, err)
		return
	}
	validIDs := make(map[int64]bool, len(presentations))
	for _, p := range presentations {
		validIDs[p.ID] = true
	}
	writeJSON(w, http.StatusOK, h.folders.List(validIDs))
}

// GetPresentation returns one full presentation record
// GET /api/presentations/{id}
func (h *PresentationHandler) GetPresentation(w http.ResponseWriter, r *http.Request) {
	id, err := presentationID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := h.presentations.Load(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeletePresentationResponse represents the response
type DeletePresentationResponse struct {
	Success bool `json:"success"`
}

// DeletePresentation removes a presentation and its folder references
// DELETE /api/presentations/{id}
func (h *PresentationHandler) DeletePresentation(w http.ResponseWriter, r *http.Request) {
	id, err := presentationID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.editor.DeletePresentation(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeletePresentationResponse{Success: true})
}

// RenderSlide returns a slide materialized as standalone SVG
// GET /api/presentations/{id}/slides/{slideId}/render
func (h *PresentationHandler) RenderSlide(w http.ResponseWriter, r *http.Request) {
	id, err := presentationID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	slideID, err := strconv.ParseInt(mux.Vars(r)["slideId"], 10, 64)
	if err != nil {
		writeBadRequest(w, "invalid slide id")
		return
	}

	p, err := h.presentations.Load(id)
	if err != nil {
		writeError(w, err)
		return
	}
	slide, _ := p.FindSlide(slideID)
	if slide == nil {
		writeError(w, apperrors.NewNotFoundError(fmt.Sprintf("slide %d not found", slideID)))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(h.renderer.Slide(slide)))
}

// ExportPDF downloads the whole deck as a PDF, one page per slide
// GET /api/presentations/{id}/export
func (h *PresentationHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	id, err := presentationID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := h.presentations.Load(id)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := h.renderer.PDF(p)
	if err != nil {
		h.logger.Error("pdf export failed", zap.Int64("presentation", id), zap.Error(err))
		h.notifier.Error("Failed to export presentation")
		writeError(w, apperrors.NewRenderError("failed to export presentation").WithCause(err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", p.Title+".pdf"))
	w.Write(data)
}

// CreateFolderRequest represents a request to create a folder
type CreateFolderRequest struct {
	Name string `json:"name" validate:"required"`
}

// FolderResponse represents a folder mutation response
type FolderResponse struct {
	Success bool `json:"success"`
}

// CreateFolder adds a new empty folder
// POST /api/folders
func (h *PresentationHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req CreateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeBadRequest(w, "name is required")
		return
	}

	if err := h.folders.Create(req.Name); err != nil {
		writeError(w, err)
		return
	}
	h.notifier.Success("Folder created")
	writeJSON(w, http.StatusOK, FolderResponse{Success: true})
}

// DeleteFolder removes a folder, moving members to the default folder
// DELETE /api/folders/{name}
func (h *PresentationHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := h.folders.Delete(name); err != nil {
		writeError(w, err)
		return
	}
	h.notifier.Success("Folder deleted")
	writeJSON(w, http.StatusOK, FolderResponse{Success: true})
}

// MoveToFolderRequest represents a request to move a presentation
type MoveToFolderRequest struct {
	PresentationID int64 `json:"presentationId" validate:"required"`
}

// MoveToFolder places a presentation in a folder, removing it from all
// others first
// POST /api/folders/{name}/presentations
func (h *PresentationHandler) MoveToFolder(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req MoveToFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeBadRequest(w, "presentationId is required")
		return
	}

	if err := h.folders.Move(req.PresentationID, name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FolderResponse{Success: true})
}
