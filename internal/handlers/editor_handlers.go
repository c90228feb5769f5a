package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"nova-suite/internal/apperrors"
	"nova-suite/internal/models"
	"nova-suite/internal/services"
)

// EditorHandler handles HTTP requests for editor sessions: the gesture state
// machine, selection, clipboard, slide and element mutations, and
// presentation mode
type EditorHandler struct {
	editor   *services.EditorService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewEditorHandler creates a new editor handler
func NewEditorHandler(editor *services.EditorService, logger *zap.Logger) *EditorHandler {
	return &EditorHandler{
		editor:   editor,
		validate: validator.New(),
		logger:   logger,
	}
}

// SessionView is the session state exposed to clients
type SessionView struct {
	ID                string               `json:"id"`
	Presentation      *models.Presentation `json:"presentation"`
	CurrentSlideID    int64                `json:"currentSlideId"`
	SelectedElementID int64                `json:"selectedElementId"`
	ManagerOpen       bool                 `json:"managerOpen"`
	Presenting        bool                 `json:"presenting"`
	Grid              models.Grid          `json:"grid"`
	State             string               `json:"state"`
}

func sessionView(s *services.Session) SessionView {
	return SessionView{
		ID:                s.ID,
		Presentation:      s.Presentation,
		CurrentSlideID:    s.CurrentSlideID,
		SelectedElementID: s.SelectedElementID,
		ManagerOpen:       s.ManagerOpen,
		Presenting:        s.Presenting,
		Grid:              s.Grid,
		State:             string(s.State),
	}
}

func sessionID(r *http.Request) string {
	return mux.Vars(r)["id"]
}

func slideIDVar(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["slideId"], 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid slide id")
	}
	return id, nil
}

func elementIDVar(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["elementId"], 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid element id")
	}
	return id, nil
}

// CreateSessionRequest opens an editor session, either on a new presentation
// (title set) or an existing one (presentationId set)
type CreateSessionRequest struct {
	Title          string `json:"title,omitempty"`
	PresentationID int64  `json:"presentationId,omitempty"`
}

// CreateSession opens an editor session
// POST /api/sessions
func (h *EditorHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}

	var session *services.Session
	var err error
	if req.PresentationID != 0 {
		session, err = h.editor.OpenSession(req.PresentationID)
	} else {
		session, err = h.editor.CreateSession(req.Title)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	snap, err := h.editor.SessionSnapshot(session.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionView(snap))
}

// GetSession returns the session state
// GET /api/sessions/{id}
func (h *EditorHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.editor.SessionSnapshot(sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionView(snap))
}

// CloseSession flushes and discards the session
// DELETE /api/sessions/{id}
func (h *EditorHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.CloseSession(sessionID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SetTitleRequest renames the presentation
type SetTitleRequest struct {
	Title string `json:"title" validate:"required"`
}

// SetTitle renames the session's presentation
// PUT /api/sessions/{id}/title
func (h *EditorHandler) SetTitle(w http.ResponseWriter, r *http.Request) {
	var req SetTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeBadRequest(w, "title is required")
		return
	}
	if err := h.editor.SetTitle(sessionID(r), req.Title); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SetGridRequest updates snap-to-grid settings
type SetGridRequest struct {
	Enabled bool    `json:"enabled"`
	Size    float64 `json:"size" validate:"gt=0"`
}

// SetGrid updates the session's snap-to-grid settings
// PUT /api/sessions/{id}/grid
func (h *EditorHandler) SetGrid(w http.ResponseWriter, r *http.Request) {
	var req SetGridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeBadRequest(w, "size must be positive")
		return
	}
	if err := h.editor.SetGrid(sessionID(r), req.Enabled, req.Size); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SetManagerRequest toggles the presentation picker modal
type SetManagerRequest struct {
	Open bool `json:"open"`
}

// SetManager toggles the presentation picker modal
// PUT /api/sessions/{id}/manager
func (h *EditorHandler) SetManager(w http.ResponseWriter, r *http.Request) {
	var req SetManagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.editor.SetManagerOpen(sessionID(r), req.Open); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// AddSlideRequest appends a slide
type AddSlideRequest struct {
	Layout string `json:"layout"`
}

// AddSlide appends a slide and makes it current
// POST /api/sessions/{id}/slides
func (h *EditorHandler) AddSlide(w http.ResponseWriter, r *http.Request) {
	var req AddSlideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if req.Layout == "" {
		req.Layout = string(models.LayoutBlank)
	}

	slide, err := h.editor.AddSlide(sessionID(r), models.SlideLayout(req.Layout))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, slide)
}

// DuplicateSlide clones a slide in place
// POST /api/sessions/{id}/slides/{slideId}/duplicate
func (h *EditorHandler) DuplicateSlide(w http.ResponseWriter, r *http.Request) {
	slideID, err := slideIDVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	clone, err := h.editor.DuplicateSlide(sessionID(r), slideID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, clone)
}

// DeleteSlide removes a slide (the last slide cannot be deleted)
// DELETE /api/sessions/{id}/slides/{slideId}
func (h *EditorHandler) DeleteSlide(w http.ResponseWriter, r *http.Request) {
	slideID, err := slideIDVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.editor.DeleteSlide(sessionID(r), slideID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SelectSlide makes a slide current
// POST /api/sessions/{id}/slides/{slideId}/select
func (h *EditorHandler) SelectSlide(w http.ResponseWriter, r *http.Request) {
	slideID, err := slideIDVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.editor.SelectSlide(sessionID(r), slideID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ReorderSlidesRequest moves a slide between positions
type ReorderSlidesRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// ReorderSlides moves a slide between deck positions
// POST /api/sessions/{id}/slides/reorder
func (h *EditorHandler) ReorderSlides(w http.ResponseWriter, r *http.Request) {
	var req ReorderSlidesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.editor.MoveSlide(sessionID(r), req.From, req.To); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SetSlideBackgroundRequest changes a slide background
type SetSlideBackgroundRequest struct {
	Color string `json:"color" validate:"required"`
}

// SetSlideBackground changes a slide's background color
// PUT /api/sessions/{id}/slides/{slideId}/background
func (h *EditorHandler) SetSlideBackground(w http.ResponseWriter, r *http.Request) {
	slideID, err := slideIDVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req SetSlideBackgroundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeBadRequest(w, "color is required")
		return
	}
	if err := h.editor.SetSlideBackground(sessionID(r), slideID, req.Color); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SetSlideContentRequest updates template title/body text
type SetSlideContentRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// SetSlideContent updates the template text of a title/content layout slide
// PUT /api/sessions/{id}/slides/{slideId}/content
func (h *EditorHandler) SetSlideContent(w http.ResponseWriter, r *http.Request) {
	slideID, err := slideIDVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req SetSlideContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.editor.SetSlideContent(sessionID(r), slideID, req.Title, req.Body); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// AddElementRequest creates an element on the current slide
type AddElementRequest struct {
	Type string  `json:"type" validate:"required"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// AddElement creates an element on the current slide and selects it
// POST /api/sessions/{id}/elements
func (h *EditorHandler) AddElement(w http.ResponseWriter, r *http.Request) {
	var req AddElementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeBadRequest(w, "type is required")
		return
	}

	element, err := h.editor.AddElement(sessionID(r), models.ElementKind(req.Type), req.X, req.Y)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, element)
}

// SelectElement makes an element the single selection
// POST /api/sessions/{id}/elements/{elementId}/select
func (h *EditorHandler) SelectElement(w http.ResponseWriter, r *http.Request) {
	elementID, err := elementIDVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.editor.SelectElement(sessionID(r), elementID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Deselect clears the selection
// DELETE /api/sessions/{id}/selection
func (h *EditorHandler) Deselect(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.Deselect(sessionID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DeleteSelectedElement removes the selected element
// DELETE /api/sessions/{id}/elements/selected
func (h *EditorHandler) DeleteSelectedElement(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.DeleteSelectedElement(sessionID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// UpdateElementStyleRequest applies style fields; nil fields are untouched
type UpdateElementStyleRequest struct {
	Color   *string `json:"color,omitempty"`
	Opacity *int    `json:"opacity,omitempty"`
}

// UpdateElementStyle applies style changes to an element
// PUT /api/sessions/{id}/elements/{elementId}/style
func (h *EditorHandler) UpdateElementStyle(w http.ResponseWriter, r *http.Request) {
	elementID, err := elementIDVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req UpdateElementStyleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.editor.UpdateElementStyle(sessionID(r), elementID, req.Color, req.Opacity); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// UpdateElementZIndexRequest moves an element one stacking step
type UpdateElementZIndexRequest struct {
	Delta int `json:"delta" validate:"oneof=-1 1"`
}

// UpdateElementZIndex changes an element's stacking order by one step
// POST /api/sessions/{id}/elements/{elementId}/zindex
func (h *EditorHandler) UpdateElementZIndex(w http.ResponseWriter, r *http.Request) {
	elementID, err := elementIDVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req UpdateElementZIndexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeBadRequest(w, "delta must be -1 or 1")
		return
	}
	if err := h.editor.UpdateElementZIndex(sessionID(r), elementID, req.Delta); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// UpdateElementContentRequest replaces a text element's markup
type UpdateElementContentRequest struct {
	Content string `json:"content"`
}

// UpdateElementContent replaces a text element's markup (debounced persist)
// PUT /api/sessions/{id}/elements/{elementId}/content
func (h *EditorHandler) UpdateElementContent(w http.ResponseWriter, r *http.Request) {
	elementID, err := elementIDVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req UpdateElementContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.editor.UpdateTextContent(sessionID(r), elementID, req.Content); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// BeginDragRequest starts a drag gesture
type BeginDragRequest struct {
	ElementID int64   `json:"elementId" validate:"required"`
	PointerX  float64 `json:"pointerX"`
	PointerY  float64 `json:"pointerY"`
}

// BeginDrag starts a drag gesture on an element
// POST /api/sessions/{id}/drag/begin
func (h *EditorHandler) BeginDrag(w http.ResponseWriter, r *http.Request) {
	var req BeginDragRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeBadRequest(w, "elementId is required")
		return
	}
	if err := h.editor.BeginDrag(sessionID(r), req.ElementID, req.PointerX, req.PointerY); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DragRequest moves the dragged element to follow the pointer
type DragRequest struct {
	PointerX float64 `json:"pointerX"`
	PointerY float64 `json:"pointerY"`
}

// Drag updates the dragged element's position
// POST /api/sessions/{id}/drag/move
func (h *EditorHandler) Drag(w http.ResponseWriter, r *http.Request) {
	var req DragRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	element, err := h.editor.Drag(sessionID(r), req.PointerX, req.PointerY)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, element)
}

// EndDrag commits the drag gesture
// POST /api/sessions/{id}/drag/end
func (h *EditorHandler) EndDrag(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.EndDrag(sessionID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// BeginResizeRequest starts a resize gesture
type BeginResizeRequest struct {
	ElementID int64  `json:"elementId" validate:"required"`
	Corner    string `json:"corner" validate:"required,oneof=nw ne sw se"`
}

// BeginResize starts a resize gesture on an element corner handle
// POST /api/sessions/{id}/resize/begin
func (h *EditorHandler) BeginResize(w http.ResponseWriter, r *http.Request) {
	var req BeginResizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeBadRequest(w, "elementId and a valid corner are required")
		return
	}
	if err := h.editor.BeginResize(sessionID(r), req.ElementID, models.Corner(req.Corner)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ResizeRequest applies the cumulative pointer displacement
type ResizeRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Resize recomputes geometry from the cumulative displacement
// POST /api/sessions/{id}/resize/move
func (h *EditorHandler) Resize(w http.ResponseWriter, r *http.Request) {
	var req ResizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	element, err := h.editor.Resize(sessionID(r), req.DX, req.DY)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, element)
}

// EndResize commits the resize gesture
// POST /api/sessions/{id}/resize/end
func (h *EditorHandler) EndResize(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.EndResize(sessionID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// CopyElement copies the selected element to the clipboard
// POST /api/sessions/{id}/clipboard/copy-element
func (h *EditorHandler) CopyElement(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.CopyElement(sessionID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// CopySlide copies the current slide to the clipboard
// POST /api/sessions/{id}/clipboard/copy-slide
func (h *EditorHandler) CopySlide(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.CopySlide(sessionID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Paste inserts the clipboard entry
// POST /api/sessions/{id}/clipboard/paste
func (h *EditorHandler) Paste(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.Paste(sessionID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// EnterPresentation switches the session into presentation mode
// POST /api/sessions/{id}/present
func (h *EditorHandler) EnterPresentation(w http.ResponseWriter, r *http.Request) {
	player, err := h.editor.EnterPresentation(sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

// ExitPresentation leaves presentation mode
// DELETE /api/sessions/{id}/present
func (h *EditorHandler) ExitPresentation(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.ExitPresentation(sessionID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// PlayerKeyRequest applies a presentation-mode key press
type PlayerKeyRequest struct {
	Key string `json:"key" validate:"required"`
}

// PlayerKeyResponse carries the player state after the key press; Exited is
// set when the key ended the presentation
type PlayerKeyResponse struct {
	Player *services.Player `json:"player,omitempty"`
	Exited bool             `json:"exited"`
}

// PlayerKey applies a keyboard press in presentation mode
// POST /api/sessions/{id}/present/key
func (h *EditorHandler) PlayerKey(w http.ResponseWriter, r *http.Request) {
	var req PlayerKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeBadRequest(w, "key is required")
		return
	}

	player, err := h.editor.PlayerKey(sessionID(r), req.Key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PlayerKeyResponse{Player: player, Exited: player == nil})
}
