package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nova-suite/internal/apperrors"
	"nova-suite/internal/models"
	"nova-suite/internal/storage"
)

// SessionState is the gesture state of an editor session
type SessionState string

const (
	StateIdle     SessionState = "idle"
	StateDragging SessionState = "dragging"
	StateResizing SessionState = "resizing"
)

// ClipboardKind tags what the single clipboard slot holds
type ClipboardKind string

const (
	ClipboardElement ClipboardKind = "element"
	ClipboardSlide   ClipboardKind = "slide"
)

// Clipboard holds at most one copied entry
type Clipboard struct {
	Kind    ClipboardKind
	Element *models.Element
	Slide   *models.Slide
}

// gesture captures the state of an in-flight drag or resize
type gesture struct {
	elementID int64
	corner    models.Corner
	start     models.Geometry
	offsetX   float64
	offsetY   float64
}

// Session is one open editor on a presentation. The in-memory presentation
// here is the single authoritative copy; clients render a disposable
// projection of it.
type Session struct {
	ID                string
	Presentation      *models.Presentation
	CurrentSlideID    int64
	SelectedElementID int64
	ManagerOpen       bool
	Presenting        bool
	Grid              models.Grid
	State             SessionState

	player    *Player
	clipboard *Clipboard
	gesture   *gesture
	autosave  *time.Timer
}

// currentSlide returns the slide the session is editing
func (s *Session) currentSlide() *models.Slide {
	slide, _ := s.Presentation.FindSlide(s.CurrentSlideID)
	if slide == nil && len(s.Presentation.Slides) > 0 {
		slide = s.Presentation.Slides[0]
		s.CurrentSlideID = slide.ID
	}
	return slide
}

// EditorService owns the open editor sessions and mediates every mutation.
// Contract for mutating operations: mutate the in-memory record first, then
// persist the whole presentation. Persistence failures are reported through
// the notifier and do not roll back the in-memory mutation.
type EditorService struct {
	mu            sync.Mutex
	sessions      map[string]*Session
	presentations *storage.PresentationStore
	folders       *storage.FolderStore
	settings      *storage.SettingsStore
	notifier      *Notifier
	hub           *Hub
	logger        *zap.Logger
	autosaveDelay time.Duration
	defaultGrid   float64
}

// NewEditorService creates the editor service
func NewEditorService(
	presentations *storage.PresentationStore,
	folders *storage.FolderStore,
	settings *storage.SettingsStore,
	notifier *Notifier,
	hub *Hub,
	logger *zap.Logger,
	autosaveDelay time.Duration,
	defaultGrid float64,
) *EditorService {
	return &EditorService{
		sessions:      make(map[string]*Session),
		presentations: presentations,
		folders:       folders,
		settings:      settings,
		notifier:      notifier,
		hub:           hub,
		logger:        logger,
		autosaveDelay: autosaveDelay,
		defaultGrid:   defaultGrid,
	}
}

// persist writes the session's presentation. Called with the lock held.
// A failed write is reported but the in-memory state stands.
func (e *EditorService) persist(session *Session) {
	if err := e.presentations.Save(session.Presentation); err != nil {
		e.logger.Error("failed to persist presentation",
			zap.Int64("presentation", session.Presentation.ID), zap.Error(err))
		e.notifier.Error("Failed to save presentation")
	}
}

// scheduleAutosave (re)arms the debounced autosave timer. Called with the
// lock held.
func (e *EditorService) scheduleAutosave(session *Session) {
	if session.autosave != nil {
		session.autosave.Stop()
	}
	id := session.ID
	session.autosave = time.AfterFunc(e.autosaveDelay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		s, ok := e.sessions[id]
		if !ok {
			return
		}
		e.persist(s)
		e.notifier.Info("Presentation autosaved")
	})
}

func (e *EditorService) session(id string) (*Session, error) {
	session, ok := e.sessions[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("session not found: " + id)
	}
	return session, nil
}

// editable returns the session only if it accepts mutations
func (e *EditorService) editable(id string) (*Session, error) {
	session, err := e.session(id)
	if err != nil {
		return nil, err
	}
	if session.Presenting {
		return nil, apperrors.NewValidationError("editing is frozen while presenting")
	}
	return session, nil
}

// CreateSession creates a new presentation and opens a session on it
func (e *EditorService) CreateSession(title string) (*Session, error) {
	if title == "" {
		e.notifier.Error("Presentation title cannot be empty")
		return nil, apperrors.NewValidationError("presentation title cannot be empty")
	}
	if !e.presentations.CanCreateNew() {
		e.notifier.Error("Maximum number of presentations reached")
		return nil, apperrors.NewValidationError("maximum number of presentations reached")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	presentation := models.NewPresentation(title)
	session := e.open(presentation)
	e.persist(session)
	e.notifier.Success("Presentation created")
	return session, nil
}

// OpenSession opens an editor session on a stored presentation
func (e *EditorService) OpenSession(presentationID int64) (*Session, error) {
	presentation, err := e.presentations.Load(presentationID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open(presentation), nil
}

// open registers a session. Called with the lock held.
func (e *EditorService) open(presentation *models.Presentation) *Session {
	session := &Session{
		ID:           uuid.NewString(),
		Presentation: presentation,
		State:        StateIdle,
		Grid:         models.Grid{Enabled: false, Size: e.defaultGrid},
	}
	if len(presentation.Slides) > 0 {
		session.CurrentSlideID = presentation.Slides[0].ID
	}
	e.sessions[session.ID] = session

	if err := e.settings.SetLastOpenedPresentation(presentation.ID); err != nil {
		e.logger.Warn("failed to record last opened presentation", zap.Error(err))
	}
	return session
}

// CloseSession flushes any pending autosave and discards the session
func (e *EditorService) CloseSession(sessionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.session(sessionID)
	if err != nil {
		return err
	}
	if session.autosave != nil {
		session.autosave.Stop()
	}
	e.persist(session)
	delete(e.sessions, sessionID)
	return nil
}

// GetSession returns the live session record
func (e *EditorService) GetSession(sessionID string) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session(sessionID)
}

// snapshot returns a detached copy of the session's serializable state.
// Called with the lock held.
func (s *Session) snapshot() *Session {
	snap := &Session{
		ID:                s.ID,
		Presentation:      s.Presentation.Snapshot(),
		CurrentSlideID:    s.CurrentSlideID,
		SelectedElementID: s.SelectedElementID,
		ManagerOpen:       s.ManagerOpen,
		Presenting:        s.Presenting,
		Grid:              s.Grid,
		State:             s.State,
	}
	return snap
}

// SessionSnapshot returns a deep copy of the session state. The copy shares
// nothing with the live record, so callers may serialize it without holding
// the service lock.
func (e *EditorService) SessionSnapshot(sessionID string) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.session(sessionID)
	if err != nil {
		return nil, err
	}
	return session.snapshot(), nil
}

// SelectSlide makes the given slide current and clears the selection
func (e *EditorService) SelectSlide(sessionID string, slideID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.session(sessionID)
	if err != nil {
		return err
	}
	if slide, _ := session.Presentation.FindSlide(slideID); slide == nil {
		return apperrors.NewNotFoundError(fmt.Sprintf("slide %d not found", slideID))
	}
	session.CurrentSlideID = slideID
	session.SelectedElementID = 0
	return nil
}

// SetManagerOpen toggles the presentation picker modal
func (e *EditorService) SetManagerOpen(sessionID string, open bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.session(sessionID)
	if err != nil {
		return err
	}
	session.ManagerOpen = open
	return nil
}

// SetGrid updates the session's snap-to-grid settings
func (e *EditorService) SetGrid(sessionID string, enabled bool, size float64) error {
	if size <= 0 {
		return apperrors.NewValidationError("grid size must be positive")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.session(sessionID)
	if err != nil {
		return err
	}
	session.Grid = models.Grid{Enabled: enabled, Size: size}
	return nil
}

// SetTitle renames the presentation
func (e *EditorService) SetTitle(sessionID, title string) error {
	if title == "" {
		return apperrors.NewValidationError("presentation title cannot be empty")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.editable(sessionID)
	if err != nil {
		return err
	}
	session.Presentation.Title = title
	e.persist(session)
	return nil
}

// AddElement creates an element on the current slide and selects it
func (e *EditorService) AddElement(sessionID string, kind models.ElementKind, x, y float64) (*models.Element, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.editable(sessionID)
	if err != nil {
		return nil, err
	}
	slide := session.currentSlide()
	if slide == nil {
		return nil, apperrors.NewNotFoundError("no current slide")
	}

	switch kind {
	case models.KindText, models.KindRect, models.KindCircle, models.KindPolygon, models.KindFreeform:
	default:
		return nil, apperrors.NewValidationError("unknown element type: " + string(kind))
	}
	element := models.NewElement(kind, x, y)
	slide.AddElement(element)
	session.SelectedElementID = element.ID
	e.persist(session)
	return element.Clone(), nil
}

// SelectElement makes the element the single selection, replacing any
// previous one
func (e *EditorService) SelectElement(sessionID string, elementID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.session(sessionID)
	if err != nil {
		return err
	}
	slide := session.currentSlide()
	if slide == nil || slide.FindElement(elementID) == nil {
		return apperrors.NewNotFoundError(fmt.Sprintf("element %d not found", elementID))
	}
	session.SelectedElementID = elementID
	return nil
}

// Deselect clears the selection (and with it the properties panel)
func (e *EditorService) Deselect(sessionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.session(sessionID)
	if err != nil {
		return err
	}
	session.SelectedElementID = 0
	return nil
}

// DeleteSelectedElement removes the selected element from the current slide
func (e *EditorService) DeleteSelectedElement(sessionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.editable(sessionID)
	if err != nil {
		return err
	}
	if session.SelectedElementID == 0 {
		return apperrors.NewValidationError("no element selected")
	}
	slide := session.currentSlide()
	if slide == nil || !slide.RemoveElement(session.SelectedElementID) {
		return apperrors.NewNotFoundError("selected element no longer exists")
	}
	session.SelectedElementID = 0
	e.persist(session)
	return nil
}

// UpdateElementStyle applies the non-nil style fields to an element
func (e *EditorService) UpdateElementStyle(sessionID string, elementID int64, color *string, opacity *int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.editable(sessionID)
	if err != nil {
		return err
	}
	element, err := e.findElement(session, elementID)
	if err != nil {
		return err
	}

	if color != nil {
		element.Color = *color
	}
	if opacity != nil {
		if *opacity < 0 || *opacity > 100 {
			return apperrors.NewValidationError("opacity must be between 0 and 100")
		}
		element.Opacity = *opacity
	}
	e.persist(session)
	return nil
}

// UpdateElementZIndex changes an element's stacking order by a single step
func (e *EditorService) UpdateElementZIndex(sessionID string, elementID int64, delta int) error {
	if delta != 1 && delta != -1 {
		return apperrors.NewValidationError("z-index changes by single steps")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.editable(sessionID)
	if err != nil {
		return err
	}
	element, err := e.findElement(session, elementID)
	if err != nil {
		return err
	}
	element.ZIndex += delta
	e.persist(session)
	return nil
}

// UpdateTextContent replaces a text element's markup. Writes are debounced
// through the autosave timer rather than persisted per keystroke.
func (e *EditorService) UpdateTextContent(sessionID string, elementID int64, content string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.editable(sessionID)
	if err != nil {
		return err
	}
	element, err := e.findElement(session, elementID)
	if err != nil {
		return err
	}
	if element.Kind != models.KindText {
		return apperrors.NewValidationError("only text elements have editable content")
	}
	element.Content = content
	e.scheduleAutosave(session)
	return nil
}

func (e *EditorService) findElement(session *Session, elementID int64) (*models.Element, error) {
	slide := session.currentSlide()
	if slide == nil {
		return nil, apperrors.NewNotFoundError("no current slide")
	}
	element := slide.FindElement(elementID)
	if element == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("element %d not found", elementID))
	}
	return element, nil
}

// BeginDrag starts a drag gesture on an element, recording the
// pointer-to-origin offset. The element becomes the selection.
func (e *EditorService) BeginDrag(sessionID string, elementID int64, pointerX, pointerY float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.editable(sessionID)
	if err != nil {
		return err
	}
	if session.State != StateIdle {
		return apperrors.NewConflictError("a gesture is already in progress")
	}
	element, err := e.findElement(session, elementID)
	if err != nil {
		return err
	}

	session.State = StateDragging
	session.SelectedElementID = elementID
	session.gesture = &gesture{
		elementID: elementID,
		start:     element.Geometry(),
		offsetX:   pointerX - element.X,
		offsetY:   pointerY - element.Y,
	}
	return nil
}

// Drag moves the dragged element to follow the pointer. The in-memory record
// is the single source of truth during the gesture; the view is a projection
// of it.
func (e *EditorService) Drag(sessionID string, pointerX, pointerY float64) (*models.Element, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.session(sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != StateDragging || session.gesture == nil {
		return nil, apperrors.NewConflictError("no drag in progress")
	}
	element, err := e.findElement(session, session.gesture.elementID)
	if err != nil {
		return nil, err
	}
	element.MoveTo(pointerX-session.gesture.offsetX, pointerY-session.gesture.offsetY, session.Grid)
	return element.Clone(), nil
}

// EndDrag commits the final geometry and persists
func (e *EditorService) EndDrag(sessionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.session(sessionID)
	if err != nil {
		return err
	}
	if session.State != StateDragging {
		return apperrors.NewConflictError("no drag in progress")
	}
	session.State = StateIdle
	session.gesture = nil
	e.persist(session)
	return nil
}

// BeginResize starts a resize gesture on an element for the given corner
// handle, recording the gesture-start geometry
func (e *EditorService) BeginResize(sessionID string, elementID int64, corner models.Corner) error {
	switch corner {
	case models.CornerNW, models.CornerNE, models.CornerSW, models.CornerSE:
	default:
		return apperrors.NewValidationError("unknown resize handle: " + string(corner))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.editable(sessionID)
	if err != nil {
		return err
	}
	if session.State != StateIdle {
		return apperrors.NewConflictError("a gesture is already in progress")
	}
	element, err := e.findElement(session, elementID)
	if err != nil {
		return err
	}

	session.State = StateResizing
	session.SelectedElementID = elementID
	session.gesture = &gesture{
		elementID: elementID,
		corner:    corner,
		start:     element.Geometry(),
	}
	return nil
}

// Resize recomputes the element geometry from the cumulative pointer
// displacement since the gesture started
func (e *EditorService) Resize(sessionID string, dx, dy float64) (*models.Element, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.session(sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != StateResizing || session.gesture == nil {
		return nil, apperrors.NewConflictError("no resize in progress")
	}
	element, err := e.findElement(session, session.gesture.elementID)
	if err != nil {
		return nil, err
	}
	element.SetGeometry(models.ResizeGeometry(session.gesture.start, session.gesture.corner, dx, dy))
	return element.Clone(), nil
}

// EndResize commits the final geometry and persists
func (e *EditorService) EndResize(sessionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.session(sessionID)
	if err != nil {
		return err
	}
	if session.State != StateResizing {
		return apperrors.NewConflictError("no resize in progress")
	}
	session.State = StateIdle
	session.gesture = nil
	e.persist(session)
	return nil
}

// CopyElement places the selected element in the clipboard, replacing any
// previous entry
func (e *EditorService) CopyElement(sessionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.session(sessionID)
	if err != nil {
		return err
	}
	if session.SelectedElementID == 0 {
		return apperrors.NewValidationError("no element selected")
	}
	element, err := e.findElement(session, session.SelectedElementID)
	if err != nil {
		return err
	}
	session.clipboard = &Clipboard{Kind: ClipboardElement, Element: element.Clone()}
	return nil
}

// CopySlide places the current slide in the clipboard, replacing any
// previous entry
func (e *EditorService) CopySlide(sessionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.session(sessionID)
	if err != nil {
		return err
	}
	slide := session.currentSlide()
	if slide == nil {
		return apperrors.NewNotFoundError("no current slide")
	}
	session.clipboard = &Clipboard{Kind: ClipboardSlide, Slide: slide.Clone()}
	return nil
}

// Paste inserts a deep copy of the clipboard entry. Elements land on the
// current slide offset by (+20,+20) with a fresh id so the copy never
// overlaps its source exactly; slides are appended after the current one.
func (e *EditorService) Paste(sessionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.editable(sessionID)
	if err != nil {
		return err
	}
	if session.clipboard == nil {
		return apperrors.NewValidationError("clipboard is empty")
	}

	switch session.clipboard.Kind {
	case ClipboardElement:
		slide := session.currentSlide()
		if slide == nil {
			return apperrors.NewNotFoundError("no current slide")
		}
		copy := session.clipboard.Element.Clone()
		copy.ID = time.Now().UnixMilli()
		copy.X += models.PasteOffset
		copy.Y += models.PasteOffset
		slide.AddElement(copy)
		session.SelectedElementID = copy.ID
	case ClipboardSlide:
		clone := session.clipboard.Slide.Clone()
		_, idx := session.Presentation.FindSlide(session.CurrentSlideID)
		session.Presentation.Slides = append(session.Presentation.Slides, nil)
		if idx < 0 {
			idx = len(session.Presentation.Slides) - 2
		}
		copy(session.Presentation.Slides[idx+2:], session.Presentation.Slides[idx+1:])
		session.Presentation.Slides[idx+1] = clone
		session.CurrentSlideID = clone.ID
	default:
		return apperrors.NewInternalError("unknown clipboard kind")
	}
	e.persist(session)
	return nil
}

// AddSlide appends a slide with the given layout and makes it current
func (e *EditorService) AddSlide(sessionID string, layout models.SlideLayout) (*models.Slide, error) {
	switch layout {
	case models.LayoutTitle, models.LayoutContent, models.LayoutBlank:
	default:
		return nil, apperrors.NewValidationError("unknown slide layout: " + string(layout))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.editable(sessionID)
	if err != nil {
		return nil, err
	}
	slide := session.Presentation.AddSlide(layout)
	session.CurrentSlideID = slide.ID
	session.SelectedElementID = 0
	e.persist(session)
	return slide.Snapshot(), nil
}

// DuplicateSlide clones a slide in place
func (e *EditorService) DuplicateSlide(sessionID string, slideID int64) (*models.Slide, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.editable(sessionID)
	if err != nil {
		return nil, err
	}
	clone, err := session.Presentation.DuplicateSlide(slideID)
	if err != nil {
		return nil, apperrors.NewNotFoundError(err.Error())
	}
	e.persist(session)
	return clone.Snapshot(), nil
}

// DeleteSlide removes a slide. A presentation always keeps at least one
// slide; deleting the last one is rejected before any mutation.
func (e *EditorService) DeleteSlide(sessionID string, slideID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.editable(sessionID)
	if err != nil {
		return err
	}
	if len(session.Presentation.Slides) <= 1 {
		e.notifier.Error("A presentation must keep at least one slide")
		return apperrors.NewValidationError("cannot delete the only slide")
	}
	if err := session.Presentation.DeleteSlide(slideID); err != nil {
		return apperrors.NewNotFoundError(err.Error())
	}
	if session.CurrentSlideID == slideID {
		session.CurrentSlideID = session.Presentation.Slides[0].ID
		session.SelectedElementID = 0
	}
	e.persist(session)
	return nil
}

// MoveSlide reorders the deck
func (e *EditorService) MoveSlide(sessionID string, from, to int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.editable(sessionID)
	if err != nil {
		return err
	}
	if err := session.Presentation.MoveSlide(from, to); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	e.persist(session)
	return nil
}

// SetSlideBackground changes a slide's background color
func (e *EditorService) SetSlideBackground(sessionID string, slideID int64, color string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.editable(sessionID)
	if err != nil {
		return err
	}
	slide, _ := session.Presentation.FindSlide(slideID)
	if slide == nil {
		return apperrors.NewNotFoundError(fmt.Sprintf("slide %d not found", slideID))
	}
	slide.BackgroundColor = color
	e.persist(session)
	return nil
}

// SetSlideContent updates the template title/body used by the title and
// content layouts
func (e *EditorService) SetSlideContent(sessionID string, slideID int64, title, body string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.editable(sessionID)
	if err != nil {
		return err
	}
	slide, _ := session.Presentation.FindSlide(slideID)
	if slide == nil {
		return apperrors.NewNotFoundError(fmt.Sprintf("slide %d not found", slideID))
	}
	slide.Content = models.SlideContent{Title: title, Body: body}
	e.scheduleAutosave(session)
	return nil
}

// DeletePresentation removes a stored presentation and drops it from every
// folder. The two writes are separate; list paths filter dangling folder
// references.
func (e *EditorService) DeletePresentation(id int64) error {
	if err := e.presentations.Delete(id); err != nil {
		e.notifier.Error("Failed to delete presentation")
		return err
	}
	if err := e.folders.RemoveEverywhere(id); err != nil {
		e.logger.Warn("failed to remove presentation from folders",
			zap.Int64("presentation", id), zap.Error(err))
	}
	e.notifier.Success("Presentation deleted")
	return nil
}
