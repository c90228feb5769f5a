package services

import (
	"nova-suite/internal/apperrors"
)

// Player is the read-only presentation-mode state for a session
type Player struct {
	SlideIndex int  `json:"slideIndex"`
	SlideCount int  `json:"slideCount"`
	Fullscreen bool `json:"fullscreen"`
}

// PlayerAction is the outcome of a presentation-mode key press
type PlayerAction string

const (
	ActionNone       PlayerAction = "none"
	ActionNext       PlayerAction = "next"
	ActionPrev       PlayerAction = "prev"
	ActionExit       PlayerAction = "exit"
	ActionFullscreen PlayerAction = "fullscreen"
)

// KeyAction maps a keyboard key to its presentation-mode action
func KeyAction(key string) PlayerAction {
	switch key {
	case "ArrowRight", " ", "Space", "PageDown":
		return ActionNext
	case "ArrowLeft", "PageUp":
		return ActionPrev
	case "Escape", "Esc":
		return ActionExit
	case "f", "F":
		return ActionFullscreen
	default:
		return ActionNone
	}
}

// Next advances to the following slide, reporting whether it moved
func (p *Player) Next() bool {
	if p.SlideIndex+1 >= p.SlideCount {
		return false
	}
	p.SlideIndex++
	return true
}

// Prev steps back to the previous slide, reporting whether it moved
func (p *Player) Prev() bool {
	if p.SlideIndex <= 0 {
		return false
	}
	p.SlideIndex--
	return true
}

// EnterPresentation freezes editing and starts playback from the current
// slide. Any selection is cleared; the player renders a read-only projection
// of the deck.
func (e *EditorService) EnterPresentation(sessionID string) (*Player, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.session(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Presenting {
		return nil, apperrors.NewConflictError("already presenting")
	}
	if session.State != StateIdle {
		return nil, apperrors.NewConflictError("a gesture is in progress")
	}

	_, idx := session.Presentation.FindSlide(session.CurrentSlideID)
	if idx < 0 {
		idx = 0
	}
	session.Presenting = true
	session.SelectedElementID = 0
	session.player = &Player{
		SlideIndex: idx,
		SlideCount: len(session.Presentation.Slides),
	}

	e.hub.Broadcast("player.enter", map[string]interface{}{
		"sessionId":  session.ID,
		"slideIndex": idx,
	})
	state := *session.player
	return &state, nil
}

// ExitPresentation tears down presentation mode and returns the session to
// editing on the slide the player stopped at
func (e *EditorService) ExitPresentation(sessionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.session(sessionID)
	if err != nil {
		return err
	}
	if !session.Presenting {
		return apperrors.NewConflictError("not presenting")
	}

	if session.player.SlideIndex < len(session.Presentation.Slides) {
		session.CurrentSlideID = session.Presentation.Slides[session.player.SlideIndex].ID
	}
	session.Presenting = false
	session.player = nil

	e.hub.Broadcast("player.exit", map[string]interface{}{"sessionId": session.ID})
	return nil
}

// PlayerKey applies a presentation-mode key press and returns the resulting
// player state. An Escape exits presentation mode and returns a nil player.
func (e *EditorService) PlayerKey(sessionID, key string) (*Player, error) {
	action := KeyAction(key)
	if action == ActionExit {
		if err := e.ExitPresentation(sessionID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.session(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Presenting {
		return nil, apperrors.NewConflictError("not presenting")
	}

	moved := false
	switch action {
	case ActionNext:
		moved = session.player.Next()
	case ActionPrev:
		moved = session.player.Prev()
	case ActionFullscreen:
		session.player.Fullscreen = !session.player.Fullscreen
	case ActionNone:
	}

	if moved {
		e.hub.Broadcast("player.sync", map[string]interface{}{
			"sessionId":  session.ID,
			"slideIndex": session.player.SlideIndex,
		})
	}
	state := *session.player
	return &state, nil
}

// PlayerState returns the current player, or an error when not presenting
func (e *EditorService) PlayerState(sessionID string) (*Player, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.session(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Presenting {
		return nil, apperrors.NewConflictError("not presenting")
	}
	state := *session.player
	return &state, nil
}
