package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nova-suite/internal/apperrors"
	"nova-suite/internal/models"
)

func TestKeyAction(t *testing.T) {
	tests := []struct {
		key  string
		want PlayerAction
	}{
		{"ArrowRight", ActionNext},
		{" ", ActionNext},
		{"Space", ActionNext},
		{"PageDown", ActionNext},
		{"ArrowLeft", ActionPrev},
		{"PageUp", ActionPrev},
		{"Escape", ActionExit},
		{"Esc", ActionExit},
		{"f", ActionFullscreen},
		{"F", ActionFullscreen},
		{"x", ActionNone},
		{"Enter", ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyAction(tt.key))
		})
	}
}

func TestPlayer_NextPrev_BoundsChecked(t *testing.T) {
	p := &Player{SlideIndex: 0, SlideCount: 2}

	assert.False(t, p.Prev())
	assert.True(t, p.Next())
	assert.Equal(t, 1, p.SlideIndex)
	assert.False(t, p.Next())
	assert.Equal(t, 1, p.SlideIndex)
	assert.True(t, p.Prev())
	assert.Equal(t, 0, p.SlideIndex)
}

func TestEnterPresentation_StartsAtCurrentSlide(t *testing.T) {
	f := newEditorFixture(t)
	session, err := f.editor.CreateSession("deck")
	require.NoError(t, err)
	second, err := f.editor.AddSlide(session.ID, models.LayoutBlank)
	require.NoError(t, err)
	require.NoError(t, f.editor.SelectSlide(session.ID, second.ID))

	player, err := f.editor.EnterPresentation(session.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, player.SlideIndex)
	assert.Equal(t, 2, player.SlideCount)
	assert.True(t, session.Presenting)
	assert.Zero(t, session.SelectedElementID)
}

func TestEnterPresentation_RejectsDoubleEntry(t *testing.T) {
	f := newEditorFixture(t)
	session, err := f.editor.CreateSession("deck")
	require.NoError(t, err)
	_, err = f.editor.EnterPresentation(session.ID)
	require.NoError(t, err)

	_, err = f.editor.EnterPresentation(session.ID)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
}

func TestEnterPresentation_RejectsDuringGesture(t *testing.T) {
	f := newEditorFixture(t)
	session, err := f.editor.CreateSession("deck")
	require.NoError(t, err)
	element, err := f.editor.AddElement(session.ID, models.KindRect, 0, 0)
	require.NoError(t, err)
	require.NoError(t, f.editor.BeginDrag(session.ID, element.ID, 0, 0))

	_, err = f.editor.EnterPresentation(session.ID)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
}

func TestExitPresentation_ReturnsToPlayerSlide(t *testing.T) {
	f := newEditorFixture(t)
	session, err := f.editor.CreateSession("deck")
	require.NoError(t, err)
	second, err := f.editor.AddSlide(session.ID, models.LayoutBlank)
	require.NoError(t, err)
	require.NoError(t, f.editor.SelectSlide(session.ID, session.Presentation.Slides[0].ID))

	_, err = f.editor.EnterPresentation(session.ID)
	require.NoError(t, err)
	_, err = f.editor.PlayerKey(session.ID, "ArrowRight")
	require.NoError(t, err)

	require.NoError(t, f.editor.ExitPresentation(session.ID))

	assert.False(t, session.Presenting)
	assert.Equal(t, second.ID, session.CurrentSlideID)
}

func TestPlayerKey_EscapeExits(t *testing.T) {
	f := newEditorFixture(t)
	session, err := f.editor.CreateSession("deck")
	require.NoError(t, err)
	_, err = f.editor.EnterPresentation(session.ID)
	require.NoError(t, err)

	player, err := f.editor.PlayerKey(session.ID, "Escape")

	require.NoError(t, err)
	assert.Nil(t, player)
	assert.False(t, session.Presenting)
}

func TestPlayerKey_FullscreenToggles(t *testing.T) {
	f := newEditorFixture(t)
	session, err := f.editor.CreateSession("deck")
	require.NoError(t, err)
	_, err = f.editor.EnterPresentation(session.ID)
	require.NoError(t, err)

	player, err := f.editor.PlayerKey(session.ID, "f")
	require.NoError(t, err)
	assert.True(t, player.Fullscreen)

	player, err = f.editor.PlayerKey(session.ID, "f")
	require.NoError(t, err)
	assert.False(t, player.Fullscreen)
}

func TestPlayerKey_RequiresPresenting(t *testing.T) {
	f := newEditorFixture(t)
	session, err := f.editor.CreateSession("deck")
	require.NoError(t, err)

	_, err = f.editor.PlayerKey(session.ID, "ArrowRight")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
}

func TestPlayerKey_NextStopsAtLastSlide(t *testing.T) {
	f := newEditorFixture(t)
	session, err := f.editor.CreateSession("deck")
	require.NoError(t, err)
	_, err = f.editor.AddSlide(session.ID, models.LayoutBlank)
	require.NoError(t, err)
	require.NoError(t, f.editor.SelectSlide(session.ID, session.Presentation.Slides[0].ID))
	_, err = f.editor.EnterPresentation(session.ID)
	require.NoError(t, err)

	player, err := f.editor.PlayerKey(session.ID, " ")
	require.NoError(t, err)
	assert.Equal(t, 1, player.SlideIndex)

	player, err = f.editor.PlayerKey(session.ID, " ")
	require.NoError(t, err)
	assert.Equal(t, 1, player.SlideIndex)
}
