package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nova-suite/internal/models"
)

func createSession(t *testing.T, serverURL, title string) SessionView {
	t.Helper()
	resp := doJSON(t, http.MethodPost, serverURL+"/api/sessions", CreateSessionRequest{Title: title})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var session SessionView
	decodeBody(t, resp, &session)
	return session
}

func addElement(t *testing.T, serverURL, sessionID, kind string, x, y float64) models.Element {
	t.Helper()
	resp := doJSON(t, http.MethodPost, serverURL+"/api/sessions/"+sessionID+"/elements", AddElementRequest{
		Type: kind, X: x, Y: y,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var element models.Element
	decodeBody(t, resp, &element)
	return element
}

func TestSessionLifecycle(t *testing.T) {
	server := newTestServer(t)

	session := createSession(t, server.URL, "Kickoff")
	assert.Equal(t, "Kickoff", session.Presentation.Title)
	assert.Equal(t, "idle", session.State)
	require.Len(t, session.Presentation.Slides, 1)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/sessions/"+session.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, server.URL+"/api/sessions/"+session.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/api/sessions/"+session.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// The presentation survives the session and can be reopened
	resp = doJSON(t, http.MethodPost, server.URL+"/api/sessions", CreateSessionRequest{
		PresentationID: session.Presentation.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var reopened SessionView
	decodeBody(t, resp, &reopened)
	assert.Equal(t, "Kickoff", reopened.Presentation.Title)
}

func TestCreateSession_RejectsEmptyBody(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/sessions", CreateSessionRequest{})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestElementEndpoints_AddAndStyle(t *testing.T) {
	server := newTestServer(t)
	session := createSession(t, server.URL, "deck")

	element := addElement(t, server.URL, session.ID, "shape", 100, 100)
	assert.Equal(t, models.KindRect, element.Kind)
	assert.Equal(t, 100.0, element.X)

	color := "#ff0000"
	opacity := 40
	resp := doJSON(t, http.MethodPut,
		fmt.Sprintf("%s/api/sessions/%s/elements/%d/style", server.URL, session.ID, element.ID),
		UpdateElementStyleRequest{Color: &color, Opacity: &opacity})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/api/sessions/"+session.ID, nil)
	var view SessionView
	decodeBody(t, resp, &view)
	styled := view.Presentation.Slides[0].Elements[0]
	assert.Equal(t, "#ff0000", styled.Color)
	assert.Equal(t, 40, styled.Opacity)
}

func TestElementEndpoints_UnknownKindRejected(t *testing.T) {
	server := newTestServer(t)
	session := createSession(t, server.URL, "deck")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/sessions/"+session.ID+"/elements", AddElementRequest{
		Type: "hologram",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestDragEndpoints_FullGesture(t *testing.T) {
	server := newTestServer(t)
	session := createSession(t, server.URL, "deck")
	element := addElement(t, server.URL, session.ID, "shape", 100, 100)

	base := server.URL + "/api/sessions/" + session.ID
	resp := doJSON(t, http.MethodPost, base+"/drag/begin", BeginDragRequest{
		ElementID: element.ID, PointerX: 110, PointerY: 110,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, base+"/drag/move", DragRequest{PointerX: 210, PointerY: 160})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var moved models.Element
	decodeBody(t, resp, &moved)
	assert.Equal(t, 200.0, moved.X)
	assert.Equal(t, 150.0, moved.Y)

	resp = doJSON(t, http.MethodPost, base+"/drag/end", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// A second end is a conflict, the gesture already finished
	resp = doJSON(t, http.MethodPost, base+"/drag/end", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestResizeEndpoints_EnforceFloor(t *testing.T) {
	server := newTestServer(t)
	session := createSession(t, server.URL, "deck")
	element := addElement(t, server.URL, session.ID, "shape", 100, 100)

	base := server.URL + "/api/sessions/" + session.ID
	resp := doJSON(t, http.MethodPost, base+"/resize/begin", BeginResizeRequest{
		ElementID: element.ID, Corner: "se",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, base+"/resize/move", ResizeRequest{DX: -500, DY: -500})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var resized models.Element
	decodeBody(t, resp, &resized)
	assert.Equal(t, models.MinElementSize, resized.Width)
	assert.Equal(t, models.MinElementSize, resized.Height)

	resp = doJSON(t, http.MethodPost, base+"/resize/end", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestResizeEndpoints_RejectUnknownCorner(t *testing.T) {
	server := newTestServer(t)
	session := createSession(t, server.URL, "deck")
	element := addElement(t, server.URL, session.ID, "shape", 100, 100)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/sessions/"+session.ID+"/resize/begin",
		map[string]interface{}{"elementId": element.ID, "corner": "center"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestClipboardEndpoints_CopyPasteElement(t *testing.T) {
	server := newTestServer(t)
	session := createSession(t, server.URL, "deck")
	element := addElement(t, server.URL, session.ID, "circle", 100, 100)

	base := server.URL + "/api/sessions/" + session.ID
	resp := doJSON(t, http.MethodPost, base+"/clipboard/copy-element", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, base+"/clipboard/paste", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, base, nil)
	var view SessionView
	decodeBody(t, resp, &view)
	elements := view.Presentation.Slides[0].Elements
	require.Len(t, elements, 2)
	assert.Equal(t, element.X+models.PasteOffset, elements[1].X)
	assert.NotEqual(t, elements[0].ID, elements[1].ID)
}

func TestSlideEndpoints_AddDuplicateDelete(t *testing.T) {
	server := newTestServer(t)
	session := createSession(t, server.URL, "deck")
	base := server.URL + "/api/sessions/" + session.ID

	resp := doJSON(t, http.MethodPost, base+"/slides", AddSlideRequest{Layout: "title"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var added models.Slide
	decodeBody(t, resp, &added)
	assert.Equal(t, models.LayoutTitle, added.Layout)

	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/slides/%d/duplicate", base, added.ID), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var clone models.Slide
	decodeBody(t, resp, &clone)
	assert.NotEqual(t, added.ID, clone.ID)

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/slides/%d", base, clone.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, base, nil)
	var view SessionView
	decodeBody(t, resp, &view)
	assert.Len(t, view.Presentation.Slides, 2)
}

func TestSlideEndpoints_LastSlideDeleteRejected(t *testing.T) {
	server := newTestServer(t)
	session := createSession(t, server.URL, "deck")

	resp := doJSON(t, http.MethodDelete,
		fmt.Sprintf("%s/api/sessions/%s/slides/%d", server.URL, session.ID, session.CurrentSlideID), nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestPresentationModeEndpoints(t *testing.T) {
	server := newTestServer(t)
	session := createSession(t, server.URL, "deck")
	base := server.URL + "/api/sessions/" + session.ID

	resp := doJSON(t, http.MethodPost, base+"/slides", AddSlideRequest{})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, base+"/present", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var player struct {
		SlideIndex int `json:"slideIndex"`
		SlideCount int `json:"slideCount"`
	}
	decodeBody(t, resp, &player)
	assert.Equal(t, 2, player.SlideCount)

	// Editing is frozen while presenting
	resp = doJSON(t, http.MethodPost, base+"/elements", AddElementRequest{Type: "shape"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, base+"/present/key", PlayerKeyRequest{Key: "ArrowLeft"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, base+"/present/key", PlayerKeyRequest{Key: "Escape"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var keyResp PlayerKeyResponse
	decodeBody(t, resp, &keyResp)
	assert.True(t, keyResp.Exited)

	resp = doJSON(t, http.MethodPost, base+"/elements", AddElementRequest{Type: "shape"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func TestGridEndpoint_RejectsNonPositiveSize(t *testing.T) {
	server := newTestServer(t)
	session := createSession(t, server.URL, "deck")

	resp := doJSON(t, http.MethodPut, server.URL+"/api/sessions/"+session.ID+"/grid",
		map[string]interface{}{"enabled": true, "size": 0})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
