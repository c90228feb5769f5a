package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nova-suite/internal/auth"
	"nova-suite/internal/db"
	"nova-suite/internal/render"
	"nova-suite/internal/services"
	"nova-suite/internal/storage"
)

// newTestServer wires the full router over a throwaway database
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	logger := zap.NewNop()
	kv := storage.NewKV(database)
	documents := storage.NewDocumentStore(kv, logger)
	presentations := storage.NewPresentationStore(kv, logger)
	folders := storage.NewFolderStore(kv, logger)
	settings := storage.NewSettingsStore(kv, logger)

	hub := services.NewHub(logger)
	go hub.Run()
	notifier := services.NewNotifier(hub, logger)
	renderer := render.NewRenderer(logger)
	editor := services.NewEditorService(presentations, folders, settings, notifier, hub, logger, 10*time.Millisecond, 20)
	verifier := auth.NewVerifier("test-secret", "nova-suite", "https://auth.example/authorize", "http://localhost:8080", logger)

	router := mux.NewRouter()
	SetupRoutes(router, &Handlers{
		Documents:     NewDocumentHandler(documents, notifier, logger),
		Presentations: NewPresentationHandler(presentations, folders, editor, renderer, notifier, logger),
		Editor:        NewEditorHandler(editor, logger),
		Notifications: NewNotificationHandler(notifier, logger),
		Settings:      NewSettingsHandler(settings, logger),
		Auth:          NewAuthHandler(verifier, logger),
		Hub:           hub,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
