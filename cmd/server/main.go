package main

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"nova-suite/internal/auth"
	"nova-suite/internal/config"
	"nova-suite/internal/db"
	"nova-suite/internal/handlers"
	"nova-suite/internal/render"
	"nova-suite/internal/services"
	"nova-suite/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	// Initialize database
	database, err := db.Open(cfg.Storage.DBPath, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	// Initialize stores
	kv := storage.NewKV(database)
	documents := storage.NewDocumentStore(kv, logger)
	presentations := storage.NewPresentationStore(kv, logger)
	folders := storage.NewFolderStore(kv, logger)
	settings := storage.NewSettingsStore(kv, logger)

	// Initialize services
	hub := services.NewHub(logger)
	go hub.Run()
	notifier := services.NewNotifier(hub, logger)
	renderer := render.NewRenderer(logger)
	editor := services.NewEditorService(
		presentations,
		folders,
		settings,
		notifier,
		hub,
		logger,
		time.Duration(cfg.Editor.AutosaveDelayMs)*time.Millisecond,
		cfg.Editor.GridSize,
	)
	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.LoginURL, cfg.Auth.ReturnTo, logger)

	// Initialize handlers and routes
	router := mux.NewRouter()
	handlers.SetupRoutes(router, &handlers.Handlers{
		Documents:     handlers.NewDocumentHandler(documents, notifier, logger),
		Presentations: handlers.NewPresentationHandler(presentations, folders, editor, renderer, notifier, logger),
		Editor:        handlers.NewEditorHandler(editor, logger),
		Notifications: handlers.NewNotificationHandler(notifier, logger),
		Settings:      handlers.NewSettingsHandler(settings, logger),
		Auth:          handlers.NewAuthHandler(verifier, logger),
		Hub:           hub,
	})

	// Configure server
	server := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
		Handler: router,
	}

	// Configure TLS if enabled
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{
			MinVersion: getTLSVersion(cfg.TLS.MinVersion),
		}

		logger.Info("starting HTTPS server",
			zap.String("addr", server.Addr),
			zap.String("cert", cfg.TLS.CertFile),
			zap.String("min_version", cfg.TLS.MinVersion))
		logger.Fatal("server stopped", zap.Error(server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)))
	} else {
		logger.Info("starting HTTP server", zap.String("addr", server.Addr))
		logger.Warn("HTTP mode is not recommended for production")
		logger.Fatal("server stopped", zap.Error(server.ListenAndServe()))
	}
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zcfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

// getTLSVersion converts string version to tls.Version constant
func getTLSVersion(version string) uint16 {
	switch version {
	case "1.0":
		return tls.VersionTLS10
	case "1.1":
		return tls.VersionTLS11
	case "1.2":
		return tls.VersionTLS12
	case "1.3":
		return tls.VersionTLS13
	default:
		return tls.VersionTLS12
	}
}
