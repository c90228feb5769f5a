package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string
	Port string
}

// TLSConfig holds TLS settings
type TLSConfig struct {
	Enabled    bool
	CertFile   string
	KeyFile    string
	MinVersion string
}

// StorageConfig holds persistence settings
type StorageConfig struct {
	DBPath string
}

// AuthConfig holds identity provider settings
type AuthConfig struct {
	Enabled   bool
	JWTSecret string
	Issuer    string
	LoginURL  string
	ReturnTo  string
}

// EditorConfig holds editor behavior settings
type EditorConfig struct {
	GridSize        float64
	AutosaveDelayMs int
}

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	TLS      TLSConfig
	Storage  StorageConfig
	Auth     AuthConfig
	Editor   EditorConfig
	LogLevel string
}

// LoadConfig loads configuration from environment variables,
// reading a .env file first if one is present
func LoadConfig() *Config {
	// Missing .env is fine, environment variables still apply
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", ""),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		TLS: TLSConfig{
			Enabled:    getEnvBool("TLS_ENABLED", false),
			CertFile:   getEnv("TLS_CERT_FILE", ""),
			KeyFile:    getEnv("TLS_KEY_FILE", ""),
			MinVersion: getEnv("TLS_MIN_VERSION", "1.2"),
		},
		Storage: StorageConfig{
			DBPath: getEnv("DB_PATH", "./data/nova.db"),
		},
		Auth: AuthConfig{
			Enabled:   getEnvBool("AUTH_ENABLED", false),
			JWTSecret: getEnv("JWT_SECRET", "development-secret-change-in-production"),
			Issuer:    getEnv("JWT_ISSUER", "nova-suite"),
			LoginURL:  getEnv("AUTH_LOGIN_URL", "https://auth.novawerks.example/authorize"),
			ReturnTo:  getEnv("AUTH_RETURN_TO", "http://localhost:8080"),
		},
		Editor: EditorConfig{
			GridSize:        getEnvFloat("EDITOR_GRID_SIZE", 20),
			AutosaveDelayMs: getEnvInt("EDITOR_AUTOSAVE_DELAY_MS", 1000),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
