package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ServerConfig holds all server-related settings
type ServerConfig struct {
	Port           int
	Host           string
	MetricsEnabled bool
}

// DatabaseConfig holds database configuration settings
type DatabaseConfig struct {
	URI  string
	Name string
}

// AuthConfig holds token signing settings
type AuthConfig struct {
	JWTSecret string
}

// Config holds the complete application configuration
type Config struct {
	Server         *ServerConfig
	Database       *DatabaseConfig
	Auth           *AuthConfig
	AllowedOrigins []string
	DefaultLocale  string
	UploadDir      string
	Debug          bool
}

// DefaultConfig provides default server settings
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Port:           8080,
		Host:           "0.0.0.0",
		MetricsEnabled: true,
	}
}

// LoadConfig loads configuration from environment variables and applies defaults.
// A .env file is loaded first when present; missing files are fine.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	server := DefaultConfig()
	if portStr := os.Getenv("QALAM_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid QALAM_PORT %q: %w", portStr, err)
		}
		server.Port = port
	}
	if host := os.Getenv("QALAM_HOST"); host != "" {
		server.Host = host
	}

	db := &DatabaseConfig{
		URI:  os.Getenv("MONGODB_URI"),
		Name: "qalam",
	}
	if db.URI == "" {
		db.URI = "mongodb://localhost:27017"
	}
	if name := os.Getenv("QALAM_DB_NAME"); name != "" {
		db.Name = name
	}

	authCfg := &AuthConfig{JWTSecret: os.Getenv("QALAM_JWT_SECRET")}
	if authCfg.JWTSecret == "" {
		return nil, fmt.Errorf("QALAM_JWT_SECRET must be set")
	}

	cfg := &Config{
		Server:        server,
		Database:      db,
		Auth:          authCfg,
		DefaultLocale: "en",
		UploadDir:     "uploads",
		Debug:         os.Getenv("QALAM_DEBUG") == "true",
	}

	if origins := os.Getenv("QALAM_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}
	if locale := os.Getenv("QALAM_DEFAULT_LOCALE"); locale == "en" || locale == "ar" {
		cfg.DefaultLocale = locale
	}
	if dir := os.Getenv("QALAM_UPLOAD_DIR"); dir != "" {
		cfg.UploadDir = dir
	}

	return cfg, nil
}
