// Package config loads the application configuration from the
// environment and the optional document theme file.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName    string
	AppVersion string

	Addr     string
	LogLevel string

	// Default editor language when the invoice carries none.
	Language string

	// SQLite database file backing the local invoice store.
	DBPath string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	lang := strings.ToLower(strings.TrimSpace(getenv("QIP_LANGUAGE", "en")))

	return Config{
		AppName:    getenv("APP_SERVICE", "quickinvoice"),
		AppVersion: getenv("APP_VERSION", "0.1.0"),
		Addr:       getenv("QIP_ADDR", "127.0.0.1:8787"),
		LogLevel:   getenv("LOG_LEVEL", "info"),
		Language:   lang,
		DBPath:     getenv("QIP_DB_PATH", "quickinvoice.db"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Module wires configuration for the application.
var Module = fx.Module("config",
	fx.Provide(
		Load,
		NewThemeHolder,
	),
)
