package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the server settings
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string
	MaxUploadBytes int64
	Gemini         GeminiConfig
}

// GeminiConfig configures the verification service backend.
// An empty APIKey runs the server with AI features switched off.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// LoadConfig reads .env if present and then the process environment
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info(".env file not found, using environment variables")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_MB", 10) << 20,
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout: getEnvDuration("GEMINI_TIMEOUT", 30*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n <= 0 {
		logrus.WithField("key", key).Warnf("Invalid value %q, using default %d", raw, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d < 0 {
		logrus.WithField("key", key).Warnf("Invalid duration %q, using default %s", raw, defaultValue)
		return defaultValue
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
