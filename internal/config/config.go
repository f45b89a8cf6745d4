package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Gemini (fun facts)
	GeminiAPIKey    string
	GeminiAPIURL    string
	GeminiModel     string
	GeminiTransport string

	AITimeout time.Duration

	// Server
	Port        string
	CORSOrigins string

	// Requests per minute per IP; 0 disables the limiter.
	APIRateLimit  int
	AuthRateLimit int

	// Admin (comma-separated emails)
	AdminEmails string
	AdminToken  string
}

func Load() *Config {
	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "trekpoint"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "trekpoint.db"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m")),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h")),

		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiAPIURL:    getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiTransport: getEnv("GEMINI_TRANSPORT", "rest"),

		AITimeout: parseDuration(getEnv("AI_TIMEOUT", "60s")),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		APIRateLimit:  getEnvInt("API_RATE_LIMIT", 60),
		AuthRateLimit: getEnvInt("AUTH_RATE_LIMIT", 10),

		AdminEmails: getEnv("ADMIN_EMAILS", ""),
		AdminToken:  getEnv("ADMIN_TOKEN", ""),
	}
}

// UsesSQLite reports whether the embedded SQLite driver is selected.
func (c *Config) UsesSQLite() bool {
	return c.DBDriver == "sqlite"
}

func (c *Config) DSN() string {
	if c.UsesSQLite() {
		return c.DBPath
	}
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}
