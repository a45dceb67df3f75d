package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	SessionDuration time.Duration
	SessionSecret   string
	TokenDuration   time.Duration
	UploadMaxSize   int64

	// Speech-to-text provider: "vosk" or "elevenlabs"
	STTProvider      string
	VoskURL          string
	ElevenLabsAPIKey string
	ElevenLabsModel  string
	STTTimeout       time.Duration

	// OAuth sign-in
	GoogleClientID       string
	GoogleClientSecret   string
	FacebookClientID     string
	FacebookClientSecret string
	AppleClientID        string
	AppleClientSecret    string
	OAuthRedirectBaseURL string
	FrontendBaseURL      string

	// Password-reset email (Amazon SES)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string
}

// Load reads configuration from the environment (and an optional .env file)
// with sensible defaults
func Load() *Config {
	// A missing .env is fine; deployed environments set variables directly
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./spello.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		SessionDuration: 24 * time.Hour,
		SessionSecret:   getEnv("SESSION_SECRET", "spello-dev-secret"),
		TokenDuration:   24 * time.Hour,
		UploadMaxSize:   5 * 1024 * 1024, // 5MB audio uploads

		STTProvider:      getEnv("STT_PROVIDER", "vosk"),
		VoskURL:          getEnv("VOSK_URL", "http://localhost:2700"),
		ElevenLabsAPIKey: getEnv("ELEVENLABS_API_KEY", ""),
		ElevenLabsModel:  getEnv("ELEVENLABS_MODEL", "scribe_v1"),
		STTTimeout:       30 * time.Second,

		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		FacebookClientID:     getEnv("FACEBOOK_CLIENT_ID", ""),
		FacebookClientSecret: getEnv("FACEBOOK_CLIENT_SECRET", ""),
		AppleClientID:        getEnv("APPLE_CLIENT_ID", ""),
		AppleClientSecret:    getEnv("APPLE_CLIENT_SECRET", ""),
		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080"),
		FrontendBaseURL:      getEnv("FRONTEND_BASE_URL", "http://localhost:3000"),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "Spello"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
