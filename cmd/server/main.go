package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spello/internal/config"
	"spello/internal/database"
	"spello/internal/handlers"
	"spello/internal/repository"
	"spello/internal/security"
	"spello/internal/service"
	"spello/internal/speech"
	"spello/internal/words"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Seed bad words filter for custom-word screening
	if err := db.SeedBadWords(); err != nil {
		log.Printf("Warning: Failed to seed bad words filter: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	roundRepo := repository.NewRoundRepository(db)

	// Speech-to-text backend
	provider := newSpeechProvider(cfg)
	log.Printf("Speech-to-text provider: %s", provider.Name())

	// Initialize services
	tokens := security.NewTokenIssuer(cfg.SessionSecret, cfg.TokenDuration)
	authService := service.NewAuthService(userRepo, tokens, cfg.SessionDuration)
	gameService := service.NewGameService(db, userRepo, profileRepo, scoreRepo, roundRepo, words.NewSelector(), provider)
	dashboardService := service.NewDashboardService(userRepo, scoreRepo)
	profileService := service.NewProfileService(db, userRepo, profileRepo)
	backupService := service.NewBackupService(db)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Initialize handlers
	limiter := security.NewRateLimiter(60, time.Minute)
	csrf := security.NewCSRFGenerator(cfg.SessionSecret)
	middleware := handlers.NewMiddleware(authService, limiter, csrf)

	oauthProviders := handlers.NewOAuthProviders(cfg)
	authHandler := handlers.NewAuthHandler(authService, emailService, csrf, oauthProviders, cfg.OAuthRedirectBaseURL, cfg.FrontendBaseURL)
	gameHandler := handlers.NewGameHandler(gameService, cfg.UploadMaxSize)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	profileHandler := handlers.NewProfileHandler(profileService)
	adminHandler := handlers.NewAdminHandler(profileService, backupService)
	healthHandler := handlers.NewHealthHandler(db)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /{$}", healthHandler.Root)
	mux.HandleFunc("GET /healthz", healthHandler.Healthz)
	mux.HandleFunc("POST /api/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/csrf-token", authHandler.CSRFToken)
	mux.HandleFunc("POST /api/password-reset/request", middleware.RateLimit(authHandler.RequestPasswordReset))
	mux.HandleFunc("POST /api/password-reset/confirm", middleware.RateLimit(authHandler.ConfirmPasswordReset))
	mux.HandleFunc("GET /auth/{provider}/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /auth/{provider}/callback", authHandler.OAuthCallback)

	// Game routes
	mux.HandleFunc("GET /api/target-word", middleware.RequireAuth(gameHandler.TargetWord))
	mux.HandleFunc("POST /api/speech-to-text", middleware.RequireAuth(gameHandler.SpeechToText))
	mux.HandleFunc("POST /api/play", middleware.RequireAuth(gameHandler.Play))

	// Dashboard routes
	mux.HandleFunc("GET /api/dashboard", middleware.RequireAuth(dashboardHandler.Summary))
	mux.HandleFunc("GET /api/dashboard/streak", middleware.RequireAuth(dashboardHandler.Streak))
	mux.HandleFunc("GET /api/dashboard/average-accuracy", middleware.RequireAuth(dashboardHandler.AverageAccuracy))
	mux.HandleFunc("GET /api/dashboard/words-mastered", middleware.RequireAuth(dashboardHandler.WordsMastered))
	mux.HandleFunc("GET /api/dashboard/level", middleware.RequireAuth(dashboardHandler.Level))
	mux.HandleFunc("GET /api/dashboard/weekly-trend", middleware.RequireAuth(dashboardHandler.WeeklyTrend))

	// Profile routes
	mux.HandleFunc("GET /api/profile", middleware.RequireAuth(profileHandler.Get))
	mux.HandleFunc("DELETE /api/profile", middleware.RequireAuth(profileHandler.Delete))
	mux.HandleFunc("GET /api/profile/sounds", middleware.RequireAuth(profileHandler.GetSounds))
	mux.HandleFunc("PUT /api/profile/sounds", middleware.RequireAuth(profileHandler.UpdateSounds))
	mux.HandleFunc("GET /api/profile/custom-words", middleware.RequireAuth(profileHandler.GetCustomWords))
	mux.HandleFunc("POST /api/profile/custom-words", middleware.RequireAuth(profileHandler.AddCustomWord))
	mux.HandleFunc("DELETE /api/profile/custom-words/{word}", middleware.RequireAuth(profileHandler.RemoveCustomWord))

	// Admin routes
	mux.HandleFunc("GET /api/admin/users", middleware.RequireAdmin(adminHandler.ListUsers))
	mux.HandleFunc("DELETE /api/admin/users/{id}", middleware.RequireAdmin(adminHandler.DeleteUser))
	mux.HandleFunc("GET /api/admin/backup", middleware.RequireAdmin(adminHandler.ExportBackup))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpired(authService)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// newSpeechProvider picks the configured speech-to-text backend
func newSpeechProvider(cfg *config.Config) speech.Provider {
	switch cfg.STTProvider {
	case "elevenlabs":
		return speech.NewElevenLabsClient(cfg.ElevenLabsAPIKey, cfg.ElevenLabsModel, cfg.STTTimeout)
	default:
		return speech.NewVoskClient(cfg.VoskURL, cfg.STTTimeout)
	}
}

// cleanupExpired periodically removes expired sessions and reset tokens
func cleanupExpired(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		}
		if err := authService.CleanupExpiredPasswordResetTokens(); err != nil {
			log.Printf("Error cleaning up expired reset tokens: %v", err)
		}
	}
}
