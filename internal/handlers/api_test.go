package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"spello/internal/config"
	"spello/internal/database"
	"spello/internal/repository"
	"spello/internal/security"
	"spello/internal/service"
	"spello/internal/speech"
	"spello/internal/words"
)

// fakeProvider returns a canned transcript without calling a real STT backend
type fakeProvider struct {
	text string
}

func (f *fakeProvider) Transcribe(ctx context.Context, audio io.Reader, filename string) (*speech.Result, error) {
	return &speech.Result{Text: f.text}, nil
}

func (f *fakeProvider) Name() string { return "fake" }

type testAPI struct {
	server   *httptest.Server
	provider *fakeProvider
}

// newTestAPI wires the full API against a migrated SQLite database
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})
	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	roundRepo := repository.NewRoundRepository(db)

	provider := &fakeProvider{}
	tokens := security.NewTokenIssuer("test-secret", time.Hour)
	authService := service.NewAuthService(userRepo, tokens, 24*time.Hour)
	gameService := service.NewGameService(db, userRepo, profileRepo, scoreRepo, roundRepo, words.NewSelector(), provider)
	dashboardService := service.NewDashboardService(userRepo, scoreRepo)
	profileService := service.NewProfileService(db, userRepo, profileRepo)
	backupService := service.NewBackupService(db)

	limiter := security.NewRateLimiter(1000, time.Minute)
	csrf := security.NewCSRFGenerator("test-secret")
	middleware := NewMiddleware(authService, limiter, csrf)

	authHandler := NewAuthHandler(authService, nil, csrf, NewOAuthProviders(&config.Config{}), "", "http://localhost:3000")
	gameHandler := NewGameHandler(gameService, 5*1024*1024)
	dashboardHandler := NewDashboardHandler(dashboardService)
	profileHandler := NewProfileHandler(profileService)
	adminHandler := NewAdminHandler(profileService, backupService)
	healthHandler := NewHealthHandler(db)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", healthHandler.Root)
	mux.HandleFunc("GET /healthz", healthHandler.Healthz)
	mux.HandleFunc("POST /api/register", authHandler.Register)
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("POST /api/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/csrf-token", authHandler.CSRFToken)
	mux.HandleFunc("GET /api/target-word", middleware.RequireAuth(gameHandler.TargetWord))
	mux.HandleFunc("POST /api/speech-to-text", middleware.RequireAuth(gameHandler.SpeechToText))
	mux.HandleFunc("POST /api/play", middleware.RequireAuth(gameHandler.Play))
	mux.HandleFunc("GET /api/dashboard", middleware.RequireAuth(dashboardHandler.Summary))
	mux.HandleFunc("GET /api/dashboard/streak", middleware.RequireAuth(dashboardHandler.Streak))
	mux.HandleFunc("GET /api/profile", middleware.RequireAuth(profileHandler.Get))
	mux.HandleFunc("PUT /api/profile/sounds", middleware.RequireAuth(profileHandler.UpdateSounds))
	mux.HandleFunc("POST /api/profile/custom-words", middleware.RequireAuth(profileHandler.AddCustomWord))
	mux.HandleFunc("GET /api/admin/users", middleware.RequireAdmin(adminHandler.ListUsers))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testAPI{server: server, provider: provider}
}

func (a *testAPI) postJSON(t *testing.T, path, token string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func (a *testAPI) get(t *testing.T, path, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, a.server.URL+path, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// registerPlayer registers an account and returns its bearer token
func (a *testAPI) registerPlayer(t *testing.T, email string) string {
	t.Helper()

	resp := a.postJSON(t, "/api/register", "", map[string]interface{}{
		"email":    email,
		"password": "password123",
		"name":     "Player",
		"age":      8,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}

	var payload struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &payload)
	if payload.Token == "" {
		t.Fatal("register returned empty token")
	}
	return payload.Token
}

func TestFullRoundOverHTTP(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	api := newTestAPI(t)
	token := api.registerPlayer(t, "player@example.com")

	// Get a target word
	resp := api.get(t, "/api/target-word?sounds=p", token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("target-word status = %d, want 200", resp.StatusCode)
	}
	var wordPayload struct {
		Word string `json:"word"`
	}
	decodeBody(t, resp, &wordPayload)
	if wordPayload.Word == "" {
		t.Fatal("target-word returned empty word")
	}

	// Upload a recording; the fake provider echoes the target word back
	api.provider.text = wordPayload.Word
	resp = api.uploadAudio(t, token, []byte("not-really-audio"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("speech-to-text status = %d, want 200", resp.StatusCode)
	}
	var roundPayload struct {
		Word     string  `json:"word"`
		Accuracy float64 `json:"accuracy"`
		Ready    bool    `json:"ready"`
	}
	decodeBody(t, resp, &roundPayload)
	if roundPayload.Accuracy != 100 || !roundPayload.Ready {
		t.Fatalf("speech-to-text payload = %+v, want accuracy 100 ready", roundPayload)
	}

	// Play the round
	resp = api.postJSON(t, "/api/play", token, map[string]string{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("play status = %d, want 200", resp.StatusCode)
	}
	var playPayload struct {
		Points     int `json:"points"`
		TotalScore int `json:"total_score"`
		Attempts   int `json:"attempts"`
		Streak     int `json:"streak"`
	}
	decodeBody(t, resp, &playPayload)
	if playPayload.Points != 100 || playPayload.TotalScore != 100 || playPayload.Attempts != 1 {
		t.Errorf("play payload = %+v, want 100 points, 100 total, 1 attempt", playPayload)
	}

	// Dashboard reflects the played round
	resp = api.get(t, "/api/dashboard", token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard status = %d, want 200", resp.StatusCode)
	}
	var dashboard struct {
		TotalAttempts   int     `json:"total_attempts"`
		AverageAccuracy float64 `json:"average_accuracy"`
		Streak          int     `json:"streak"`
	}
	decodeBody(t, resp, &dashboard)
	if dashboard.TotalAttempts != 1 || dashboard.AverageAccuracy != 100 || dashboard.Streak != 1 {
		t.Errorf("dashboard = %+v, want 1 attempt at 100 with streak 1", dashboard)
	}
}

func (a *testAPI) uploadAudio(t *testing.T, token string, audio []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("audio", "clip.wav")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(audio); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	writer.Close()

	req, err := http.NewRequest(http.MethodPost, a.server.URL+"/api/speech-to-text", &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	return resp
}

func TestAuthRequired(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	api := newTestAPI(t)

	paths := []string{"/api/target-word", "/api/dashboard", "/api/profile"}
	for _, path := range paths {
		resp := api.get(t, path, "")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("GET %s without auth status = %d, want 401", path, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestPlayWithoutRoundOverHTTP(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	api := newTestAPI(t)
	token := api.registerPlayer(t, "player@example.com")

	resp := api.postJSON(t, "/api/play", token, map[string]string{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("play without round status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestProfileEndpoints(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	api := newTestAPI(t)
	token := api.registerPlayer(t, "player@example.com")

	// Update sounds
	req, _ := http.NewRequest(http.MethodPut, api.server.URL+"/api/profile/sounds", strings.NewReader(`{"sounds":["p","b"]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("update sounds: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update sounds status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	// Add a custom word
	resp = api.postJSON(t, "/api/profile/custom-words", token, map[string]string{"word": "zebra"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add custom word status = %d, want 201", resp.StatusCode)
	}
	var wordPayload struct {
		Word string `json:"word"`
	}
	decodeBody(t, resp, &wordPayload)
	if wordPayload.Word != "Zebra" {
		t.Errorf("custom word stored = %q, want Zebra", wordPayload.Word)
	}

	// Duplicate conflicts
	resp = api.postJSON(t, "/api/profile/custom-words", token, map[string]string{"word": "Zebra"})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate custom word status = %d, want 409", resp.StatusCode)
	}
	resp.Body.Close()

	// Profile reflects the sounds
	resp = api.get(t, "/api/profile", token)
	var profile struct {
		SelectedSounds []string `json:"selected_sounds"`
		Level          int      `json:"level"`
	}
	decodeBody(t, resp, &profile)
	if len(profile.SelectedSounds) != 2 || profile.Level != 1 {
		t.Errorf("profile = %+v, want 2 sounds at level 1", profile)
	}
}

func TestAdminAccess(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	api := newTestAPI(t)

	// First registered user is admin, second is not
	adminToken := api.registerPlayer(t, "admin@example.com")
	playerToken := api.registerPlayer(t, "player@example.com")

	resp := api.get(t, "/api/admin/users", adminToken)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("admin list users status = %d, want 200", resp.StatusCode)
	}
	var payload struct {
		Users []json.RawMessage `json:"users"`
	}
	decodeBody(t, resp, &payload)
	if len(payload.Users) != 2 {
		t.Errorf("admin list users count = %d, want 2", len(payload.Users))
	}

	resp = api.get(t, "/api/admin/users", playerToken)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("non-admin list users status = %d, want 403", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCSRFRequiredForCookieMutations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	api := newTestAPI(t)
	api.registerPlayer(t, "player@example.com")

	// Log in with a cookie jar, no bearer token
	loginBody := `{"email":"player@example.com","password":"password123"}`
	resp, err := http.Post(api.server.URL+"/api/login", "application/json", strings.NewReader(loginBody))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	var login struct {
		CSRFToken string `json:"csrf_token"`
	}
	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			sessionCookie = c
		}
	}
	decodeBody(t, resp, &login)
	if sessionCookie == nil {
		t.Fatal("login did not set a session cookie")
	}
	if login.CSRFToken == "" {
		t.Fatal("login did not return a csrf token")
	}

	// Mutation with cookie but no CSRF token is rejected
	req, _ := http.NewRequest(http.MethodPost, api.server.URL+"/api/play", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("cookie mutation without csrf status = %d, want 403", resp.StatusCode)
	}
	resp.Body.Close()

	// With the CSRF token the request reaches the handler (and fails on game
	// state instead)
	req, _ = http.NewRequest(http.MethodPost, api.server.URL+"/api/play", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-CSRF-Token", login.CSRFToken)
	req.AddCookie(sessionCookie)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("cookie mutation with csrf status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}
