package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"spello/internal/database"
	"spello/internal/repository"
	"spello/internal/security"
)

func newTestAuthService(t *testing.T) (*AuthService, *database.DB) {
	t.Helper()

	db := openTestDB(t)
	userRepo := repository.NewUserRepository(db)
	tokens := security.NewTokenIssuer("test-secret", time.Hour)
	return NewAuthService(userRepo, tokens, 24*time.Hour), db
}

func TestRegisterAndLogin(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, _ := newTestAuthService(t)

	user, err := svc.Register("kid@example.com", "password123", "Kiddo", 7, "f")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == 0 {
		t.Error("Register() did not assign an ID")
	}
	if user.Level != 1 || user.Lives != 5 {
		t.Errorf("Register() profile = level %d lives %d, want 1/5", user.Level, user.Lives)
	}
	if !user.IsAdmin {
		t.Error("first registered user should be admin")
	}

	// Duplicate email
	if _, err := svc.Register("kid@example.com", "password123", "Other", 9, ""); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Register() duplicate error = %v, want ErrEmailTaken", err)
	}

	session, token, loggedIn, err := svc.Login("kid@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if session.ID == "" || token == "" {
		t.Error("Login() returned empty session or token")
	}
	if loggedIn.ID != user.ID {
		t.Errorf("Login() user ID = %d, want %d", loggedIn.ID, user.ID)
	}

	if _, _, _, err := svc.Login("kid@example.com", "wrongpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() bad password error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, _ := newTestAuthService(t)

	tests := []struct {
		name     string
		email    string
		password string
		userName string
		age      int
	}{
		{name: "bad email", email: "not-an-email", password: "password123", userName: "Kiddo", age: 7},
		{name: "short password", email: "a@example.com", password: "short", userName: "Kiddo", age: 7},
		{name: "short name", email: "a@example.com", password: "password123", userName: "K", age: 7},
		{name: "negative age", email: "a@example.com", password: "password123", userName: "Kiddo", age: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(tt.email, tt.password, tt.userName, tt.age, ""); err == nil {
				t.Error("Register() expected validation error, got nil")
			}
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, _ := newTestAuthService(t)

	user, err := svc.Register("kid@example.com", "password123", "Kiddo", 7, "")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	session, token, _, err := svc.Login("kid@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	validated, err := svc.ValidateSession(session.ID)
	if err != nil {
		t.Fatalf("ValidateSession() error = %v", err)
	}
	if validated.ID != user.ID {
		t.Errorf("ValidateSession() user ID = %d, want %d", validated.ID, user.ID)
	}

	fromToken, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if fromToken.ID != user.ID {
		t.Errorf("ValidateToken() user ID = %d, want %d", fromToken.ID, user.ID)
	}
	if _, err := svc.ValidateToken("garbage"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("ValidateToken() garbage error = %v, want ErrSessionNotFound", err)
	}

	if err := svc.Logout(session.ID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := svc.ValidateSession(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("ValidateSession() after logout error = %v, want ErrSessionNotFound", err)
	}
}

func TestOAuthLogin(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, _ := newTestAuthService(t)

	// First OAuth login creates the account
	session, _, user, err := svc.OAuthLogin("google", "sub-123", "oauth@example.com", "OAuth Kid")
	if err != nil {
		t.Fatalf("OAuthLogin() error = %v", err)
	}
	if session.ID == "" {
		t.Error("OAuthLogin() returned empty session")
	}
	if user.Level != 1 || user.Lives != 5 {
		t.Errorf("OAuthLogin() profile = level %d lives %d, want 1/5", user.Level, user.Lives)
	}

	// Second login finds the same account
	_, _, again, err := svc.OAuthLogin("google", "sub-123", "oauth@example.com", "OAuth Kid")
	if err != nil {
		t.Fatalf("OAuthLogin() second error = %v", err)
	}
	if again.ID != user.ID {
		t.Errorf("OAuthLogin() second user ID = %d, want %d", again.ID, user.ID)
	}
}

func TestPasswordReset(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, db := newTestAuthService(t)

	user, err := svc.Register("kid@example.com", "password123", "Kiddo", 7, "")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Email service nil: token is still created
	if err := svc.RequestPasswordReset(context.Background(), nil, "kid@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset() error = %v", err)
	}

	// Unknown email must not error (no account enumeration)
	if err := svc.RequestPasswordReset(context.Background(), nil, "nobody@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset() unknown email error = %v", err)
	}

	// Fish the token out directly; the service only ever emails it
	var token string
	if err := db.QueryRow("SELECT token FROM password_reset_tokens WHERE user_id = ?", user.ID).Scan(&token); err != nil {
		t.Fatalf("failed to read reset token: %v", err)
	}

	valid, err := svc.ValidatePasswordResetToken(token)
	if err != nil {
		t.Fatalf("ValidatePasswordResetToken() error = %v", err)
	}
	if !valid {
		t.Fatal("ValidatePasswordResetToken() = false for fresh token")
	}

	if err := svc.ResetPassword(token, "newpassword123"); err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}

	// Old password dead, new one works
	if _, _, _, err := svc.Login("kid@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() old password error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, _, err := svc.Login("kid@example.com", "newpassword123"); err != nil {
		t.Errorf("Login() new password error = %v", err)
	}

	// Token is single use
	if err := svc.ResetPassword(token, "anotherpassword"); !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("ResetPassword() reuse error = %v, want ErrInvalidResetToken", err)
	}
}
