package models

import "time"

// DefaultLives is the number of lives a player starts each group with
const DefaultLives = 5

// User represents a player account together with their game progress
type User struct {
	ID            int64
	Email         string
	PasswordHash  string
	Name          string
	Age           int
	Gender        string
	OAuthProvider string
	OAuthSubject  string
	IsAdmin       bool

	TotalScore       int
	Level            int
	Attempts         int
	Lives            int
	Streak           int
	MaxStreak        int
	LastPracticeDate string // YYYY-MM-DD, empty until the first played round
	SelectedSounds   []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a user with the starting progression values
func NewUser(email, name string) *User {
	return &User{
		Email: email,
		Name:  name,
		Level: 1,
		Lives: DefaultLives,
	}
}

// Session represents an authenticated session
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// PasswordResetToken represents a token for password reset
type PasswordResetToken struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
	Used      bool
}

// IsExpired checks if the reset token has expired
func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
