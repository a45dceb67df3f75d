package service

import "errors"

var (
	// Authentication
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	// Game flow
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoTargetWord    = errors.New("no target word issued")
	ErrNoPendingRound  = errors.New("no scored round to play")
	ErrUnavailable     = errors.New("external service unavailable")

	// Preferences
	ErrUnknownSound   = errors.New("unknown sound tag")
	ErrWordExists     = errors.New("word already added")
	ErrWordNotAllowed = errors.New("word not allowed")
	ErrWordNotFound   = errors.New("word not found")
)
