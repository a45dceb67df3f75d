package service

import (
	"database/sql"
	"errors"
	"fmt"

	"spello/internal/database"
	"spello/internal/models"
	"spello/internal/repository"
	"spello/internal/speech"
	"spello/internal/validation"
	"spello/internal/words"
)

// ProfileService manages the player's account view, sound preferences, and
// custom practice words
type ProfileService struct {
	db          *database.DB
	userRepo    *repository.UserRepository
	profileRepo *repository.ProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(db *database.DB, userRepo *repository.UserRepository, profileRepo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		db:          db,
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// GetProfile returns the user's account and game progress
func (s *ProfileService) GetProfile(userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrProfileNotFound
	}
	return user, nil
}

// DeleteAccount removes the user and everything keyed to them
func (s *ProfileService) DeleteAccount(userID int64) error {
	err := s.userRepo.DeleteUser(userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProfileNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

// GetSelectedSounds returns the player's practice sound preference
func (s *ProfileService) GetSelectedSounds(userID int64) ([]string, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	return user.SelectedSounds, nil
}

// UpdateSelectedSounds replaces the player's practice sound preference. An
// empty list means practice across all sounds
func (s *ProfileService) UpdateSelectedSounds(userID int64, sounds []string) error {
	for _, sound := range sounds {
		if !words.IsSound(sound) {
			return ErrUnknownSound
		}
	}

	err := s.profileRepo.UpdateSelectedSounds(userID, sounds)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProfileNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update sounds: %w", err)
	}
	return nil
}

// GetCustomWords returns the player's custom practice words
func (s *ProfileService) GetCustomWords(userID int64) ([]string, error) {
	if _, err := s.GetProfile(userID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetCustomWords(userID)
}

// AddCustomWord validates and stores a new custom practice word. Words are
// stored capitalized so they match the built-in lists
func (s *ProfileService) AddCustomWord(userID int64, word string) (string, error) {
	if err := validation.ValidateCustomWord(word); err != nil {
		return "", err
	}
	word = speech.Normalize(word)

	bad, err := s.db.IsBadWord(word)
	if err != nil {
		return "", fmt.Errorf("failed to check word: %w", err)
	}
	if bad {
		return "", ErrWordNotAllowed
	}

	exists, err := s.profileRepo.HasCustomWord(userID, word)
	if err != nil {
		return "", fmt.Errorf("failed to check custom word: %w", err)
	}
	if exists {
		return "", ErrWordExists
	}

	if err := s.profileRepo.AddCustomWord(userID, word); err != nil {
		return "", fmt.Errorf("failed to add custom word: %w", err)
	}
	return word, nil
}

// RemoveCustomWord deletes one of the player's custom practice words
func (s *ProfileService) RemoveCustomWord(userID int64, word string) error {
	word = speech.Normalize(word)

	err := s.profileRepo.RemoveCustomWord(userID, word)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrWordNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to remove custom word: %w", err)
	}
	return nil
}

// ListUsers returns every account, for the admin view
func (s *ProfileService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAllUsers()
}

// DeleteUser removes an account by ID, for the admin view
func (s *ProfileService) DeleteUser(userID int64) error {
	return s.DeleteAccount(userID)
}
