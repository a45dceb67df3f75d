package repository

import (
	"database/sql"
	"fmt"

	"spello/internal/database"
	"spello/internal/models"
)

// ProfileRepository handles the game-progress side of a user row plus the
// player's preferences and custom practice words
type ProfileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// UpdateProgress writes the progression counters computed by a played round.
// Runs on whatever executor it is given so the game flow can keep the read
// and the write in one transaction
func (r *ProfileRepository) UpdateProgress(q database.DBTX, user *models.User) error {
	query := `
		UPDATE users
		SET total_score = ?, level = ?, attempts = ?, lives = ?,
			streak = ?, max_streak = ?, last_practice_date = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := q.Exec(query,
		user.TotalScore,
		user.Level,
		user.Attempts,
		user.Lives,
		user.Streak,
		user.MaxStreak,
		user.LastPracticeDate,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read progress update result: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateSelectedSounds replaces the player's selected sound tags
func (r *ProfileRepository) UpdateSelectedSounds(userID int64, sounds []string) error {
	query := "UPDATE users SET selected_sounds = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	result, err := r.db.Exec(query, joinSounds(sounds), userID)
	if err != nil {
		return fmt.Errorf("failed to update selected sounds: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read sounds update result: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetCustomWords returns the player's custom practice words in insertion order
func (r *ProfileRepository) GetCustomWords(userID int64) ([]string, error) {
	query := "SELECT word FROM custom_words WHERE user_id = ? ORDER BY id"
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom words: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, fmt.Errorf("failed to scan custom word: %w", err)
		}
		words = append(words, word)
	}
	return words, rows.Err()
}

// HasCustomWord reports whether the player already added this word
func (r *ProfileRepository) HasCustomWord(userID int64, word string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM custom_words WHERE user_id = ? AND word = ?"
	if err := r.db.QueryRow(query, userID, word).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check custom word: %w", err)
	}
	return count > 0, nil
}

// AddCustomWord stores a new custom practice word
func (r *ProfileRepository) AddCustomWord(userID int64, word string) error {
	query := "INSERT INTO custom_words (user_id, word) VALUES (?, ?)"
	if _, err := r.db.Exec(query, userID, word); err != nil {
		return fmt.Errorf("failed to add custom word: %w", err)
	}
	return nil
}

// RemoveCustomWord deletes a custom practice word
func (r *ProfileRepository) RemoveCustomWord(userID int64, word string) error {
	result, err := r.db.Exec("DELETE FROM custom_words WHERE user_id = ? AND word = ?", userID, word)
	if err != nil {
		return fmt.Errorf("failed to remove custom word: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read remove result: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
