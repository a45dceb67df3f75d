package repository

import (
	"database/sql"
	"fmt"

	"spello/internal/database"
	"spello/internal/models"
)

// RoundRepository stores each user's pending round between issuing a target
// word and playing it. One row per user, replaced on every write
type RoundRepository struct {
	db *database.DB
}

// NewRoundRepository creates a new round repository
func NewRoundRepository(db *database.DB) *RoundRepository {
	return &RoundRepository{db: db}
}

// Upsert writes the user's pending round, replacing any previous one
func (r *RoundRepository) Upsert(q database.DBTX, round *models.Round) error {
	query := q.GetDialect().UpsertRoundStateQuery()
	_, err := q.Exec(query,
		round.UserID,
		round.TargetWord,
		round.Transcript,
		round.Accuracy,
		round.Ready,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert round state: %w", err)
	}
	return nil
}

// Get returns the user's pending round, or nil when there is none
func (r *RoundRepository) Get(q database.DBTX, userID int64) (*models.Round, error) {
	query := `
		SELECT user_id, target_word, transcript, accuracy, ready, updated_at
		FROM round_state
		WHERE user_id = ?
	`
	round := &models.Round{}
	err := q.QueryRow(query, userID).Scan(
		&round.UserID,
		&round.TargetWord,
		&round.Transcript,
		&round.Accuracy,
		&round.Ready,
		&round.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get round state: %w", err)
	}
	return round, nil
}

// Clear removes the user's pending round
func (r *RoundRepository) Clear(q database.DBTX, userID int64) error {
	_, err := q.Exec("DELETE FROM round_state WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("failed to clear round state: %w", err)
	}
	return nil
}
