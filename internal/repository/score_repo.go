package repository

import (
	"fmt"

	"spello/internal/database"
	"spello/internal/models"
)

const scoreColumns = "id, user_id, word, spoken_word, accuracy, points, level, practiced_on, created_at"

// ScoreRepository handles the append-only score record history
type ScoreRepository struct {
	db *database.DB
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(db *database.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Append stores one round outcome. Records are never updated or deleted
// except when the owning user is removed
func (r *ScoreRepository) Append(q database.DBTX, record *models.ScoreRecord) error {
	query := `
		INSERT INTO score_records (user_id, word, spoken_word, accuracy, points, level, practiced_on)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := q.ExecReturningID(query,
		record.UserID,
		record.Word,
		record.SpokenWord,
		record.Accuracy,
		record.Points,
		record.Level,
		record.PracticedOn,
	)
	if err != nil {
		return fmt.Errorf("failed to append score record: %w", err)
	}
	record.ID = id
	return nil
}

// GetByUser returns a player's full history in chronological order
func (r *ScoreRepository) GetByUser(userID int64) ([]models.ScoreRecord, error) {
	query := "SELECT " + scoreColumns + " FROM score_records WHERE user_id = ? ORDER BY id"
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query score records: %w", err)
	}
	defer rows.Close()

	var records []models.ScoreRecord
	for rows.Next() {
		var rec models.ScoreRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.Word,
			&rec.SpokenWord,
			&rec.Accuracy,
			&rec.Points,
			&rec.Level,
			&rec.PracticedOn,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan score record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
