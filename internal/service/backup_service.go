package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"spello/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string              `json:"version"`
	ExportedAt   time.Time           `json:"exported_at"`
	DatabaseType string              `json:"database_type"`
	Users        []UserBackup        `json:"users"`
	ScoreRecords []ScoreRecordBackup `json:"score_records"`
	CustomWords  []CustomWordBackup  `json:"custom_words"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"password_hash"`
	Name             string    `json:"name"`
	Age              int       `json:"age"`
	Gender           string    `json:"gender"`
	OAuthProvider    string    `json:"oauth_provider"`
	OAuthSubject     string    `json:"oauth_subject"`
	IsAdmin          bool      `json:"is_admin"`
	TotalScore       int       `json:"total_score"`
	Level            int       `json:"level"`
	Attempts         int       `json:"attempts"`
	Lives            int       `json:"lives"`
	Streak           int       `json:"streak"`
	MaxStreak        int       `json:"max_streak"`
	LastPracticeDate string    `json:"last_practice_date"`
	SelectedSounds   string    `json:"selected_sounds"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ScoreRecordBackup represents one round outcome for backup
type ScoreRecordBackup struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Word        string    `json:"word"`
	SpokenWord  string    `json:"spoken_word"`
	Accuracy    float64   `json:"accuracy"`
	Points      int       `json:"points"`
	Level       int       `json:"level"`
	PracticedOn string    `json:"practiced_on"`
	CreatedAt   time.Time `json:"created_at"`
}

// CustomWordBackup represents a custom practice word for backup
type CustomWordBackup struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Word   string `json:"word"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	backup, err := s.collect()
	if err != nil {
		return err
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Database exported successfully to %s", outputPath)
	log.Printf("Exported: %d users, %d score records, %d custom words",
		len(backup.Users), len(backup.ScoreRecords), len(backup.CustomWords))

	return nil
}

// ExportToWriter exports the database to an io.Writer (useful for HTTP responses)
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup, err := s.collect()
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(backup)
}

func (s *BackupService) collect() (*BackupData, error) {
	backup := &BackupData{
		Version:      "1.0",
		ExportedAt:   time.Now(),
		DatabaseType: "universal",
	}

	if err := s.exportUsers(backup); err != nil {
		return nil, fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportScoreRecords(backup); err != nil {
		return nil, fmt.Errorf("failed to export score records: %w", err)
	}
	if err := s.exportCustomWords(backup); err != nil {
		return nil, fmt.Errorf("failed to export custom words: %w", err)
	}
	return backup, nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup reader (for file uploads)
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Import in order of dependencies
	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importScoreRecords(backup.ScoreRecords); err != nil {
		return fmt.Errorf("failed to import score records: %w", err)
	}
	if err := s.importCustomWords(backup.CustomWords); err != nil {
		return fmt.Errorf("failed to import custom words: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := `
		SELECT id, email, password_hash, name, age, gender,
			oauth_provider, oauth_subject, is_admin,
			total_score, level, attempts, lives, streak, max_streak,
			last_practice_date, selected_sounds, created_at, updated_at
		FROM users ORDER BY id
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Age, &u.Gender,
			&u.OAuthProvider, &u.OAuthSubject, &u.IsAdmin,
			&u.TotalScore, &u.Level, &u.Attempts, &u.Lives, &u.Streak, &u.MaxStreak,
			&u.LastPracticeDate, &u.SelectedSounds, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportScoreRecords(backup *BackupData) error {
	query := "SELECT id, user_id, word, spoken_word, accuracy, points, level, practiced_on, created_at FROM score_records ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r ScoreRecordBackup
		if err := rows.Scan(&r.ID, &r.UserID, &r.Word, &r.SpokenWord, &r.Accuracy, &r.Points, &r.Level, &r.PracticedOn, &r.CreatedAt); err != nil {
			return err
		}
		backup.ScoreRecords = append(backup.ScoreRecords, r)
	}
	return rows.Err()
}

func (s *BackupService) exportCustomWords(backup *BackupData) error {
	query := "SELECT id, user_id, word FROM custom_words ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var w CustomWordBackup
		if err := rows.Scan(&w.ID, &w.UserID, &w.Word); err != nil {
			return err
		}
		backup.CustomWords = append(backup.CustomWords, w)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		query := `
			INSERT INTO users (id, email, password_hash, name, age, gender,
				oauth_provider, oauth_subject, is_admin,
				total_score, level, attempts, lives, streak, max_streak,
				last_practice_date, selected_sounds, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err := s.db.Exec(query,
			u.ID, u.Email, u.PasswordHash, u.Name, u.Age, u.Gender,
			u.OAuthProvider, u.OAuthSubject, u.IsAdmin,
			u.TotalScore, u.Level, u.Attempts, u.Lives, u.Streak, u.MaxStreak,
			u.LastPracticeDate, u.SelectedSounds, u.CreatedAt, u.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importScoreRecords(records []ScoreRecordBackup) error {
	log.Printf("Importing %d score records...", len(records))
	for _, r := range records {
		query := "INSERT INTO score_records (id, user_id, word, spoken_word, accuracy, points, level, practiced_on, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, r.ID, r.UserID, r.Word, r.SpokenWord, r.Accuracy, r.Points, r.Level, r.PracticedOn, r.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import score record %d: %w", r.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importCustomWords(words []CustomWordBackup) error {
	log.Printf("Importing %d custom words...", len(words))
	for _, w := range words {
		query := "INSERT INTO custom_words (id, user_id, word) VALUES (?, ?, ?)"
		_, err := s.db.Exec(query, w.ID, w.UserID, w.Word)
		if err != nil {
			return fmt.Errorf("failed to import custom word %d: %w", w.ID, err)
		}
	}
	return nil
}
