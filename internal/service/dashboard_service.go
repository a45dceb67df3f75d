package service

import (
	"fmt"
	"time"

	"spello/internal/game"
	"spello/internal/models"
	"spello/internal/repository"
)

// DashboardService aggregates a player's history into the dashboard views
type DashboardService struct {
	userRepo  *repository.UserRepository
	scoreRepo *repository.ScoreRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(userRepo *repository.UserRepository, scoreRepo *repository.ScoreRepository) *DashboardService {
	return &DashboardService{
		userRepo:  userRepo,
		scoreRepo: scoreRepo,
	}
}

func (s *DashboardService) getUser(userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrProfileNotFound
	}
	return user, nil
}

// Streak returns the player's current and best daily streaks
func (s *DashboardService) Streak(userID int64) (current, max int, err error) {
	user, err := s.getUser(userID)
	if err != nil {
		return 0, 0, err
	}
	return user.Streak, user.MaxStreak, nil
}

// AverageAccuracy returns the mean accuracy over the player's whole history
// along with the number of rounds it covers
func (s *DashboardService) AverageAccuracy(userID int64) (float64, int, error) {
	if _, err := s.getUser(userID); err != nil {
		return 0, 0, err
	}

	records, err := s.scoreRepo.GetByUser(userID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get score records: %w", err)
	}

	avg, count := game.AverageAccuracy(records)
	return avg, count, nil
}

// WordsMastered returns the words whose best-ever accuracy reached mastery
func (s *DashboardService) WordsMastered(userID int64) ([]string, error) {
	if _, err := s.getUser(userID); err != nil {
		return nil, err
	}

	records, err := s.scoreRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get score records: %w", err)
	}

	return game.MasteredWords(records), nil
}

// LevelProgress returns the player's level and progress toward the next one
func (s *DashboardService) LevelProgress(userID int64) (models.LevelProgress, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return models.LevelProgress{}, err
	}
	return game.Progress(user.Level, user.TotalScore), nil
}

// WeeklyTrend returns the last seven days of practice, oldest first
func (s *DashboardService) WeeklyTrend(userID int64) ([]models.WeeklyTrendEntry, error) {
	if _, err := s.getUser(userID); err != nil {
		return nil, err
	}

	records, err := s.scoreRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get score records: %w", err)
	}

	today := time.Now().Format(game.DateLayout)
	trend, err := game.WeeklyTrend(records, today)
	if err != nil {
		return nil, fmt.Errorf("failed to build weekly trend: %w", err)
	}
	return trend, nil
}

// Summary returns the full dashboard in one call
func (s *DashboardService) Summary(userID int64) (*models.DashboardSummary, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	records, err := s.scoreRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get score records: %w", err)
	}

	avg, count := game.AverageAccuracy(records)
	mastered := game.MasteredWords(records)

	today := time.Now().Format(game.DateLayout)
	trend, err := game.WeeklyTrend(records, today)
	if err != nil {
		return nil, fmt.Errorf("failed to build weekly trend: %w", err)
	}

	return &models.DashboardSummary{
		Streak:          user.Streak,
		MaxStreak:       user.MaxStreak,
		AverageAccuracy: avg,
		TotalAttempts:   count,
		WordsMastered:   len(mastered),
		MasteredWords:   mastered,
		Level:           game.Progress(user.Level, user.TotalScore),
		Lives:           user.Lives,
		Attempts:        user.Attempts,
		WeeklyTrend:     trend,
	}, nil
}
