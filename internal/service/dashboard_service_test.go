package service

import (
	"errors"
	"testing"
	"time"

	"spello/internal/database"
	"spello/internal/game"
	"spello/internal/models"
	"spello/internal/repository"
)

type dashboardFixture struct {
	svc         *DashboardService
	user        *models.User
	db          *database.DB
	scoreRepo   *repository.ScoreRepository
	profileRepo *repository.ProfileRepository
}

func newTestDashboardService(t *testing.T) *dashboardFixture {
	t.Helper()

	db := openTestDB(t)
	userRepo := repository.NewUserRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	svc := NewDashboardService(userRepo, scoreRepo)

	user, err := userRepo.CreateUser("player@example.com", "hash", "Player", 8, "")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	return &dashboardFixture{svc: svc, user: user, db: db, scoreRepo: scoreRepo, profileRepo: profileRepo}
}

func (f *dashboardFixture) appendRecord(t *testing.T, word string, accuracy float64, points int, practicedOn string) {
	t.Helper()

	err := f.scoreRepo.Append(f.db, &models.ScoreRecord{
		UserID:      f.user.ID,
		Word:        word,
		SpokenWord:  word,
		Accuracy:    accuracy,
		Points:      points,
		Level:       1,
		PracticedOn: practicedOn,
	})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
}

func TestDashboardSummary(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	f := newTestDashboardService(t)

	today := time.Now().Format(game.DateLayout)
	yesterday := time.Now().AddDate(0, 0, -1).Format(game.DateLayout)

	f.appendRecord(t, "Cat", 80, 100, yesterday)
	f.appendRecord(t, "Dog", 60, 40, today)
	f.appendRecord(t, "Cat", 74, 96, today)

	summary, err := f.svc.Summary(f.user.ID)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	if summary.TotalAttempts != 3 {
		t.Errorf("Summary() attempts = %d, want 3", summary.TotalAttempts)
	}
	// (80 + 60 + 74) / 3 = 71.33
	if summary.AverageAccuracy != 71.33 {
		t.Errorf("Summary() average accuracy = %v, want 71.33", summary.AverageAccuracy)
	}
	// Cat peaked at 80, Dog never reached 75
	if summary.WordsMastered != 1 || len(summary.MasteredWords) != 1 || summary.MasteredWords[0] != "Cat" {
		t.Errorf("Summary() mastered = %v, want [Cat]", summary.MasteredWords)
	}
	if len(summary.WeeklyTrend) != 7 {
		t.Fatalf("Summary() trend length = %d, want 7", len(summary.WeeklyTrend))
	}

	last := summary.WeeklyTrend[6]
	if last.Date != today {
		t.Errorf("Summary() trend last date = %s, want %s", last.Date, today)
	}
	if last.Attempts != 2 {
		t.Errorf("Summary() trend today attempts = %d, want 2", last.Attempts)
	}
	// (60 + 74) / 2 = 67
	if last.AverageAccuracy != 67 {
		t.Errorf("Summary() trend today accuracy = %v, want 67", last.AverageAccuracy)
	}

	prev := summary.WeeklyTrend[5]
	if prev.Date != yesterday || prev.Attempts != 1 || prev.AverageAccuracy != 80 {
		t.Errorf("Summary() trend yesterday = %+v, want 1 attempt at 80", prev)
	}
}

func TestDashboardEmptyHistory(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	f := newTestDashboardService(t)

	avg, count, err := f.svc.AverageAccuracy(f.user.ID)
	if err != nil {
		t.Fatalf("AverageAccuracy() error = %v", err)
	}
	if avg != 0 || count != 0 {
		t.Errorf("AverageAccuracy() = %v/%d, want 0/0", avg, count)
	}

	mastered, err := f.svc.WordsMastered(f.user.ID)
	if err != nil {
		t.Fatalf("WordsMastered() error = %v", err)
	}
	if len(mastered) != 0 {
		t.Errorf("WordsMastered() = %v, want empty", mastered)
	}

	trend, err := f.svc.WeeklyTrend(f.user.ID)
	if err != nil {
		t.Fatalf("WeeklyTrend() error = %v", err)
	}
	if len(trend) != 7 {
		t.Fatalf("WeeklyTrend() length = %d, want 7", len(trend))
	}
	for _, entry := range trend {
		if entry.Attempts != 0 || entry.AverageAccuracy != 0 {
			t.Errorf("WeeklyTrend() empty entry = %+v, want zeros", entry)
		}
	}
}

func TestDashboardLevelProgress(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	f := newTestDashboardService(t)

	progress, err := f.svc.LevelProgress(f.user.ID)
	if err != nil {
		t.Fatalf("LevelProgress() error = %v", err)
	}
	if progress.Level != 1 || progress.Percent != 0 {
		t.Errorf("LevelProgress() = %+v, want level 1 at 0%%", progress)
	}

	f.user.TotalScore = 500
	if err := f.profileRepo.UpdateProgress(f.db, f.user); err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}

	progress, err = f.svc.LevelProgress(f.user.ID)
	if err != nil {
		t.Fatalf("LevelProgress() error = %v", err)
	}
	if progress.Percent != 25 {
		t.Errorf("LevelProgress() percent = %v, want 25", progress.Percent)
	}
}

func TestDashboardMissingUser(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	f := newTestDashboardService(t)

	if _, err := f.svc.Summary(9999); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("Summary() missing user error = %v, want ErrProfileNotFound", err)
	}
	if _, _, err := f.svc.Streak(9999); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("Streak() missing user error = %v, want ErrProfileNotFound", err)
	}
}
