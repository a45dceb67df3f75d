package handlers

import (
	"spello/internal/models"
)

// profileView is the JSON shape of a user's account and game progress
type profileView struct {
	ID               int64    `json:"id"`
	Email            string   `json:"email"`
	Name             string   `json:"name"`
	Age              int      `json:"age,omitempty"`
	Gender           string   `json:"gender,omitempty"`
	IsAdmin          bool     `json:"is_admin"`
	TotalScore       int      `json:"total_score"`
	Level            int      `json:"level"`
	Attempts         int      `json:"attempts"`
	Lives            int      `json:"lives"`
	Streak           int      `json:"streak"`
	MaxStreak        int      `json:"max_streak"`
	LastPracticeDate string   `json:"last_practice_date,omitempty"`
	SelectedSounds   []string `json:"selected_sounds"`
}

func newProfileView(user *models.User) profileView {
	sounds := user.SelectedSounds
	if sounds == nil {
		sounds = []string{}
	}
	return profileView{
		ID:               user.ID,
		Email:            user.Email,
		Name:             user.Name,
		Age:              user.Age,
		Gender:           user.Gender,
		IsAdmin:          user.IsAdmin,
		TotalScore:       user.TotalScore,
		Level:            user.Level,
		Attempts:         user.Attempts,
		Lives:            user.Lives,
		Streak:           user.Streak,
		MaxStreak:        user.MaxStreak,
		LastPracticeDate: user.LastPracticeDate,
		SelectedSounds:   sounds,
	}
}

// roundView is the JSON shape of a scored but unplayed round
type roundView struct {
	Word       string  `json:"word"`
	Transcript string  `json:"transcript"`
	Accuracy   float64 `json:"accuracy"`
	Ready      bool    `json:"ready"`
}

func newRoundView(round *models.Round) roundView {
	return roundView{
		Word:       round.TargetWord,
		Transcript: round.Transcript,
		Accuracy:   round.Accuracy,
		Ready:      round.Ready,
	}
}

// playResultView is the JSON shape of a played round's outcome
type playResultView struct {
	Word       string  `json:"word"`
	Transcript string  `json:"transcript"`
	Accuracy   float64 `json:"accuracy"`
	Points     int     `json:"points"`
	TotalScore int     `json:"total_score"`
	Level      int     `json:"level"`
	LeveledUp  bool    `json:"leveled_up"`
	Lives      int     `json:"lives"`
	LostLife   bool    `json:"lost_life"`
	Attempts   int     `json:"attempts"`
	Streak     int     `json:"streak"`
	MaxStreak  int     `json:"max_streak"`
	GroupOver  bool    `json:"group_over"`
}

func newPlayResultView(result *models.RoundResult) playResultView {
	return playResultView{
		Word:       result.Word,
		Transcript: result.Transcript,
		Accuracy:   result.Accuracy,
		Points:     result.Points,
		TotalScore: result.TotalScore,
		Level:      result.Level,
		LeveledUp:  result.LeveledUp,
		Lives:      result.Lives,
		LostLife:   result.LostLife,
		Attempts:   result.Attempts,
		Streak:     result.Streak,
		MaxStreak:  result.MaxStreak,
		GroupOver:  result.GroupOver,
	}
}

// dashboardView is the JSON shape of the full dashboard
type dashboardView struct {
	Streak          int                    `json:"streak"`
	MaxStreak       int                    `json:"max_streak"`
	AverageAccuracy float64                `json:"average_accuracy"`
	TotalAttempts   int                    `json:"total_attempts"`
	WordsMastered   int                    `json:"words_mastered"`
	MasteredWords   []string               `json:"mastered_words"`
	Level           int                    `json:"level"`
	Lives           int                    `json:"lives"`
	Attempts        int                    `json:"attempts"`
	WeeklyTrend     []weeklyTrendEntryView `json:"weekly_trend"`
}

type weeklyTrendEntryView struct {
	Date            string  `json:"date"`
	AverageAccuracy float64 `json:"average_accuracy"`
	Attempts        int     `json:"attempts"`
}

func newDashboardView(summary *models.DashboardSummary) dashboardView {
	mastered := summary.MasteredWords
	if mastered == nil {
		mastered = []string{}
	}
	return dashboardView{
		Streak:          summary.Streak,
		MaxStreak:       summary.MaxStreak,
		AverageAccuracy: summary.AverageAccuracy,
		TotalAttempts:   summary.TotalAttempts,
		WordsMastered:   summary.WordsMastered,
		MasteredWords:   mastered,
		Level:           summary.Level.Level,
		Lives:           summary.Lives,
		Attempts:        summary.Attempts,
		WeeklyTrend:     newWeeklyTrendViews(summary.WeeklyTrend),
	}
}

func newWeeklyTrendViews(entries []models.WeeklyTrendEntry) []weeklyTrendEntryView {
	views := make([]weeklyTrendEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, weeklyTrendEntryView{
			Date:            entry.Date,
			AverageAccuracy: entry.AverageAccuracy,
			Attempts:        entry.Attempts,
		})
	}
	return views
}
