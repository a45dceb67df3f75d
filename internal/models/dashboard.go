package models

// WeeklyTrendEntry is one day bucket in the seven-day practice trend
type WeeklyTrendEntry struct {
	Date            string // YYYY-MM-DD
	AverageAccuracy float64
	Attempts        int
}

// LevelProgress reports progress toward the next level. Only level 1 has a
// defined threshold; higher levels report 0
type LevelProgress struct {
	Level      int
	TotalScore int
	Percent    float64
}

// DashboardSummary aggregates all dashboard widgets in one payload
type DashboardSummary struct {
	Streak          int
	MaxStreak       int
	AverageAccuracy float64
	TotalAttempts   int
	WordsMastered   int
	MasteredWords   []string
	Level           LevelProgress
	Lives           int
	Attempts        int
	WeeklyTrend     []WeeklyTrendEntry
}
