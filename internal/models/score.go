package models

import "time"

// ScoreRecord is the append-only outcome of one played round
type ScoreRecord struct {
	ID          int64
	UserID      int64
	Word        string
	SpokenWord  string
	Accuracy    float64
	Points      int
	Level       int
	PracticedOn string // YYYY-MM-DD
	CreatedAt   time.Time
}

// Round is the per-user pending state between issuing a target word and
// playing the round
type Round struct {
	UserID     int64
	TargetWord string
	Transcript string
	Accuracy   float64
	Ready      bool // speech submitted and scored
	UpdatedAt  time.Time
}

// Playable reports whether the round can be played
func (r *Round) Playable() bool {
	return r.TargetWord != "" && r.Ready
}

// RoundResult reports everything a played round changed
type RoundResult struct {
	Word       string
	Transcript string
	Accuracy   float64
	Points     int
	TotalScore int
	Level      int
	LeveledUp  bool
	Lives      int
	LostLife   bool
	Attempts   int
	Streak     int
	MaxStreak  int
	GroupOver  bool
}
