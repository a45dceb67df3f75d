package game

import (
	"errors"

	"spello/internal/models"
)

const (
	// GroupSize is the number of rounds in one group before attempts reset
	GroupSize = 5

	// LevelUpScore is the total score that promotes a level-1 player
	LevelUpScore = 2000

	// AccuracyPassMark is the accuracy below which a round costs a life
	AccuracyPassMark = 50.0
)

// ErrRoundNotReady is returned when a round without a scored transcript is played
var ErrRoundNotReady = errors.New("round has no scored transcript")

// PlayRound applies one completed round to the player's progression state and
// returns what changed. The round must carry a target word and a scored
// transcript. The user is mutated in place; exactly one ScoreRecord is
// produced per call.
//
// Order matters: points are awarded at the level the round was played, the
// level-up check runs after the score lands, and the streak only advances
// when today differs from the stored last practice date. A group ends after
// five attempts or when lives run out, resetting attempts to 0 and lives to
// five; the caller should then issue a fresh target word.
func PlayRound(user *models.User, round *models.Round, today string) (*models.RoundResult, *models.ScoreRecord, error) {
	if !round.Playable() {
		return nil, nil, ErrRoundNotReady
	}

	levelAtPlay := user.Level
	points, err := Points(round.Accuracy, levelAtPlay)
	if err != nil {
		return nil, nil, err
	}

	user.TotalScore += points
	user.Attempts++

	lostLife := round.Accuracy < AccuracyPassMark
	if lostLife {
		user.Lives--
	}

	leveledUp := false
	if user.Level == 1 && user.TotalScore >= LevelUpScore {
		user.Level = 2
		leveledUp = true
	}

	if user.LastPracticeDate != today {
		streak, maxStreak, err := UpdateStreak(user.LastPracticeDate, today, user.Streak, user.MaxStreak)
		if err != nil {
			return nil, nil, err
		}
		if countsAsNewDay(user.LastPracticeDate, today) {
			user.Streak = streak
			user.MaxStreak = maxStreak
			user.LastPracticeDate = today
		}
	}

	record := &models.ScoreRecord{
		UserID:      user.ID,
		Word:        round.TargetWord,
		SpokenWord:  round.Transcript,
		Accuracy:    round.Accuracy,
		Points:      points,
		Level:       levelAtPlay,
		PracticedOn: today,
	}

	groupOver := user.Attempts >= GroupSize || user.Lives <= 0
	if groupOver {
		user.Attempts = 0
		user.Lives = models.DefaultLives
	}

	result := &models.RoundResult{
		Word:       round.TargetWord,
		Transcript: round.Transcript,
		Accuracy:   round.Accuracy,
		Points:     points,
		TotalScore: user.TotalScore,
		Level:      user.Level,
		LeveledUp:  leveledUp,
		Lives:      user.Lives,
		LostLife:   lostLife,
		Attempts:   user.Attempts,
		Streak:     user.Streak,
		MaxStreak:  user.MaxStreak,
		GroupOver:  groupOver,
	}

	return result, record, nil
}

// countsAsNewDay reports whether today advances the practice calendar. A
// stored date in the future (clock skew) does not
func countsAsNewDay(lastPractice, today string) bool {
	if lastPractice == "" {
		return true
	}
	days, err := daysBetween(lastPractice, today)
	if err != nil {
		return false
	}
	return days > 0
}
