package game

import (
	"errors"
	"time"
)

// DateLayout is the calendar-day format used across profiles and records
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when a practice date fails to parse
var ErrInvalidDate = errors.New("invalid practice date")

// UpdateStreak computes the new current/max streak for a practice happening
// today, given the stored last practice date:
//
//	same day          -> unchanged
//	first practice    -> current 1, max raised to at least 1
//	consecutive day   -> current+1, max raised to match
//	gap of 2+ days    -> current resets to 1, max unchanged
//	lastPractice in the future -> no-op (clock skew is never trusted)
func UpdateStreak(lastPractice, today string, current, max int) (int, int, error) {
	if lastPractice == today {
		return current, max, nil
	}

	if lastPractice == "" {
		if max < 1 {
			max = 1
		}
		return 1, max, nil
	}

	days, err := daysBetween(lastPractice, today)
	if err != nil {
		return current, max, err
	}

	switch {
	case days < 0:
		return current, max, nil
	case days == 0:
		return current, max, nil
	case days == 1:
		current++
		if current > max {
			max = current
		}
		return current, max, nil
	default:
		return 1, max, nil
	}
}

// daysBetween returns to-from in whole calendar days
func daysBetween(from, to string) (int, error) {
	start, err := time.Parse(DateLayout, from)
	if err != nil {
		return 0, ErrInvalidDate
	}
	end, err := time.Parse(DateLayout, to)
	if err != nil {
		return 0, ErrInvalidDate
	}
	return int(end.Sub(start).Hours() / 24), nil
}
