package game

import (
	"errors"
	"testing"
)

func TestUpdateStreak(t *testing.T) {
	tests := []struct {
		name         string
		lastPractice string
		today        string
		current      int
		max          int
		wantCurrent  int
		wantMax      int
	}{
		{
			name:         "same day is unchanged",
			lastPractice: "2026-08-30",
			today:        "2026-08-30",
			current:      5,
			max:          8,
			wantCurrent:  5,
			wantMax:      8,
		},
		{
			name:         "first ever practice",
			lastPractice: "",
			today:        "2026-08-30",
			current:      0,
			max:          0,
			wantCurrent:  1,
			wantMax:      1,
		},
		{
			name:         "first practice keeps higher max",
			lastPractice: "",
			today:        "2026-08-30",
			current:      0,
			max:          3,
			wantCurrent:  1,
			wantMax:      3,
		},
		{
			name:         "consecutive day extends",
			lastPractice: "2026-08-29",
			today:        "2026-08-30",
			current:      3,
			max:          3,
			wantCurrent:  4,
			wantMax:      4,
		},
		{
			name:         "consecutive day below max",
			lastPractice: "2026-08-29",
			today:        "2026-08-30",
			current:      2,
			max:          6,
			wantCurrent:  3,
			wantMax:      6,
		},
		{
			name:         "two day gap resets current",
			lastPractice: "2026-08-28",
			today:        "2026-08-30",
			current:      4,
			max:          6,
			wantCurrent:  1,
			wantMax:      6,
		},
		{
			name:         "long gap resets current",
			lastPractice: "2026-01-01",
			today:        "2026-08-30",
			current:      10,
			max:          12,
			wantCurrent:  1,
			wantMax:      12,
		},
		{
			name:         "stored date in the future is a no-op",
			lastPractice: "2026-09-02",
			today:        "2026-08-30",
			current:      4,
			max:          6,
			wantCurrent:  4,
			wantMax:      6,
		},
		{
			name:         "month boundary counts as consecutive",
			lastPractice: "2026-08-31",
			today:        "2026-09-01",
			current:      1,
			max:          1,
			wantCurrent:  2,
			wantMax:      2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, max, err := UpdateStreak(tt.lastPractice, tt.today, tt.current, tt.max)
			if err != nil {
				t.Fatalf("UpdateStreak() error = %v", err)
			}
			if current != tt.wantCurrent || max != tt.wantMax {
				t.Errorf("UpdateStreak() = (%d, %d), want (%d, %d)", current, max, tt.wantCurrent, tt.wantMax)
			}
		})
	}
}

func TestUpdateStreakMalformedDate(t *testing.T) {
	_, _, err := UpdateStreak("not-a-date", "2026-08-30", 1, 1)
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("UpdateStreak() error = %v, want ErrInvalidDate", err)
	}

	_, _, err = UpdateStreak("2026-08-29", "30/08/2026", 1, 1)
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("UpdateStreak() error = %v, want ErrInvalidDate", err)
	}
}

// TestMaxStreakNeverDecreases drives a mixed sequence of days through the
// tracker and checks the max only moves up
func TestMaxStreakNeverDecreases(t *testing.T) {
	days := []string{
		"2026-08-01", // first practice
		"2026-08-02", // consecutive
		"2026-08-03", // consecutive
		"2026-08-10", // gap, reset
		"2026-08-11", // consecutive
		"2026-08-11", // same day
		"2026-08-20", // gap, reset
	}

	last := ""
	current, max := 0, 0
	prevMax := 0
	for _, day := range days {
		var err error
		current, max, err = UpdateStreak(last, day, current, max)
		if err != nil {
			t.Fatalf("UpdateStreak(%q, %q) error = %v", last, day, err)
		}
		if max < prevMax {
			t.Fatalf("max streak decreased from %d to %d on %s", prevMax, max, day)
		}
		if max < current {
			t.Fatalf("max streak %d below current %d on %s", max, current, day)
		}
		prevMax = max
		last = day
	}

	if max != 3 {
		t.Errorf("final max streak = %d, want 3", max)
	}
	if current != 1 {
		t.Errorf("final current streak = %d, want 1", current)
	}
}
