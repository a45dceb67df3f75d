package game

import (
	"testing"

	"spello/internal/models"
)

func record(word string, accuracy float64, day string) models.ScoreRecord {
	return models.ScoreRecord{Word: word, Accuracy: accuracy, PracticedOn: day}
}

func TestAverageAccuracy(t *testing.T) {
	tests := []struct {
		name         string
		records      []models.ScoreRecord
		wantAverage  float64
		wantAttempts int
	}{
		{
			name:         "no history",
			records:      nil,
			wantAverage:  0,
			wantAttempts: 0,
		},
		{
			name: "single record",
			records: []models.ScoreRecord{
				record("Cat", 80, "2026-08-30"),
			},
			wantAverage:  80,
			wantAttempts: 1,
		},
		{
			name: "mean rounds to two decimals",
			records: []models.ScoreRecord{
				record("Cat", 60, "2026-08-29"),
				record("Cat", 80, "2026-08-29"),
				record("Dog", 74, "2026-08-30"),
			},
			wantAverage:  71.33,
			wantAttempts: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			average, attempts := AverageAccuracy(tt.records)
			if average != tt.wantAverage || attempts != tt.wantAttempts {
				t.Errorf("AverageAccuracy() = (%v, %d), want (%v, %d)",
					average, attempts, tt.wantAverage, tt.wantAttempts)
			}
		})
	}
}

func TestMasteredWords(t *testing.T) {
	tests := []struct {
		name    string
		records []models.ScoreRecord
		want    []string
	}{
		{
			name:    "no history",
			records: nil,
			want:    []string{},
		},
		{
			name: "best ever attempt counts",
			records: []models.ScoreRecord{
				record("Cat", 60, "2026-08-28"),
				record("Cat", 80, "2026-08-29"),
				record("Dog", 74, "2026-08-30"),
			},
			want: []string{"Cat"},
		},
		{
			name: "threshold is inclusive",
			records: []models.ScoreRecord{
				record("Kite", 75, "2026-08-30"),
				record("Ball", 74.99, "2026-08-30"),
			},
			want: []string{"Kite"},
		},
		{
			name: "distinct words sorted",
			records: []models.ScoreRecord{
				record("Turtle", 90, "2026-08-30"),
				record("Apple", 88, "2026-08-30"),
				record("Turtle", 40, "2026-08-30"),
			},
			want: []string{"Apple", "Turtle"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MasteredWords(tt.records)
			if len(got) != len(tt.want) {
				t.Fatalf("MasteredWords() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("MasteredWords() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name       string
		level      int
		totalScore int
		want       float64
	}{
		{
			name:       "level 1 quarter of the way",
			level:      1,
			totalScore: 500,
			want:       25,
		},
		{
			name:       "level 1 rounds to two decimals",
			level:      1,
			totalScore: 1234,
			want:       61.7,
		},
		{
			name:       "level 1 caps at 100",
			level:      1,
			totalScore: 2500,
			want:       100,
		},
		{
			name:       "level 2 has no defined progress",
			level:      2,
			totalScore: 5000,
			want:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Progress(tt.level, tt.totalScore)
			if got.Percent != tt.want {
				t.Errorf("Progress(%d, %d).Percent = %v, want %v", tt.level, tt.totalScore, got.Percent, tt.want)
			}
			if got.Level != tt.level || got.TotalScore != tt.totalScore {
				t.Errorf("Progress() carried wrong state: %+v", got)
			}
		})
	}
}

func TestWeeklyTrendEmpty(t *testing.T) {
	entries, err := WeeklyTrend(nil, "2026-08-30")
	if err != nil {
		t.Fatalf("WeeklyTrend() error = %v", err)
	}

	if len(entries) != 7 {
		t.Fatalf("WeeklyTrend() returned %d entries, want 7", len(entries))
	}
	for _, e := range entries {
		if e.AverageAccuracy != 0 || e.Attempts != 0 {
			t.Errorf("empty trend entry %s = %+v, want zeros", e.Date, e)
		}
	}
	if entries[0].Date != "2026-08-24" {
		t.Errorf("first entry date = %s, want 2026-08-24", entries[0].Date)
	}
	if entries[6].Date != "2026-08-30" {
		t.Errorf("last entry date = %s, want 2026-08-30", entries[6].Date)
	}
}

func TestWeeklyTrendBuckets(t *testing.T) {
	records := []models.ScoreRecord{
		record("Cat", 80, "2026-08-30"),
		record("Dog", 60, "2026-08-30"),
		record("Kite", 90, "2026-08-27"),
		record("Old", 100, "2026-08-01"), // outside the window
	}

	entries, err := WeeklyTrend(records, "2026-08-30")
	if err != nil {
		t.Fatalf("WeeklyTrend() error = %v", err)
	}

	byDate := make(map[string]models.WeeklyTrendEntry)
	for _, e := range entries {
		byDate[e.Date] = e
	}

	today := byDate["2026-08-30"]
	if today.AverageAccuracy != 70 || today.Attempts != 2 {
		t.Errorf("today's bucket = %+v, want average 70, attempts 2", today)
	}

	midweek := byDate["2026-08-27"]
	if midweek.AverageAccuracy != 90 || midweek.Attempts != 1 {
		t.Errorf("midweek bucket = %+v, want average 90, attempts 1", midweek)
	}

	for _, e := range entries {
		if e.Date == "2026-08-30" || e.Date == "2026-08-27" {
			continue
		}
		if e.Attempts != 0 {
			t.Errorf("unexpected attempts on %s: %+v", e.Date, e)
		}
	}
}

func TestWeeklyTrendAscending(t *testing.T) {
	entries, err := WeeklyTrend(nil, "2026-03-03")
	if err != nil {
		t.Fatalf("WeeklyTrend() error = %v", err)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Date >= entries[i].Date {
			t.Errorf("entries not ascending: %s then %s", entries[i-1].Date, entries[i].Date)
		}
	}
}

func TestWeeklyTrendBadDate(t *testing.T) {
	if _, err := WeeklyTrend(nil, "August 30"); err == nil {
		t.Error("WeeklyTrend() with malformed date did not fail")
	}
}
