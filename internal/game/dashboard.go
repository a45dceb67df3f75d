package game

import (
	"sort"
	"time"

	"spello/internal/models"
)

// MasteryThreshold is the best-ever accuracy at which a word counts as mastered
const MasteryThreshold = 75.0

// AverageAccuracy returns the mean accuracy across all records (two decimal
// places) and the number of records. Empty history reports 0 and 0
func AverageAccuracy(records []models.ScoreRecord) (float64, int) {
	if len(records) == 0 {
		return 0, 0
	}

	var sum float64
	for _, r := range records {
		sum += r.Accuracy
	}
	return round2(sum / float64(len(records))), len(records)
}

// MasteredWords returns the distinct words whose best-ever accuracy reached
// the mastery threshold, sorted for stable output
func MasteredWords(records []models.ScoreRecord) []string {
	best := make(map[string]float64)
	for _, r := range records {
		if r.Accuracy > best[r.Word] {
			best[r.Word] = r.Accuracy
		}
	}

	mastered := make([]string, 0, len(best))
	for word, accuracy := range best {
		if accuracy >= MasteryThreshold {
			mastered = append(mastered, word)
		}
	}
	sort.Strings(mastered)
	return mastered
}

// Progress reports how far a player is toward the next level. Only level 1
// has a defined threshold; higher levels report 0
func Progress(level, totalScore int) models.LevelProgress {
	progress := models.LevelProgress{Level: level, TotalScore: totalScore}
	if level == 1 {
		percent := float64(totalScore) / LevelUpScore * 100
		if percent > 100 {
			percent = 100
		}
		progress.Percent = round2(percent)
	}
	return progress
}

// WeeklyTrend buckets records into the trailing seven calendar days ending
// today, ascending. Days without records report zero accuracy and attempts
func WeeklyTrend(records []models.ScoreRecord, today string) ([]models.WeeklyTrendEntry, error) {
	end, err := time.Parse(DateLayout, today)
	if err != nil {
		return nil, ErrInvalidDate
	}

	type bucket struct {
		sum float64
		n   int
	}
	buckets := make(map[string]*bucket)
	for _, r := range records {
		b := buckets[r.PracticedOn]
		if b == nil {
			b = &bucket{}
			buckets[r.PracticedOn] = b
		}
		b.sum += r.Accuracy
		b.n++
	}

	entries := make([]models.WeeklyTrendEntry, 0, 7)
	for i := 6; i >= 0; i-- {
		day := end.AddDate(0, 0, -i).Format(DateLayout)
		entry := models.WeeklyTrendEntry{Date: day}
		if b := buckets[day]; b != nil {
			entry.AverageAccuracy = round2(b.sum / float64(b.n))
			entry.Attempts = b.n
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
