package handlers

import (
	"net/http"

	"spello/internal/service"
)

// DashboardHandler serves the aggregated progress views
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary handles GET /api/dashboard
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	summary, err := h.dashboardService.Summary(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newDashboardView(summary))
}

// Streak handles GET /api/dashboard/streak
func (h *DashboardHandler) Streak(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	current, max, err := h.dashboardService.Streak(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"streak": current, "max_streak": max})
}

// AverageAccuracy handles GET /api/dashboard/average-accuracy
func (h *DashboardHandler) AverageAccuracy(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	avg, count, err := h.dashboardService.AverageAccuracy(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"average_accuracy": avg,
		"total_attempts":   count,
	})
}

// WordsMastered handles GET /api/dashboard/words-mastered
func (h *DashboardHandler) WordsMastered(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	mastered, err := h.dashboardService.WordsMastered(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if mastered == nil {
		mastered = []string{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"words_mastered": len(mastered),
		"mastered_words": mastered,
	})
}

// Level handles GET /api/dashboard/level
func (h *DashboardHandler) Level(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	progress, err := h.dashboardService.LevelProgress(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"level":       progress.Level,
		"total_score": progress.TotalScore,
		"percent":     progress.Percent,
	})
}

// WeeklyTrend handles GET /api/dashboard/weekly-trend
func (h *DashboardHandler) WeeklyTrend(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	trend, err := h.dashboardService.WeeklyTrend(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"weekly_trend": newWeeklyTrendViews(trend),
	})
}
