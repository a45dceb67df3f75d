package handlers

import (
	"net/http"
	"strings"

	"spello/internal/service"
)

// GameHandler handles the round lifecycle endpoints
type GameHandler struct {
	gameService   *service.GameService
	uploadMaxSize int64
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *service.GameService, uploadMaxSize int64) *GameHandler {
	return &GameHandler{
		gameService:   gameService,
		uploadMaxSize: uploadMaxSize,
	}
}

// TargetWord handles GET /api/target-word. An optional sounds query parameter
// (comma-separated) overrides the stored preference for this round
func (h *GameHandler) TargetWord(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var sounds []string
	if raw := r.URL.Query().Get("sounds"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				sounds = append(sounds, s)
			}
		}
	}

	word, err := h.gameService.IssueTargetWord(user.ID, sounds)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"word": word})
}

// SpeechToText handles POST /api/speech-to-text. The recording arrives as a
// multipart form file named "audio"
func (h *GameHandler) SpeechToText(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxSize)
	if err := r.ParseMultipartForm(h.uploadMaxSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid or oversized upload")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing audio file")
		return
	}
	defer file.Close()

	round, err := h.gameService.SubmitSpeech(r.Context(), user.ID, file, header.Filename)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newRoundView(round))
}

// Play handles POST /api/play, consuming the scored round
func (h *GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	result, err := h.gameService.Play(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newPlayResultView(result))
}
