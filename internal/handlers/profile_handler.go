package handlers

import (
	"net/http"

	"spello/internal/security"
	"spello/internal/service"
	"spello/internal/words"
)

// ProfileHandler handles account, preference, and custom-word endpoints
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get handles GET /api/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	profile, err := h.profileService.GetProfile(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newProfileView(profile))
}

// Delete handles DELETE /api/profile
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	if err := h.profileService.DeleteAccount(user.ID); err != nil {
		respondServiceError(w, err)
		return
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, "session_id"))
	respondJSON(w, http.StatusOK, map[string]string{"status": "account deleted"})
}

// GetSounds handles GET /api/profile/sounds
func (h *ProfileHandler) GetSounds(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	sounds, err := h.profileService.GetSelectedSounds(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if sounds == nil {
		sounds = []string{}
	}

	respondJSON(w, http.StatusOK, map[string][]string{
		"sounds":    sounds,
		"available": words.Sounds(),
	})
}

type updateSoundsRequest struct {
	Sounds []string `json:"sounds"`
}

// UpdateSounds handles PUT /api/profile/sounds
func (h *ProfileHandler) UpdateSounds(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req updateSoundsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.profileService.UpdateSelectedSounds(user.ID, req.Sounds); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string][]string{"sounds": req.Sounds})
}

// GetCustomWords handles GET /api/profile/custom-words
func (h *ProfileHandler) GetCustomWords(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	words, err := h.profileService.GetCustomWords(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if words == nil {
		words = []string{}
	}

	respondJSON(w, http.StatusOK, map[string][]string{"words": words})
}

type customWordRequest struct {
	Word string `json:"word"`
}

// AddCustomWord handles POST /api/profile/custom-words
func (h *ProfileHandler) AddCustomWord(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req customWordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := h.profileService.AddCustomWord(user.ID, req.Word)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"word": stored})
}

// RemoveCustomWord handles DELETE /api/profile/custom-words/{word}
func (h *ProfileHandler) RemoveCustomWord(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	word := r.PathValue("word")

	if err := h.profileService.RemoveCustomWord(user.ID, word); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
