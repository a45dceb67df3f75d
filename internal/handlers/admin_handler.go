package handlers

import (
	"net/http"
	"strconv"

	"spello/internal/service"
)

// AdminHandler handles administrative endpoints
type AdminHandler struct {
	profileService *service.ProfileService
	backupService  *service.BackupService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(profileService *service.ProfileService, backupService *service.BackupService) *AdminHandler {
	return &AdminHandler{
		profileService: profileService,
		backupService:  backupService,
	}
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.profileService.ListUsers()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	views := make([]profileView, 0, len(users))
	for i := range users {
		views = append(views, newProfileView(&users[i]))
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"users": views})
}

// DeleteUser handles DELETE /api/admin/users/{id}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	admin := GetUserFromContext(r.Context())
	if admin.ID == id {
		respondError(w, http.StatusBadRequest, "cannot delete your own account here")
		return
	}

	if err := h.profileService.DeleteUser(id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ExportBackup handles GET /api/admin/backup, streaming the full database as JSON
func (h *AdminHandler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="spello-backup.json"`)

	if err := h.backupService.ExportToWriter(w); err != nil {
		respondServiceError(w, err)
	}
}
