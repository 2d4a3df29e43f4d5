package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"staffing-awards/internal/middleware"
	"staffing-awards/internal/service"
)

// AdminHandler handles moderation and admin reporting requests
type AdminHandler struct {
	nominations *service.NominationService
	stats       *service.StatsService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(nominations *service.NominationService, stats *service.StatsService) *AdminHandler {
	return &AdminHandler{
		nominations: nominations,
		stats:       stats,
	}
}

// UpdateNomination handles moderation decisions and admin edits
// @Summary Update a nomination
// @Description Apply a moderation decision or admin edit. Approving an identity that already holds an approved nomination answers 409 with the conflicting record.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.UpdateNominationRequest true "Fields to update"
// @Success 200 {object} models.Nomination "Updated nomination"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 409 {object} map[string]interface{} "Conflicts with an approved nomination"
// @Router /admin/nominations [patch]
func (h *AdminHandler) UpdateNomination(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateNominationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	nomination, err := h.nominations.Update(req, actorInfo(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, nomination)
}

// DeleteNomination handles nomination removal
// @Summary Delete a nomination
// @Description Delete a nomination and its votes
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Nomination ID"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Not found"
// @Router /admin/nominations/{id} [delete]
func (h *AdminHandler) DeleteNomination(w http.ResponseWriter, r *http.Request) {
	if err := h.nominations.Delete(r.PathValue("id"), actorInfo(r)); err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Nomination deleted"})
}

// Stats handles admin stats requests
// @Summary Get admin stats
// @Description Get aggregate figures including the real/additional vote split
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AdminStats "Aggregate stats"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Admin()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// AuditLogs handles audit log listing
// @Summary List audit logs
// @Description List recent moderation actions, newest first
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries" default(100)
// @Success 200 {array} models.AuditEntry "Audit entries"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /admin/audit-logs [get]
func (h *AdminHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 1000 {
			limit = parsed
		}
	}

	entries, err := h.nominations.AuditLog(limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}

func actorInfo(r *http.Request) service.ActorInfo {
	return service.ActorInfo{
		IPAddress: middleware.GetIP(r),
		UserAgent: r.UserAgent(),
	}
}
