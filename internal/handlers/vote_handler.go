package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"staffing-awards/internal/middleware"
	"staffing-awards/internal/service"
)

// VoteHandler handles voting requests
type VoteHandler struct {
	votes *service.VoteService
}

// NewVoteHandler creates a new vote handler
func NewVoteHandler(votes *service.VoteService) *VoteHandler {
	return &VoteHandler{
		votes: votes,
	}
}

// Cast handles ballot submission
// @Summary Cast a vote
// @Description Cast a vote for an approved nominee. A repeat ballot returns a blocked outcome with the reason, not an error.
// @Tags Votes
// @Accept json
// @Produce json
// @Param request body service.CastVoteRequest true "Vote details"
// @Success 200 {object} map[string]interface{} "Vote recorded or blocked"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Nominee not found"
// @Router /votes [post]
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	var req service.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	req.IPAddress = middleware.GetIP(r)
	req.UserAgent = r.UserAgent()

	result, err := h.votes.Cast(req)
	if err != nil {
		var blocked *service.VoteBlockedError
		if errors.As(err, &blocked) {
			respondWithJSON(w, http.StatusOK, map[string]interface{}{
				"blocked": true,
				"reason":  blocked.Reason,
				"message": blocked.Message,
			})
			return
		}
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"total":   result.Total,
	})
}

// Count handles vote count lookup
// @Summary Get a nominee's vote count
// @Description Get the combined vote total for a nominee
// @Tags Votes
// @Produce json
// @Param nomineeId query string true "Nominee ID"
// @Success 200 {object} map[string]interface{} "Vote count"
// @Failure 404 {object} map[string]string "Nominee not found"
// @Router /votes/count [get]
func (h *VoteHandler) Count(w http.ResponseWriter, r *http.Request) {
	nomineeID := r.URL.Query().Get("nomineeId")

	total, err := h.votes.Count(nomineeID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"nomineeId": nomineeID,
		"total":     total,
	})
}

// ListForNominee handles the admin per-nominee ballot listing
// @Summary List a nominee's ballots
// @Description List the individual ballots recorded for a nominee
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Nominee ID"
// @Success 200 {array} models.Vote "Ballots"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Nominee not found"
// @Router /admin/nominations/{id}/votes [get]
func (h *VoteHandler) ListForNominee(w http.ResponseWriter, r *http.Request) {
	votes, err := h.votes.ListForNominee(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, votes)
}
