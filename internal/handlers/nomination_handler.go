package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"staffing-awards/internal/middleware"
	"staffing-awards/internal/models"
	"staffing-awards/internal/service"
)

// NominationHandler handles nomination requests
type NominationHandler struct {
	nominations *service.NominationService
	maxPageSize int
}

// NewNominationHandler creates a new nomination handler
func NewNominationHandler(nominations *service.NominationService, maxPageSize int) *NominationHandler {
	return &NominationHandler{
		nominations: nominations,
		maxPageSize: maxPageSize,
	}
}

// Create handles nomination submission
// @Summary Submit a nomination
// @Description Submit a new nomination. Resubmitting an identity that already has an approved nomination returns a duplicate outcome, not an error.
// @Tags Nominations
// @Accept json
// @Produce json
// @Param request body service.CreateNominationRequest true "Nomination details"
// @Success 200 {object} map[string]interface{} "Duplicate of an approved nomination"
// @Success 201 {object} models.Nomination "Created nomination"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /nominations [post]
func (h *NominationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateNominationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	nomination, err := h.nominations.Create(req)
	if err != nil {
		var dup *service.DuplicateError
		if errors.As(err, &dup) {
			respondWithJSON(w, http.StatusOK, map[string]interface{}{
				"duplicate":  true,
				"message":    dup.Error(),
				"existingId": dup.ExistingID,
				"status":     dup.Status,
				"liveUrl":    dup.LiveURL,
			})
			return
		}
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, nomination)
}

// List handles nomination listing
// @Summary List nominations
// @Description List nominations. Without admin credentials only approved nominations are returned.
// @Tags Nominations
// @Produce json
// @Param q query string false "Search in nominee name, nominator name, category"
// @Param category query string false "Filter by category"
// @Param type query string false "Filter by nominee type (person, company)"
// @Param status query string false "Filter by status (admin only)"
// @Param sort query string false "Sort order (recent, popular, name)"
// @Param limit query int false "Maximum results"
// @Success 200 {array} models.Nomination "Nominations"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Router /nominations [get]
func (h *NominationHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.NominationFilter{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Type:     models.CategoryType(r.URL.Query().Get("type")),
		Status:   models.NominationStatus(r.URL.Query().Get("status")),
		Sort:     r.URL.Query().Get("sort"),
		Limit:    h.parseLimit(r.URL.Query().Get("limit")),
	}

	nominations, err := h.nominations.List(filter, middleware.IsAdmin(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, nominations)
}

// GetByID handles single nomination lookup
// @Summary Get a nomination
// @Description Get a nomination by ID. Non-approved nominations are only visible with admin credentials.
// @Tags Nominations
// @Produce json
// @Param id path string true "Nomination ID"
// @Success 200 {object} models.Nomination "Nomination"
// @Failure 404 {object} map[string]string "Not found"
// @Router /nominations/{id} [get]
func (h *NominationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	nomination, err := h.nominations.GetByID(r.PathValue("id"), middleware.IsAdmin(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, nomination)
}

func (h *NominationHandler) parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	if h.maxPageSize > 0 && limit > h.maxPageSize {
		return h.maxPageSize
	}
	return limit
}
