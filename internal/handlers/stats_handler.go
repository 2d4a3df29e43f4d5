package handlers

import (
	"net/http"

	"staffing-awards/internal/models"
	"staffing-awards/internal/service"
)

// StatsHandler handles public aggregate requests
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{
		stats: stats,
	}
}

// PublicStats handles public stats requests
// @Summary Get public stats
// @Description Get aggregate nomination and voting figures
// @Tags Stats
// @Produce json
// @Success 200 {object} models.Stats "Aggregate stats"
// @Router /stats [get]
func (h *StatsHandler) PublicStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Public()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// Podium handles top-three requests
// @Summary Get a category podium
// @Description Get the top three approved nominees of a category by combined votes
// @Tags Stats
// @Produce json
// @Param category query string true "Category ID"
// @Success 200 {array} models.PodiumEntry "Podium entries"
// @Failure 400 {object} map[string]string "Unknown category"
// @Router /podium [get]
func (h *StatsHandler) Podium(w http.ResponseWriter, r *http.Request) {
	entries, err := h.stats.Podium(r.URL.Query().Get("category"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}

// Categories handles award category listing
// @Summary List award categories
// @Description List all award categories with their groups and nominee types
// @Tags Stats
// @Produce json
// @Success 200 {array} models.CategoryConfig "Categories"
// @Router /categories [get]
func (h *StatsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, models.Categories)
}
