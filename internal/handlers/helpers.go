package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"staffing-awards/internal/service"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := JSONResponse(w, payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondServiceError maps service errors to HTTP responses. The outcome
// errors (duplicate nominations, blocked votes) have endpoint-specific
// payloads and are handled before calling this.
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		respondWithJSON(w, http.StatusBadRequest, map[string]string{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
		return
	}

	var notFoundErr *service.NotFoundError
	if errors.As(err, &notFoundErr) {
		respondWithError(w, http.StatusNotFound, notFoundErr.Error())
		return
	}

	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) {
		respondWithJSON(w, http.StatusConflict, map[string]interface{}{
			"conflict":       true,
			"error":          conflictErr.Error(),
			"existingId":     conflictErr.ExistingID,
			"existingStatus": conflictErr.ExistingStatus,
			"liveUrl":        conflictErr.LiveURL,
		})
		return
	}

	slog.Error("Request failed", "error", err)
	respondWithError(w, http.StatusInternalServerError, ErrMsgInternalServerError)
}
