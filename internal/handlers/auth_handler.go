package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"staffing-awards/internal/auth"
	"staffing-awards/internal/middleware"
)

// AuthHandler handles admin authentication requests
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// AdminLoginRequest represents an admin login request
type AdminLoginRequest struct {
	Passcode string `json:"passcode"`
}

// AdminLoginResponse represents a successful admin login
type AdminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AdminLogin exchanges the admin passcode for a session token
// @Summary Admin login
// @Description Exchange the admin passcode for a short-lived session token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body AdminLoginRequest true "Admin passcode"
// @Success 200 {object} AdminLoginResponse "Session token"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Invalid passcode"
// @Router /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	if err := h.authService.VerifyPasscode(req.Passcode); err != nil {
		if errors.Is(err, auth.ErrInvalidPasscode) {
			slog.Warn("Admin login rejected", "remote_ip", middleware.GetIP(r))
			respondWithError(w, http.StatusUnauthorized, "Invalid passcode")
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrMsgInternalServerError)
		return
	}

	token, expiresAt, err := h.authService.GenerateToken()
	if err != nil {
		slog.Error("Failed to issue admin token", "error", err)
		respondWithError(w, http.StatusInternalServerError, ErrMsgInternalServerError)
		return
	}

	slog.Info("Admin login", "remote_ip", middleware.GetIP(r))
	respondWithJSON(w, http.StatusOK, AdminLoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}
