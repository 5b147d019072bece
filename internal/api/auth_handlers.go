package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type LoginRequest struct {
	Password string `json:"password" example:"admin123"`
}

type TokenResponse struct {
	Token string `json:"token" example:"V1StGXR8_Z5jdHi6B-myT78q_Z5jdHi6"`
}

// @Summary      Admin login
// @Description  Validates the shared admin password and issues an admin bearer token. Issued tokens never expire.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest   body      LoginRequest  true  "Admin credentials"
// @Success      200            {object}  TokenResponse
// @Failure      400            {string}  string "Invalid request body"
// @Failure      401            {string}  string "Invalid admin password"
// @Failure      500            {string}  string "Internal Server Error"
// @Router       /api/admin/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.config.Admin.Password)) != 1 {
		http.Error(w, "Invalid admin password", http.StatusUnauthorized)
		return
	}

	token, err := s.local.CreateSession(r.Context())
	if err != nil {
		s.logger.Error("failed to create admin session", zap.Error(err))
		http.Error(w, "Failed to create admin session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TokenResponse{Token: token})
}
