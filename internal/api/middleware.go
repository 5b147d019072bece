package api

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// AuthMiddleware guards every admin endpoint. A request without a known
// bearer token is rejected with 403 before any handler logic runs; the reply
// is identical for a missing header, a malformed header and an unknown token.
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}

		valid, err := s.local.IsValidToken(r.Context(), token)
		if err != nil {
			s.logger.Error("token lookup failed", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if !valid {
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" {
		return "", false
	}

	return headerParts[1], true
}
