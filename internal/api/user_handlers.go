package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	_ "admin-console/internal/models"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// @Summary      Get a user
// @Description  Returns a user's public fields. Soft-deleted users are reported as not found.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      int  true  "User ID"
// @Success      200     {object}  models.User
// @Failure      400     {string}  string "Invalid user ID"
// @Failure      403     {string}  string "Admin access required"
// @Failure      404     {string}  string "User not found or has been deleted"
// @Failure      500     {string}  string "Internal Server Error"
// @Router       /api/admin/user/{userId} [get]
func (s *Server) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	user, err := s.store.GetUserByID(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to fetch user", zap.Int64("user_id", id), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found or has been deleted", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

type UserGroupUpdateRequest struct {
	UserID int64  `json:"user_id" example:"42"`
	Group  string `json:"group" example:"vip"`
}

// @Summary      Update a user's group
// @Description  Sets the user's membership tier. Any group string is accepted; only "vip" and "default" take part in the nightly reset.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        update  body      UserGroupUpdateRequest  true  "User and new group"
// @Success      200     {object}  OkResponse
// @Failure      400     {string}  string "Invalid request body"
// @Failure      403     {string}  string "Admin access required"
// @Failure      404     {string}  string "User not found or has been deleted"
// @Failure      500     {string}  string "Internal Server Error"
// @Router       /api/admin/user/group [post]
func (s *Server) UpdateUserGroupHandler(w http.ResponseWriter, r *http.Request) {
	var req UserGroupUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	found, err := s.store.UpdateUserGroup(r.Context(), req.UserID, req.Group)
	if err != nil {
		s.logger.Error("failed to update user group", zap.Int64("user_id", req.UserID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "User not found or has been deleted", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(OkResponse{Ok: true})
}

type UserQuotaIncrementRequest struct {
	UserID int64 `json:"user_id" example:"42"`
	Delta  int64 `json:"delta" example:"10000"`
}

// @Summary      Increment a user's quota
// @Description  Adds a signed delta to the user's quota. No floor is enforced; the resulting quota may go negative.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        update  body      UserQuotaIncrementRequest  true  "User and signed delta"
// @Success      200     {object}  OkResponse
// @Failure      400     {string}  string "Invalid request body"
// @Failure      403     {string}  string "Admin access required"
// @Failure      404     {string}  string "User not found or has been deleted"
// @Failure      500     {string}  string "Internal Server Error"
// @Router       /api/admin/user/quota/increment [post]
func (s *Server) IncrementUserQuotaHandler(w http.ResponseWriter, r *http.Request) {
	var req UserQuotaIncrementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	found, err := s.store.IncrementUserQuota(r.Context(), req.UserID, req.Delta)
	if err != nil {
		s.logger.Error("failed to increment user quota", zap.Int64("user_id", req.UserID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "User not found or has been deleted", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(OkResponse{Ok: true})
}

type UserQuotaResetRequest struct {
	UserID int64 `json:"user_id" example:"42"`
	Quota  int64 `json:"quota" example:"50000"`
}

// @Summary      Reset a user's quota
// @Description  Sets the user's quota to an absolute value and zeroes their used quota in one statement.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        update  body      UserQuotaResetRequest  true  "User and absolute quota"
// @Success      200     {object}  OkResponse
// @Failure      400     {string}  string "Invalid request body"
// @Failure      403     {string}  string "Admin access required"
// @Failure      404     {string}  string "User not found or has been deleted"
// @Failure      500     {string}  string "Internal Server Error"
// @Router       /api/admin/user/quota/reset [post]
func (s *Server) ResetUserQuotaHandler(w http.ResponseWriter, r *http.Request) {
	var req UserQuotaResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Quota < 0 {
		http.Error(w, "Quota cannot be negative", http.StatusBadRequest)
		return
	}

	found, err := s.store.ResetUserQuota(r.Context(), req.UserID, req.Quota)
	if err != nil {
		s.logger.Error("failed to reset user quota", zap.Int64("user_id", req.UserID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "User not found or has been deleted", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(OkResponse{Ok: true})
}
