package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"admin-console/internal/localstore"
	"admin-console/internal/scheduler"

	"go.uber.org/zap"
)

type DailyResetSettings struct {
	VIPQuota     int64 `json:"vip_quota" example:"1000000"`
	DefaultQuota int64 `json:"default_quota" example:"50000"`
}

type OkResponse struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// @Summary      Get nightly reset settings
// @Description  Returns the per-tier quota values applied by the nightly reset, falling back to built-in defaults when unset.
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  DailyResetSettings
// @Failure      403  {string}  string "Admin access required"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /api/admin/settings/daily_reset [get]
func (s *Server) GetDailyResetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	vipQuota, err := s.local.GetSettingInt64(r.Context(), localstore.SettingVIPQuota, localstore.DefaultVIPQuota)
	if err != nil {
		s.logger.Error("failed to read reset settings", zap.Error(err))
		http.Error(w, "Failed to read settings", http.StatusInternalServerError)
		return
	}
	defaultQuota, err := s.local.GetSettingInt64(r.Context(), localstore.SettingDefaultQuota, localstore.DefaultDefaultQuota)
	if err != nil {
		s.logger.Error("failed to read reset settings", zap.Error(err))
		http.Error(w, "Failed to read settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DailyResetSettings{VIPQuota: vipQuota, DefaultQuota: defaultQuota})
}

// @Summary      Update nightly reset settings
// @Description  Stores the per-tier quota values applied by the nightly reset. Negative values are rejected and leave the previous settings untouched.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        settings  body      DailyResetSettings  true  "Per-tier reset quotas"
// @Success      200       {object}  OkResponse
// @Failure      400       {string}  string "Quota cannot be negative"
// @Failure      403       {string}  string "Admin access required"
// @Failure      500       {string}  string "Internal Server Error"
// @Router       /api/admin/settings/daily_reset [post]
func (s *Server) SetDailyResetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req DailyResetSettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.VIPQuota < 0 || req.DefaultQuota < 0 {
		http.Error(w, "Quota cannot be negative", http.StatusBadRequest)
		return
	}

	if err := s.local.SetSetting(r.Context(), localstore.SettingVIPQuota, strconv.FormatInt(req.VIPQuota, 10)); err != nil {
		s.logger.Error("failed to store reset settings", zap.Error(err))
		http.Error(w, "Failed to store settings", http.StatusInternalServerError)
		return
	}
	if err := s.local.SetSetting(r.Context(), localstore.SettingDefaultQuota, strconv.FormatInt(req.DefaultQuota, 10)); err != nil {
		s.logger.Error("failed to store reset settings", zap.Error(err))
		http.Error(w, "Failed to store settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(OkResponse{Ok: true, Message: "Settings saved successfully."})
}

// @Summary      Trigger the nightly reset now
// @Description  Runs the quota reset synchronously with the currently stored settings and responds after it completes.
// @Tags         actions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  OkResponse
// @Failure      403  {string}  string "Admin access required"
// @Failure      409  {string}  string "A reset run is already in progress"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /api/admin/actions/trigger_daily_reset [post]
func (s *Server) TriggerDailyResetHandler(w http.ResponseWriter, r *http.Request) {
	count, err := s.runner.Run(r.Context(), "manual")
	if err != nil {
		if errors.Is(err, scheduler.ErrRunInProgress) {
			http.Error(w, "A reset run is already in progress", http.StatusConflict)
			return
		}
		http.Error(w, "Reset run failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(OkResponse{
		Ok:      true,
		Message: "Reset completed for " + strconv.Itoa(count) + " users.",
	})
}
