package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Routes assembles the full router. The console UI is served by the platform
// itself, so CORS stays wide open like the service it replaced.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(MetricsMiddleware)

	r.Get("/", s.IndexHandler)
	r.Get("/health", s.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	r.Post("/api/admin/login", s.LoginHandler)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(s.AuthMiddleware)
		r.Get("/settings/daily_reset", s.GetDailyResetSettingsHandler)
		r.Post("/settings/daily_reset", s.SetDailyResetSettingsHandler)
		r.Post("/actions/trigger_daily_reset", s.TriggerDailyResetHandler)
		r.Get("/user/{userId}", s.GetUserHandler)
		r.Post("/user/group", s.UpdateUserGroupHandler)
		r.Post("/user/quota/increment", s.IncrementUserQuotaHandler)
		r.Post("/user/quota/reset", s.ResetUserQuotaHandler)
	})

	return r
}
