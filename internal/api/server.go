package api

import (
	"admin-console/internal/config"
	"admin-console/internal/database"
	"admin-console/internal/localstore"
	"admin-console/internal/scheduler"

	"go.uber.org/zap"
)

type Server struct {
	config *config.Config
	store  *database.PostgresStore
	local  *localstore.Store
	runner *scheduler.ResetRunner
	logger *zap.Logger
}

func NewServer(cfg *config.Config, store *database.PostgresStore, local *localstore.Store, runner *scheduler.ResetRunner, logger *zap.Logger) *Server {
	return &Server{
		config: cfg,
		store:  store,
		local:  local,
		runner: runner,
		logger: logger,
	}
}
