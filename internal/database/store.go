package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the gateway to the tenant platform's relational store.
// Every operation is a single statement over the shared pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) GetPool() *pgxpool.Pool {
	return s.pool
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
