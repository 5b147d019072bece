package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"

	"admin-console/internal/config"
	"admin-console/internal/database"
	"admin-console/internal/localstore"
	"admin-console/internal/scheduler"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

var (
	testServer *Server
	testRouter chi.Router
	testLocal  *localstore.Store
	adminToken string
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:14-alpine",
		postgres.WithDatabase("test_api_db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		log.Fatalf("Could not start postgres: %s", err)
	}
	defer pgContainer.Terminate(ctx)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("Could not get connection string: %s", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}

	schema, err := os.ReadFile("../../db/init.sql")
	if err != nil {
		log.Fatalf("Could not read schema file: %s", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		log.Fatalf("Could not apply schema: %s", err)
	}

	tempDir, err := os.MkdirTemp("", "api-localstore-test")
	if err != nil {
		log.Fatalf("Could not create temp dir: %s", err)
	}
	defer os.RemoveAll(tempDir)

	testLocal, err = localstore.Open(filepath.Join(tempDir, "admin.db"))
	if err != nil {
		log.Fatalf("Could not open local store: %s", err)
	}
	defer testLocal.Close()

	store := database.NewStore(pool)
	logger := zap.NewNop()
	runner := scheduler.NewResetRunner(store, testLocal, logger)
	cfg := &config.Config{Admin: config.AdminConfig{Password: "api_test_password"}}

	testServer = NewServer(cfg, store, testLocal, runner, logger)
	testRouter = testServer.Routes()

	adminToken, err = testLocal.CreateSession(ctx)
	if err != nil {
		log.Fatalf("Could not create admin session: %s", err)
	}

	os.Exit(m.Run())
}

// doRequest runs a request through the full router, middleware included.
func doRequest(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	testRouter.ServeHTTP(rr, req)
	return rr
}

var apiUserSeq atomic.Int64

func createAPIUser(t *testing.T, group string, quota, usedQuota int64, deleted bool) int64 {
	t.Helper()

	username := fmt.Sprintf("api_user_%d", apiUserSeq.Add(1))
	query := `
		INSERT INTO users (username, display_name, "group", quota, used_quota, deleted_at)
		VALUES ($1, $2, $3, $4, $5, CASE WHEN $6 THEN now() ELSE NULL END)
		RETURNING id
	`
	var id int64
	err := testServer.store.GetPool().QueryRow(context.Background(), query,
		username, "API "+username, group, quota, usedQuota, deleted).Scan(&id)
	require.NoError(t, err)
	return id
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func fetchQuota(t *testing.T, id int64) (quota, usedQuota int64) {
	t.Helper()
	err := testServer.store.GetPool().QueryRow(context.Background(),
		`SELECT quota, used_quota FROM users WHERE id = $1`, id).Scan(&quota, &usedQuota)
	require.NoError(t, err)
	return quota, usedQuota
}

func requireJSON(t *testing.T, rr *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), out))
}
