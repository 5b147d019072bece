package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jaevor/go-nanoid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Setting keys used by the nightly reset, with their fallback values.
const (
	SettingVIPQuota     = "daily_reset_quota_vip"
	SettingDefaultQuota = "daily_reset_quota_default"

	DefaultVIPQuota     int64 = 1000000
	DefaultDefaultQuota int64 = 50000
)

const schema = `
CREATE TABLE IF NOT EXISTS admin_sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	token TEXT NOT NULL UNIQUE,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Store is the process-wide handle to the local SQLite file holding admin
// sessions and settings. It is opened once at startup and shared; database/sql
// serializes access and the single-connection limit keeps writes safe.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create local store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init local store schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// CreateSession issues a new admin bearer token and persists it. Uniqueness
// relies on the token's randomness; there is no collision retry.
func (s *Store) CreateSession(ctx context.Context) (string, error) {
	generateToken, err := nanoid.Standard(32)
	if err != nil {
		return "", fmt.Errorf("initialize token generator: %w", err)
	}
	token := generateToken()

	query := `INSERT INTO admin_sessions (token, created_at) VALUES (?, ?)`
	if _, err := s.db.ExecContext(ctx, query, token, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return "", fmt.Errorf("persist admin session: %w", err)
	}

	return token, nil
}

// IsValidToken reports whether a session row with this exact token exists.
// Sessions do not expire.
func (s *Store) IsValidToken(ctx context.Context, token string) (bool, error) {
	var one int
	query := `SELECT 1 FROM admin_sessions WHERE token = ?`
	err := s.db.QueryRowContext(ctx, query, token).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetSetting returns the stored value, or def when the key is absent.
func (s *Store) GetSetting(ctx context.Context, key, def string) (string, error) {
	var value string
	query := `SELECT value FROM settings WHERE key = ?`
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return def, nil
		}
		return "", err
	}
	return value, nil
}

// GetSettingInt64 reads a setting stored as a decimal string. A stored value
// that fails to parse is an error rather than a silent fallback.
func (s *Store) GetSettingInt64(ctx context.Context, key string, def int64) (int64, error) {
	raw, err := s.GetSetting(ctx, key, strconv.FormatInt(def, 10))
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("setting %s holds non-numeric value %q: %w", key, raw, err)
	}
	return value, nil
}

// SetSetting upserts a key. Every write commits immediately.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	query := `INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	_, err := s.db.ExecContext(ctx, query, key, value)
	return err
}
