package database

import (
	"context"
	"errors"

	"admin-console/internal/models"

	"github.com/jackc/pgx/v5"
)

// GetUserByID returns the user's public fields, or nil if no matching
// non-deleted row exists.
func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, display_name, "group", quota, used_quota
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
		LIMIT 1
	`
	var user models.User

	err := s.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.DisplayName,
		&user.Group,
		&user.Quota,
		&user.UsedQuota,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// UpdateUserGroup sets the user's group. Any string is accepted; only the
// reset job cares about "vip" and "default".
func (s *PostgresStore) UpdateUserGroup(ctx context.Context, id int64, group string) (bool, error) {
	query := `UPDATE users SET "group" = $1 WHERE id = $2 AND deleted_at IS NULL`
	res, err := s.pool.Exec(ctx, query, group, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// IncrementUserQuota adds delta to the user's quota. Delta may be negative
// and no floor is enforced.
func (s *PostgresStore) IncrementUserQuota(ctx context.Context, id int64, delta int64) (bool, error) {
	query := `UPDATE users SET quota = quota + $1 WHERE id = $2 AND deleted_at IS NULL`
	res, err := s.pool.Exec(ctx, query, delta, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// ResetUserQuota sets quota to an absolute value and zeroes used_quota in the
// same statement.
func (s *PostgresStore) ResetUserQuota(ctx context.Context, id int64, quota int64) (bool, error) {
	query := `UPDATE users SET quota = $1, used_quota = 0 WHERE id = $2 AND deleted_at IS NULL`
	res, err := s.pool.Exec(ctx, query, quota, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// ResetCandidate is the slice of a user row the nightly job needs.
type ResetCandidate struct {
	ID    int64
	Group string
}

// ListResetCandidates returns every non-deleted user in the vip or default
// group. Users in other groups are never touched by the scheduled reset.
func (s *PostgresStore) ListResetCandidates(ctx context.Context) ([]ResetCandidate, error) {
	query := `
		SELECT id, "group"
		FROM users
		WHERE "group" IN ($1, $2) AND deleted_at IS NULL
		ORDER BY id
	`
	rows, err := s.pool.Query(ctx, query, models.GroupVIP, models.GroupDefault)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []ResetCandidate
	for rows.Next() {
		var c ResetCandidate
		if err := rows.Scan(&c.ID, &c.Group); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if candidates == nil {
		return []ResetCandidate{}, nil
	}

	return candidates, nil
}
