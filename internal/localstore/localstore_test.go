package localstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "admin.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreateSessionAndValidate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	token, err := store.CreateSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.GreaterOrEqual(t, len(token), 32)

	valid, err := store.IsValidToken(ctx, token)
	require.NoError(t, err)
	require.True(t, valid)

	valid, err = store.IsValidToken(ctx, "not-a-token")
	require.NoError(t, err)
	require.False(t, valid)

	// An empty token must not match anything either.
	valid, err = store.IsValidToken(ctx, "")
	require.NoError(t, err)
	require.False(t, valid)
}

func TestSessionsSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "admin.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	token, err := store.CreateSession(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	valid, err := reopened.IsValidToken(ctx, token)
	require.NoError(t, err)
	require.True(t, valid)
}

func TestTokensAreUnique(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := store.CreateSession(ctx)
		require.NoError(t, err)
		require.False(t, seen[token], "token issued twice")
		seen[token] = true
	}
}

func TestGetSettingDefault(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	value, err := store.GetSetting(ctx, "missing_key", "fallback")
	require.NoError(t, err)
	require.Equal(t, "fallback", value)
}

func TestSetSettingUpserts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetSetting(ctx, SettingVIPQuota, "123"))

	value, err := store.GetSetting(ctx, SettingVIPQuota, "0")
	require.NoError(t, err)
	require.Equal(t, "123", value)

	require.NoError(t, store.SetSetting(ctx, SettingVIPQuota, "456"))

	value, err = store.GetSetting(ctx, SettingVIPQuota, "0")
	require.NoError(t, err)
	require.Equal(t, "456", value)
}

func TestGetSettingInt64(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	value, err := store.GetSettingInt64(ctx, SettingDefaultQuota, DefaultDefaultQuota)
	require.NoError(t, err)
	require.Equal(t, DefaultDefaultQuota, value)

	require.NoError(t, store.SetSetting(ctx, SettingDefaultQuota, "75000"))
	value, err = store.GetSettingInt64(ctx, SettingDefaultQuota, DefaultDefaultQuota)
	require.NoError(t, err)
	require.Equal(t, int64(75000), value)

	require.NoError(t, store.SetSetting(ctx, SettingDefaultQuota, "garbage"))
	_, err = store.GetSettingInt64(ctx, SettingDefaultQuota, DefaultDefaultQuota)
	require.Error(t, err)
}
