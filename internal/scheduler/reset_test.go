package scheduler

import (
	"context"
	"path/filepath"
	"testing"

	"admin-console/internal/localstore"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRunner(t *testing.T) (*ResetRunner, *localstore.Store) {
	t.Helper()
	local, err := localstore.Open(filepath.Join(t.TempDir(), "admin.db"))
	require.NoError(t, err)
	t.Cleanup(func() { local.Close() })
	return NewResetRunner(nil, local, zap.NewNop()), local
}

func TestQuotas_Defaults(t *testing.T) {
	runner, _ := newTestRunner(t)

	vip, def, err := runner.quotas(context.Background())
	require.NoError(t, err)
	require.Equal(t, localstore.DefaultVIPQuota, vip)
	require.Equal(t, localstore.DefaultDefaultQuota, def)
}

func TestQuotas_FromSettings(t *testing.T) {
	runner, local := newTestRunner(t)
	ctx := context.Background()

	require.NoError(t, local.SetSetting(ctx, localstore.SettingVIPQuota, "100000"))
	require.NoError(t, local.SetSetting(ctx, localstore.SettingDefaultQuota, "20000"))

	vip, def, err := runner.quotas(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(100000), vip)
	require.Equal(t, int64(20000), def)
}

func TestRun_RefusesOverlap(t *testing.T) {
	runner, _ := newTestRunner(t)

	// Simulate an in-flight run holding the lock.
	runner.mu.Lock()
	defer runner.mu.Unlock()

	count, err := runner.Run(context.Background(), "manual")
	require.ErrorIs(t, err, ErrRunInProgress)
	require.Zero(t, count)
}

func TestSchedule_ValidCronSpec(t *testing.T) {
	runner, _ := newTestRunner(t)

	c := cron.New()
	id, err := runner.Schedule(c)
	require.NoError(t, err)
	require.NotZero(t, id)
	require.Len(t, c.Entries(), 1)
}
