package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"admin-console/internal/database"
	"admin-console/internal/localstore"
	"admin-console/internal/models"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ErrRunInProgress is returned when a reset is triggered while another run
// holds the lock. Callers decide whether that is a conflict (manual trigger)
// or a skip (cron).
var ErrRunInProgress = errors.New("a quota reset run is already in progress")

var (
	resetRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quota_reset_runs_total",
		Help: "Quota reset runs by trigger source and outcome.",
	}, []string{"trigger", "outcome"})

	resetUsers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quota_reset_users_total",
		Help: "Users whose quota was reset by the nightly job.",
	})
)

// ResetRunner executes the nightly quota reset. Both the cron trigger and the
// manual admin endpoint go through Run; the non-blocking lock keeps the two
// sources from overlapping.
type ResetRunner struct {
	store  *database.PostgresStore
	local  *localstore.Store
	logger *zap.Logger

	mu sync.Mutex
}

func NewResetRunner(store *database.PostgresStore, local *localstore.Store, logger *zap.Logger) *ResetRunner {
	return &ResetRunner{
		store:  store,
		local:  local,
		logger: logger,
	}
}

// quotas reads the current per-tier reset values, falling back to the
// hardcoded defaults when unset.
func (r *ResetRunner) quotas(ctx context.Context) (vip int64, def int64, err error) {
	vip, err = r.local.GetSettingInt64(ctx, localstore.SettingVIPQuota, localstore.DefaultVIPQuota)
	if err != nil {
		return 0, 0, err
	}
	def, err = r.local.GetSettingInt64(ctx, localstore.SettingDefaultQuota, localstore.DefaultDefaultQuota)
	if err != nil {
		return 0, 0, err
	}
	return vip, def, nil
}

// Run resets the quota of every non-deleted vip/default user to the configured
// tier value and zeroes their used quota. Users are processed sequentially;
// the first failure aborts the remaining loop and is returned. There is no
// partial-completion rollback and no retry.
func (r *ResetRunner) Run(ctx context.Context, triggeredBy string) (int, error) {
	if !r.mu.TryLock() {
		resetRuns.WithLabelValues(triggeredBy, "skipped").Inc()
		return 0, ErrRunInProgress
	}
	defer r.mu.Unlock()

	runID := uuid.New().String()
	log := r.logger.With(zap.String("run_id", runID), zap.String("triggered_by", triggeredBy))
	log.Info("starting quota reset run")

	count, err := r.run(ctx, log)
	if err != nil {
		resetRuns.WithLabelValues(triggeredBy, "error").Inc()
		log.Error("quota reset run failed", zap.Int("users_reset", count), zap.Error(err))
		return count, err
	}

	resetRuns.WithLabelValues(triggeredBy, "ok").Inc()
	log.Info("quota reset run complete", zap.Int("users_reset", count))
	return count, nil
}

func (r *ResetRunner) run(ctx context.Context, log *zap.Logger) (int, error) {
	vipQuota, defaultQuota, err := r.quotas(ctx)
	if err != nil {
		return 0, fmt.Errorf("read reset settings: %w", err)
	}

	candidates, err := r.store.ListResetCandidates(ctx)
	if err != nil {
		return 0, fmt.Errorf("list reset candidates: %w", err)
	}
	log.Info("found users eligible for reset", zap.Int("count", len(candidates)))

	reset := 0
	for _, c := range candidates {
		quota := defaultQuota
		if c.Group == models.GroupVIP {
			quota = vipQuota
		}

		found, err := r.store.ResetUserQuota(ctx, c.ID, quota)
		if err != nil {
			return reset, fmt.Errorf("reset quota for user %d: %w", c.ID, err)
		}
		if !found {
			// Deleted between the candidate query and this statement.
			log.Warn("user vanished during reset run", zap.Int64("user_id", c.ID))
			continue
		}

		reset++
		resetUsers.Inc()
		log.Info("reset user quota",
			zap.Int64("user_id", c.ID),
			zap.String("group", c.Group),
			zap.Int64("quota", quota),
		)
	}

	return reset, nil
}

// Schedule registers the nightly run at 00:00 in the cron's configured
// timezone. Errors from a scheduled run are already logged inside Run.
func (r *ResetRunner) Schedule(c *cron.Cron) (cron.EntryID, error) {
	return c.AddFunc("0 0 * * *", func() {
		if _, err := r.Run(context.Background(), "scheduled"); errors.Is(err, ErrRunInProgress) {
			r.logger.Warn("skipping scheduled quota reset, another run is in progress")
		}
	})
}
