package janitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nursultanov/budgetbook/internal/metrics"
	"github.com/robfig/cron/v3"
)

const defaultMaxAge = 30 * 24 * time.Hour

type staleDeleter interface {
	DeleteStaleUnconfirmed(ctx context.Context, cutoff time.Time) (int, error)
}

// Janitor purges unconfirmed accounts that never completed email
// confirmation, freeing their email address for re-registration.
type Janitor struct {
	users  staleDeleter
	logger *slog.Logger
	maxAge time.Duration
	cron   *cron.Cron
}

func New(users staleDeleter, logger *slog.Logger) *Janitor {
	return &Janitor{
		users:  users,
		logger: logger.With("component", "janitor"),
		maxAge: defaultMaxAge,
		cron:   cron.New(),
	}
}

// Start schedules the daily purge. Errors inside a run are logged, not fatal;
// the next run simply tries again.
func (j *Janitor) Start() error {
	_, err := j.cron.AddFunc("@daily", func() {
		if _, err := j.RunOnce(context.Background()); err != nil {
			j.logger.Error("purge stale accounts", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule janitor: %w", err)
	}
	j.cron.Start()
	return nil
}

// Stop halts the schedule and returns a context that is done once any
// in-flight run finishes.
func (j *Janitor) Stop() context.Context {
	return j.cron.Stop()
}

// RunOnce deletes unconfirmed accounts older than the retention window.
func (j *Janitor) RunOnce(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-j.maxAge)
	n, err := j.users.DeleteStaleUnconfirmed(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete stale unconfirmed: %w", err)
	}
	if n > 0 {
		metrics.StaleAccountsPurged.Add(float64(n))
		j.logger.Info("purged stale unconfirmed accounts", "count", n)
	}
	return n, nil
}
