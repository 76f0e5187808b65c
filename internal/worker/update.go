package worker

import (
	"context"

	"github.com/dataxfer/submission-manager/internal/config"
	"github.com/dataxfer/submission-manager/internal/logging"
	"github.com/dataxfer/submission-manager/internal/metrics"
	"github.com/dataxfer/submission-manager/internal/model"
	"github.com/dataxfer/submission-manager/internal/repository"
)

// RefreshFunc is the manager's shared update primitive (spec.md §4.5),
// injected rather than imported directly so this package never depends on
// internal/manager.
type RefreshFunc func(ctx context.Context, s *model.Submission) error

// Update is the background task of spec.md §4.6: every interval, it
// refreshes every unfinished submission.
type Update struct {
	loop    *loop
	repo    repository.Repository
	refresh RefreshFunc
	logger  *logging.Logger
	metrics *metrics.Metrics
}

// NewUpdate builds the update worker. It does not start until Start is
// called.
func NewUpdate(repo repository.Repository, refresh RefreshFunc, tunables config.Tunables, logger *logging.Logger, m *metrics.Metrics) *Update {
	return &Update{
		loop:    newLoop("update-worker", tunables.UpdateSleep, tunables.UpdateSchedule, logger),
		repo:    repo,
		refresh: refresh,
		logger:  logger,
		metrics: m,
	}
}

// Start launches the loop.
func (u *Update) Start() {
	u.loop.start(context.Background(), u.tick)
}

// Stop signals the loop to exit and waits for it to finish.
func (u *Update) Stop() {
	u.loop.stop()
}

func (u *Update) tick(ctx context.Context) {
	submissions, err := u.repo.FindUnfinishedSubmissions(ctx)
	if err != nil {
		u.logger.Entry().WithError(err).Error("list unfinished submissions")
		return
	}

	running := 0
	for _, s := range submissions {
		if err := u.refresh(ctx, s); err != nil {
			u.logger.WithJob(s.JobID).WithError(err).Error("refresh submission")
			continue
		}
		if s.Status.IsRunning() {
			running++
		}
	}

	u.metrics.UpdateCycles.Inc()
	u.metrics.RunningGauge.Set(float64(running))
}
