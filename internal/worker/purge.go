package worker

import (
	"context"
	"time"

	"github.com/dataxfer/submission-manager/internal/config"
	"github.com/dataxfer/submission-manager/internal/logging"
	"github.com/dataxfer/submission-manager/internal/metrics"
	"github.com/dataxfer/submission-manager/internal/repository"
)

// Purge is the background task of spec.md §4.7: every interval, it deletes
// submissions older than a computed threshold. Purge semantics (what
// "older than" means beyond CreatedDate) are repository-defined; this
// worker supplies only the cutoff.
type Purge struct {
	loop      *loop
	repo      repository.Repository
	threshold time.Duration
	logger    *logging.Logger
	metrics   *metrics.Metrics
}

// NewPurge builds the purge worker. It does not start until Start is called.
func NewPurge(repo repository.Repository, tunables config.Tunables, logger *logging.Logger, m *metrics.Metrics) *Purge {
	return &Purge{
		loop:      newLoop("purge-worker", tunables.PurgeSleep, tunables.PurgeSchedule, logger),
		repo:      repo,
		threshold: tunables.PurgeThreshold,
		logger:    logger,
		metrics:   m,
	}
}

// Start launches the loop.
func (p *Purge) Start() {
	p.loop.start(context.Background(), p.tick)
}

// Stop signals the loop to exit and waits for it to finish.
func (p *Purge) Stop() {
	p.loop.stop()
}

func (p *Purge) tick(ctx context.Context) {
	threshold := time.Now().Add(-p.threshold)
	purged, err := p.repo.PurgeSubmissionsOlderThan(ctx, threshold)
	if err != nil {
		p.logger.Entry().WithError(err).Error("purge submissions")
		return
	}
	p.metrics.PurgeCycles.Inc()
	p.metrics.PurgedTotal.Add(float64(purged))
}
