// Package worker implements the two background loops spec.md §4.6/§4.7
// describes: the update worker and the purge worker. Both are built on the
// same ticker-plus-stop-channel shape as internal/marble/worker.go's Worker,
// the target-language replacement spec.md §9 asks for in place of thread
// interrupt: a timed wait on a shutdown signal rather than swallow-and-
// continue-on-interrupt.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dataxfer/submission-manager/internal/logging"
)

// loop is the shared run/stop machinery for both workers: a single-threaded
// loop gated by a running flag, woken either by a plain ticker or, when a
// cron expression is configured, by sleeping until the next scheduled fire
// time (grounded on the teacher's go.mod robfig/cron dependency, used here
// to compute that fire time instead of the teacher's own hand-rolled
// five-field parser).
type loop struct {
	name     string
	interval time.Duration
	schedule cron.Schedule

	logger *logging.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func newLoop(name string, interval time.Duration, cronExpr string, logger *logging.Logger) *loop {
	l := &loop{name: name, interval: interval, logger: logger}
	if cronExpr != "" {
		if sched, err := cron.ParseStandard(cronExpr); err == nil {
			l.schedule = sched
		} else {
			logger.Entry().WithError(err).WithField("schedule", cronExpr).
				Warn("invalid cron schedule, falling back to plain interval")
		}
	}
	return l
}

func (l *loop) nextWait() time.Duration {
	if l.schedule == nil {
		return l.interval
	}
	now := time.Now()
	next := l.schedule.Next(now)
	return next.Sub(now)
}

// start launches the loop in its own goroutine, calling tick once per wait
// interval until Stop is called or ctx is cancelled.
func (l *loop) start(ctx context.Context, tick func(ctx context.Context)) {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return
	}
	l.running = true
	l.stopCh = make(chan struct{})
	l.doneCh = make(chan struct{})
	l.mu.Unlock()

	go func() {
		defer close(l.doneCh)
		for {
			timer := time.NewTimer(l.nextWait())
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-l.stopCh:
				timer.Stop()
				return
			case <-timer.C:
				tick(ctx)
			}
		}
	}()
}

// stop signals the loop to exit and waits for it to finish; closing stopCh
// wakes the loop's select, so a shutdown mid-sleep is picked up promptly
// instead of waiting out a stale interval.
func (l *loop) stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	stopCh, doneCh := l.stopCh, l.doneCh
	l.mu.Unlock()

	close(stopCh)
	<-doneCh
}
