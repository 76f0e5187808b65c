package worker

import (
	"context"
	"testing"
	"time"

	"github.com/dataxfer/submission-manager/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.New("worker-test", "error", "text")
}

func TestNewLoop_PlainInterval(t *testing.T) {
	l := newLoop("t", 5*time.Minute, "", testLogger())
	if l.schedule != nil {
		t.Fatal("schedule should be nil with no cron expression")
	}
	if got := l.nextWait(); got != 5*time.Minute {
		t.Errorf("nextWait() = %v, want 5m", got)
	}
}

func TestNewLoop_CronSchedule(t *testing.T) {
	l := newLoop("t", time.Hour, "*/5 * * * *", testLogger())
	if l.schedule == nil {
		t.Fatal("schedule should be set for a valid cron expression")
	}
	if got := l.nextWait(); got <= 0 || got > 5*time.Minute {
		t.Errorf("nextWait() = %v, want (0, 5m]", got)
	}
}

func TestNewLoop_InvalidCronFallsBackToInterval(t *testing.T) {
	l := newLoop("t", 3*time.Minute, "not a cron expression", testLogger())
	if l.schedule != nil {
		t.Fatal("schedule should remain nil when the cron expression fails to parse")
	}
	if got := l.nextWait(); got != 3*time.Minute {
		t.Errorf("nextWait() = %v, want 3m", got)
	}
}

func TestLoop_StartStop(t *testing.T) {
	l := newLoop("t", time.Millisecond, "", testLogger())

	ticks := make(chan struct{}, 16)
	l.start(context.Background(), func(ctx context.Context) {
		select {
		case ticks <- struct{}{}:
		default:
		}
	})

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("loop never ticked within 1s")
	}

	l.stop()
}

func TestLoop_StopBeforeStartIsNoop(t *testing.T) {
	l := newLoop("t", time.Minute, "", testLogger())
	l.stop() // must not block or panic
}

func TestLoop_StartTwiceIsIdempotent(t *testing.T) {
	l := newLoop("t", time.Minute, "", testLogger())
	l.start(context.Background(), func(context.Context) {})
	l.start(context.Background(), func(context.Context) {}) // second call is a no-op
	l.stop()
}
