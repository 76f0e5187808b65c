package worker

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dataxfer/submission-manager/internal/config"
	"github.com/dataxfer/submission-manager/internal/metrics"
	"github.com/dataxfer/submission-manager/internal/model"
	"github.com/dataxfer/submission-manager/internal/repository/memory"
)

func TestPurge_TickRemovesOnlySubmissionsOlderThanThreshold(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	now := time.Now()

	fresh := &model.Submission{JobID: "1", CreatedDate: now.Add(-1 * time.Hour)}
	old := &model.Submission{JobID: "2", CreatedDate: now.Add(-48 * time.Hour)}
	repo.CreateSubmission(ctx, fresh)
	repo.CreateSubmission(ctx, old)

	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)
	p := NewPurge(repo, config.Tunables{PurgeThreshold: 24 * time.Hour, PurgeSleep: time.Hour}, testLogger(), m)
	p.tick(ctx)

	remaining, err := repo.FindUnfinishedSubmissions(ctx)
	if err != nil {
		t.Fatalf("FindUnfinishedSubmissions() error = %v", err)
	}
	if len(remaining) != 1 || remaining[0].JobID != "1" {
		t.Errorf("remaining submissions = %v, want only job 1", remaining)
	}
}
