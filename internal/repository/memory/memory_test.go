package memory

import (
	"context"
	"testing"
	"time"

	"github.com/dataxfer/submission-manager/internal/model"
	"github.com/dataxfer/submission-manager/internal/repository"
)

func TestRegisterFramework_OnlyOncePerProcess(t *testing.T) {
	repo := New()
	ctx := context.Background()

	first, err := repo.RegisterFramework(ctx, &model.Framework{})
	if err != nil {
		t.Fatalf("RegisterFramework() error = %v", err)
	}
	if first.ID == 0 {
		t.Fatal("RegisterFramework() did not assign an id")
	}

	second, err := repo.RegisterFramework(ctx, &model.Framework{})
	if err != nil {
		t.Fatalf("RegisterFramework() second call error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second registration got id %d, want %d (invariant I3)", second.ID, first.ID)
	}
}

func TestFindJob_NotFound(t *testing.T) {
	repo := New()
	if _, err := repo.FindJob(context.Background(), "missing"); err != repository.ErrNotFound {
		t.Errorf("FindJob() error = %v, want ErrNotFound", err)
	}
}

func TestFindLastSubmission_ReturnsMostRecent(t *testing.T) {
	repo := New()
	ctx := context.Background()

	older := &model.Submission{JobID: "17", Status: model.StatusSucceeded, CreatedDate: time.Now().Add(-2 * time.Hour)}
	newer := &model.Submission{JobID: "17", Status: model.StatusRunning, CreatedDate: time.Now().Add(-1 * time.Hour)}
	if err := repo.CreateSubmission(ctx, older); err != nil {
		t.Fatalf("CreateSubmission(older) error = %v", err)
	}
	if err := repo.CreateSubmission(ctx, newer); err != nil {
		t.Fatalf("CreateSubmission(newer) error = %v", err)
	}

	got, err := repo.FindLastSubmission(ctx, "17")
	if err != nil {
		t.Fatalf("FindLastSubmission() error = %v", err)
	}
	if got.ID != newer.ID {
		t.Errorf("FindLastSubmission() = %v, want the newer submission %v", got.ID, newer.ID)
	}
}

func TestFindUnfinishedSubmissions_ExcludesTerminal(t *testing.T) {
	repo := New()
	ctx := context.Background()

	running := &model.Submission{JobID: "1", Status: model.StatusRunning}
	succeeded := &model.Submission{JobID: "2", Status: model.StatusSucceeded}
	for _, s := range []*model.Submission{running, succeeded} {
		if err := repo.CreateSubmission(ctx, s); err != nil {
			t.Fatalf("CreateSubmission() error = %v", err)
		}
	}

	unfinished, err := repo.FindUnfinishedSubmissions(ctx)
	if err != nil {
		t.Fatalf("FindUnfinishedSubmissions() error = %v", err)
	}
	if len(unfinished) != 1 || unfinished[0].ID != running.ID {
		t.Errorf("FindUnfinishedSubmissions() = %v, want only the running submission", unfinished)
	}
}

func TestPurgeSubmissionsOlderThan(t *testing.T) {
	repo := New()
	ctx := context.Background()
	now := time.Now()

	fresh := &model.Submission{JobID: "1", CreatedDate: now.Add(-1 * time.Hour)}
	old1 := &model.Submission{JobID: "2", CreatedDate: now.Add(-25 * time.Hour)}
	old2 := &model.Submission{JobID: "3", CreatedDate: now.Add(-100 * time.Hour)}
	for _, s := range []*model.Submission{fresh, old1, old2} {
		if err := repo.CreateSubmission(ctx, s); err != nil {
			t.Fatalf("CreateSubmission() error = %v", err)
		}
	}

	removed, err := repo.PurgeSubmissionsOlderThan(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("PurgeSubmissionsOlderThan() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	remaining, err := repo.FindUnfinishedSubmissions(ctx)
	if err != nil {
		t.Fatalf("FindUnfinishedSubmissions() error = %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != fresh.ID {
		t.Errorf("remaining submissions = %v, want only the fresh one", remaining)
	}
}

func TestUpdateSubmission_NotFound(t *testing.T) {
	repo := New()
	err := repo.UpdateSubmission(context.Background(), &model.Submission{ID: "missing"})
	if err != repository.ErrNotFound {
		t.Errorf("UpdateSubmission() error = %v, want ErrNotFound", err)
	}
}
