// Package repository declares the persistence contract the manager depends
// on (spec.md §6). The schema and storage technology are the repository's
// own concern (spec.md §1 Non-goals); this package only fixes the
// operations the manager calls, plus two concrete implementations: an
// in-memory one for tests and examples, and a Postgres-backed one for
// production use.
package repository

import (
	"context"
	"time"

	"github.com/dataxfer/submission-manager/internal/model"
)

// Repository is the persistence contract consumed by the manager and both
// background workers.
type Repository interface {
	// RegisterFramework persists fw exactly once per process lifetime
	// (invariant I3) and returns the stored value, with ID assigned.
	RegisterFramework(ctx context.Context, fw *model.Framework) (*model.Framework, error)

	// FindJob returns the job with the given id, or ErrNotFound.
	FindJob(ctx context.Context, jobID string) (*model.Job, error)

	// FindConnection returns the connection with the given id, or
	// ErrNotFound.
	FindConnection(ctx context.Context, connectionID string) (*model.Connection, error)

	// FindLastSubmission returns the most recently created submission for
	// jobID, or ErrNotFound if the job has never been submitted.
	FindLastSubmission(ctx context.Context, jobID string) (*model.Submission, error)

	// FindUnfinishedSubmissions returns every submission whose status is
	// not terminal (spec.md §4.6 step 1 / P5).
	FindUnfinishedSubmissions(ctx context.Context) ([]*model.Submission, error)

	// CreateSubmission inserts a new submission row.
	CreateSubmission(ctx context.Context, s *model.Submission) error

	// UpdateSubmission persists changes to an existing submission row.
	UpdateSubmission(ctx context.Context, s *model.Submission) error

	// PurgeSubmissionsOlderThan deletes every submission whose
	// CreatedDate is strictly before threshold, and returns how many rows
	// were removed (spec.md §4.7, P3).
	PurgeSubmissionsOlderThan(ctx context.Context, threshold time.Time) (int64, error)
}
