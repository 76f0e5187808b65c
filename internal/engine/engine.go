// Package engine defines the two pluggable SPIs the manager composes
// (spec.md §4.2) and a name-to-factory Registry that resolves them by
// configured name instead of by reflective class loading — the
// target-language replacement spec.md §9 calls for, grounded on
// system/framework/core/registry.go's ServiceRegistry/ServiceFactory
// pattern (panic on duplicate registration, deterministic order).
package engine

import (
	"context"

	"github.com/dataxfer/submission-manager/internal/config"
	"github.com/dataxfer/submission-manager/internal/model"
)

// SubmissionEngine is the driver-facing contract: submit a prepared
// request, stop by external id, and poll status/progress/stats/link
// (spec.md §4.2).
type SubmissionEngine interface {
	Initialize(ctx context.Context, cfg Config) error
	Destroy(ctx context.Context) error

	// Accepts reports whether this submission engine can drive the named
	// execution engine (invariant I4).
	Accepts(executionEngineName string) bool

	// Submit returns true once the remote cluster has accepted the job
	// and an external id has been attached to request.Summary. A false
	// return or a non-nil error both mean the submission was rejected;
	// the manager runs the destroyer in either case.
	Submit(ctx context.Context, request *model.SubmissionRequest) (bool, error)

	Stop(ctx context.Context, externalID string) error

	Status(ctx context.Context, externalID string) (model.SubmissionStatus, error)
	Progress(ctx context.Context, externalID string) (float64, error)
	Stats(ctx context.Context, externalID string) (model.Counters, error)
	ExternalLink(ctx context.Context, externalID string) (string, error)
}

// ExecutionEngine shapes a submission request for the submission engine
// (spec.md §4.2).
type ExecutionEngine interface {
	Initialize(ctx context.Context, cfg Config) error
	Destroy(ctx context.Context) error

	// Name identifies this execution engine implementation for the
	// SubmissionEngine.Accepts compatibility check (invariant I4).
	Name() string

	CreateSubmissionRequest(ctx context.Context) (*model.SubmissionRequest, error)
	PrepareImportSubmission(ctx context.Context, request *model.SubmissionRequest) error
	// PrepareExportSubmission is declared but unimplemented in the source
	// system; spec.md treats the export path as a symmetrical placeholder
	// (spec.md §1, §9 Open Questions).
	PrepareExportSubmission(ctx context.Context, request *model.SubmissionRequest) error
}

// Config is the engine-specific configuration subtree handed to
// Initialize, scoped to the engine's configuration prefix
// (spec.md §4.1 step 6) via config.Prefixed.
type Config = config.Source
