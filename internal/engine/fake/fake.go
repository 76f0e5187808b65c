// Package fake implements both engine SPIs entirely in memory. It never
// talks to a real cluster, so it does not count as "a concrete submission
// or execution engine" in the product sense spec.md's Non-goals exclude —
// it plays the same role as the teacher's mock repositories: a reference
// implementation of the contract used by tests and examples.
package fake

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dataxfer/submission-manager/internal/engine"
	"github.com/dataxfer/submission-manager/internal/model"
)

// ExecutionEngineName is the Name() this package's ExecutionEngine reports,
// used by SubmissionEngine.Accepts.
const ExecutionEngineName = "fake"

// ExecutionEngine is a trivial engine.ExecutionEngine.
type ExecutionEngine struct{}

func NewExecutionEngine() *ExecutionEngine { return &ExecutionEngine{} }

func (e *ExecutionEngine) Initialize(context.Context, engine.Config) error { return nil }
func (e *ExecutionEngine) Destroy(context.Context) error                  { return nil }
func (e *ExecutionEngine) Name() string                                   { return ExecutionEngineName }

func (e *ExecutionEngine) CreateSubmissionRequest(context.Context) (*model.SubmissionRequest, error) {
	return &model.SubmissionRequest{}, nil
}

func (e *ExecutionEngine) PrepareImportSubmission(_ context.Context, req *model.SubmissionRequest) error {
	req.Resources = append(req.Resources, "fake-execution-engine-import")
	return nil
}

// PrepareExportSubmission is a placeholder, matching the source system's
// unimplemented export path (spec.md §1, §9).
func (e *ExecutionEngine) PrepareExportSubmission(_ context.Context, req *model.SubmissionRequest) error {
	req.Resources = append(req.Resources, "fake-execution-engine-export")
	return nil
}

// SubmissionEngine is an in-memory engine.SubmissionEngine. Outcome, when
// set, overrides Submit's default "always accept" behavior, for tests that
// need FAILURE_ON_SUBMIT or a submit error.
type SubmissionEngine struct {
	mu       sync.Mutex
	accepts  map[string]bool
	statuses map[string]model.SubmissionStatus

	// Outcome controls what Submit returns for every call; nil means
	// "accept and assign a fresh external id".
	Outcome func(req *model.SubmissionRequest) (bool, error)
}

func NewSubmissionEngine(acceptedExecutionEngines ...string) *SubmissionEngine {
	accepts := make(map[string]bool, len(acceptedExecutionEngines))
	for _, name := range acceptedExecutionEngines {
		accepts[name] = true
	}
	return &SubmissionEngine{
		accepts:  accepts,
		statuses: make(map[string]model.SubmissionStatus),
	}
}

func (e *SubmissionEngine) Initialize(context.Context, engine.Config) error { return nil }
func (e *SubmissionEngine) Destroy(context.Context) error                  { return nil }

func (e *SubmissionEngine) Accepts(executionEngineName string) bool {
	return e.accepts[executionEngineName]
}

func (e *SubmissionEngine) Submit(_ context.Context, req *model.SubmissionRequest) (bool, error) {
	if e.Outcome != nil {
		return e.Outcome(req)
	}
	externalID := uuid.NewString()
	req.Summary.ExternalID = externalID

	e.mu.Lock()
	e.statuses[externalID] = model.StatusRunning
	e.mu.Unlock()
	return true, nil
}

func (e *SubmissionEngine) Stop(_ context.Context, externalID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.statuses[externalID] = model.StatusSucceeded
	return nil
}

// SetStatus lets tests drive the next Status() result for externalID.
func (e *SubmissionEngine) SetStatus(externalID string, status model.SubmissionStatus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.statuses[externalID] = status
}

func (e *SubmissionEngine) Status(_ context.Context, externalID string) (model.SubmissionStatus, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.statuses[externalID]
	if !ok {
		return model.StatusUnknown, nil
	}
	return s, nil
}

func (e *SubmissionEngine) Progress(_ context.Context, externalID string) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.statuses[externalID] == model.StatusRunning {
		return 0.5, nil
	}
	return -1, nil
}

func (e *SubmissionEngine) Stats(context.Context, string) (model.Counters, error) {
	return model.Counters{"records": 100}, nil
}

func (e *SubmissionEngine) ExternalLink(_ context.Context, externalID string) (string, error) {
	return "https://cluster.example/jobs/" + externalID, nil
}
