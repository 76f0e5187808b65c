package fake

import (
	"context"
	"errors"
	"testing"

	"github.com/dataxfer/submission-manager/internal/model"
)

func TestSubmissionEngine_DefaultSubmitAccepts(t *testing.T) {
	e := NewSubmissionEngine(ExecutionEngineName)
	req := &model.SubmissionRequest{Summary: &model.Submission{}}

	accepted, err := e.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !accepted {
		t.Fatal("Submit() accepted = false, want true")
	}
	if req.Summary.ExternalID == "" {
		t.Error("Submit() did not assign an external id")
	}

	status, err := e.Status(context.Background(), req.Summary.ExternalID)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status != model.StatusRunning {
		t.Errorf("Status() = %v, want %v", status, model.StatusRunning)
	}
}

func TestSubmissionEngine_OutcomeOverride(t *testing.T) {
	e := NewSubmissionEngine(ExecutionEngineName)
	e.Outcome = func(*model.SubmissionRequest) (bool, error) {
		return false, errors.New("cluster unreachable")
	}

	accepted, err := e.Submit(context.Background(), &model.SubmissionRequest{Summary: &model.Submission{}})
	if accepted {
		t.Error("Submit() accepted = true, want false")
	}
	if err == nil {
		t.Error("Submit() error = nil, want non-nil")
	}
}

func TestSubmissionEngine_Accepts(t *testing.T) {
	e := NewSubmissionEngine(ExecutionEngineName)

	if !e.Accepts(ExecutionEngineName) {
		t.Errorf("Accepts(%q) = false, want true", ExecutionEngineName)
	}
	if e.Accepts("some-other-engine") {
		t.Error("Accepts(some-other-engine) = true, want false")
	}
}

func TestSubmissionEngine_StatusUnknownExternalID(t *testing.T) {
	e := NewSubmissionEngine(ExecutionEngineName)

	status, err := e.Status(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status != model.StatusUnknown {
		t.Errorf("Status() = %v, want %v", status, model.StatusUnknown)
	}
}

func TestExecutionEngine_PrepareImportSubmission(t *testing.T) {
	e := NewExecutionEngine()
	req := &model.SubmissionRequest{}

	if err := e.PrepareImportSubmission(context.Background(), req); err != nil {
		t.Fatalf("PrepareImportSubmission() error = %v", err)
	}
	if len(req.Resources) != 1 {
		t.Errorf("Resources = %v, want exactly one entry", req.Resources)
	}
}
