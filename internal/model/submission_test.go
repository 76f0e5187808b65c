package model

import "testing"

func TestSubmissionStatus_IsRunning(t *testing.T) {
	tests := []struct {
		status SubmissionStatus
		want   bool
	}{
		{StatusBooting, true},
		{StatusRunning, true},
		{StatusSucceeded, false},
		{StatusFailed, false},
		{StatusFailureOnSubmit, false},
		{StatusNeverExecuted, false},
		{StatusUnknown, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsRunning(); got != tt.want {
				t.Errorf("IsRunning() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubmissionStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status SubmissionStatus
		want   bool
	}{
		{StatusSucceeded, true},
		{StatusFailed, true},
		{StatusFailureOnSubmit, true},
		{StatusNeverExecuted, true},
		{StatusBooting, false},
		{StatusRunning, false},
		{StatusUnknown, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewTransient(t *testing.T) {
	s := NewTransient("job-17")

	if s.JobID != "job-17" {
		t.Errorf("JobID = %v, want job-17", s.JobID)
	}
	if s.Status != StatusNeverExecuted {
		t.Errorf("Status = %v, want %v", s.Status, StatusNeverExecuted)
	}
	if s.Progress != -1 {
		t.Errorf("Progress = %v, want -1", s.Progress)
	}
	if s.ID != "" {
		t.Errorf("ID = %v, want empty (unsaved)", s.ID)
	}
}
