// Package model holds the data types tracked by the submission manager:
// framework metadata, connections, jobs, and the submissions created from
// them.
package model

import "time"

// JobType enumerates the two kinds of job the manager accepts.
type JobType string

const (
	JobTypeImport JobType = "IMPORT"
	JobTypeExport JobType = "EXPORT"
)

// SubmissionStatus is the lifecycle state of a Submission, reported by the
// submission engine and mirrored into the repository.
type SubmissionStatus string

const (
	StatusNeverExecuted   SubmissionStatus = "NEVER_EXECUTED"
	StatusBooting         SubmissionStatus = "BOOTING"
	StatusRunning         SubmissionStatus = "RUNNING"
	StatusSucceeded       SubmissionStatus = "SUCCEEDED"
	StatusFailed          SubmissionStatus = "FAILED"
	StatusFailureOnSubmit SubmissionStatus = "FAILURE_ON_SUBMIT"
	StatusUnknown         SubmissionStatus = "UNKNOWN"
)

// IsRunning reports whether a submission in this status is still being
// executed remotely (BOOTING or RUNNING). UNKNOWN is neither running nor
// terminal.
func (s SubmissionStatus) IsRunning() bool {
	switch s {
	case StatusBooting, StatusRunning:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the update worker may stop polling a
// submission in this status. NEVER_EXECUTED is transient-only and never
// persisted, so it is terminal by construction.
func (s SubmissionStatus) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusFailureOnSubmit, StatusNeverExecuted:
		return true
	default:
		return false
	}
}

// Counters holds optional execution statistics reported by the submission
// engine once a submission has stopped running.
type Counters map[string]int64

// Framework is the static schema describing the connection form set and the
// two job form sets (import, export). It is registered with the repository
// exactly once per process lifetime (spec invariant I3); ID is zero until
// that registration happens.
type Framework struct {
	ID              int64
	ConnectionForms FormSet
	ImportJobForms  FormSet
	ExportJobForms  FormSet
}

// FormSet is a named group of form values, partitioned into the
// framework-owned fields and the connector-owned fields. The concrete field
// schema lives with each connector/framework configuration struct; FormSet
// only carries the materialized values.
type FormSet struct {
	Framework map[string]string
	Connector map[string]string
}

// Connection is a named, persisted set of form values a job refers to.
type Connection struct {
	ID          string
	Name        string
	ConnectorID string
	Forms       FormSet
}

// Job is a named, persisted job definition.
type Job struct {
	ID           string
	Name         string
	Type         JobType
	ConnectorID  string
	ConnectionID string
	Forms        FormSet
}

// Submission is the runtime record of one attempt to run a Job.
type Submission struct {
	ID           string
	JobID        string
	ExternalID   string
	Status       SubmissionStatus
	Progress     float64 // [0,1], or -1 when unknown/not running
	Counters     Counters
	ExternalLink string
	CreatedDate  time.Time
	UpdateDate   time.Time
}

// NewTransient builds the unsaved NEVER_EXECUTED record status() returns
// when a job has no submission history yet (spec.md §4.5).
func NewTransient(jobID string) *Submission {
	return &Submission{
		JobID:    jobID,
		Status:   StatusNeverExecuted,
		Progress: -1,
	}
}
