// Package ferrors provides the stable error-code taxonomy the submission
// manager surfaces to callers (spec.md §7).
package ferrors

import (
	"errors"
	"fmt"
)

// Code is one of the eight stable codes spec.md §7 mandates.
type Code string

const (
	// CodeEngineNotInstantiable: submission engine class not instantiable.
	CodeEngineNotInstantiable Code = "FRAMEWORK_0001"
	// CodeAlreadyRunning: job already has a running submission.
	CodeAlreadyRunning Code = "FRAMEWORK_0002"
	// CodeNotRunning: stop requested on a non-running submission.
	CodeNotRunning Code = "FRAMEWORK_0003"
	// CodeUnknownJob: unknown job id.
	CodeUnknownJob Code = "FRAMEWORK_0004"
	// CodeUnsupportedJobType: unsupported job type.
	CodeUnsupportedJobType Code = "FRAMEWORK_0005"
	// CodeCallbackNotInstantiable: callback instance (initializer or
	// destroyer) not instantiable.
	CodeCallbackNotInstantiable Code = "FRAMEWORK_0006"
	// CodeExecutionEngineNotInstantiable: execution engine class not
	// instantiable.
	CodeExecutionEngineNotInstantiable Code = "FRAMEWORK_0007"
	// CodeIncompatibleEngines: incompatible submission-engine /
	// execution-engine pair.
	CodeIncompatibleEngines Code = "FRAMEWORK_0008"
)

// ManagerError is a structured error tagged with one of the Code values
// above. Per spec.md §7, codes 0001/0007/0008 are fatal at Initialize time;
// the rest are returned to the caller of Submit/Stop/Status.
type ManagerError struct {
	Code    Code
	Message string
	Err     error
}

func (e *ManagerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ManagerError) Unwrap() error { return e.Err }

// New creates a ManagerError with no wrapped cause.
func New(code Code, message string) *ManagerError {
	return &ManagerError{Code: code, Message: message}
}

// Wrap creates a ManagerError wrapping an underlying cause.
func Wrap(code Code, message string, err error) *ManagerError {
	return &ManagerError{Code: code, Message: message, Err: err}
}

// As extracts a *ManagerError from an error chain, if present.
func As(err error) (*ManagerError, bool) {
	var me *ManagerError
	ok := errors.As(err, &me)
	return me, ok
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	me, ok := As(err)
	return ok && me.Code == code
}

// Convenience constructors, one per taxonomy entry (spec.md §7).

func EngineNotInstantiable(engineClass string, err error) *ManagerError {
	return Wrap(CodeEngineNotInstantiable, fmt.Sprintf("submission engine %q not instantiable", engineClass), err)
}

func ExecutionEngineNotInstantiable(engineClass string, err error) *ManagerError {
	return Wrap(CodeExecutionEngineNotInstantiable, fmt.Sprintf("execution engine %q not instantiable", engineClass), err)
}

func IncompatibleEngines(submissionEngine, executionEngine string) *ManagerError {
	return New(CodeIncompatibleEngines, fmt.Sprintf("submission engine %q does not accept execution engine %q", submissionEngine, executionEngine))
}

func AlreadyRunning(jobID string) *ManagerError {
	return New(CodeAlreadyRunning, fmt.Sprintf("job %q already has a running submission", jobID))
}

func NotRunning(jobID string) *ManagerError {
	return New(CodeNotRunning, fmt.Sprintf("job %q has no running submission to stop", jobID))
}

func UnknownJob(jobID string) *ManagerError {
	return New(CodeUnknownJob, fmt.Sprintf("unknown job %q", jobID))
}

func UnsupportedJobType(jobType string) *ManagerError {
	return New(CodeUnsupportedJobType, fmt.Sprintf("unsupported job type %q", jobType))
}

func CallbackNotInstantiable(kind, connectorID string) *ManagerError {
	return New(CodeCallbackNotInstantiable, fmt.Sprintf("%s callback not instantiable for connector %q", kind, connectorID))
}
