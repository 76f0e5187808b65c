package engine

import "fmt"

// SubmissionEngineFactory builds a fresh SubmissionEngine instance.
type SubmissionEngineFactory func() SubmissionEngine

// ExecutionEngineFactory builds a fresh ExecutionEngine instance.
type ExecutionEngineFactory func() ExecutionEngine

// Registry resolves submission- and execution-engine implementations by the
// name read from configuration (spec.md §4.2), replacing the source
// system's reflective class instantiation with a build-time factory table.
// Grounded on system/framework/core/registry.go's Registry type.
type Registry struct {
	submissionFactories map[string]SubmissionEngineFactory
	executionFactories  map[string]ExecutionEngineFactory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		submissionFactories: make(map[string]SubmissionEngineFactory),
		executionFactories:  make(map[string]ExecutionEngineFactory),
	}
}

// RegisterSubmissionEngine adds a submission-engine factory under name.
// Panics on duplicate registration, matching the teacher registry's
// fail-fast-at-init-time behavior for a programming error.
func (r *Registry) RegisterSubmissionEngine(name string, factory SubmissionEngineFactory) {
	if _, exists := r.submissionFactories[name]; exists {
		panic("submission engine already registered: " + name)
	}
	r.submissionFactories[name] = factory
}

// RegisterExecutionEngine adds an execution-engine factory under name.
func (r *Registry) RegisterExecutionEngine(name string, factory ExecutionEngineFactory) {
	if _, exists := r.executionFactories[name]; exists {
		panic("execution engine already registered: " + name)
	}
	r.executionFactories[name] = factory
}

// NewSubmissionEngine instantiates the submission engine registered under
// name. Returns an error rather than a bool so Manager.Initialize can wrap
// it as FRAMEWORK_0001.
func (r *Registry) NewSubmissionEngine(name string) (SubmissionEngine, error) {
	factory, ok := r.submissionFactories[name]
	if !ok {
		return nil, fmt.Errorf("no submission engine registered under name %q", name)
	}
	return factory(), nil
}

// NewExecutionEngine instantiates the execution engine registered under
// name.
func (r *Registry) NewExecutionEngine(name string) (ExecutionEngine, error) {
	factory, ok := r.executionFactories[name]
	if !ok {
		return nil, fmt.Errorf("no execution engine registered under name %q", name)
	}
	return factory(), nil
}
