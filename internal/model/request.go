package model

// SubmissionRequest is assembled fresh by the manager for every submit call
// (spec.md §3) and handed to the execution engine and then the submission
// engine. It never outlives a single Submit invocation.
type SubmissionRequest struct {
	JobType JobType
	JobName string
	JobID   string

	// Summary is the in-flight submission record; the submission engine
	// attaches ExternalID to it on acceptance.
	Summary *Submission

	ConnectorID string

	// Materialized configuration objects, one per spec.md §4.3 step 2.
	ConnectorConnectionConfig map[string]string
	ConnectorJobConfig        map[string]string
	FrameworkConnectionConfig map[string]string
	FrameworkJobConfig        map[string]string

	// Resources lists jar/class identifiers the remote execution
	// environment must have on its classpath (spec.md §4.3 step 4).
	Resources []string

	// Callbacks bound for this job's connector and type (spec.md §4.3 step 5).
	Initializer Initializer
	Destroyer   Destroyer

	// OutputDirectory is set only for IMPORT jobs (spec.md §4.3 step 7).
	OutputDirectory string
}

// Initializer is the connector-supplied hook run before submission to
// collect additional resources (spec.md §6).
type Initializer interface {
	Initialize(ctx Context, connectorConnectionConfig, connectorJobConfig map[string]string) error
	Jars() []string
}

// Destroyer is the connector-supplied cleanup hook, run when a submission
// was never accepted by the remote cluster (spec.md §6).
type Destroyer interface {
	Run(ctx Context) error
}

// Context is the minimal connector-facing execution context passed to
// Initializer/Destroyer callbacks. It is deliberately narrow: the connector
// registry, repository, and system configuration are all external
// collaborators (spec.md §1) and the manager only needs to identify the job.
type Context struct {
	JobID       string
	ConnectorID string
}
