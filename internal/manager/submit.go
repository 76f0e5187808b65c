package manager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dataxfer/submission-manager/internal/connector"
	"github.com/dataxfer/submission-manager/internal/ferrors"
	"github.com/dataxfer/submission-manager/internal/formutil"
	"github.com/dataxfer/submission-manager/internal/model"
	"github.com/dataxfer/submission-manager/internal/repository"
)

// Submit runs the strict sequence of spec.md §4.3: load, materialize,
// assemble, declare resources, select and run the connector initializer,
// prepare the framework side, then submit under the process-wide mutex.
func (m *Manager) Submit(ctx context.Context, jobID string) (*model.Submission, error) {
	start := time.Now()

	job, err := m.repo.FindJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ferrors.UnknownJob(jobID)
		}
		return nil, err
	}

	conn, err := m.repo.FindConnection(ctx, job.ConnectionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ferrors.UnknownJob(jobID)
		}
		return nil, err
	}

	connEntry, ok := m.connectors.GetConnector(job.ConnectorID)
	if !ok {
		return nil, ferrors.UnknownJob(jobID)
	}

	connectorConnectionConfig := formutil.MaterializeAsMap(conn.Forms.Connector)
	connectorJobConfig := formutil.MaterializeAsMap(job.Forms.Connector)
	frameworkConnectionConfig := formutil.MaterializeAsMap(conn.Forms.Framework)
	frameworkJobConfig := formutil.MaterializeAsMap(job.Forms.Framework)

	var frameworkJob formutil.FrameworkJobConfig
	if err := formutil.Materialize(job.Forms.Framework, &frameworkJob); err != nil {
		return nil, fmt.Errorf("materialize framework job config: %w", err)
	}

	request, err := m.executionEngine.CreateSubmissionRequest(ctx)
	if err != nil {
		return nil, err
	}
	request.JobType = job.Type
	request.JobName = job.Name
	request.JobID = job.ID
	request.ConnectorID = job.ConnectorID
	request.Summary = model.NewTransient(job.ID)
	request.ConnectorConnectionConfig = connectorConnectionConfig
	request.ConnectorJobConfig = connectorJobConfig
	request.FrameworkConnectionConfig = frameworkConnectionConfig
	request.FrameworkJobConfig = frameworkJobConfig
	request.Resources = append(request.Resources, resourceIdentifiers(m.submissionEngine, m.executionEngine, job.ConnectorID)...)

	var callbacks connector.Callbacks
	switch job.Type {
	case model.JobTypeImport:
		callbacks = connEntry.Importer
	case model.JobTypeExport:
		callbacks = connEntry.Exporter
	default:
		return nil, ferrors.UnsupportedJobType(string(job.Type))
	}

	if callbacks.NewInitializer == nil || callbacks.NewDestroyer == nil {
		return nil, ferrors.CallbackNotInstantiable("initializer/destroyer", job.ConnectorID)
	}

	callCtx := model.Context{JobID: job.ID, ConnectorID: job.ConnectorID}

	initializer := callbacks.NewInitializer()
	if initializer == nil {
		return nil, ferrors.CallbackNotInstantiable("initializer", job.ConnectorID)
	}
	if err := initializer.Initialize(callCtx, connectorConnectionConfig, connectorJobConfig); err != nil {
		return nil, err
	}
	request.Initializer = initializer
	request.Resources = append(request.Resources, initializer.Jars()...)

	destroyer := callbacks.NewDestroyer()
	if destroyer == nil {
		return nil, ferrors.CallbackNotInstantiable("destroyer", job.ConnectorID)
	}
	request.Destroyer = destroyer

	switch job.Type {
	case model.JobTypeImport:
		request.OutputDirectory = frameworkJob.OutputDirectory
		if err := m.executionEngine.PrepareImportSubmission(ctx, request); err != nil {
			return nil, err
		}
	case model.JobTypeExport:
		// Placeholder path (spec.md §1, §9): prepared symmetrically but the
		// source system never implements the export shape.
		if err := m.executionEngine.PrepareExportSubmission(ctx, request); err != nil {
			return nil, err
		}
	}

	summary, err := m.guardedSubmit(ctx, callCtx, request)

	outcome := "accepted"
	if err != nil {
		outcome = "error"
	} else if summary.Status == model.StatusFailureOnSubmit {
		outcome = "rejected"
	}
	m.metrics.RecordSubmit(string(job.Type), outcome, time.Since(start).Seconds())

	return summary, err
}

// guardedSubmit is step 8 of spec.md §4.3, the region serialized by the
// process-wide submission mutex: it is the sole guarantor of invariant I1.
// Any submit failure — a false return or an error from the engine call —
// runs the destroyer, closing the gap spec.md §7/§9 flags.
func (m *Manager) guardedSubmit(ctx context.Context, callCtx model.Context, request *model.SubmissionRequest) (*model.Submission, error) {
	m.submitMu.Lock()
	defer m.submitMu.Unlock()

	last, err := m.repo.FindLastSubmission(ctx, request.JobID)
	switch {
	case err == nil && last.Status.IsRunning():
		return nil, ferrors.AlreadyRunning(request.JobID)
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	if request.Summary.ID == "" {
		request.Summary.ID = uuid.NewString()
	}

	accepted, submitErr := m.submissionEngine.Submit(ctx, request)
	if !accepted || submitErr != nil {
		if request.Destroyer != nil {
			if derr := request.Destroyer.Run(callCtx); derr != nil {
				m.logger.WithJob(request.JobID).WithError(derr).Error("destroyer failed after rejected submit")
			}
		}
		request.Summary.Status = model.StatusFailureOnSubmit
		request.Summary.Progress = -1
	} else {
		status, err := m.submissionEngine.Status(ctx, request.Summary.ExternalID)
		if err != nil || status == "" {
			status = model.StatusBooting
		}
		request.Summary.Status = status
	}

	now := time.Now()
	request.Summary.CreatedDate = now
	request.Summary.UpdateDate = now

	if err := m.repo.CreateSubmission(ctx, request.Summary); err != nil {
		return nil, err
	}
	return request.Summary, nil
}
