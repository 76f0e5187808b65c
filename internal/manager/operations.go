package manager

import (
	"context"
	"errors"
	"time"

	"github.com/dataxfer/submission-manager/internal/ferrors"
	"github.com/dataxfer/submission-manager/internal/model"
	"github.com/dataxfer/submission-manager/internal/repository"
)

// Stop runs spec.md §4.4: stop is a no-op error on a non-running submission,
// otherwise it asks the submission engine to cancel and immediately
// refreshes the record so the returned summary reflects the post-stop state
// (stop is advisory; the submission may still be reported as running).
func (m *Manager) Stop(ctx context.Context, jobID string) (*model.Submission, error) {
	last, err := m.repo.FindLastSubmission(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			m.metrics.RecordStop("rejected")
			return nil, ferrors.NotRunning(jobID)
		}
		return nil, err
	}
	if !last.Status.IsRunning() {
		m.metrics.RecordStop("rejected")
		return nil, ferrors.NotRunning(jobID)
	}

	if err := m.submissionEngine.Stop(ctx, last.ExternalID); err != nil {
		m.logger.WithJob(jobID).WithError(err).Warn("submission engine stop call failed")
	}

	if err := m.update(ctx, last); err != nil {
		return nil, err
	}
	m.metrics.RecordStop("ok")
	return last, nil
}

// Status runs spec.md §4.5: a job with no submission history returns a
// transient NEVER_EXECUTED record with no persistence side effects; a
// terminal submission is returned as-is; otherwise it is refreshed first.
func (m *Manager) Status(ctx context.Context, jobID string) (*model.Submission, error) {
	last, err := m.repo.FindLastSubmission(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.NewTransient(jobID), nil
		}
		return nil, err
	}
	if last.Status.IsTerminal() {
		return last, nil
	}
	if err := m.update(ctx, last); err != nil {
		return nil, err
	}
	return last, nil
}

// update is the single refresh primitive of spec.md §4.5, shared between
// the interactive Stop/Status operations and the update worker: it queries
// the submission engine for new status, link, and (depending on whether the
// new status is running) progress or counters, then persists the result.
func (m *Manager) update(ctx context.Context, s *model.Submission) error {
	status, err := m.submissionEngine.Status(ctx, s.ExternalID)
	if err != nil {
		return err
	}
	s.Status = status

	if link, err := m.submissionEngine.ExternalLink(ctx, s.ExternalID); err == nil {
		s.ExternalLink = link
	}

	if status.IsRunning() {
		progress, err := m.submissionEngine.Progress(ctx, s.ExternalID)
		if err != nil {
			progress = s.Progress
		}
		s.Progress = progress
		s.Counters = nil
	} else {
		s.Progress = -1
		if counters, err := m.submissionEngine.Stats(ctx, s.ExternalID); err == nil {
			s.Counters = counters
		}
	}

	s.UpdateDate = time.Now()
	return m.repo.UpdateSubmission(ctx, s)
}
