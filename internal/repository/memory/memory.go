// Package memory implements repository.Repository entirely in process
// memory. It backs the module's unit tests and doubles as a runnable
// example of the contract; it has no persistence guarantees across
// restarts.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dataxfer/submission-manager/internal/model"
	"github.com/dataxfer/submission-manager/internal/repository"
)

// Repository is an in-memory, mutex-guarded repository.Repository.
type Repository struct {
	mu sync.Mutex

	framework   *model.Framework
	jobs        map[string]*model.Job
	connections map[string]*model.Connection
	submissions map[string]*model.Submission // by submission ID
}

// New creates an empty in-memory repository.
func New() *Repository {
	return &Repository{
		jobs:        make(map[string]*model.Job),
		connections: make(map[string]*model.Connection),
		submissions: make(map[string]*model.Submission),
	}
}

// PutJob seeds a job, used by tests and examples.
func (r *Repository) PutJob(j *model.Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[j.ID] = j
}

// PutConnection seeds a connection, used by tests and examples.
func (r *Repository) PutConnection(c *model.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connections[c.ID] = c
}

// RegisterFramework implements repository.Repository.
func (r *Repository) RegisterFramework(_ context.Context, fw *model.Framework) (*model.Framework, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.framework != nil {
		// Already registered this process; return the stored value
		// unchanged, matching invariant I3 (registered exactly once).
		return r.framework, nil
	}
	stored := *fw
	stored.ID = 1
	r.framework = &stored
	return r.framework, nil
}

// FindJob implements repository.Repository.
func (r *Repository) FindJob(_ context.Context, jobID string) (*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return j, nil
}

// FindConnection implements repository.Repository.
func (r *Repository) FindConnection(_ context.Context, connectionID string) (*model.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.connections[connectionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

// FindLastSubmission implements repository.Repository.
func (r *Repository) FindLastSubmission(_ context.Context, jobID string) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest *model.Submission
	for _, s := range r.submissions {
		if s.JobID != jobID {
			continue
		}
		if latest == nil || s.CreatedDate.After(latest.CreatedDate) {
			latest = s
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

// FindUnfinishedSubmissions implements repository.Repository.
func (r *Repository) FindUnfinishedSubmissions(_ context.Context) ([]*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Submission, 0)
	for _, s := range r.submissions {
		if !s.Status.IsTerminal() {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateSubmission implements repository.Repository.
func (r *Repository) CreateSubmission(_ context.Context, s *model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedDate.IsZero() {
		s.CreatedDate = time.Now().UTC()
	}
	s.UpdateDate = s.CreatedDate
	cp := *s
	r.submissions[s.ID] = &cp
	return nil
}

// UpdateSubmission implements repository.Repository.
func (r *Repository) UpdateSubmission(_ context.Context, s *model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.submissions[s.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *s
	r.submissions[s.ID] = &cp
	return nil
}

// PurgeSubmissionsOlderThan implements repository.Repository.
func (r *Repository) PurgeSubmissionsOlderThan(_ context.Context, threshold time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, s := range r.submissions {
		if s.CreatedDate.Before(threshold) {
			delete(r.submissions, id)
			removed++
		}
	}
	return removed, nil
}
