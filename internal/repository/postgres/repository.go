package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"

	"github.com/dataxfer/submission-manager/internal/model"
	"github.com/dataxfer/submission-manager/internal/repository"
)

// Repository implements repository.Repository against PostgreSQL.
type Repository struct {
	db *sqlx.DB
}

// New wraps an already-connected, already-migrated *sqlx.DB.
func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func marshalForms(f model.FormSet) ([]byte, error) { return json.Marshal(f) }

func unmarshalForms(raw []byte) (model.FormSet, error) {
	var f model.FormSet
	if len(raw) == 0 {
		return f, nil
	}
	err := json.Unmarshal(raw, &f)
	return f, err
}

// RegisterFramework implements repository.Repository. Invariant I3 is
// enforced with a guard read: if a row already exists it is returned
// unchanged rather than inserting a duplicate.
func (r *Repository) RegisterFramework(ctx context.Context, fw *model.Framework) (*model.Framework, error) {
	var existing model.Framework
	var connForms, importForms, exportForms []byte

	row := r.db.QueryRowContext(ctx, `SELECT id, connection_forms, import_job_forms, export_job_forms FROM framework ORDER BY id LIMIT 1`)
	err := row.Scan(&existing.ID, &connForms, &importForms, &exportForms)
	switch {
	case err == nil:
		existing.ConnectionForms, _ = unmarshalForms(connForms)
		existing.ImportJobForms, _ = unmarshalForms(importForms)
		existing.ExportJobForms, _ = unmarshalForms(exportForms)
		return &existing, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("read framework: %w", err)
	}

	connForms, err = marshalForms(fw.ConnectionForms)
	if err != nil {
		return nil, fmt.Errorf("marshal connection forms: %w", err)
	}
	importForms, err = marshalForms(fw.ImportJobForms)
	if err != nil {
		return nil, fmt.Errorf("marshal import forms: %w", err)
	}
	exportForms, err = marshalForms(fw.ExportJobForms)
	if err != nil {
		return nil, fmt.Errorf("marshal export forms: %w", err)
	}

	var id int64
	insertErr := r.db.QueryRowContext(ctx,
		`INSERT INTO framework (connection_forms, import_job_forms, export_job_forms) VALUES ($1, $2, $3) RETURNING id`,
		connForms, importForms, exportForms,
	).Scan(&id)
	if insertErr != nil {
		return nil, fmt.Errorf("insert framework: %w", insertErr)
	}

	stored := *fw
	stored.ID = id
	return &stored, nil
}

// FindJob implements repository.Repository.
func (r *Repository) FindJob(ctx context.Context, jobID string) (*model.Job, error) {
	var row struct {
		ID           string `db:"id"`
		Name         string `db:"name"`
		Type         string `db:"type"`
		ConnectorID  string `db:"connector_id"`
		ConnectionID string `db:"connection_id"`
		Forms        []byte `db:"forms"`
	}
	err := r.db.GetContext(ctx, &row, `SELECT id, name, type, connector_id, connection_id, forms FROM job WHERE id = $1`, jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find job: %w", err)
	}
	forms, err := unmarshalForms(row.Forms)
	if err != nil {
		return nil, fmt.Errorf("unmarshal job forms: %w", err)
	}
	return &model.Job{
		ID: row.ID, Name: row.Name, Type: model.JobType(row.Type),
		ConnectorID: row.ConnectorID, ConnectionID: row.ConnectionID, Forms: forms,
	}, nil
}

// FindConnection implements repository.Repository.
func (r *Repository) FindConnection(ctx context.Context, connectionID string) (*model.Connection, error) {
	var row struct {
		ID          string `db:"id"`
		Name        string `db:"name"`
		ConnectorID string `db:"connector_id"`
		Forms       []byte `db:"forms"`
	}
	err := r.db.GetContext(ctx, &row, `SELECT id, name, connector_id, forms FROM connection WHERE id = $1`, connectionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find connection: %w", err)
	}
	forms, err := unmarshalForms(row.Forms)
	if err != nil {
		return nil, fmt.Errorf("unmarshal connection forms: %w", err)
	}
	return &model.Connection{ID: row.ID, Name: row.Name, ConnectorID: row.ConnectorID, Forms: forms}, nil
}

type submissionRow struct {
	ID           string         `db:"id"`
	JobID        string         `db:"job_id"`
	ExternalID   string         `db:"external_id"`
	Status       string         `db:"status"`
	Progress     float64        `db:"progress"`
	Counters     sql.NullString `db:"counters"`
	ExternalLink string         `db:"external_link"`
	CreatedDate  time.Time      `db:"created_date"`
	UpdateDate   time.Time      `db:"update_date"`
}

func (row submissionRow) toModel() (*model.Submission, error) {
	s := &model.Submission{
		ID: row.ID, JobID: row.JobID, ExternalID: row.ExternalID,
		Status: model.SubmissionStatus(row.Status), Progress: row.Progress,
		ExternalLink: row.ExternalLink, CreatedDate: row.CreatedDate, UpdateDate: row.UpdateDate,
	}
	if row.Counters.Valid && row.Counters.String != "" {
		var c model.Counters
		if err := json.Unmarshal([]byte(row.Counters.String), &c); err != nil {
			return nil, fmt.Errorf("unmarshal counters: %w", err)
		}
		s.Counters = c
	}
	return s, nil
}

// FindLastSubmission implements repository.Repository.
func (r *Repository) FindLastSubmission(ctx context.Context, jobID string) (*model.Submission, error) {
	var row submissionRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, job_id, external_id, status, progress, counters::text AS counters, external_link, created_date, update_date
		FROM submission WHERE job_id = $1 ORDER BY created_date DESC LIMIT 1`, jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find last submission: %w", err)
	}
	return row.toModel()
}

// FindUnfinishedSubmissions implements repository.Repository.
func (r *Repository) FindUnfinishedSubmissions(ctx context.Context) ([]*model.Submission, error) {
	var rows []submissionRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, job_id, external_id, status, progress, counters::text AS counters, external_link, created_date, update_date
		FROM submission
		WHERE status NOT IN ($1, $2, $3, $4)`,
		string(model.StatusSucceeded), string(model.StatusFailed), string(model.StatusFailureOnSubmit), string(model.StatusNeverExecuted))
	if err != nil {
		return nil, fmt.Errorf("find unfinished submissions: %w", err)
	}
	out := make([]*model.Submission, 0, len(rows))
	for _, row := range rows {
		s, err := row.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// CreateSubmission implements repository.Repository.
func (r *Repository) CreateSubmission(ctx context.Context, s *model.Submission) error {
	if s.CreatedDate.IsZero() {
		s.CreatedDate = time.Now().UTC()
	}
	s.UpdateDate = s.CreatedDate

	countersJSON, err := countersToJSON(s.Counters)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO submission (id, job_id, external_id, status, progress, counters, external_link, created_date, update_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.JobID, s.ExternalID, string(s.Status), s.Progress, countersJSON, s.ExternalLink, s.CreatedDate, s.UpdateDate)
	if err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

// UpdateSubmission implements repository.Repository.
func (r *Repository) UpdateSubmission(ctx context.Context, s *model.Submission) error {
	countersJSON, err := countersToJSON(s.Counters)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE submission
		SET external_id = $2, status = $3, progress = $4, counters = $5, external_link = $6, update_date = $7
		WHERE id = $1`,
		s.ID, s.ExternalID, string(s.Status), s.Progress, countersJSON, s.ExternalLink, s.UpdateDate)
	if err != nil {
		return fmt.Errorf("update submission: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update submission rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// PurgeSubmissionsOlderThan implements repository.Repository.
func (r *Repository) PurgeSubmissionsOlderThan(ctx context.Context, threshold time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM submission WHERE created_date < $1`, threshold)
	if err != nil {
		return 0, fmt.Errorf("purge submissions: %w", err)
	}
	return res.RowsAffected()
}

func countersToJSON(c model.Counters) ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal counters: %w", err)
	}
	return raw, nil
}
