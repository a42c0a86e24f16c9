package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/powclient/internal/common"
	"github.com/dmitrijs2005/powclient/internal/dbx"
	"github.com/dmitrijs2005/powclient/internal/server/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, dialect: dbx.DialectPostgres}
}

func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, dialect: dbx.DialectSQLite}
}

const jobColumns = `id, user_id, cid, status, error_cause, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(s scanner) (*models.StorageJob, error) {
	var (
		j       models.StorageJob
		created int64
	)
	if err := s.Scan(&j.ID, &j.UserID, &j.Cid, &j.Status, &j.ErrorCause, &created); err != nil {
		return nil, err
	}
	j.CreatedAt = time.Unix(created, 0).UTC()
	return &j, nil
}

func (r *SQLRepository) Create(ctx context.Context, job *models.StorageJob) error {
	query := r.dialect.Rebind(`INSERT INTO storage_jobs (` + jobColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.UserID, job.Cid, job.Status, job.ErrorCause, job.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (r *SQLRepository) Get(ctx context.Context, id string) (*models.StorageJob, error) {
	query := r.dialect.Rebind(`SELECT ` + jobColumns + ` FROM storage_jobs WHERE id = ?`)

	j, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return j, nil
}

func (r *SQLRepository) UpdateStatus(ctx context.Context, id string, status models.JobStatus, errorCause string) error {
	query := r.dialect.Rebind(`UPDATE storage_jobs SET status = ?, error_cause = ?
		WHERE id = ? AND status IN (?, ?)`)

	result, err := r.db.ExecContext(ctx, query, status, errorCause, id, models.JobStatusQueued, models.JobStatusExecuting)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}

	var one int
	err = r.db.QueryRowContext(ctx, r.dialect.Rebind(`SELECT 1 FROM storage_jobs WHERE id = ?`), id).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return common.ErrorNotFound
	case err != nil:
		return fmt.Errorf("db error: %w", err)
	}
	return common.ErrorJobFinal
}

func (r *SQLRepository) ListActive(ctx context.Context, userID, cid string) ([]models.StorageJob, error) {
	query := r.dialect.Rebind(`SELECT ` + jobColumns + ` FROM storage_jobs
		WHERE user_id = ? AND cid = ? AND status IN (?, ?)
		ORDER BY created_at, id`)

	rows, err := r.db.QueryContext(ctx, query, userID, cid, models.JobStatusQueued, models.JobStatusExecuting)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.StorageJob
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
