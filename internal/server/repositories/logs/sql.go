package logs

import (
	"context"
	"fmt"
	"time"

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

func (r *SQLRepository) Append(ctx context.Context, e *models.LogEntry) error {
	query := r.dialect.Rebind(`INSERT INTO job_logs (user_id, cid, job_id, time, message) VALUES (?, ?, ?, ?, ?)`)

	if _, err := r.db.ExecContext(ctx, query, e.UserID, e.Cid, e.JobID, e.Time.Unix(), e.Message); err != nil {
		return fmt.Errorf("failed to append log: %w", err)
	}
	return nil
}

func (r *SQLRepository) List(ctx context.Context, userID, cid, jobID string) ([]models.LogEntry, error) {
	query := `SELECT user_id, cid, job_id, time, message FROM job_logs WHERE user_id = ? AND cid = ?`
	args := []any{userID, cid}
	if jobID != "" {
		query += ` AND job_id = ?`
		args = append(args, jobID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.LogEntry
	for rows.Next() {
		var (
			e  models.LogEntry
			ts int64
		)
		if err := rows.Scan(&e.UserID, &e.Cid, &e.JobID, &ts, &e.Message); err != nil {
			return nil, err
		}
		e.Time = time.Unix(ts, 0).UTC()
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
