// Package logs persists the log lines produced while jobs run.
package logs

import (
	"context"

	"github.com/dmitrijs2005/powclient/internal/server/models"
)

type Repository interface {
	Append(ctx context.Context, e *models.LogEntry) error
	// List returns the entries of userID for cid in insertion order. A
	// non-empty jobID narrows the result to that job.
	List(ctx context.Context, userID, cid, jobID string) ([]models.LogEntry, error)
}
