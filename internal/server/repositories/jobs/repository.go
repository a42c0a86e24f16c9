// Package jobs persists storage jobs.
package jobs

import (
	"context"

	"github.com/dmitrijs2005/powclient/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, job *models.StorageJob) error
	Get(ctx context.Context, id string) (*models.StorageJob, error)
	// UpdateStatus only touches a job that is not final yet; a final one
	// yields common.ErrorJobFinal and keeps its status.
	UpdateStatus(ctx context.Context, id string, status models.JobStatus, errorCause string) error
	// ListActive returns the jobs of userID for cid that are not final yet.
	ListActive(ctx context.Context, userID, cid string) ([]models.StorageJob, error)
}
