// Package configs persists which CIDs each user asked to store.
package configs

import (
	"context"

	"github.com/dmitrijs2005/powclient/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, userID, cid string) (*models.StorageConfig, error)
	Upsert(ctx context.Context, c *models.StorageConfig) error
}
