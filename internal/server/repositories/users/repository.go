package users

import (
	"context"

	"github.com/dmitrijs2005/powclient/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}
