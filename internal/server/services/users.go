// Package services contains the business logic of the development server:
// user management, content staging and the storage job runner.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/powclient/internal/common"
	"github.com/dmitrijs2005/powclient/internal/server/auth"
	"github.com/dmitrijs2005/powclient/internal/server/config"
	"github.com/dmitrijs2005/powclient/internal/server/models"
	"github.com/dmitrijs2005/powclient/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// UserService creates users and turns their bearer tokens back into ids.
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
	now           func() time.Time
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidity,
		now:           time.Now,
	}
}

// Create registers a new user and returns it with a freshly signed token.
func (s *UserService) Create(ctx context.Context) (*models.User, string, error) {
	user := &models.User{ID: uuid.NewString(), CreatedAt: s.now().UTC()}

	if err := s.repomanager.Users(s.db).Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repomanager.Users(s.db).List(ctx)
}

func (s *UserService) IssueToken(userID string) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// Authenticate verifies token and checks that its user still exists.
func (s *UserService) Authenticate(ctx context.Context, token string) (string, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return "", err
	}

	if _, err := s.repomanager.Users(s.db).Get(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}
	return userID, nil
}
