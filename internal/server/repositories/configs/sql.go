package configs

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

func (r *SQLRepository) Get(ctx context.Context, userID, cid string) (*models.StorageConfig, error) {
	query := r.dialect.Rebind(`SELECT user_id, cid, updated_at FROM storage_configs WHERE user_id = ? AND cid = ?`)

	var (
		c       models.StorageConfig
		updated int64
	)
	err := r.db.QueryRowContext(ctx, query, userID, cid).Scan(&c.UserID, &c.Cid, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	c.UpdatedAt = time.Unix(updated, 0).UTC()
	return &c, nil
}

func (r *SQLRepository) Upsert(ctx context.Context, c *models.StorageConfig) error {
	query := r.dialect.Rebind(`INSERT INTO storage_configs (user_id, cid, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id, cid) DO UPDATE SET updated_at = excluded.updated_at`)

	if _, err := r.db.ExecContext(ctx, query, c.UserID, c.Cid, c.UpdatedAt.Unix()); err != nil {
		return fmt.Errorf("failed to upsert storage config: %w", err)
	}
	return nil
}
