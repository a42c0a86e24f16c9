package blobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/powclient/internal/common"
	"github.com/dmitrijs2005/powclient/internal/dbx"
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

func (r *SQLRepository) Put(ctx context.Context, cid string, data []byte) error {
	query := r.dialect.Rebind(`INSERT INTO blobs (cid, data, size, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (cid) DO NOTHING`)

	if data == nil {
		data = []byte{}
	}
	if _, err := r.db.ExecContext(ctx, query, cid, data, int64(len(data)), time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to store blob: %w", err)
	}
	return nil
}

func (r *SQLRepository) Get(ctx context.Context, cid string) ([]byte, error) {
	query := r.dialect.Rebind(`SELECT data FROM blobs WHERE cid = ?`)

	var data []byte
	if err := r.db.QueryRowContext(ctx, query, cid).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return data, nil
}

func (r *SQLRepository) Exists(ctx context.Context, cid string) (bool, error) {
	query := r.dialect.Rebind(`SELECT COUNT(*) FROM blobs WHERE cid = ?`)

	var n int
	if err := r.db.QueryRowContext(ctx, query, cid).Scan(&n); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}
