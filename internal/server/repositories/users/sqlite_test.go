package users

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/powclient/internal/common"
	"github.com/dmitrijs2005/powclient/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE users (id TEXT PRIMARY KEY, created_at BIGINT NOT NULL);`)
	require.NoError(t, err)
	return db
}

func TestSQLite_CreateGetList(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &models.User{ID: "b", CreatedAt: time.Unix(20, 0)}))
	require.NoError(t, r.Create(ctx, &models.User{ID: "a", CreatedAt: time.Unix(10, 0)}))

	u, err := r.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, time.Unix(20, 0).UTC(), u.CreatedAt)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
}

func TestSQLite_DuplicateFails(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &models.User{ID: "a"}))
	require.Error(t, r.Create(ctx, &models.User{ID: "a"}))
}

func TestSQLite_GetMissing(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.Get(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
