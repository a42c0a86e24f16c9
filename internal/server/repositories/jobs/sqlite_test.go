package jobs

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

	_, err = db.Exec(`
CREATE TABLE storage_jobs (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  cid TEXT NOT NULL,
  status INTEGER NOT NULL,
  error_cause TEXT NOT NULL DEFAULT '',
  created_at BIGINT NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSQLite_CreateGetUpdate(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	job := &models.StorageJob{ID: "j1", UserID: "u1", Cid: "c1", Status: models.JobStatusQueued, CreatedAt: time.Unix(100, 0)}
	require.NoError(t, r.Create(ctx, job))

	require.NoError(t, r.UpdateStatus(ctx, "j1", models.JobStatusFailed, "no deals"))

	got, err := r.Get(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusFailed, got.Status)
	assert.Equal(t, "no deals", got.ErrorCause)
	assert.Equal(t, time.Unix(100, 0).UTC(), got.CreatedAt)
}

func TestSQLite_UpdateMissing(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	err := r.UpdateStatus(context.Background(), "nope", models.JobStatusSuccess, "")
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = r.Get(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_UpdateFinalJobKeepsStatus(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	job := &models.StorageJob{ID: "j1", UserID: "u1", Cid: "c1", Status: models.JobStatusExecuting, CreatedAt: time.Unix(100, 0)}
	require.NoError(t, r.Create(ctx, job))
	require.NoError(t, r.UpdateStatus(ctx, "j1", models.JobStatusCanceled, "superseded"))

	err := r.UpdateStatus(ctx, "j1", models.JobStatusSuccess, "")
	require.ErrorIs(t, err, common.ErrorJobFinal)

	got, err := r.Get(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCanceled, got.Status)
	assert.Equal(t, "superseded", got.ErrorCause)
}

func TestSQLite_ListActive(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	for _, j := range []models.StorageJob{
		{ID: "a", UserID: "u1", Cid: "c1", Status: models.JobStatusQueued},
		{ID: "b", UserID: "u1", Cid: "c1", Status: models.JobStatusSuccess},
		{ID: "c", UserID: "u1", Cid: "c1", Status: models.JobStatusExecuting},
		{ID: "d", UserID: "u2", Cid: "c1", Status: models.JobStatusQueued},
	} {
		require.NoError(t, r.Create(ctx, &j))
	}

	active, err := r.ListActive(ctx, "u1", "c1")
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "a", active[0].ID)
	assert.Equal(t, "c", active[1].ID)
}
