package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/powclient/internal/dbx"
	"github.com/dmitrijs2005/powclient/internal/logging"
	"github.com/dmitrijs2005/powclient/internal/server/config"
	"github.com/dmitrijs2005/powclient/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

type env struct {
	db      *sql.DB
	rm      repomanager.RepositoryManager
	cfg     *config.Config
	users   *UserService
	storage *StorageService
	jobs    *JobService
}

func newEnv(t *testing.T, stepDelay time.Duration) *env {
	t.Helper()
	ctx := context.Background()

	db, err := repomanager.OpenDB(ctx, dbx.DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm := repomanager.NewSQLiteRepositoryManager()
	require.NoError(t, rm.RunMigrations(ctx, db))

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.JobStepDelay = stepDelay

	blobs := rm.Blobs(db)
	e := &env{
		db:      db,
		rm:      rm,
		cfg:     cfg,
		users:   NewUserService(db, rm, cfg),
		storage: NewStorageService(blobs),
		jobs:    NewJobService(db, rm, blobs, cfg, logging.Discard()),
	}
	t.Cleanup(e.jobs.Close)
	return e
}
