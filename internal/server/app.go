// Package server wires the development server together: configuration,
// storage backends, services and the gRPC endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/dmitrijs2005/powclient/internal/dbx"
	"github.com/dmitrijs2005/powclient/internal/logging"
	"github.com/dmitrijs2005/powclient/internal/server/config"
	"github.com/dmitrijs2005/powclient/internal/server/repositories/blobs"
	"github.com/dmitrijs2005/powclient/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/powclient/internal/server/services"
	"github.com/google/uuid"

	gs "github.com/dmitrijs2005/powclient/internal/server/grpc"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	userService    *services.UserService
	storageService *services.StorageService
	jobService     *services.JobService
	closeOnce      sync.Once
}

// NewApp opens the database, runs migrations and builds the services. Logs
// are written as JSON to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(w, nil)))

	if c.HostID == "" {
		c.HostID = uuid.NewString()
	}

	var (
		dialect dbx.Dialect
		rm      repomanager.RepositoryManager
	)
	switch c.DatabaseDriver {
	case config.DriverPostgres:
		dialect, rm = dbx.DialectPostgres, repomanager.NewPostgresRepositoryManager()
	default:
		dialect, rm = dbx.DialectSQLite, repomanager.NewSQLiteRepositoryManager()
	}

	db, err := repomanager.OpenDB(ctx, dialect, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	blobStore, err := newBlobStore(ctx, c, rm, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := &App{
		config:         c,
		logger:         logger,
		db:             db,
		userService:    services.NewUserService(db, rm, c),
		storageService: services.NewStorageService(blobStore),
		jobService:     services.NewJobService(db, rm, blobStore, c, logger),
	}
	logger.Info(ctx, "App initialized", "db", dialect.String(), "blobs", c.BlobBackend, "host_id", c.HostID)
	return app, nil
}

func newBlobStore(ctx context.Context, c *config.Config, rm repomanager.RepositoryManager, db *sql.DB) (blobs.Repository, error) {
	if c.BlobBackend != config.BlobBackendS3 {
		return rm.Blobs(db), nil
	}

	client, err := blobs.NewS3Client(ctx, blobs.S3Settings{
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 init error: %w", err)
	}
	return blobs.NewS3Repository(client, c.S3Bucket, "blobs/"), nil
}

// Run serves gRPC until ctx is cancelled and then releases every resource.
func (app *App) Run(ctx context.Context) error {
	defer app.Close()

	app.logger.Info(ctx, "Starting app...")

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.config.HostID, app.config.AdminToken,
		app.logger, app.userService, app.storageService, app.jobService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "gRPC server failed", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}

func (app *App) Close() {
	app.closeOnce.Do(func() {
		app.jobService.Close()
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "db close failed", "error", err)
		}
	})
}
