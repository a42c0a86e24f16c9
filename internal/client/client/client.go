package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/powclient/internal/client/models"
	"github.com/dmitrijs2005/powclient/internal/client/transfer"
	"github.com/dmitrijs2005/powclient/internal/client/watch"
)

type Client interface {
	Close() error
	SetToken(token string)
	SetAdminToken(token string)
	Ping(ctx context.Context) error
	BuildInfo(ctx context.Context) (*models.BuildInfo, error)
	HostID(ctx context.Context) (string, error)
	Stage(ctx context.Context, data []byte) (string, error)
	StageReader(ctx context.Context, r io.Reader) (string, error)
	StageSource(ctx context.Context, src transfer.Source) (string, error)
	Get(ctx context.Context, cid string, opts ...GetOption) ([]byte, error)
	GetTo(ctx context.Context, cid string, w io.Writer, opts ...GetOption) error
	ApplyStorageConfig(ctx context.Context, cid string, opts ...ApplyOption) (string, error)
	StorageJob(ctx context.Context, jobID string) (*models.StorageJob, error)
	WatchStorageJobs(ctx context.Context, handler func(models.StorageJob), jobIDs ...string) *watch.Subscription
	WatchLogs(ctx context.Context, handler func(models.LogEntry), cid string, opts ...WatchLogsOption) *watch.Subscription
	CreateUser(ctx context.Context) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}
