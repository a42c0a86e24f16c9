package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/powclient/internal/client/auth"
	"github.com/dmitrijs2005/powclient/internal/client/models"
	"github.com/dmitrijs2005/powclient/internal/client/rpc"
	"github.com/dmitrijs2005/powclient/internal/client/transfer"
	"github.com/dmitrijs2005/powclient/internal/client/watch"
	"github.com/dmitrijs2005/powclient/internal/logging"
	pb "github.com/dmitrijs2005/powclient/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	userScope  = "/pow.user.v1."
	adminScope = "/pow.admin.v1."
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	user        pb.UserServiceClient
	admin       pb.AdminServiceClient
	token       *auth.Provider
	adminToken  *auth.Provider
	logger      logging.Logger
	dialOpts    []grpc.DialOption
}

func NewGRPCClient(endpointURL string, opts ...Option) (*GRPCClient, error) {
	c := &GRPCClient{
		endpointURL: endpointURL,
		token:       auth.NewProvider(auth.TokenKey),
		adminToken:  auth.NewProvider(auth.AdminTokenKey),
		logger:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("module", "grpc_client")

	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *GRPCClient) InitGRPCClient() error {
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(pb.CallOption()),
		grpc.WithChainUnaryInterceptor(
			c.token.UnaryInterceptor(userScope),
			c.adminToken.UnaryInterceptor(adminScope),
		),
		grpc.WithChainStreamInterceptor(
			c.token.StreamInterceptor(userScope),
			c.adminToken.StreamInterceptor(adminScope),
		),
	}
	opts = append(opts, c.dialOpts...)

	conn, err := grpc.NewClient(c.endpointURL, opts...)
	if err != nil {
		return err
	}
	c.conn = conn
	c.user = pb.NewUserServiceClient(conn)
	c.admin = pb.NewAdminServiceClient(conn)
	return nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

// SetToken replaces the user token attached to every later user-scoped call.
func (c *GRPCClient) SetToken(token string) {
	c.token.SetToken(token)
}

// SetAdminToken replaces the token attached to every later admin call.
func (c *GRPCClient) SetAdminToken(token string) {
	c.adminToken.SetToken(token)
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	_, err := c.BuildInfo(ctx)
	return err
}

func (c *GRPCClient) BuildInfo(ctx context.Context) (*models.BuildInfo, error) {
	return rpc.Unary(ctx, func(ctx context.Context) (*pb.BuildInfoResponse, error) {
		return c.user.BuildInfo(ctx, &emptypb.Empty{})
	}, toBuildInfo)
}

func (c *GRPCClient) HostID(ctx context.Context) (string, error) {
	return rpc.Unary(ctx, func(ctx context.Context) (*wrapperspb.StringValue, error) {
		return c.user.ID(ctx, &emptypb.Empty{})
	}, (*wrapperspb.StringValue).GetValue)
}

func (c *GRPCClient) Stage(ctx context.Context, data []byte) (string, error) {
	return c.StageSource(ctx, transfer.FromBytes(data))
}

func (c *GRPCClient) StageReader(ctx context.Context, r io.Reader) (string, error) {
	return c.StageSource(ctx, transfer.FromReader(r))
}

// StageSource uploads src and returns the CID the service assigned to it.
func (c *GRPCClient) StageSource(ctx context.Context, src transfer.Source) (string, error) {
	res, err := transfer.Upload(ctx,
		func(ctx context.Context) (grpc.ClientStreamingClient[pb.StageRequest, pb.StageResponse], error) {
			return c.user.Stage(ctx)
		},
		func(chunk []byte) *pb.StageRequest {
			return &pb.StageRequest{Chunk: chunk}
		},
		src,
		transfer.WithLogger(c.logger),
	)
	if err != nil {
		return "", err
	}
	return res.Cid, nil
}

// Get retrieves the data stored under cid as one buffer.
func (c *GRPCClient) Get(ctx context.Context, cid string, opts ...GetOption) ([]byte, error) {
	ctx, cancel := c.getContext(ctx, opts)
	defer cancel()

	return transfer.Reassemble(ctx, c.openGet(cid), getChunk, transfer.WithLogger(c.logger))
}

// GetTo streams the data stored under cid into w.
func (c *GRPCClient) GetTo(ctx context.Context, cid string, w io.Writer, opts ...GetOption) error {
	ctx, cancel := c.getContext(ctx, opts)
	defer cancel()

	return transfer.Copy(ctx, c.openGet(cid), getChunk, w, transfer.WithLogger(c.logger))
}

func (c *GRPCClient) getContext(ctx context.Context, opts []GetOption) (context.Context, context.CancelFunc) {
	o := &getOptions{}
	for _, fn := range opts {
		fn(o)
	}
	if o.timeout > 0 {
		return context.WithTimeout(ctx, o.timeout)
	}
	return context.WithCancel(ctx)
}

func (c *GRPCClient) openGet(cid string) func(context.Context) (grpc.ServerStreamingClient[pb.GetResponse], error) {
	return func(ctx context.Context) (grpc.ServerStreamingClient[pb.GetResponse], error) {
		return c.user.Get(ctx, &pb.GetRequest{Cid: cid})
	}
}

func getChunk(r *pb.GetResponse) []byte {
	return r.Chunk
}

// ApplyStorageConfig starts storing cid and returns the id of the created job.
func (c *GRPCClient) ApplyStorageConfig(ctx context.Context, cid string, opts ...ApplyOption) (string, error) {
	o := &applyOptions{}
	for _, fn := range opts {
		fn(o)
	}
	req := &pb.ApplyStorageConfigRequest{Cid: cid, Override: o.override, NoExec: o.noExec}

	return rpc.Unary(ctx, func(ctx context.Context) (*pb.ApplyStorageConfigResponse, error) {
		return c.user.ApplyStorageConfig(ctx, req)
	}, func(r *pb.ApplyStorageConfigResponse) string {
		return r.JobId
	})
}

func (c *GRPCClient) StorageJob(ctx context.Context, jobID string) (*models.StorageJob, error) {
	return rpc.Unary(ctx, func(ctx context.Context) (*pb.StorageJob, error) {
		r, err := c.user.StorageJob(ctx, &pb.StorageJobRequest{JobId: jobID})
		if err != nil {
			return nil, err
		}
		return r.StorageJob, nil
	}, func(j *pb.StorageJob) *models.StorageJob {
		job := toStorageJob(j)
		return &job
	})
}

// WatchStorageJobs calls handler for every update of the given jobs until the
// returned subscription is cancelled or the server ends the stream.
func (c *GRPCClient) WatchStorageJobs(ctx context.Context, handler func(models.StorageJob), jobIDs ...string) *watch.Subscription {
	req := &pb.WatchStorageJobsRequest{JobIds: jobIDs}

	return watch.Subscribe(ctx,
		func(ctx context.Context) (grpc.ServerStreamingClient[pb.WatchStorageJobsResponse], error) {
			return c.user.WatchStorageJobs(ctx, req)
		},
		func(r *pb.WatchStorageJobsResponse) (models.StorageJob, bool) {
			if r.StorageJob == nil {
				return models.StorageJob{}, false
			}
			return toStorageJob(r.StorageJob), true
		},
		handler,
		watch.WithLogger(c.logger.With("watch", "storage_jobs")),
	)
}

// WatchLogs calls handler for every log line produced for cid.
func (c *GRPCClient) WatchLogs(ctx context.Context, handler func(models.LogEntry), cid string, opts ...WatchLogsOption) *watch.Subscription {
	o := &watchLogsOptions{}
	for _, fn := range opts {
		fn(o)
	}
	req := &pb.WatchLogsRequest{Cid: cid, JobId: o.jobID, History: o.history}

	return watch.Subscribe(ctx,
		func(ctx context.Context) (grpc.ServerStreamingClient[pb.WatchLogsResponse], error) {
			return c.user.WatchLogs(ctx, req)
		},
		func(r *pb.WatchLogsResponse) (models.LogEntry, bool) {
			if r.LogEntry == nil {
				return models.LogEntry{}, false
			}
			return toLogEntry(r.LogEntry), true
		},
		handler,
		watch.WithLogger(c.logger.With("watch", "logs", "cid", cid)),
	)
}

// CreateUser asks the admin API for a new scoped identity. The returned token
// is not adopted automatically; pass it to SetToken to act as that user.
func (c *GRPCClient) CreateUser(ctx context.Context) (*models.User, error) {
	return rpc.Unary(ctx, func(ctx context.Context) (*pb.User, error) {
		r, err := c.admin.CreateUser(ctx, &emptypb.Empty{})
		if err != nil {
			return nil, err
		}
		return r.User, nil
	}, func(u *pb.User) *models.User {
		user := toUser(u)
		return &user
	})
}

func (c *GRPCClient) ListUsers(ctx context.Context) ([]models.User, error) {
	return rpc.Unary(ctx, func(ctx context.Context) (*pb.ListUsersResponse, error) {
		return c.admin.ListUsers(ctx, &emptypb.Empty{})
	}, func(r *pb.ListUsersResponse) []models.User {
		users := make([]models.User, 0, len(r.Users))
		for _, u := range r.Users {
			users = append(users, toUser(u))
		}
		return users
	})
}
