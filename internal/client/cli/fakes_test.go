package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/powclient/internal/client/client"
	"github.com/dmitrijs2005/powclient/internal/client/config"
	"github.com/dmitrijs2005/powclient/internal/client/models"
	"github.com/dmitrijs2005/powclient/internal/client/transfer"
	"github.com/dmitrijs2005/powclient/internal/client/watch"
	"github.com/dmitrijs2005/powclient/internal/logging"
	"github.com/mitchellh/go-homedir"
	"google.golang.org/grpc"
)

// fakeStream replays msgs, then ends with err (io.EOF when nil). With block
// set it waits for the context instead of ending.
type fakeStream[T any] struct {
	grpc.ClientStream
	ctx   context.Context
	msgs  []*T
	err   error
	block bool
}

func (s *fakeStream[T]) Recv() (*T, error) {
	if len(s.msgs) > 0 {
		m := s.msgs[0]
		s.msgs = s.msgs[1:]
		return m, nil
	}
	if s.block {
		<-s.ctx.Done()
		return nil, s.ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	return nil, io.EOF
}

func subscribe[T any](ctx context.Context, s *fakeStream[T], handler func(T)) *watch.Subscription {
	return watch.Subscribe(ctx,
		func(ctx context.Context) (grpc.ServerStreamingClient[T], error) {
			s.ctx = ctx
			return s, nil
		},
		func(m *T) (T, bool) { return *m, true },
		handler,
	)
}

type fakeClient struct {
	closed int

	hostID  string
	info    *models.BuildInfo
	staged  []byte
	cid     string
	blobs   map[string][]byte
	err     error
	applied string
	nOpts   int
	jobID   string
	job     *models.StorageJob
	user    *models.User
	users   []models.User

	watchedJobs []string
	jobStream   *fakeStream[models.StorageJob]
	logCid      string
	logStream   *fakeStream[models.LogEntry]
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error               { f.closed++; return nil }
func (f *fakeClient) SetToken(string)            {}
func (f *fakeClient) SetAdminToken(string)       {}
func (f *fakeClient) Ping(context.Context) error { return f.err }

func (f *fakeClient) BuildInfo(context.Context) (*models.BuildInfo, error) {
	return f.info, f.err
}
func (f *fakeClient) HostID(context.Context) (string, error) { return f.hostID, f.err }

func (f *fakeClient) Stage(ctx context.Context, data []byte) (string, error) {
	return f.StageReader(ctx, bytes.NewReader(data))
}
func (f *fakeClient) StageReader(ctx context.Context, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.staged = b
	return f.cid, f.err
}
func (f *fakeClient) StageSource(context.Context, transfer.Source) (string, error) {
	return f.cid, f.err
}

func (f *fakeClient) Get(_ context.Context, cid string, _ ...client.GetOption) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.blobs[cid], nil
}
func (f *fakeClient) GetTo(ctx context.Context, cid string, w io.Writer, opts ...client.GetOption) error {
	b, err := f.Get(ctx, cid, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func (f *fakeClient) ApplyStorageConfig(_ context.Context, cid string, opts ...client.ApplyOption) (string, error) {
	f.applied = cid
	f.nOpts = len(opts)
	return f.jobID, f.err
}
func (f *fakeClient) StorageJob(context.Context, string) (*models.StorageJob, error) {
	return f.job, f.err
}

func (f *fakeClient) WatchStorageJobs(ctx context.Context, handler func(models.StorageJob), jobIDs ...string) *watch.Subscription {
	f.watchedJobs = jobIDs
	return subscribe(ctx, f.jobStream, handler)
}
func (f *fakeClient) WatchLogs(ctx context.Context, handler func(models.LogEntry), cid string, _ ...client.WatchLogsOption) *watch.Subscription {
	f.logCid = cid
	return subscribe(ctx, f.logStream, handler)
}

func (f *fakeClient) CreateUser(context.Context) (*models.User, error) { return f.user, f.err }
func (f *fakeClient) ListUsers(context.Context) ([]models.User, error) { return f.users, f.err }

// isolateHome points the default config file into a temp dir and clears the
// POW_* environment.
func isolateHome(t *testing.T) string {
	t.Helper()
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvServerAddress, "")
	t.Setenv(config.EnvToken, "")
	t.Setenv(config.EnvAdminToken, "")
	return home
}

type runResult struct {
	out string
	err error
}

func run(t *testing.T, ctx context.Context, fc *fakeClient, in io.Reader, args ...string) runResult {
	t.Helper()

	factory := func(*config.Config, logging.Logger) (client.Client, error) { return fc, nil }
	opts := []AppOption{WithClientFactory(factory)}
	if in != nil {
		opts = append(opts, WithInput(in))
	}
	a := NewApp(opts...)

	root := NewRootCommand(a)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	return runResult{out: out.String(), err: err}
}
