package grpc

import (
	"bytes"
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/powclient/internal/client/client"
	"github.com/dmitrijs2005/powclient/internal/client/models"
	"github.com/dmitrijs2005/powclient/internal/client/watch"
	"github.com/dmitrijs2005/powclient/internal/dbx"
	"github.com/dmitrijs2005/powclient/internal/logging"
	"github.com/dmitrijs2005/powclient/internal/server/config"
	"github.com/dmitrijs2005/powclient/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/powclient/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/test/bufconn"
)

const testAdminToken = "root"

// startServer runs a full server over sqlite on a bufconn listener and
// returns an admin-capable client for it.
func startServer(t *testing.T) *client.GRPCClient {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	db, err := repomanager.OpenDB(ctx, dbx.DialectSQLite, ":memory:")
	require.NoError(t, err)
	rm := repomanager.NewSQLiteRepositoryManager()
	require.NoError(t, rm.RunMigrations(ctx, db))

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.JobStepDelay = 10 * time.Millisecond

	blobs := rm.Blobs(db)
	us := services.NewUserService(db, rm, cfg)
	js := services.NewJobService(db, rm, blobs, cfg, logging.Discard())
	srv := NewGRPCServer("", "test-host", testAdminToken, logging.Discard(), us, services.NewStorageService(blobs), js)

	lis := bufconn.Listen(1 << 20)
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ctx, lis) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-served:
			assert.NoError(t, err)
		case <-time.After(10 * time.Second):
			t.Error("server did not stop")
		}
		_ = db.Close()
	})

	dialer := func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}
	c, err := client.NewGRPCClient("passthrough:///bufnet",
		client.WithDialOptions(grpc.WithContextDialer(dialer)),
		client.WithAdminToken(testAdminToken),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func newUser(t *testing.T, c *client.GRPCClient) {
	t.Helper()
	u, err := c.CreateUser(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, u.Token)
	c.SetToken(u.Token)
}

func TestE2E_PublicCalls(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	id, err := c.HostID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test-host", id)

	require.NoError(t, c.Ping(ctx))
}

func TestE2E_UserCallsNeedToken(t *testing.T) {
	c := startServer(t)

	_, err := c.Stage(context.Background(), []byte("x"))
	require.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestE2E_StageGetRoundTrip(t *testing.T) {
	c := startServer(t)
	newUser(t, c)
	ctx := context.Background()

	data := bytes.Repeat([]byte("abcdefgh"), 20_000)
	cid, err := c.Stage(ctx, data)
	require.NoError(t, err)
	assert.Regexp(t, `^bafk2bza[a-z2-7]+$`, cid)

	got, err := c.Get(ctx, cid, client.WithTimeout(5*time.Second))
	require.NoError(t, err)
	assert.Equal(t, data, got)

	_, err = c.Get(ctx, "bafk2bzanothere")
	var te *client.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, codes.NotFound, te.Code)
}

func TestE2E_ApplyAndWatchJob(t *testing.T) {
	c := startServer(t)
	newUser(t, c)
	ctx := context.Background()

	cid, err := c.Stage(ctx, []byte("to be stored"))
	require.NoError(t, err)

	jobID, err := c.ApplyStorageConfig(ctx, cid)
	require.NoError(t, err)
	require.NotEmpty(t, jobID)

	_, err = c.ApplyStorageConfig(ctx, cid)
	var te *client.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, codes.AlreadyExists, te.Code)

	final := make(chan models.StorageJob, 1)
	sub := c.WatchStorageJobs(ctx, func(j models.StorageJob) {
		if j.Status.Final() {
			select {
			case final <- j:
			default:
			}
		}
	}, jobID)
	defer sub.Cancel()

	select {
	case j := <-final:
		assert.Equal(t, models.JobStatusSuccess, j.Status)
		assert.Equal(t, jobID, j.ID)
	case <-time.After(5 * time.Second):
		t.Fatal("job never reached a final state")
	}

	j, err := c.StorageJob(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusSuccess, j.Status)
}

func TestE2E_WatchLogsWithHistory(t *testing.T) {
	c := startServer(t)
	newUser(t, c)
	ctx := context.Background()

	cid, err := c.Stage(ctx, []byte("logged"))
	require.NoError(t, err)
	jobID, err := c.ApplyStorageConfig(ctx, cid)
	require.NoError(t, err)

	done := make(chan struct{})
	var msgs []string
	sub := c.WatchLogs(ctx, func(e models.LogEntry) {
		msgs = append(msgs, e.Message)
		if e.Message == "job succeeded" {
			close(done)
		}
	}, cid, client.WithHistory(true), client.WithJobID(jobID))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("no success log")
	}
	sub.Cancel()
	<-sub.Done()

	assert.Equal(t, []string{"job queued", "executing job", "job succeeded"}, msgs)
	assert.Equal(t, watch.StateCancelled, sub.State())
}

func TestE2E_AdminUsers(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	a, err := c.CreateUser(ctx)
	require.NoError(t, err)
	b, err := c.CreateUser(ctx)
	require.NoError(t, err)

	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	ids := []string{}
	for _, u := range users {
		ids = append(ids, u.ID)
		assert.NotEmpty(t, u.Token)
	}
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)

	c.SetAdminToken("wrong")
	_, err = c.ListUsers(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	srv := NewGRPCServer("", "h", "", logging.Discard(), nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, bufconn.Listen(1024)) }()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	srv := NewGRPCServer("127.0.0.1:99999", "h", "", logging.Discard(), nil, nil, nil)
	require.Error(t, srv.Run(context.Background()))
}
