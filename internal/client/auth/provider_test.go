package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

func tokensOf(t *testing.T, ctx context.Context, key string) []string {
	t.Helper()
	md, _ := metadata.FromOutgoingContext(ctx)
	return md.Get(key)
}

func TestProvider_NoTokenAttachesNothing(t *testing.T) {
	p := NewProvider(TokenKey)

	_, ok := p.Token()
	require.False(t, ok)
	require.Empty(t, p.Metadata())

	ctx := context.Background()
	require.Equal(t, ctx, p.Outgoing(ctx))
	require.Empty(t, tokensOf(t, p.Outgoing(ctx), TokenKey))
}

func TestProvider_SetTokenScopesLaterCalls(t *testing.T) {
	p := NewProvider(TokenKey)

	before := p.Outgoing(context.Background())
	p.SetToken("X")
	after := p.Outgoing(context.Background())

	require.Empty(t, tokensOf(t, before, TokenKey))
	require.Equal(t, []string{"X"}, tokensOf(t, after, TokenKey))
	require.Equal(t, []string{"X"}, p.Metadata().Get(TokenKey))

	p.SetToken("Y")
	require.Equal(t, []string{"X"}, tokensOf(t, after, TokenKey))
	require.Equal(t, []string{"Y"}, tokensOf(t, p.Outgoing(context.Background()), TokenKey))
}

func TestProvider_ClearToken(t *testing.T) {
	p := NewProvider(TokenKey)
	p.SetToken("X")
	p.ClearToken()

	_, ok := p.Token()
	require.False(t, ok)

	p.SetToken("Z")
	p.SetToken("")
	_, ok = p.Token()
	require.False(t, ok)
}

func TestProvider_OutgoingReplacesStaleValueAndKeepsOthers(t *testing.T) {
	p := NewProvider(TokenKey)
	p.SetToken("fresh")

	ctx := metadata.AppendToOutgoingContext(context.Background(), TokenKey, "stale", "x-request-id", "r1")
	ctx = p.Outgoing(ctx)

	require.Equal(t, []string{"fresh"}, tokensOf(t, ctx, TokenKey))
	require.Equal(t, []string{"r1"}, tokensOf(t, ctx, "x-request-id"))

	p.ClearToken()
	ctx = p.Outgoing(ctx)
	require.Empty(t, tokensOf(t, ctx, TokenKey))
	require.Equal(t, []string{"r1"}, tokensOf(t, ctx, "x-request-id"))
}

func TestProvider_IndependentKeys(t *testing.T) {
	user := NewProvider(TokenKey)
	admin := NewProvider(AdminTokenKey)
	user.SetToken("U")
	admin.SetToken("A")

	ctx := admin.Outgoing(user.Outgoing(context.Background()))
	require.Equal(t, []string{"U"}, tokensOf(t, ctx, TokenKey))
	require.Equal(t, []string{"A"}, tokensOf(t, ctx, AdminTokenKey))
}

func TestProvider_UnaryInterceptor(t *testing.T) {
	p := NewProvider(TokenKey)
	p.SetToken("T1")

	var seen []string
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		seen = tokensOf(t, ctx, TokenKey)
		return nil
	}

	err := p.UnaryInterceptor("")(context.Background(), "/svc/Method", nil, nil, nil, invoker)
	require.NoError(t, err)
	require.Equal(t, []string{"T1"}, seen)
}

func TestProvider_UnaryInterceptorScope(t *testing.T) {
	p := NewProvider(AdminTokenKey)
	p.SetToken("A1")

	var seen []string
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		seen = tokensOf(t, ctx, AdminTokenKey)
		return nil
	}
	ic := p.UnaryInterceptor("/pow.admin.v1.")

	require.NoError(t, ic(context.Background(), "/pow.user.v1.UserService/ID", nil, nil, nil, invoker))
	require.Empty(t, seen)

	require.NoError(t, ic(context.Background(), "/pow.admin.v1.AdminService/CreateUser", nil, nil, nil, invoker))
	require.Equal(t, []string{"A1"}, seen)
}

func TestProvider_StreamInterceptor(t *testing.T) {
	p := NewProvider(AdminTokenKey)
	p.SetToken("A1")

	var seen []string
	streamer := func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		seen = tokensOf(t, ctx, AdminTokenKey)
		return nil, nil
	}

	_, err := p.StreamInterceptor("/svc/")(context.Background(), &grpc.StreamDesc{}, nil, "/svc/Stream", streamer)
	require.NoError(t, err)
	require.Equal(t, []string{"A1"}, seen)

	_, err = p.StreamInterceptor("/other/")(context.Background(), &grpc.StreamDesc{}, nil, "/svc/Stream", streamer)
	require.NoError(t, err)
	require.Empty(t, seen)
}

func TestProvider_ConcurrentReadsSeeWholeValues(t *testing.T) {
	p := NewProvider(TokenKey)
	p.SetToken("old-token")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				v, ok := p.Token()
				if ok && v != "old-token" && v != "new-token" {
					t.Errorf("torn token value %q", v)
					return
				}
			}
		}()
	}
	p.SetToken("new-token")
	wg.Wait()
}
