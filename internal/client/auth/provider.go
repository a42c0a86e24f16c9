// Package auth holds the credential tokens a client attaches to outgoing calls.
//
// A Provider owns one mutable token slot. Reads and writes are a single atomic
// pointer swap, so a call observes either the previous or the new token, never
// a partial value. Each client instance owns its providers; there is no
// package-level state.
package auth

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/dmitrijs2005/powclient/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const (
	// TokenKey carries the user-scoped identity.
	TokenKey = common.TokenHeaderName
	// AdminTokenKey carries the admin identity.
	AdminTokenKey = common.AdminTokenHeaderName
)

type Provider struct {
	key   string
	token atomic.Pointer[string]
}

// NewProvider returns a Provider that attaches its token under key.
func NewProvider(key string) *Provider {
	return &Provider{key: key}
}

func (p *Provider) Key() string {
	return p.key
}

// SetToken replaces the token for all calls issued afterwards. An empty value
// clears it.
func (p *Provider) SetToken(token string) {
	if token == "" {
		p.token.Store(nil)
		return
	}
	p.token.Store(&token)
}

func (p *Provider) ClearToken() {
	p.token.Store(nil)
}

// Token returns the current token and whether one is set.
func (p *Provider) Token() (string, bool) {
	t := p.token.Load()
	if t == nil {
		return "", false
	}
	return *t, true
}

// Metadata returns the metadata reflecting the current token; it is empty
// when no token is set.
func (p *Provider) Metadata() metadata.MD {
	md := metadata.MD{}
	if t, ok := p.Token(); ok {
		md.Set(p.key, t)
	}
	return md
}

// Outgoing returns ctx with the current token attached as outgoing metadata.
// Any value previously stored under the provider's key is replaced; without a
// token the key is removed.
func (p *Provider) Outgoing(ctx context.Context) context.Context {
	t, ok := p.Token()

	md, _ := metadata.FromOutgoingContext(ctx)
	if !ok && md.Get(p.key) == nil {
		return ctx
	}

	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(p.key)
	if ok {
		md.Set(p.key, t)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

// UnaryInterceptor attaches the token to every unary call whose full method
// name starts with scope (for example "/pow.admin.v1."). An empty scope
// matches every method.
func (p *Provider) UnaryInterceptor(scope string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if strings.HasPrefix(method, scope) {
			ctx = p.Outgoing(ctx)
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// StreamInterceptor is UnaryInterceptor for streaming calls.
func (p *Provider) StreamInterceptor(scope string) grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		if strings.HasPrefix(method, scope) {
			ctx = p.Outgoing(ctx)
		}
		return streamer(ctx, desc, cc, method, opts...)
	}
}
