package grpc

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/dmitrijs2005/powclient/internal/common"
	pb "github.com/dmitrijs2005/powclient/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

const (
	userServicePrefix  = "/pow.user.v1.UserService/"
	adminServicePrefix = "/pow.admin.v1.AdminService/"
)

// publicMethods are reachable without a user token.
var publicMethods = map[string]struct{}{
	pb.UserService_BuildInfo_FullMethodName: {},
	pb.UserService_ID_FullMethodName:        {},
}

func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func firstHeader(ctx context.Context, name string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(name); len(values) > 0 {
		return values[0]
	}
	return ""
}

// authorize checks the credentials method needs and returns the context the
// handler should run with.
func (s *GRPCServer) authorize(ctx context.Context, method string) (context.Context, error) {
	switch {
	case strings.HasPrefix(method, adminServicePrefix):
		if len(s.adminToken) == 0 {
			return nil, status.Error(codes.PermissionDenied, "admin api disabled")
		}
		token := firstHeader(ctx, common.AdminTokenHeaderName)
		if token == "" {
			return nil, status.Error(codes.Unauthenticated, "missing admin token")
		}
		if subtle.ConstantTimeCompare([]byte(token), s.adminToken) != 1 {
			return nil, status.Error(codes.PermissionDenied, "invalid admin token")
		}
		return ctx, nil

	case strings.HasPrefix(method, userServicePrefix):
		if _, ok := publicMethods[method]; ok {
			return ctx, nil
		}
		token := firstHeader(ctx, common.TokenHeaderName)
		if token == "" {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}
		if s.authn == nil {
			return nil, status.Error(codes.Unauthenticated, "authentication unavailable")
		}
		userID, err := s.authn.Authenticate(ctx, token)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		return context.WithValue(ctx, userIDKey, userID), nil
	}

	return ctx, nil
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	ctx, err := s.authorize(ctx, info.FullMethod)
	if err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

type authedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (a *authedStream) Context() context.Context {
	return a.ctx
}

func (s *GRPCServer) streamAccessTokenInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	ctx, err := s.authorize(ss.Context(), info.FullMethod)
	if err != nil {
		return err
	}
	return handler(srv, &authedStream{ServerStream: ss, ctx: ctx})
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Debug(ctx, "unary call", "method", info.FullMethod, "code", status.Code(err), "elapsed", time.Since(start))
	return resp, err
}
