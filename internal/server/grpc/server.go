// Package grpc exposes the development server's services over gRPC.
package grpc

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dmitrijs2005/powclient/internal/logging"
	pb "github.com/dmitrijs2005/powclient/internal/proto"
	"github.com/dmitrijs2005/powclient/internal/server/services"
	"google.golang.org/grpc"
)

// shutdownTimeout bounds GracefulStop before in-flight calls are cut.
const shutdownTimeout = 5 * time.Second

// Authenticator resolves a user token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

type GRPCServer struct {
	pb.UnimplementedUserServiceServer
	pb.UnimplementedAdminServiceServer

	address    string
	hostID     string
	adminToken []byte
	authn      Authenticator
	users      *services.UserService
	storage    *services.StorageService
	jobs       *services.JobService
	logger     logging.Logger
}

func NewGRPCServer(address, hostID, adminToken string, l logging.Logger,
	us *services.UserService, ss *services.StorageService, js *services.JobService) *GRPCServer {
	s := &GRPCServer{
		address:    address,
		hostID:     hostID,
		adminToken: []byte(adminToken),
		users:      us,
		storage:    ss,
		jobs:       js,
		logger:     l.With("module", "grpc_server"),
	}
	if us != nil {
		s.authn = us
	}
	return s
}

// NewServer returns a grpc.Server with the auth interceptors installed and
// both services registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts,
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor),
		grpc.ChainStreamInterceptor(s.streamAccessTokenInterceptor),
	)
	srv := grpc.NewServer(opts...)
	pb.RegisterUserServiceServer(srv, s)
	pb.RegisterAdminServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")

		// watches only end when their feeds close
		if s.jobs != nil {
			s.jobs.Close()
		}

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(shutdownTimeout):
			srv.Stop()
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}
