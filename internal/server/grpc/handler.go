package grpc

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/dmitrijs2005/powclient/internal/buildinfo"
	"github.com/dmitrijs2005/powclient/internal/common"
	pb "github.com/dmitrijs2005/powclient/internal/proto"
	"github.com/dmitrijs2005/powclient/internal/server/models"
	"github.com/dmitrijs2005/powclient/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// chunkSize bounds the payload of one Get response message.
const chunkSize = 32000

// toStatus turns a service error into a gRPC status error.
func toStatus(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrorEmptyContent):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, services.ErrFeedClosed):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}

func (s *GRPCServer) currentUser(ctx context.Context) (string, error) {
	id, ok := userIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return id, nil
}

func (s *GRPCServer) BuildInfo(ctx context.Context, _ *emptypb.Empty) (*pb.BuildInfoResponse, error) {
	i := buildinfo.Current()
	return &pb.BuildInfoResponse{
		GitCommit:  i.GitCommit,
		GitBranch:  i.GitBranch,
		Version:    i.Version,
		BuildDate:  i.BuildDate,
		GitSummary: i.GitState,
	}, nil
}

func (s *GRPCServer) ID(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(s.hostID), nil
}

func (s *GRPCServer) Stage(stream grpc.ClientStreamingServer[pb.StageRequest, pb.StageResponse]) error {
	ctx := stream.Context()
	if _, err := s.currentUser(ctx); err != nil {
		return err
	}

	var buf bytes.Buffer
	chunks := 0
	for {
		req, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		buf.Write(req.Chunk)
		chunks++
	}

	cid, err := s.storage.Stage(ctx, buf.Bytes())
	if err != nil {
		s.logger.Warn(ctx, "stage failed", "error", err)
		return toStatus(err)
	}

	s.logger.Info(ctx, "Staged", "cid", cid, "bytes", buf.Len(), "chunks", chunks)
	return stream.SendAndClose(&pb.StageResponse{Cid: cid})
}

func (s *GRPCServer) Get(req *pb.GetRequest, stream grpc.ServerStreamingServer[pb.GetResponse]) error {
	ctx := stream.Context()
	if _, err := s.currentUser(ctx); err != nil {
		return err
	}

	data, err := s.storage.Get(ctx, req.Cid)
	if err != nil {
		return toStatus(err)
	}

	for off := 0; off < len(data); off += chunkSize {
		end := min(off+chunkSize, len(data))
		if err := stream.Send(&pb.GetResponse{Chunk: data[off:end]}); err != nil {
			return err
		}
	}
	return nil
}

func (s *GRPCServer) ApplyStorageConfig(ctx context.Context, req *pb.ApplyStorageConfigRequest) (*pb.ApplyStorageConfigResponse, error) {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	jobID, err := s.jobs.Apply(ctx, userID, req.Cid, req.Override, req.NoExec)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.ApplyStorageConfigResponse{JobId: jobID}, nil
}

func (s *GRPCServer) StorageJob(ctx context.Context, req *pb.StorageJobRequest) (*pb.StorageJobResponse, error) {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.Job(ctx, userID, req.JobId)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.StorageJobResponse{StorageJob: toPBJob(*job)}, nil
}

func (s *GRPCServer) WatchStorageJobs(req *pb.WatchStorageJobsRequest, stream grpc.ServerStreamingServer[pb.WatchStorageJobsResponse]) error {
	ctx := stream.Context()
	userID, err := s.currentUser(ctx)
	if err != nil {
		return err
	}

	err = s.jobs.WatchJobs(ctx, userID, req.JobIds, func(j models.StorageJob) error {
		return stream.Send(&pb.WatchStorageJobsResponse{StorageJob: toPBJob(j)})
	})
	return toStatus(err)
}

func (s *GRPCServer) WatchLogs(req *pb.WatchLogsRequest, stream grpc.ServerStreamingServer[pb.WatchLogsResponse]) error {
	ctx := stream.Context()
	userID, err := s.currentUser(ctx)
	if err != nil {
		return err
	}

	err = s.jobs.WatchLogs(ctx, userID, req.Cid, req.JobId, req.History, func(e models.LogEntry) error {
		return stream.Send(&pb.WatchLogsResponse{LogEntry: &pb.LogEntry{
			Cid:     e.Cid,
			JobId:   e.JobID,
			Time:    e.Time.Unix(),
			Message: e.Message,
		}})
	})
	return toStatus(err)
}

func (s *GRPCServer) CreateUser(ctx context.Context, _ *emptypb.Empty) (*pb.CreateUserResponse, error) {
	user, token, err := s.users.Create(ctx)
	if err != nil {
		s.logger.Error(ctx, "create user failed", "error", err)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Created user", "user_id", user.ID)
	return &pb.CreateUserResponse{User: &pb.User{Id: user.ID, Token: token}}, nil
}

func (s *GRPCServer) ListUsers(ctx context.Context, _ *emptypb.Empty) (*pb.ListUsersResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &pb.ListUsersResponse{Users: make([]*pb.User, 0, len(users))}
	for _, u := range users {
		token, err := s.users.IssueToken(u.ID)
		if err != nil {
			return nil, toStatus(err)
		}
		resp.Users = append(resp.Users, &pb.User{Id: u.ID, Token: token})
	}
	return resp, nil
}

func toPBJob(j models.StorageJob) *pb.StorageJob {
	return &pb.StorageJob{
		Id:         j.ID,
		UserId:     j.UserID,
		Cid:        j.Cid,
		Status:     pb.JobStatus(j.Status),
		ErrorCause: j.ErrorCause,
		CreatedAt:  j.CreatedAt.Unix(),
	}
}
