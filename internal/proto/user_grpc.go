package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	UserService_BuildInfo_FullMethodName          = "/pow.user.v1.UserService/BuildInfo"
	UserService_ID_FullMethodName                 = "/pow.user.v1.UserService/ID"
	UserService_Stage_FullMethodName              = "/pow.user.v1.UserService/Stage"
	UserService_Get_FullMethodName                = "/pow.user.v1.UserService/Get"
	UserService_ApplyStorageConfig_FullMethodName = "/pow.user.v1.UserService/ApplyStorageConfig"
	UserService_StorageJob_FullMethodName         = "/pow.user.v1.UserService/StorageJob"
	UserService_WatchStorageJobs_FullMethodName   = "/pow.user.v1.UserService/WatchStorageJobs"
	UserService_WatchLogs_FullMethodName          = "/pow.user.v1.UserService/WatchLogs"
)

// UserServiceClient is the client API for the user-scoped service.
type UserServiceClient interface {
	BuildInfo(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*BuildInfoResponse, error)
	ID(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Stage(ctx context.Context, opts ...grpc.CallOption) (grpc.ClientStreamingClient[StageRequest, StageResponse], error)
	Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[GetResponse], error)
	ApplyStorageConfig(ctx context.Context, in *ApplyStorageConfigRequest, opts ...grpc.CallOption) (*ApplyStorageConfigResponse, error)
	StorageJob(ctx context.Context, in *StorageJobRequest, opts ...grpc.CallOption) (*StorageJobResponse, error)
	WatchStorageJobs(ctx context.Context, in *WatchStorageJobsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[WatchStorageJobsResponse], error)
	WatchLogs(ctx context.Context, in *WatchLogsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[WatchLogsResponse], error)
}

type userServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewUserServiceClient(cc grpc.ClientConnInterface) UserServiceClient {
	return &userServiceClient{cc: cc}
}

func (c *userServiceClient) BuildInfo(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*BuildInfoResponse, error) {
	out := new(BuildInfoResponse)
	if err := c.cc.Invoke(ctx, UserService_BuildInfo_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) ID(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, UserService_ID_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) Stage(ctx context.Context, opts ...grpc.CallOption) (grpc.ClientStreamingClient[StageRequest, StageResponse], error) {
	stream, err := c.cc.NewStream(ctx, &UserService_ServiceDesc.Streams[0], UserService_Stage_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	return &grpc.GenericClientStream[StageRequest, StageResponse]{ClientStream: stream}, nil
}

func (c *userServiceClient) Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[GetResponse], error) {
	return newServerStream[GetRequest, GetResponse](ctx, c.cc, &UserService_ServiceDesc.Streams[1], UserService_Get_FullMethodName, in, opts...)
}

func (c *userServiceClient) ApplyStorageConfig(ctx context.Context, in *ApplyStorageConfigRequest, opts ...grpc.CallOption) (*ApplyStorageConfigResponse, error) {
	out := new(ApplyStorageConfigResponse)
	if err := c.cc.Invoke(ctx, UserService_ApplyStorageConfig_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) StorageJob(ctx context.Context, in *StorageJobRequest, opts ...grpc.CallOption) (*StorageJobResponse, error) {
	out := new(StorageJobResponse)
	if err := c.cc.Invoke(ctx, UserService_StorageJob_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) WatchStorageJobs(ctx context.Context, in *WatchStorageJobsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[WatchStorageJobsResponse], error) {
	return newServerStream[WatchStorageJobsRequest, WatchStorageJobsResponse](ctx, c.cc, &UserService_ServiceDesc.Streams[2], UserService_WatchStorageJobs_FullMethodName, in, opts...)
}

func (c *userServiceClient) WatchLogs(ctx context.Context, in *WatchLogsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[WatchLogsResponse], error) {
	return newServerStream[WatchLogsRequest, WatchLogsResponse](ctx, c.cc, &UserService_ServiceDesc.Streams[3], UserService_WatchLogs_FullMethodName, in, opts...)
}

// newServerStream opens a server-streaming call and sends its only request.
func newServerStream[Req any, Res any](ctx context.Context, cc grpc.ClientConnInterface, desc *grpc.StreamDesc, method string, in *Req, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Res], error) {
	stream, err := cc.NewStream(ctx, desc, method, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[Req, Res]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// UserServiceServer is the server API for the user-scoped service.
type UserServiceServer interface {
	BuildInfo(context.Context, *emptypb.Empty) (*BuildInfoResponse, error)
	ID(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	Stage(grpc.ClientStreamingServer[StageRequest, StageResponse]) error
	Get(*GetRequest, grpc.ServerStreamingServer[GetResponse]) error
	ApplyStorageConfig(context.Context, *ApplyStorageConfigRequest) (*ApplyStorageConfigResponse, error)
	StorageJob(context.Context, *StorageJobRequest) (*StorageJobResponse, error)
	WatchStorageJobs(*WatchStorageJobsRequest, grpc.ServerStreamingServer[WatchStorageJobsResponse]) error
	WatchLogs(*WatchLogsRequest, grpc.ServerStreamingServer[WatchLogsResponse]) error
}

// UnimplementedUserServiceServer can be embedded to have forward compatible
// implementations.
type UnimplementedUserServiceServer struct{}

func (UnimplementedUserServiceServer) BuildInfo(context.Context, *emptypb.Empty) (*BuildInfoResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method BuildInfo not implemented")
}
func (UnimplementedUserServiceServer) ID(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ID not implemented")
}
func (UnimplementedUserServiceServer) Stage(grpc.ClientStreamingServer[StageRequest, StageResponse]) error {
	return status.Error(codes.Unimplemented, "method Stage not implemented")
}
func (UnimplementedUserServiceServer) Get(*GetRequest, grpc.ServerStreamingServer[GetResponse]) error {
	return status.Error(codes.Unimplemented, "method Get not implemented")
}
func (UnimplementedUserServiceServer) ApplyStorageConfig(context.Context, *ApplyStorageConfigRequest) (*ApplyStorageConfigResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ApplyStorageConfig not implemented")
}
func (UnimplementedUserServiceServer) StorageJob(context.Context, *StorageJobRequest) (*StorageJobResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method StorageJob not implemented")
}
func (UnimplementedUserServiceServer) WatchStorageJobs(*WatchStorageJobsRequest, grpc.ServerStreamingServer[WatchStorageJobsResponse]) error {
	return status.Error(codes.Unimplemented, "method WatchStorageJobs not implemented")
}
func (UnimplementedUserServiceServer) WatchLogs(*WatchLogsRequest, grpc.ServerStreamingServer[WatchLogsResponse]) error {
	return status.Error(codes.Unimplemented, "method WatchLogs not implemented")
}

func RegisterUserServiceServer(s grpc.ServiceRegistrar, srv UserServiceServer) {
	s.RegisterService(&UserService_ServiceDesc, srv)
}

func _UserService_BuildInfo_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserServiceServer).BuildInfo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: UserService_BuildInfo_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UserServiceServer).BuildInfo(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _UserService_ID_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserServiceServer).ID(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: UserService_ID_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UserServiceServer).ID(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _UserService_ApplyStorageConfig_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ApplyStorageConfigRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserServiceServer).ApplyStorageConfig(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: UserService_ApplyStorageConfig_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UserServiceServer).ApplyStorageConfig(ctx, req.(*ApplyStorageConfigRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _UserService_StorageJob_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(StorageJobRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserServiceServer).StorageJob(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: UserService_StorageJob_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UserServiceServer).StorageJob(ctx, req.(*StorageJobRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _UserService_Stage_Handler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(UserServiceServer).Stage(&grpc.GenericServerStream[StageRequest, StageResponse]{ServerStream: stream})
}

func _UserService_Get_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(GetRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(UserServiceServer).Get(m, &grpc.GenericServerStream[GetRequest, GetResponse]{ServerStream: stream})
}

func _UserService_WatchStorageJobs_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(WatchStorageJobsRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(UserServiceServer).WatchStorageJobs(m, &grpc.GenericServerStream[WatchStorageJobsRequest, WatchStorageJobsResponse]{ServerStream: stream})
}

func _UserService_WatchLogs_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(WatchLogsRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(UserServiceServer).WatchLogs(m, &grpc.GenericServerStream[WatchLogsRequest, WatchLogsResponse]{ServerStream: stream})
}

// UserService_ServiceDesc is the grpc.ServiceDesc for the user-scoped service.
var UserService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "pow.user.v1.UserService",
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "BuildInfo", Handler: _UserService_BuildInfo_Handler},
		{MethodName: "ID", Handler: _UserService_ID_Handler},
		{MethodName: "ApplyStorageConfig", Handler: _UserService_ApplyStorageConfig_Handler},
		{MethodName: "StorageJob", Handler: _UserService_StorageJob_Handler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "Stage", Handler: _UserService_Stage_Handler, ClientStreams: true},
		{StreamName: "Get", Handler: _UserService_Get_Handler, ServerStreams: true},
		{StreamName: "WatchStorageJobs", Handler: _UserService_WatchStorageJobs_Handler, ServerStreams: true},
		{StreamName: "WatchLogs", Handler: _UserService_WatchLogs_Handler, ServerStreams: true},
	},
	Metadata: "pow/user/v1/user.proto",
}
