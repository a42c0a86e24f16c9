// Package proto defines the wire contract of the Powergate-style storage
// service: request/response messages, the gRPC service descriptors and the
// client/server stubs.
//
// The stubs are written by hand in the shape protoc-gen-go-grpc emits, so the
// rest of the module depends on the usual grpc.ClientStreamingClient and
// grpc.ServerStreamingClient interfaces. Messages that have a well-known
// protobuf equivalent (emptypb.Empty, wrapperspb.StringValue) use it; the
// remaining messages are plain structs carried by the "pow" codec registered
// in this package.
//
// The "pow" codec is not the service's protobuf wire format: plain structs
// travel as JSON, so chunk bytes are base64 encoded and grow by about a third.
package proto
