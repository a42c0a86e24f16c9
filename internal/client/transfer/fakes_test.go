package transfer

import (
	"context"
	"io"

	pb "github.com/dmitrijs2005/powclient/internal/proto"
	"google.golang.org/grpc"
)

/*************
 * Fake streams
 *************/

type fakeUploadStream struct {
	grpc.ClientStream

	sent [][]byte

	// sendErrAt makes the n-th Send (1-based) fail with sendErr.
	sendErrAt int
	sendErr   error

	closeRes *pb.StageResponse
	closeErr error
	closed   bool
}

func (f *fakeUploadStream) Send(req *pb.StageRequest) error {
	if f.sendErrAt > 0 && len(f.sent)+1 == f.sendErrAt {
		return f.sendErr
	}
	f.sent = append(f.sent, req.Chunk)
	return nil
}

func (f *fakeUploadStream) CloseAndRecv() (*pb.StageResponse, error) {
	f.closed = true
	return f.closeRes, f.closeErr
}

type fakeDownloadStream struct {
	grpc.ClientStream

	chunks [][]byte
	endErr error
	pos    int
}

func (f *fakeDownloadStream) Recv() (*pb.GetResponse, error) {
	if f.pos < len(f.chunks) {
		c := f.chunks[f.pos]
		f.pos++
		return &pb.GetResponse{Chunk: c}, nil
	}
	if f.endErr != nil {
		return nil, f.endErr
	}
	return nil, io.EOF
}

type opener struct {
	calls int
	ctx   context.Context
	err   error
}

func (o *opener) upload(s *fakeUploadStream) func(context.Context) (grpc.ClientStreamingClient[pb.StageRequest, pb.StageResponse], error) {
	return func(ctx context.Context) (grpc.ClientStreamingClient[pb.StageRequest, pb.StageResponse], error) {
		o.calls++
		o.ctx = ctx
		if o.err != nil {
			return nil, o.err
		}
		return s, nil
	}
}

func (o *opener) download(s *fakeDownloadStream) func(context.Context) (grpc.ServerStreamingClient[pb.GetResponse], error) {
	return func(ctx context.Context) (grpc.ServerStreamingClient[pb.GetResponse], error) {
		o.calls++
		o.ctx = ctx
		if o.err != nil {
			return nil, o.err
		}
		return s, nil
	}
}

func stageReq(chunk []byte) *pb.StageRequest {
	return &pb.StageRequest{Chunk: chunk}
}

func chunkOf(r *pb.GetResponse) []byte {
	return r.Chunk
}

func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 251)
	}
	return b
}
