package transfer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/powclient/internal/client/rpc"
	"google.golang.org/grpc"
)

// Reassemble drives a server-streaming call and returns the concatenation of
// every chunk in arrival order. When the stream ends with a non-OK status the
// partial buffer is dropped and a *rpc.TransportError is returned.
func Reassemble[Res any](
	ctx context.Context,
	open func(context.Context) (grpc.ServerStreamingClient[Res], error),
	chunkOf func(*Res) []byte,
	opts ...Option,
) ([]byte, error) {
	var buf bytes.Buffer
	if err := Copy(ctx, open, chunkOf, &buf, opts...); err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return []byte{}, nil
	}
	return buf.Bytes(), nil
}

// Copy is Reassemble writing into w instead of memory. Bytes written before a
// failure stay in w.
func Copy[Res any](
	ctx context.Context,
	open func(context.Context) (grpc.ServerStreamingClient[Res], error),
	chunkOf func(*Res) []byte,
	w io.Writer,
	opts ...Option,
) error {
	o := buildOptions(opts)
	log := o.logger.With("module", "reassembler")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := open(ctx)
	if err != nil {
		return rpc.FromError(err)
	}

	var chunks, total int
	for {
		msg, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			log.Info(ctx, "download finished", "chunks", chunks, "bytes", total)
			return nil
		}
		if err != nil {
			log.Error(ctx, "download failed", "error", err, "chunks", chunks)
			return rpc.FromError(err)
		}

		chunk := chunkOf(msg)
		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("write chunk %d: %w", chunks, err)
		}
		chunks++
		total += len(chunk)
		log.Debug(ctx, "chunk received", "index", chunks, "size", len(chunk))
	}
}
