package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/dmitrijs2005/powclient/internal/client/rpc"
	"github.com/dmitrijs2005/powclient/internal/logging"
	"google.golang.org/grpc"
)

// MaxChunkSize is the largest chunk sent on an upload stream. The value is
// part of the wire contract with the service.
const MaxChunkSize = 32000

type options struct {
	logger logging.Logger
}

type Option func(*options)

func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(opts []Option) *options {
	o := &options{logger: logging.Discard()}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// Upload streams src over a client-streaming call and returns its terminal
// response.
//
// If src yields no bytes at all, Upload fails with rpc.ErrContentMissing
// without opening a stream. Otherwise open is called once, src is re-cut into
// chunks of at most MaxChunkSize bytes (the last one is not padded) and every
// chunk is wrapped with newReq and sent before the next one is produced.
func Upload[Req any, Res any](
	ctx context.Context,
	open func(context.Context) (grpc.ClientStreamingClient[Req, Res], error),
	newReq func(chunk []byte) *Req,
	src Source,
	opts ...Option,
) (*Res, error) {
	o := buildOptions(opts)
	log := o.logger.With("module", "uploader")

	next, stop := iter.Pull2(src)
	defer stop()

	first, err := firstContent(next)
	if err != nil {
		return nil, err
	}

	// The stream context is cancelled on every return path; this aborts the
	// call when the source fails half way.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := open(ctx)
	if err != nil {
		return nil, rpc.FromError(err)
	}

	var chunks, total int
	c := newChunker(MaxChunkSize, func(chunk []byte) error {
		if err := stream.Send(newReq(chunk)); err != nil {
			return err
		}
		chunks++
		total += len(chunk)
		log.Debug(ctx, "chunk sent", "index", chunks, "size", len(chunk))
		return nil
	})

	sendErr := c.write(first)
	for sendErr == nil {
		seg, err, ok := next()
		if !ok {
			break
		}
		if err != nil {
			log.Error(ctx, "upload source failed", "error", err)
			return nil, fmt.Errorf("read upload source: %w", err)
		}
		sendErr = c.write(seg)
	}
	if sendErr == nil {
		sendErr = c.flush()
	}

	// io.EOF from Send means the server already ended the call; the real
	// status is reported by CloseAndRecv below.
	if sendErr != nil && !errors.Is(sendErr, io.EOF) {
		log.Error(ctx, "upload send failed", "error", sendErr)
		return nil, rpc.FromError(sendErr)
	}

	res, err := stream.CloseAndRecv()
	if err != nil && !errors.Is(err, io.EOF) {
		log.Error(ctx, "upload failed", "error", err, "chunks", chunks)
		return nil, rpc.FromError(err)
	}
	if res == nil || err != nil {
		return nil, rpc.ErrStreamEndedWithoutResult
	}

	log.Info(ctx, "upload finished", "chunks", chunks, "bytes", total)
	return res, nil
}

// firstContent pulls segments until one carries bytes.
func firstContent(next func() ([]byte, error, bool)) ([]byte, error) {
	for {
		seg, err, ok := next()
		if !ok {
			return nil, rpc.ErrContentMissing
		}
		if err != nil {
			return nil, fmt.Errorf("read upload source: %w", err)
		}
		if len(seg) > 0 {
			return seg, nil
		}
	}
}

// chunker re-cuts arbitrary segments into chunks of exactly size bytes,
// except for the last one. Emitted slices are never reused.
type chunker struct {
	size int
	buf  []byte
	emit func([]byte) error
}

func newChunker(size int, emit func([]byte) error) *chunker {
	return &chunker{size: size, emit: emit}
}

func (c *chunker) write(p []byte) error {
	for len(p) > 0 {
		if c.buf == nil {
			c.buf = make([]byte, 0, c.size)
		}
		n := min(c.size-len(c.buf), len(p))
		c.buf = append(c.buf, p[:n]...)
		p = p[n:]

		if len(c.buf) == c.size {
			chunk := c.buf
			c.buf = nil
			if err := c.emit(chunk); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *chunker) flush() error {
	if len(c.buf) == 0 {
		return nil
	}
	chunk := c.buf
	c.buf = nil
	return c.emit(chunk)
}
