package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/powclient/internal/client/rpc"
	"github.com/dmitrijs2005/powclient/internal/logging"
	"google.golang.org/grpc"
)

type State int32

const (
	StateIdle State = iota
	StateOpen
	StateEnded
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOpen:
		return "open"
	case StateEnded:
		return "ended"
	case StateCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

var ErrHandlerPanic = errors.New("event handler panicked")

// Subscription is the handle of a running subscription.
type Subscription struct {
	state  atomic.Int32
	cancel context.CancelFunc
	done   chan struct{}

	// deliverMu is held from the state check until the handler returns.
	deliverMu sync.Mutex
	inHandler atomic.Bool

	mu  sync.Mutex
	err error
}

// Cancel stops delivery: no handler invocation starts after it returns. It
// does not wait for the transport to tear the stream down.
func (s *Subscription) Cancel() {
	if !s.transition(StateOpen, StateCancelled) && !s.transition(StateIdle, StateCancelled) {
		return
	}
	s.cancel()
	// A delivery past its state check but not yet in the handler must be
	// waited out. Inside the handler, waiting would deadlock.
	if !s.inHandler.Load() {
		s.deliverMu.Lock()
		s.deliverMu.Unlock()
	}
}

func (s *Subscription) State() State {
	return State(s.state.Load())
}

// Done is closed once the delivery goroutine has exited.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Err returns why the subscription ended: nil for an OK end of stream or a
// cancellation, a *rpc.TransportError for a non-OK end, or an error wrapping
// ErrHandlerPanic. It is only meaningful after Done is closed.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription) transition(from, to State) bool {
	return s.state.CompareAndSwap(int32(from), int32(to))
}

func (s *Subscription) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

type options struct {
	logger logging.Logger
}

type Option func(*options)

func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Subscribe starts delivering events from the stream returned by open.
//
// extract pulls the typed payload out of a message and reports whether one
// was present. handler runs on the subscription goroutine; the next message
// is not processed until it returns.
func Subscribe[Res any, T any](
	ctx context.Context,
	open func(context.Context) (grpc.ServerStreamingClient[Res], error),
	extract func(*Res) (T, bool),
	handler func(T),
	opts ...Option,
) *Subscription {
	o := &options{logger: logging.Discard()}
	for _, fn := range opts {
		fn(o)
	}
	log := o.logger.With("module", "subscriber")

	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(s.done)
		defer cancel()

		stream, err := open(ctx)
		if err != nil {
			s.end(ctx, log, rpc.FromError(err))
			return
		}
		if !s.transition(StateIdle, StateOpen) {
			return
		}
		log.Debug(ctx, "subscription open")

		for {
			msg, err := stream.Recv()
			if s.State() == StateCancelled {
				log.Debug(ctx, "subscription cancelled")
				return
			}
			if errors.Is(err, io.EOF) {
				s.end(ctx, log, nil)
				return
			}
			if err != nil {
				s.end(ctx, log, rpc.FromError(err))
				return
			}

			ev, ok := extract(msg)
			if !ok {
				log.Debug(ctx, "message without payload skipped")
				continue
			}
			if err := deliver(s, handler, ev); err != nil {
				s.end(ctx, log, err)
				return
			}
		}
	}()

	return s
}

// deliver runs the handler unless the subscription was cancelled.
func deliver[T any](s *Subscription, handler func(T), ev T) (err error) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	if s.State() != StateOpen {
		return nil
	}
	s.inHandler.Store(true)
	defer func() {
		s.inHandler.Store(false)
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	handler(ev)
	return nil
}

func (s *Subscription) end(ctx context.Context, log logging.Logger, err error) {
	if !s.transition(StateOpen, StateEnded) && !s.transition(StateIdle, StateEnded) {
		return
	}
	s.setErr(err)
	if err != nil {
		log.Warn(ctx, "subscription ended", "error", err)
		return
	}
	log.Debug(ctx, "subscription ended")
}
