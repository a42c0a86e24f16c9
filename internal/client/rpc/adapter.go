package rpc

import (
	"context"
)

// Unary runs one blocking remote invocation and settles it: either the mapped
// response or a classified error, never both.
//
//	id, err := rpc.Unary(ctx, func(ctx context.Context) (*wrapperspb.StringValue, error) {
//		return c.user.ID(ctx, &emptypb.Empty{})
//	}, (*wrapperspb.StringValue).GetValue)
func Unary[Resp any, T any](ctx context.Context, call func(context.Context) (*Resp, error), mapFn func(*Resp) T) (T, error) {
	resp, err := call(ctx)
	return settle(resp, err, mapFn)
}

// Callback is a remote operation that reports its completion once through done.
type Callback[Resp any] func(ctx context.Context, done func(*Resp, error))

// FromCallback bridges a callback-style invocation into a single result. The
// operation must call done exactly once; the result is delivered through a
// one-slot channel so a done invoked on any goroutine never blocks. If ctx is
// cancelled before done fires the cancellation is reported as a
// TransportError; a result that is already there wins.
func FromCallback[Resp any, T any](ctx context.Context, op Callback[Resp], mapFn func(*Resp) T) (T, error) {
	type outcome struct {
		resp *Resp
		err  error
	}
	ch := make(chan outcome, 1)

	op(ctx, func(resp *Resp, err error) {
		ch <- outcome{resp: resp, err: err}
	})

	select {
	case o := <-ch:
		return settle(o.resp, o.err, mapFn)
	case <-ctx.Done():
		select {
		case o := <-ch:
			return settle(o.resp, o.err, mapFn)
		default:
		}
		var zero T
		return zero, FromError(ctx.Err())
	}
}

func settle[Resp any, T any](resp *Resp, err error, mapFn func(*Resp) T) (T, error) {
	var zero T
	if err != nil {
		return zero, FromError(err)
	}
	if resp == nil {
		return zero, ErrEmptyResponse
	}
	return mapFn(resp), nil
}
