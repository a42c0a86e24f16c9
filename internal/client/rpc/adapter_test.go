package rpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeResp struct {
	Value string
}

func getValue(r *fakeResp) string { return r.Value }

func TestUnary_Success(t *testing.T) {
	got, err := Unary(context.Background(), func(context.Context) (*fakeResp, error) {
		return &fakeResp{Value: "bafy"}, nil
	}, getValue)

	require.NoError(t, err)
	require.Equal(t, "bafy", got)
}

func TestUnary_TransportErrorPreservesStatus(t *testing.T) {
	tests := []struct {
		code    codes.Code
		details string
	}{
		{codes.NotFound, "cid not found"},
		{codes.Internal, "boom"},
		{codes.Unauthenticated, ""},
		{codes.ResourceExhausted, "quota"},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			called := false
			_, err := Unary(context.Background(), func(context.Context) (*fakeResp, error) {
				return nil, status.Error(tt.code, tt.details)
			}, func(r *fakeResp) string {
				called = true
				return r.Value
			})

			var te *TransportError
			require.ErrorAs(t, err, &te)
			require.Equal(t, tt.code, te.Code)
			require.Equal(t, tt.details, te.Details)
			require.False(t, called, "mapping must not run on failure")
		})
	}
}

func TestUnary_EmptyResponse(t *testing.T) {
	_, err := Unary(context.Background(), func(context.Context) (*fakeResp, error) {
		return nil, nil
	}, getValue)

	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestFromCallback_Success(t *testing.T) {
	op := func(ctx context.Context, done func(*fakeResp, error)) {
		go done(&fakeResp{Value: "async"}, nil)
	}

	got, err := FromCallback(context.Background(), op, getValue)
	require.NoError(t, err)
	require.Equal(t, "async", got)
}

func TestFromCallback_SynchronousDone(t *testing.T) {
	op := func(ctx context.Context, done func(*fakeResp, error)) {
		done(&fakeResp{Value: "sync"}, nil)
	}

	got, err := FromCallback(context.Background(), op, getValue)
	require.NoError(t, err)
	require.Equal(t, "sync", got)
}

func TestFromCallback_Error(t *testing.T) {
	op := func(ctx context.Context, done func(*fakeResp, error)) {
		done(nil, status.Error(codes.Unavailable, "down"))
	}

	_, err := FromCallback(context.Background(), op, getValue)
	require.ErrorIs(t, err, ErrUnavailable)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	require.Equal(t, "down", te.Details)
}

func TestFromCallback_EmptyResponse(t *testing.T) {
	op := func(ctx context.Context, done func(*fakeResp, error)) {
		done(nil, nil)
	}

	_, err := FromCallback(context.Background(), op, getValue)
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestFromCallback_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	op := func(ctx context.Context, done func(*fakeResp, error)) {}

	_, err := FromCallback(ctx, op, getValue)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	require.Equal(t, codes.DeadlineExceeded, te.Code)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestFromError(t *testing.T) {
	require.NoError(t, FromError(nil))

	te := &TransportError{Code: codes.Aborted, Details: "x"}
	require.Same(t, te, FromError(te))

	err := FromError(errors.New("plain"))
	var got *TransportError
	require.ErrorAs(t, err, &got)
	require.Equal(t, codes.Unknown, got.Code)
	require.Equal(t, "plain", got.Details)

	err = FromError(context.Canceled)
	require.ErrorAs(t, err, &got)
	require.Equal(t, codes.Canceled, got.Code)
}

func TestTransportError_Classification(t *testing.T) {
	require.ErrorIs(t, &TransportError{Code: codes.Unauthenticated}, ErrUnauthorized)
	require.ErrorIs(t, &TransportError{Code: codes.PermissionDenied}, ErrUnauthorized)
	require.ErrorIs(t, &TransportError{Code: codes.Unavailable}, ErrUnavailable)
	require.ErrorIs(t, &TransportError{Code: codes.DeadlineExceeded}, ErrUnavailable)
	require.NotErrorIs(t, &TransportError{Code: codes.Internal}, ErrUnavailable)

	st, ok := status.FromError(&TransportError{Code: codes.NotFound, Details: "gone"})
	require.True(t, ok)
	require.Equal(t, codes.NotFound, st.Code())
	require.Equal(t, "gone", st.Message())

	require.Equal(t, "transport error: code = NotFound desc = gone", (&TransportError{Code: codes.NotFound, Details: "gone"}).Error())
	require.Equal(t, "transport error: code = Internal", (&TransportError{Code: codes.Internal}).Error())
}

func TestFromCallback_ResultBeatsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	op := func(ctx context.Context, done func(*fakeResp, error)) {
		done(&fakeResp{Value: "late but here"}, nil)
	}

	for i := 0; i < 200; i++ {
		got, err := FromCallback(ctx, op, getValue)
		require.NoError(t, err)
		require.Equal(t, "late but here", got)
	}
}
