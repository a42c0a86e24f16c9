package rpc

import (
	"context"
	"errors"
	"fmt"
	"io"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrEmptyResponse            = errors.New("empty response")
	ErrContentMissing           = errors.New("content missing")
	ErrStreamEndedWithoutResult = errors.New("stream ended with no result")
	ErrUnauthorized             = errors.New("unauthorized")
	ErrUnavailable              = errors.New("server unavailable")
)

// TransportError reports a call or stream that ended with a non-OK status.
// Code and Details are the values the server sent, unchanged.
type TransportError struct {
	Code    codes.Code
	Details string
}

func (e *TransportError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("transport error: code = %s", e.Code)
	}
	return fmt.Sprintf("transport error: code = %s desc = %s", e.Code, e.Details)
}

// Is lets callers branch on the broad class of a failure while still being
// able to extract the exact code with errors.As.
func (e *TransportError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Code == codes.Unauthenticated || e.Code == codes.PermissionDenied
	case ErrUnavailable:
		return e.Code == codes.Unavailable || e.Code == codes.DeadlineExceeded
	}
	return false
}

// GRPCStatus makes a TransportError convertible back with status.FromError.
func (e *TransportError) GRPCStatus() *status.Status {
	return status.New(e.Code, e.Details)
}

// FromError classifies err as returned by a gRPC stub or stream. nil stays
// nil, io.EOF is left to the caller (it means "OK end" on streams) and
// anything else becomes a *TransportError.
func FromError(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return err
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te
	}
	var st *status.Status
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		st = status.FromContextError(err)
	} else {
		st, _ = status.FromError(err)
	}
	return &TransportError{Code: st.Code(), Details: st.Message()}
}
