package client

import "github.com/dmitrijs2005/powclient/internal/client/rpc"

// Re-exported so callers of this package can match failures without
// importing rpc.
var (
	ErrUnavailable              = rpc.ErrUnavailable
	ErrUnauthorized             = rpc.ErrUnauthorized
	ErrEmptyResponse            = rpc.ErrEmptyResponse
	ErrContentMissing           = rpc.ErrContentMissing
	ErrStreamEndedWithoutResult = rpc.ErrStreamEndedWithoutResult
)

type TransportError = rpc.TransportError
