// Package rpc settles remote calls into plain Go results.
//
// Every unary call made by the client goes through Unary, which guarantees a
// single outcome: the mapped response, or one of
//
//   - *TransportError: the call ended with a non-OK gRPC status; Code and
//     Details are preserved. errors.Is matches ErrUnauthorized for
//     Unauthenticated/PermissionDenied and ErrUnavailable for
//     Unavailable/DeadlineExceeded.
//   - ErrEmptyResponse: the call reported no error but produced no response.
//
// ErrContentMissing and ErrStreamEndedWithoutResult are defined here as well
// so the streaming helpers in package transfer share one error vocabulary.
//
// FromCallback gives the same guarantee to operations that report completion
// through a callback instead of returning. The client has none today; it is
// there for transports that are not blocking gRPC stubs.
//
// No retries are performed in this package.
package rpc
