// Package client is the Go client of the Powergate-style storage service.
//
// # Overview
//
// GRPCClient owns one gRPC connection and two token providers (user and
// admin). Every call is routed through the shared mechanisms of the module:
//
//  1. Unary calls settle through rpc.Unary: a plain value or a classified
//     error, never both.
//  2. Stage uploads through transfer.Upload (32000-byte chunks, sent in
//     order); Get/GetTo reassemble server-streamed chunks.
//  3. WatchStorageJobs and WatchLogs return a *watch.Subscription that keeps
//     calling the handler until it is cancelled or the stream ends.
//
// # Tokens
//
// SetToken and SetAdminToken swap the credential used by later calls. The
// user token travels as "x-pow-auth" on /pow.user.v1.* methods, the admin
// token as "x-pow-admin-auth" on /pow.admin.v1.* methods. Without a token no
// metadata is attached.
//
// # Error Handling
//
// Failures are *TransportError (status code and details preserved) or one of
// the sentinels ErrEmptyResponse, ErrContentMissing,
// ErrStreamEndedWithoutResult. errors.Is matches ErrUnauthorized and
// ErrUnavailable on the corresponding status codes.
//
// Concurrency & Contexts
//
// GRPCClient is safe for concurrent use. All operations accept
// context.Context; no retries are performed.
package client
