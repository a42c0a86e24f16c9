// Package transfer moves binary payloads over streaming calls.
//
// Upload splits a lazily produced Source into chunks of at most MaxChunkSize
// bytes and sends them, one at a time and in order, on a client-streaming
// call, returning the single terminal response. Reassemble and Copy drive a
// server-streaming call and concatenate the received chunks in arrival order.
//
// Failures use the vocabulary of package rpc: ErrContentMissing,
// ErrStreamEndedWithoutResult and *rpc.TransportError.
package transfer
