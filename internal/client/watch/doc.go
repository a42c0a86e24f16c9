// Package watch turns an unbounded server-streaming call into a live,
// cancellable feed of typed events.
//
// Subscribe returns immediately with a *Subscription. A dedicated goroutine
// opens the stream, extracts the payload of every received message and calls
// the handler synchronously, one event at a time, in arrival order. Messages
// without a payload are skipped.
//
// State machine:
//
//	Idle -> Open -> Ended      stream finished (OK or not)
//	        Open -> Cancelled  Cancel was called
//
// Once Cancel has been called the handler is not invoked again, even for
// messages the transport had already delivered. Cancel is safe to call any
// number of times and from inside the handler.
//
// A non-OK end of stream is not delivered to the handler; it is logged and
// reported by Err after Done is closed. A panicking handler is recovered,
// logged, and ends the subscription with an error wrapping ErrHandlerPanic.
package watch
