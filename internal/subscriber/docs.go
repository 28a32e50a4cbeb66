// Package subscriber implements the client side of the realtime channel: a
// long-lived, auto-reconnecting connection that receives broadcaster events
// and re-emits them to registered listeners.
//
// The connection is a small explicit state machine (connecting, connected,
// disconnected, closed) driven by a single run goroutine. Transport failures
// are never surfaced as hard errors; they appear only as state transitions and
// local status events while the connection heals itself with capped
// exponential backoff plus jitter. Close is terminal: it cancels any pending
// reconnect timer and guarantees no further dials.
//
// Two event streams get dedicated local handling. Queue metric snapshots are
// merged by queue key (the later snapshot wins per field, previously seen
// fields are retained) and kept sorted most recent first. Upstream error
// reports are retained as a bounded most-recent-first history instead of an
// unbounded log.
package subscriber
