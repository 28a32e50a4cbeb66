// Package realtime propagates slot capacity changes to connected observers.
//
// The package has two halves. Bus is a small in-process publish/subscribe
// registry: websocket peers and other local observers subscribe to a named
// event and receive payloads over a buffered channel. Broadcaster is the
// fan-out service: after a mutation commits it loads the slot's enriched view
// and pushes it to the local bus and to every registered webhook target.
//
// Broadcasting is best-effort by contract. A missing slot, a slow webhook
// endpoint, or a full subscriber channel is logged and skipped; no failure in
// this package ever propagates back to the write that triggered it.
package realtime
