// Package streams implements the push-stream combinators the event layer
// exposes to application code. A Stream is a cheap, immutable description
// of a pipeline: operators return new descriptions and nothing touches the
// host toolkit until a terminal (Listen, ThenStop, ThenStopWhen) attaches
// the composed chain to the stream's source. Every terminal gets its own
// copy of the operator state, so two listeners on the same debounced
// stream each see a full quiet period.
//
// Values flow down the chain synchronously on the loop thread. Each stage
// reports a stop verdict upward; the source translates a true verdict into
// the host's propagation break. Timing operators re-emit through the
// scheduler instead, which means a deferred delivery cannot carry a
// verdict back to the event that produced it, the dispatch has long
// returned by then.
//
// Detaching runs upstream: removing a subscription walks the chain's
// detach hooks, cancelling pending timer jobs on the way, and the source
// tears down its native binding when the last subscriber leaves.
package streams
