// Package signals layers typed reactive values over native interpreter
// variables. A Signal allocates one variable, encodes reads and writes
// through Go types, and turns write traces into subscriptions, so widget
// options like -textvariable participate in the same reactive model as
// event streams.
//
// Signals follow the interop threading contract: all methods run on the
// native loop thread.
package signals
