// Package native defines the narrow capability surface the event interop
// layer consumes from a host windowing toolkit: named command registration,
// binding scripts, a single-threaded timer queue, event synthesis, and
// variable traces.
//
// The host runtime delivers event details by expanding substitution codes
// (%K, %x, %W, ...) inside a bound script and invoking the named command with
// the expanded strings as positional arguments. Codes that do not apply to a
// given event expand to the literal "??", which the interop layer treats as
// an absent field.
//
// Everything behind Handle runs on the toolkit's cooperative event loop.
// Implementations are not required to be safe for concurrent use; callers
// must stay on the loop thread.
package native
