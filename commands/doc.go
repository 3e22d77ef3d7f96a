// Package commands owns the named command table that binding scripts,
// variable traces, and validation hooks call back into. Every callback kind
// shares one lifecycle: register under a prefixed id, replace on id reuse,
// optionally deregister after the first successful call.
//
// Failures never pass silently. A callback error is routed to the
// registry's error handler (or logged when none is installed) and then
// still returned to the native layer, so host-side error reporting keeps
// working. A panicking error handler is contained and logged twice rather
// than taking down the dispatch.
//
// Ids are prefixed by kind: cmd_ for plain commands, trace_ for variable
// traces, evt_ for event handlers. Deduplicated event handlers derive the
// id from the callback's code pointer, so attaching the same handler twice
// reuses one native command instead of leaking bindings.
package commands
