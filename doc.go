/*
Package tkbind turns the string-typed event plumbing of a Tk style
toolkit into typed Go values and composable streams.

The package sits between a host interpreter and application code through
several key abstractions:

  - Kit: one per interpreter, owns registration, dispatch, and cleanup
  - Binder: scopes streams, commands, and timers to a single widget
  - Streams: cold, composable pipelines over typed events
  - Scheduler: widget-owned timers with drift-compensated cadences
  - Relay: optional mirroring of virtual events across kits

# Basic Usage

A typical flow binds a widget, composes a pipeline, and subscribes:

	kit, err := tkbind.New(handle)
	if err != nil {
		// Handle error
	}
	defer kit.Close()

	entry := kit.Bind(".search.entry")
	sub, err := streams.MapTo(
		entry.On("<KeyRelease>").Debounce(300*time.Millisecond),
		func(ev events.Event) string {
			k, _ := ev.(events.Key)
			return k.Char
		},
	).Listen(func(fragment string) {
		// Query with the debounced fragment
	})

Sequences can be spelled literally or through the named constants
(KeyUp, Click, Focus); bare names such as "Return" normalize to their
bracketed form.

Subscribing is what touches the native layer: the kit registers one
command per binding site, appends one binding script, and fans events out
to every chain attached there. The last subscription leaving a site tears
both down again.

# Architecture

The package is built from a few cooperating layers:

1. Native boundary (native, nativetest)
  - Handle is the seam to the host interpreter
  - The fake handle drives tests with a virtual clock

2. Event model (events, keys, catalog)
  - A closed set of typed variants with a JSON codec
  - Platform-aware modifier decoding
  - The catalog maps sequences to substitution profiles

3. Dispatch (commands, hub in this package)
  - The registry wraps callbacks into guarded native commands
  - Dispatchers multiplex binding sites into stream sources

4. Composition (streams, sched)
  - Operators describe pipelines without side effects
  - Rate operators schedule through the owning widget

Widget destruction cascades through all of it: jobs cancel, streams
detach, owned commands release, with no action needed from application
code.
*/
package tkbind
