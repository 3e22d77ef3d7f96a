// Package events defines the typed payloads delivered to event listeners,
// the pattern classification that decides which payload a native sequence
// produces, and a JSON codec for moving events across process boundaries.
//
// Design decisions:
//   - Closed variant set: Event is a marker interface implemented only by
//     the types in this package, so a type switch covers every case
//   - Eager derivation: Key events resolve modifiers and the canonical
//     press string at construction; payloads are immutable after build
//   - Explicit fallback: sequences outside the known physical table become
//     Unrecognized rather than being silently treated as keyboard input
//   - Efficient JSON: custom marshaling with pre-allocated type markers
//
// Event hierarchy:
//   - Event: marker interface for all payload variants
//     ├── Key: keyboard press/release with decoded modifiers
//     ├── Button: mouse button with widget and screen coordinates
//     ├── Motion: pointer movement and drags
//     ├── Wheel: scroll wheel with signed delta
//     ├── Configure: geometry changes
//     ├── Widget: enter/leave/focus/map/destroy and friends
//     ├── Virtual: double-bracket sequences with an optional JSON payload
//     └── Unrecognized: unknown physical sequences, raw fields preserved
//
// Every variant embeds Base: the originating sequence, the target widget
// path, its toplevel, a timestamp, and the decoded virtual-event payload.
//
// Example usage:
//
//	switch e := ev.(type) {
//	case events.Key:
//	    if e.Press == "Ctrl+S" {
//	        save()
//	    }
//	case events.Virtual:
//	    fmt.Println(e.Data["query"])
//	}
package events
