// Package catalog is the wire contract between binding scripts and typed
// events. It owns three tables and the machinery that ties them together:
//
//   - the substitution catalog: field name, native code, converter
//   - per-pattern profiles: which fields each event shape requests, in order
//   - the validation catalog for entry validation callbacks
//
// A binding script asks the native layer for the profile's codes in order;
// when the event fires, the raw values come back as positional strings. The
// Builder zips them against the same profile and constructs the matching
// events variant. Both sides derive from one table, so the script and the
// decoder cannot drift apart.
//
// Fields that do not apply to a given event arrive as the "??" sentinel and
// are treated as absent, as are converter failures. Absence is never an
// error here; the host protocol only fills the codes that apply.
package catalog
