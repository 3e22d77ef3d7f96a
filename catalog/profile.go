package catalog

import (
	"strings"

	"github.com/tkbind/tkbind/events"
)

// profileFields selects, per pattern, the catalog fields requested from the
// native layer. Order matters: the binding script emits the codes in this
// order and the builder zips the raw values back positionally.
// Unrecognized sequences request the keyboard fields, the documented legacy
// default.
var profileFields = map[events.Pattern][]string{
	events.PatternKey:          {"keysym", "char", "state", "target"},
	events.PatternButton:       {"x", "y", "screen_x", "screen_y", "state", "target"},
	events.PatternMotion:       {"x", "y", "screen_x", "screen_y", "state", "target"},
	events.PatternWheel:        {"delta", "x", "y", "target"},
	events.PatternConfigure:    {"width", "height", "x", "y", "target"},
	events.PatternWidget:       {"target"},
	events.PatternVirtual:      {"data", "timestamp", "target"},
	events.PatternUnrecognized: {"keysym", "char", "state", "target"},
}

// FieldsFor returns the ordered field names requested for a pattern.
func FieldsFor(p events.Pattern) []string {
	fields := profileFields[p]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// Substring returns the substitution codes for a pattern, space joined in
// field order.
func Substring(p events.Pattern) string {
	return substring(p, false)
}

// BindSubstring is Substring with the data code brace wrapped, so a JSON
// payload embedded in the expanded script survives native tokenization as
// one argument.
func BindSubstring(p events.Pattern) string {
	return substring(p, true)
}

func substring(p events.Pattern, braceData bool) string {
	fields := profileFields[p]
	codes := make([]string, 0, len(fields))
	for _, name := range fields {
		sub, ok := eventSubs.Get(name)
		if !ok {
			continue
		}
		code := sub.Code
		if braceData && code == "%d" {
			code = "{%d}"
		}
		codes = append(codes, code)
	}
	return strings.Join(codes, " ")
}
