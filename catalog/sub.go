package catalog

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ConvertFunc turns one raw substitution value into its typed form.
type ConvertFunc func(raw string) (any, error)

// Sub pairs a payload field with the native substitution code that fills it
// and the converter applied to the raw value.
type Sub struct {
	Name    string
	Code    string
	Convert ConvertFunc
}

// eventSubs is the full substitution catalog keyed by field name. Insertion
// order is the wire order.
var eventSubs = buildEventSubs()

func buildEventSubs() *orderedmap.OrderedMap[string, Sub] {
	m := orderedmap.New[string, Sub]()
	add := func(name, code string, convert ConvertFunc) {
		m.Set(name, Sub{Name: name, Code: code, Convert: convert})
	}

	// Input
	add("keysym", "%K", convertString)
	add("char", "%A", convertString)
	add("state", "%s", convertState)
	add("delta", "%D", convertFloat)

	// Position
	add("x", "%x", convertInt)
	add("y", "%y", convertInt)
	add("screen_x", "%X", convertInt)
	add("screen_y", "%Y", convertInt)

	// Geometry
	add("width", "%w", convertInt)
	add("height", "%h", convertInt)
	add("border_width", "%B", convertInt)

	// Windowing
	add("window", "%i", convertHex)
	add("subwindow", "%S", convertHex)
	add("send_event", "%E", convertHex)
	add("override_redirect", "%o", convertString)
	add("focus", "%f", convertInt)

	// Metadata
	add("timestamp", "[clock seconds]", convertTimestamp)
	add("mode", "%m", convertString)
	add("place", "%p", convertString)
	add("property", "%P", convertString)

	// Widget references
	add("toplevel", "[winfo toplevel %W]", convertString)
	add("target", "%W", convertString)

	// Custom
	add("data", "%d", convertData)

	return m
}

// EventSub looks up one catalog entry by field name.
func EventSub(name string) (Sub, bool) {
	return eventSubs.Get(name)
}

// EventSubs returns the catalog entries in wire order.
func EventSubs() []Sub {
	out := make([]Sub, 0, eventSubs.Len())
	for pair := eventSubs.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}
