package catalog

import (
	"reflect"

	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// The wire mirrors below describe the JSON produced by the events codec,
// which differs from the runtime structs in two ways: the type discriminator
// is part of the payload, and modifiers travel as an array of names.

type baseWire struct {
	Type      string         `json:"type"`
	Sequence  string         `json:"sequence"`
	Target    string         `json:"target,omitempty"`
	Toplevel  string         `json:"toplevel,omitempty"`
	Timestamp string         `json:"timestamp,omitempty" jsonschema:"format=date-time"`
	Data      map[string]any `json:"data,omitempty"`
}

type keyWire struct {
	baseWire
	Keysym string   `json:"keysym,omitempty"`
	Char   string   `json:"char,omitempty"`
	State  uint32   `json:"state,omitempty"`
	Mods   []string `json:"mods,omitempty"`
	Press  string   `json:"press,omitempty"`
}

type pointerWire struct {
	baseWire
	X       int      `json:"x"`
	Y       int      `json:"y"`
	ScreenX int      `json:"screen_x"`
	ScreenY int      `json:"screen_y"`
	State   uint32   `json:"state,omitempty"`
	Mods    []string `json:"mods,omitempty"`
}

type wheelWire struct {
	baseWire
	Delta float64 `json:"delta"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
}

type configureWire struct {
	baseWire
	Width  int `json:"width"`
	Height int `json:"height"`
	X      int `json:"x"`
	Y      int `json:"y"`
}

type unrecognizedWire struct {
	baseWire
	Raw map[string]string `json:"raw,omitempty"`
}

var variantReflector = jsonschema.Reflector{
	AllowAdditionalProperties: true,
	DoNotReference:            true,
}

// Describe returns a JSON schema for the wire form of every event variant,
// keyed by the type discriminator. Consumers of the relay use it to
// validate recorded streams.
func Describe() *jsonschema.Schema {
	root := &jsonschema.Schema{
		Type:       "object",
		Properties: orderedmap.New[string, *jsonschema.Schema](),
	}

	for _, variant := range []struct {
		name string
		zero any
	}{
		{"key", keyWire{}},
		{"button", pointerWire{}},
		{"motion", pointerWire{}},
		{"wheel", wheelWire{}},
		{"configure", configureWire{}},
		{"widget", baseWire{}},
		{"virtual", baseWire{}},
		{"unrecognized", unrecognizedWire{}},
	} {
		root.Properties.Set(variant.name, variantReflector.Reflect(variant.zero))
	}

	return root
}

// DescribePayload reflects a Go value into the schema of a virtual event's
// data field. The name defaults to the value's type name, so emit sites can
// document their payloads without repeating themselves.
func DescribePayload(name string, payload any) (string, *jsonschema.Schema) {
	typ := reflect.TypeOf(payload)
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if name == "" && typ != nil {
		name = typ.Name()
	}

	if payload == nil {
		return name, &jsonschema.Schema{
			Type:       "object",
			Properties: orderedmap.New[string, *jsonschema.Schema](),
		}
	}

	schema := variantReflector.Reflect(payload)
	schema.Version = ""
	return name, schema
}
