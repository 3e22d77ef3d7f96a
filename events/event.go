package events

import (
	"github.com/go-openapi/strfmt"

	"github.com/tkbind/tkbind/keys"
)

// Event is the closed set of payload variants handed to listeners.
type Event interface {
	event()
}

// Base carries the fields shared by every variant.
type Base struct {
	Sequence  string          `json:"sequence"`
	Target    string          `json:"target,omitempty"`
	Toplevel  string          `json:"toplevel,omitempty"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
	Data      map[string]any  `json:"data,omitempty"`
}

// Key is a keyboard press or release. Mods and Press are derived when the
// event is built, not on access.
type Key struct {
	Base
	Keysym string   `json:"keysym,omitempty"`
	Char   string   `json:"char,omitempty"`
	State  uint32   `json:"state,omitempty"`
	Mods   keys.Mod `json:"mods,omitempty"`
	Press  string   `json:"press,omitempty"`
}

func (Key) event() {}

// NewKey derives the logical modifiers and the canonical press string from
// the raw parts. Press stays empty when the key is itself a modifier.
func NewKey(base Base, keysym, char string, state uint32, platform keys.Platform) Key {
	k := Key{Base: base, Keysym: keysym, Char: char, State: state}
	k.Mods = keys.Decode(state, keysym, false, platform)
	if press, ok := keys.ResolvePress(state, keysym, char, false, platform); ok {
		k.Press = press.String()
	}
	return k
}

// Button is a mouse button press or release.
type Button struct {
	Base
	X       int      `json:"x"`
	Y       int      `json:"y"`
	ScreenX int      `json:"screen_x"`
	ScreenY int      `json:"screen_y"`
	State   uint32   `json:"state,omitempty"`
	Mods    keys.Mod `json:"mods,omitempty"`
}

func (Button) event() {}

// Motion is pointer movement, including button drags.
type Motion struct {
	Base
	X       int      `json:"x"`
	Y       int      `json:"y"`
	ScreenX int      `json:"screen_x"`
	ScreenY int      `json:"screen_y"`
	State   uint32   `json:"state,omitempty"`
	Mods    keys.Mod `json:"mods,omitempty"`
}

func (Motion) event() {}

// Wheel is a scroll wheel tick. Delta is signed; the platform decides its
// magnitude.
type Wheel struct {
	Base
	Delta float64 `json:"delta"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
}

func (Wheel) event() {}

// Configure reports a geometry change.
type Configure struct {
	Base
	Width  int `json:"width"`
	Height int `json:"height"`
	X      int `json:"x"`
	Y      int `json:"y"`
}

func (Configure) event() {}

// Widget covers the sequences that carry no payload beyond the base fields:
// enter, leave, focus changes, map state, visibility, destroy.
type Widget struct {
	Base
}

func (Widget) event() {}

// Virtual is a double-bracket sequence. A JSON payload sent with the event
// lands in Base.Data.
type Virtual struct {
	Base
}

func (Virtual) event() {}

// Unrecognized is built for physical sequences outside the known table. The
// keyboard field set is still requested, and whatever came back is kept raw.
type Unrecognized struct {
	Base
	Raw map[string]string `json:"raw,omitempty"`
}

func (Unrecognized) event() {}
