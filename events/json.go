package events

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/tkbind/tkbind/keys"
)

var (
	keyJSON          = []byte(`{"type":"key"}`)
	buttonJSON       = []byte(`{"type":"button"}`)
	motionJSON       = []byte(`{"type":"motion"}`)
	wheelJSON        = []byte(`{"type":"wheel"}`)
	configureJSON    = []byte(`{"type":"configure"}`)
	widgetJSON       = []byte(`{"type":"widget"}`)
	virtualJSON      = []byte(`{"type":"virtual"}`)
	unrecognizedJSON = []byte(`{"type":"unrecognized"}`)
)

func (b Base) setJSON(result []byte) ([]byte, error) {
	result, err := sjson.SetBytes(result, "sequence", b.Sequence)
	if err != nil {
		return nil, err
	}

	if b.Target != "" {
		result, err = sjson.SetBytes(result, "target", b.Target)
		if err != nil {
			return nil, err
		}
	}

	if b.Toplevel != "" {
		result, err = sjson.SetBytes(result, "toplevel", b.Toplevel)
		if err != nil {
			return nil, err
		}
	}

	if !b.Timestamp.IsZero() {
		result, err = sjson.SetBytes(result, "timestamp", b.Timestamp.String())
		if err != nil {
			return nil, err
		}
	}

	if len(b.Data) > 0 {
		raw, err := json.Marshal(b.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal data: %w", err)
		}
		result, err = sjson.SetRawBytes(result, "data", raw)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (b *Base) fromJSON(data []byte) error {
	sequence := gjson.GetBytes(data, "sequence")
	if !sequence.Exists() {
		return errors.New("missing required field 'sequence'")
	}
	b.Sequence = sequence.String()

	if target := gjson.GetBytes(data, "target"); target.Exists() {
		b.Target = target.String()
	}

	if toplevel := gjson.GetBytes(data, "toplevel"); toplevel.Exists() {
		b.Toplevel = toplevel.String()
	}

	if timestamp := gjson.GetBytes(data, "timestamp"); timestamp.Exists() {
		if err := b.Timestamp.UnmarshalText([]byte(timestamp.String())); err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
	}

	if payload := gjson.GetBytes(data, "data"); payload.Exists() {
		if err := json.Unmarshal([]byte(payload.Raw), &b.Data); err != nil {
			return fmt.Errorf("invalid data: %w", err)
		}
	}

	return nil
}

func checkType(data []byte, want string) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}
	typ := gjson.GetBytes(data, "type")
	if !typ.Exists() || typ.String() != want {
		return fmt.Errorf("missing or invalid type, expected %q", want)
	}
	return nil
}

func setMods(result []byte, mods keys.Mod) ([]byte, error) {
	names := mods.Names()
	if len(names) == 0 {
		return result, nil
	}
	return sjson.SetBytes(result, "mods", names)
}

func parseMods(data []byte) (keys.Mod, error) {
	var mods keys.Mod
	for _, name := range gjson.GetBytes(data, "mods").Array() {
		bit, ok := keys.ParseName(name.String())
		if !ok {
			return 0, fmt.Errorf("unknown modifier %q", name.String())
		}
		mods |= bit
	}
	return mods, nil
}

// MarshalJSON implements custom JSON marshaling for Key.
func (k Key) MarshalJSON() ([]byte, error) {
	result, err := k.Base.setJSON(keyJSON)
	if err != nil {
		return nil, err
	}

	if k.Keysym != "" {
		result, err = sjson.SetBytes(result, "keysym", k.Keysym)
		if err != nil {
			return nil, err
		}
	}

	if k.Char != "" {
		result, err = sjson.SetBytes(result, "char", k.Char)
		if err != nil {
			return nil, err
		}
	}

	if k.State != 0 {
		result, err = sjson.SetBytes(result, "state", k.State)
		if err != nil {
			return nil, err
		}
	}

	result, err = setMods(result, k.Mods)
	if err != nil {
		return nil, err
	}

	if k.Press != "" {
		result, err = sjson.SetBytes(result, "press", k.Press)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// UnmarshalJSON implements custom JSON unmarshaling for Key.
func (k *Key) UnmarshalJSON(data []byte) error {
	if err := checkType(data, "key"); err != nil {
		return err
	}
	if err := k.Base.fromJSON(data); err != nil {
		return err
	}

	k.Keysym = gjson.GetBytes(data, "keysym").String()
	k.Char = gjson.GetBytes(data, "char").String()
	k.State = uint32(gjson.GetBytes(data, "state").Uint())
	k.Press = gjson.GetBytes(data, "press").String()

	mods, err := parseMods(data)
	if err != nil {
		return err
	}
	k.Mods = mods

	return nil
}

func setPointer(result []byte, x, y, screenX, screenY int, state uint32, mods keys.Mod) ([]byte, error) {
	var err error
	for _, f := range []struct {
		key   string
		value int
	}{
		{"x", x}, {"y", y}, {"screen_x", screenX}, {"screen_y", screenY},
	} {
		result, err = sjson.SetBytes(result, f.key, f.value)
		if err != nil {
			return nil, err
		}
	}

	if state != 0 {
		result, err = sjson.SetBytes(result, "state", state)
		if err != nil {
			return nil, err
		}
	}

	return setMods(result, mods)
}

// MarshalJSON implements custom JSON marshaling for Button.
func (b Button) MarshalJSON() ([]byte, error) {
	result, err := b.Base.setJSON(buttonJSON)
	if err != nil {
		return nil, err
	}
	return setPointer(result, b.X, b.Y, b.ScreenX, b.ScreenY, b.State, b.Mods)
}

// UnmarshalJSON implements custom JSON unmarshaling for Button.
func (b *Button) UnmarshalJSON(data []byte) error {
	if err := checkType(data, "button"); err != nil {
		return err
	}
	if err := b.Base.fromJSON(data); err != nil {
		return err
	}

	b.X = int(gjson.GetBytes(data, "x").Int())
	b.Y = int(gjson.GetBytes(data, "y").Int())
	b.ScreenX = int(gjson.GetBytes(data, "screen_x").Int())
	b.ScreenY = int(gjson.GetBytes(data, "screen_y").Int())
	b.State = uint32(gjson.GetBytes(data, "state").Uint())

	mods, err := parseMods(data)
	if err != nil {
		return err
	}
	b.Mods = mods

	return nil
}

// MarshalJSON implements custom JSON marshaling for Motion.
func (m Motion) MarshalJSON() ([]byte, error) {
	result, err := m.Base.setJSON(motionJSON)
	if err != nil {
		return nil, err
	}
	return setPointer(result, m.X, m.Y, m.ScreenX, m.ScreenY, m.State, m.Mods)
}

// UnmarshalJSON implements custom JSON unmarshaling for Motion.
func (m *Motion) UnmarshalJSON(data []byte) error {
	if err := checkType(data, "motion"); err != nil {
		return err
	}
	if err := m.Base.fromJSON(data); err != nil {
		return err
	}

	m.X = int(gjson.GetBytes(data, "x").Int())
	m.Y = int(gjson.GetBytes(data, "y").Int())
	m.ScreenX = int(gjson.GetBytes(data, "screen_x").Int())
	m.ScreenY = int(gjson.GetBytes(data, "screen_y").Int())
	m.State = uint32(gjson.GetBytes(data, "state").Uint())

	mods, err := parseMods(data)
	if err != nil {
		return err
	}
	m.Mods = mods

	return nil
}

// MarshalJSON implements custom JSON marshaling for Wheel.
func (w Wheel) MarshalJSON() ([]byte, error) {
	result, err := w.Base.setJSON(wheelJSON)
	if err != nil {
		return nil, err
	}

	result, err = sjson.SetBytes(result, "delta", w.Delta)
	if err != nil {
		return nil, err
	}

	result, err = sjson.SetBytes(result, "x", w.X)
	if err != nil {
		return nil, err
	}

	return sjson.SetBytes(result, "y", w.Y)
}

// UnmarshalJSON implements custom JSON unmarshaling for Wheel.
func (w *Wheel) UnmarshalJSON(data []byte) error {
	if err := checkType(data, "wheel"); err != nil {
		return err
	}
	if err := w.Base.fromJSON(data); err != nil {
		return err
	}

	w.Delta = gjson.GetBytes(data, "delta").Float()
	w.X = int(gjson.GetBytes(data, "x").Int())
	w.Y = int(gjson.GetBytes(data, "y").Int())

	return nil
}

// MarshalJSON implements custom JSON marshaling for Configure.
func (c Configure) MarshalJSON() ([]byte, error) {
	result, err := c.Base.setJSON(configureJSON)
	if err != nil {
		return nil, err
	}

	var fields = []struct {
		key   string
		value int
	}{
		{"width", c.Width}, {"height", c.Height}, {"x", c.X}, {"y", c.Y},
	}
	for _, f := range fields {
		result, err = sjson.SetBytes(result, f.key, f.value)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// UnmarshalJSON implements custom JSON unmarshaling for Configure.
func (c *Configure) UnmarshalJSON(data []byte) error {
	if err := checkType(data, "configure"); err != nil {
		return err
	}
	if err := c.Base.fromJSON(data); err != nil {
		return err
	}

	c.Width = int(gjson.GetBytes(data, "width").Int())
	c.Height = int(gjson.GetBytes(data, "height").Int())
	c.X = int(gjson.GetBytes(data, "x").Int())
	c.Y = int(gjson.GetBytes(data, "y").Int())

	return nil
}

// MarshalJSON implements custom JSON marshaling for Widget.
func (w Widget) MarshalJSON() ([]byte, error) {
	return w.Base.setJSON(widgetJSON)
}

// UnmarshalJSON implements custom JSON unmarshaling for Widget.
func (w *Widget) UnmarshalJSON(data []byte) error {
	if err := checkType(data, "widget"); err != nil {
		return err
	}
	return w.Base.fromJSON(data)
}

// MarshalJSON implements custom JSON marshaling for Virtual.
func (v Virtual) MarshalJSON() ([]byte, error) {
	return v.Base.setJSON(virtualJSON)
}

// UnmarshalJSON implements custom JSON unmarshaling for Virtual.
func (v *Virtual) UnmarshalJSON(data []byte) error {
	if err := checkType(data, "virtual"); err != nil {
		return err
	}
	return v.Base.fromJSON(data)
}

// MarshalJSON implements custom JSON marshaling for Unrecognized.
func (u Unrecognized) MarshalJSON() ([]byte, error) {
	result, err := u.Base.setJSON(unrecognizedJSON)
	if err != nil {
		return nil, err
	}

	if len(u.Raw) > 0 {
		raw, err := json.Marshal(u.Raw)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal raw fields: %w", err)
		}
		result, err = sjson.SetRawBytes(result, "raw", raw)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// UnmarshalJSON implements custom JSON unmarshaling for Unrecognized.
func (u *Unrecognized) UnmarshalJSON(data []byte) error {
	if err := checkType(data, "unrecognized"); err != nil {
		return err
	}
	if err := u.Base.fromJSON(data); err != nil {
		return err
	}

	if raw := gjson.GetBytes(data, "raw"); raw.Exists() {
		if err := json.Unmarshal([]byte(raw.Raw), &u.Raw); err != nil {
			return fmt.Errorf("invalid raw fields: %w", err)
		}
	}

	return nil
}

// ToJSON marshals any variant with its type discriminator.
func ToJSON(ev Event) ([]byte, error) {
	if ev == nil {
		return nil, errors.New("cannot marshal nil event")
	}
	return json.Marshal(ev)
}

// FromJSON dispatches on the type discriminator and unmarshals the matching
// variant.
func FromJSON(data []byte) (Event, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid json: %s", data)
	}

	typ := gjson.GetBytes(data, "type")
	if !typ.Exists() {
		return nil, errors.New("missing required field 'type'")
	}

	switch typ.String() {
	case "key":
		var ev Key
		if err := ev.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return ev, nil
	case "button":
		var ev Button
		if err := ev.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return ev, nil
	case "motion":
		var ev Motion
		if err := ev.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return ev, nil
	case "wheel":
		var ev Wheel
		if err := ev.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return ev, nil
	case "configure":
		var ev Configure
		if err := ev.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return ev, nil
	case "widget":
		var ev Widget
		if err := ev.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return ev, nil
	case "virtual":
		var ev Virtual
		if err := ev.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return ev, nil
	case "unrecognized":
		var ev Unrecognized
		if err := ev.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return ev, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", typ.String())
	}
}
