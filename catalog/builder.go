package catalog

import (
	"github.com/fogfish/opts"
	"github.com/go-openapi/strfmt"

	"github.com/tkbind/tkbind/events"
	"github.com/tkbind/tkbind/keys"
	"github.com/tkbind/tkbind/native"
)

type variantFunc func(sequence string, fields map[string]any, raw []string) events.Event

// Builder turns the positional raw values captured by a binding script back
// into typed events. Profile resolution happens once at construction, one
// compiled constructor per pattern, so the hot path for motion and key
// repeat is a table lookup and a zip.
type Builder struct {
	platform keys.Platform
	resolve  func(string) string
	variants map[events.Pattern]variantFunc
}

var (
	// WithPlatform overrides the modifier decoding policy, which defaults
	// to the host platform.
	WithPlatform = opts.ForName[Builder, keys.Platform]("platform")

	// WithResolver installs a hook that rewrites widget references, for
	// hosts that hand out custom ids instead of native paths. The default
	// keeps the reference as-is.
	WithResolver = opts.ForName[Builder, func(string) string]("resolve")
)

// NewBuilder compiles the per-pattern constructors.
func NewBuilder(options ...opts.Option[Builder]) (*Builder, error) {
	b := &Builder{
		platform: keys.CurrentPlatform(),
		resolve:  func(ref string) string { return ref },
	}
	if err := opts.Apply(b, options); err != nil {
		return nil, err
	}

	b.variants = map[events.Pattern]variantFunc{
		events.PatternKey:          b.buildKey,
		events.PatternButton:       b.buildButton,
		events.PatternMotion:       b.buildMotion,
		events.PatternWheel:        b.buildWheel,
		events.PatternConfigure:    b.buildConfigure,
		events.PatternWidget:       b.buildWidget,
		events.PatternVirtual:      b.buildVirtual,
		events.PatternUnrecognized: b.buildUnrecognized,
	}
	return b, nil
}

// Build zips the raw values against the sequence's profile and constructs
// the matching variant. A missing position, the unknown-field sentinel, and
// a converter failure all mean the same thing: the field is absent.
func (b *Builder) Build(sequence string, raw []string) events.Event {
	pattern := events.PatternFor(sequence)
	return b.variants[pattern](sequence, b.zip(pattern, raw), raw)
}

func (b *Builder) zip(pattern events.Pattern, raw []string) map[string]any {
	names := profileFields[pattern]
	out := make(map[string]any, len(names))
	for i, name := range names {
		if i >= len(raw) {
			break
		}
		value := raw[i]
		if value == native.UnknownField {
			continue
		}
		sub, ok := eventSubs.Get(name)
		if !ok {
			continue
		}
		converted, err := sub.Convert(value)
		if err != nil {
			continue
		}
		out[name] = converted
	}
	return out
}

func field[T any](fields map[string]any, name string) T {
	v, _ := fields[name].(T)
	return v
}

func (b *Builder) base(sequence string, fields map[string]any) events.Base {
	base := events.Base{
		Sequence:  sequence,
		Timestamp: field[strfmt.DateTime](fields, "timestamp"),
	}
	if target := field[string](fields, "target"); target != "" {
		base.Target = b.resolve(target)
	}
	if toplevel := field[string](fields, "toplevel"); toplevel != "" {
		base.Toplevel = b.resolve(toplevel)
	}
	return base
}

func (b *Builder) buildKey(sequence string, fields map[string]any, _ []string) events.Event {
	return events.NewKey(
		b.base(sequence, fields),
		field[string](fields, "keysym"),
		field[string](fields, "char"),
		field[uint32](fields, "state"),
		b.platform,
	)
}

func (b *Builder) buildButton(sequence string, fields map[string]any, _ []string) events.Event {
	state := field[uint32](fields, "state")
	return events.Button{
		Base:    b.base(sequence, fields),
		X:       field[int](fields, "x"),
		Y:       field[int](fields, "y"),
		ScreenX: field[int](fields, "screen_x"),
		ScreenY: field[int](fields, "screen_y"),
		State:   state,
		Mods:    keys.Decode(state, "", false, b.platform),
	}
}

func (b *Builder) buildMotion(sequence string, fields map[string]any, _ []string) events.Event {
	state := field[uint32](fields, "state")
	return events.Motion{
		Base:    b.base(sequence, fields),
		X:       field[int](fields, "x"),
		Y:       field[int](fields, "y"),
		ScreenX: field[int](fields, "screen_x"),
		ScreenY: field[int](fields, "screen_y"),
		State:   state,
		Mods:    keys.Decode(state, "", false, b.platform),
	}
}

func (b *Builder) buildWheel(sequence string, fields map[string]any, _ []string) events.Event {
	return events.Wheel{
		Base:  b.base(sequence, fields),
		Delta: field[float64](fields, "delta"),
		X:     field[int](fields, "x"),
		Y:     field[int](fields, "y"),
	}
}

func (b *Builder) buildConfigure(sequence string, fields map[string]any, _ []string) events.Event {
	return events.Configure{
		Base:   b.base(sequence, fields),
		Width:  field[int](fields, "width"),
		Height: field[int](fields, "height"),
		X:      field[int](fields, "x"),
		Y:      field[int](fields, "y"),
	}
}

func (b *Builder) buildWidget(sequence string, fields map[string]any, _ []string) events.Event {
	return events.Widget{Base: b.base(sequence, fields)}
}

func (b *Builder) buildVirtual(sequence string, fields map[string]any, _ []string) events.Event {
	base := b.base(sequence, fields)
	data, _ := fields["data"].(map[string]any)
	if data == nil {
		data = map[string]any{}
	}
	base.Data = data
	return events.Virtual{Base: base}
}

func (b *Builder) buildUnrecognized(sequence string, fields map[string]any, raw []string) events.Event {
	names := profileFields[events.PatternUnrecognized]
	rawFields := make(map[string]string, len(names))
	for i, name := range names {
		if i >= len(raw) {
			break
		}
		rawFields[name] = raw[i]
	}
	return events.Unrecognized{Base: b.base(sequence, fields), Raw: rawFields}
}
