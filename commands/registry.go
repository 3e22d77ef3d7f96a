package commands

import (
	"fmt"

	"github.com/alphadose/haxmap"
	"github.com/fogfish/opts"

	"github.com/tkbind/tkbind/catalog"
	"github.com/tkbind/tkbind/events"
	"github.com/tkbind/tkbind/native"
	"github.com/tkbind/tkbind/pkg/reflectx"
	"github.com/tkbind/tkbind/pkg/uuidx"
)

// Trace identifies one variable trace firing: the variable name and the
// operation that touched it (read, write, unset).
type Trace struct {
	Name string
	Op   string
}

// CommandFunc is a plain callback. The returned string goes back to the
// native layer verbatim.
type CommandFunc func(args []string) (string, error)

// EventFunc receives the typed event built from the raw positional values.
// The returned string is the propagation verdict.
type EventFunc func(ev events.Event) (string, error)

// TraceFunc receives variable trace callbacks.
type TraceFunc func(t Trace) error

// ValidationFunc judges an edit. Returning false rejects it.
type ValidationFunc func(v catalog.Validation) (bool, error)

// Registry wraps callbacks into native commands and tracks their ids so
// reuse replaces instead of leaking.
type Registry struct {
	handle  native.Handle
	builder *catalog.Builder
	onError ErrorHandler
	known   *haxmap.Map[string, Origin]
}

var (
	// WithErrorHandler routes callback failures to handler instead of the
	// default structured log line.
	WithErrorHandler = opts.ForName[Registry, ErrorHandler]("onError")

	// WithBuilder substitutes the event builder, usually to inject a
	// platform or a widget resolver.
	WithBuilder = opts.ForName[Registry, *catalog.Builder]("builder")
)

// New returns a registry bound to a native handle.
func New(handle native.Handle, options ...opts.Option[Registry]) (*Registry, error) {
	builder, err := catalog.NewBuilder()
	if err != nil {
		return nil, err
	}
	r := &Registry{
		handle:  handle,
		builder: builder,
		known:   haxmap.New[string, Origin](),
	}
	if err := opts.Apply(r, options); err != nil {
		return nil, err
	}
	return r, nil
}

// Builder exposes the event builder so callers building payloads by hand
// stay consistent with registered handlers.
func (r *Registry) Builder() *catalog.Builder { return r.builder }

// registration collects per-call knobs.
type registration struct {
	id        string
	transient bool
	dedup     bool
}

var (
	// WithID uses an explicit command id instead of a generated one.
	WithID = opts.ForName[registration, string]("id")

	// WithTransient deregisters the command after its first successful
	// invocation.
	WithTransient = opts.ForName[registration, bool]("transient")

	// WithDedup derives a stable id from the callback identity, so
	// registering the same handler again reuses one native command.
	WithDedup = opts.ForName[registration, bool]("dedup")
)

func applyRegistration(options []opts.Option[registration]) (registration, error) {
	var reg registration
	if err := opts.Apply(&reg, options); err != nil {
		return registration{}, err
	}
	return reg, nil
}

// install replaces any existing command under id, then registers fn.
func (r *Registry) install(id string, origin Origin, fn native.CommandFunc) error {
	if _, exists := r.known.Get(id); exists {
		if err := r.handle.Deregister(id); err != nil {
			return fmt.Errorf("replace command %q: %w", id, err)
		}
		r.known.Del(id)
	}
	if err := r.handle.Register(id, fn); err != nil {
		return fmt.Errorf("register command %q: %w", id, err)
	}
	r.known.Set(id, origin)
	return nil
}

func (r *Registry) remove(id string) {
	_ = r.handle.Deregister(id)
	r.known.Del(id)
}

// Command registers a plain callback and returns its id.
func (r *Registry) Command(fn CommandFunc, options ...opts.Option[registration]) (string, error) {
	reg, err := applyRegistration(options)
	if err != nil {
		return "", err
	}
	id := reg.id
	if id == "" {
		id = "cmd_" + uuidx.NewHex()
	}

	wrapped := func(args []string) (string, error) {
		result, err := guard(func() (string, error) { return fn(args) })
		if err != nil {
			r.dispatchError(err, OriginCommand, id, args)
			return "", err
		}
		if reg.transient {
			r.remove(id)
		}
		return result, nil
	}
	if err := r.install(id, OriginCommand, wrapped); err != nil {
		return "", err
	}
	return id, nil
}

// Event registers an event handler for a sequence. Raw positional values
// are built into the typed variant before fn runs.
func (r *Registry) Event(sequence string, fn EventFunc, options ...opts.Option[registration]) (string, error) {
	reg, err := applyRegistration(options)
	if err != nil {
		return "", err
	}
	id := reg.id
	switch {
	case reg.dedup:
		id = fmt.Sprintf("evt_%d", reflectx.FunctionPointer(fn))
	case id == "":
		id = "evt_" + uuidx.NewHex()
	}

	wrapped := func(args []string) (string, error) {
		ev := r.builder.Build(sequence, args)
		verdict, err := guard(func() (string, error) { return fn(ev) })
		if err != nil {
			r.dispatchError(err, OriginEvent, id, sequence, args)
			return "", err
		}
		if reg.transient {
			r.remove(id)
		}
		return verdict, nil
	}
	if err := r.install(id, OriginEvent, wrapped); err != nil {
		return "", err
	}
	return id, nil
}

// TraceCallback registers a variable trace callback and returns its id.
// The native layer invokes traces with (name, index, op); the index is
// dropped.
func (r *Registry) TraceCallback(fn TraceFunc) (string, error) {
	id := "trace_" + uuidx.NewHex()

	wrapped := func(args []string) (string, error) {
		var t Trace
		if len(args) > 0 {
			t.Name = args[0]
		}
		if len(args) > 2 {
			t.Op = args[2]
		}
		if _, err := guard(func() (string, error) { return "", fn(t) }); err != nil {
			r.dispatchError(err, OriginTrace, id, t.Name, t.Op)
			return "", err
		}
		return "", nil
	}
	if err := r.install(id, OriginTrace, wrapped); err != nil {
		return "", err
	}
	return id, nil
}

// Validation registers an edit validation callback. The native layer
// expects "1" to allow the edit and "0" to reject it.
func (r *Registry) Validation(fn ValidationFunc) (string, error) {
	id := "cmd_" + uuidx.NewHex()

	wrapped := func(args []string) (string, error) {
		v := r.builder.BuildValidation(args)
		ok, err := guard(func() (bool, error) { return fn(v) })
		if err != nil {
			r.dispatchError(err, OriginValidation, id, args)
			return "0", err
		}
		if ok {
			return "1", nil
		}
		return "0", nil
	}
	if err := r.install(id, OriginValidation, wrapped); err != nil {
		return "", err
	}
	return id, nil
}

// Deregister removes a command by id. Unknown ids are a no-op.
func (r *Registry) Deregister(id string) {
	r.remove(id)
}

// DeregisterAll removes every command this registry created.
func (r *Registry) DeregisterAll() {
	r.known.ForEach(func(id string, _ Origin) bool {
		_ = r.handle.Deregister(id)
		r.known.Del(id)
		return true
	})
}

// Has reports whether an id is currently registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.known.Get(id)
	return ok
}

// Len returns the number of live commands.
func (r *Registry) Len() int {
	return int(r.known.Len())
}
