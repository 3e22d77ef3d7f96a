package tkbind

import (
	"fmt"
	"time"

	"github.com/fogfish/opts"

	"github.com/tkbind/tkbind/commands"
	"github.com/tkbind/tkbind/events"
	"github.com/tkbind/tkbind/native"
	"github.com/tkbind/tkbind/pkg/jsonx"
	"github.com/tkbind/tkbind/sched"
	"github.com/tkbind/tkbind/streams"
)

// Binder scopes kit operations to one widget path. Streams, commands, and
// timers created through a binder are owned by its widget and die with it.
type Binder struct {
	kit    *Kit
	widget string
}

// Widget returns the widget path this binder targets.
func (b *Binder) Widget() string { return b.widget }

// binding collects per-call scope knobs for On.
type binding struct {
	scope    native.Scope
	explicit bool
}

// OnAll widens the binding to every widget in the application.
func OnAll() opts.Option[binding] {
	return opts.Type[binding](func(cfg *binding) error {
		cfg.scope = native.AllScope()
		cfg.explicit = true
		return nil
	})
}

// OnClass widens the binding to every widget of a toolkit class, "TEntry"
// for instance.
func OnClass(class string) opts.Option[binding] {
	return opts.Type[binding](func(cfg *binding) error {
		cfg.scope = native.ClassScope(class)
		cfg.explicit = true
		return nil
	})
}

// On returns the typed event stream for a sequence, bound at this widget's
// scope unless an option widens it. The stream is cold: nothing touches
// the native layer until a terminal subscribes. Rate operators on the
// chain schedule through this widget, so deferred values die with it.
func (b *Binder) On(sequence string, options ...opts.Option[binding]) *streams.Stream[events.Event] {
	var cfg binding
	if err := opts.Apply(&cfg, options); err != nil {
		panic(err)
	}
	sequence = NormalizeSequence(sequence)
	scope := native.WidgetScope(b.widget)
	if cfg.explicit {
		scope = cfg.scope
	}
	return streams.New[events.Event](b.kit.hub.dispatcher(scope, sequence), b.kit.sched.For(b.widget))
}

// Emit synthesizes an event on this widget. Virtual sequences may carry a
// payload map; zero-valued entries are pruned and the rest rides as JSON.
// Physical sequences cannot carry data.
func (b *Binder) Emit(sequence string, data map[string]any) error {
	sequence = NormalizeSequence(sequence)
	if events.IsVirtual(sequence) {
		return b.kit.emitVirtual(b.widget, sequence, data)
	}
	if len(data) > 0 {
		return fmt.Errorf("physical sequence %s cannot carry a payload", sequence)
	}
	return b.kit.handle.SendEvent(b.widget, sequence)
}

// EmitPayload is Emit with the payload flattened from a struct or any
// other JSON-encodable value.
func (b *Binder) EmitPayload(sequence string, payload any) error {
	data, err := jsonx.ToDynamicJSON(payload)
	if err != nil {
		return fmt.Errorf("flatten payload for %s: %w", sequence, err)
	}
	return b.Emit(sequence, data)
}

// BindCommand registers a plain callback owned by this widget. The id is
// meant for widget options that take a command name; the registration is
// released when the widget goes away.
func (b *Binder) BindCommand(fn commands.CommandFunc) (string, error) {
	if err := b.kit.watchDestroy(b.widget); err != nil {
		return "", err
	}
	id, err := b.kit.registry.Command(fn)
	if err != nil {
		return "", err
	}
	b.kit.trackOwned(b.widget, func() { b.kit.registry.Deregister(id) })
	return id, nil
}

// BindValidation registers an entry validation callback owned by this
// widget.
func (b *Binder) BindValidation(fn commands.ValidationFunc) (string, error) {
	if err := b.kit.watchDestroy(b.widget); err != nil {
		return "", err
	}
	id, err := b.kit.registry.Validation(fn)
	if err != nil {
		return "", err
	}
	b.kit.trackOwned(b.widget, func() { b.kit.registry.Deregister(id) })
	return id, nil
}

// BindTrace attaches fn to writes of an interpreter variable. The trace
// and its command are released when the widget goes away.
func (b *Binder) BindTrace(name string, fn commands.TraceFunc) (string, error) {
	if err := b.kit.watchDestroy(b.widget); err != nil {
		return "", err
	}
	id, err := b.kit.registry.TraceCallback(fn)
	if err != nil {
		return "", err
	}
	if err := b.kit.handle.TraceVar(name, "write", id); err != nil {
		b.kit.registry.Deregister(id)
		return "", fmt.Errorf("trace %s: %w", name, err)
	}
	b.kit.trackOwned(b.widget, func() {
		_ = b.kit.handle.UntraceVar(name, "write", id)
		b.kit.registry.Deregister(id)
	})
	return id, nil
}

// After runs fn once after the delay, owned by this widget.
func (b *Binder) After(delay time.Duration, fn func()) (*sched.Job, error) {
	return b.kit.sched.After(b.widget, delay, fn)
}

// Idle runs fn at the next idle moment of the loop, owned by this widget.
func (b *Binder) Idle(fn func()) (*sched.Job, error) {
	return b.kit.sched.Idle(b.widget, fn)
}

// At runs fn once at the given instant, owned by this widget.
func (b *Binder) At(when time.Time, fn func()) (*sched.Job, error) {
	return b.kit.sched.At(b.widget, when, fn)
}

// Every runs fn on a drift-compensated cadence, owned by this widget.
func (b *Binder) Every(period time.Duration, fn func()) (*sched.Job, error) {
	return b.kit.sched.Every(b.widget, period, fn)
}

// Rebind replays this widget's binding scripts in replace form. Hosts
// that recreate native widgets, a theme swap for instance, wipe binding
// tables; replaying restores dispatch without re-registering commands.
func (b *Binder) Rebind() {
	k := b.kit
	sequences := k.hub.widgetSequences(b.widget)
	if _, ok := k.watched.Get(b.widget); ok {
		sequences = appendUnique(sequences, Destroy)
	}
	if _, ok := k.sched.WatchScript(b.widget); ok {
		sequences = appendUnique(sequences, Destroy)
	}
	for _, sequence := range sequences {
		k.replay(native.WidgetScope(b.widget), sequence)
	}
}

// Destroy runs the widget's cascade by hand: jobs cancelled, streams torn
// down, owned commands released. The native destroy notification triggers
// the same cascade; calling this first is safe either way.
func (b *Binder) Destroy() {
	b.kit.destroyWidget(b.widget)
}

func appendUnique(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}
