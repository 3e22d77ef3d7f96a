package tkbind

import (
	"fmt"

	"github.com/alphadose/haxmap"

	"github.com/tkbind/tkbind/catalog"
	"github.com/tkbind/tkbind/commands"
	"github.com/tkbind/tkbind/events"
	"github.com/tkbind/tkbind/native"
)

// hub owns one dispatcher per binding site, a site being the pair of scope
// and sequence. Every stream over the same site multiplexes through one
// native command and one binding script.
type hub struct {
	kit     *Kit
	entries *haxmap.Map[string, *dispatcher]
}

func newHub(k *Kit) *hub {
	return &hub{kit: k, entries: haxmap.New[string, *dispatcher]()}
}

func siteKey(scope native.Scope, sequence string) string {
	return scope.Key() + "|" + sequence
}

// dispatcher returns the site's dispatcher, creating an unmaterialized one
// on first use.
func (h *hub) dispatcher(scope native.Scope, sequence string) *dispatcher {
	d, _ := h.entries.GetOrCompute(siteKey(scope, sequence), func() *dispatcher {
		return &dispatcher{kit: h.kit, scope: scope, sequence: sequence}
	})
	return d
}

func (h *hub) get(scope native.Scope, sequence string) *dispatcher {
	d, _ := h.entries.Get(siteKey(scope, sequence))
	return d
}

func (h *hub) forget(scope native.Scope, sequence string) {
	h.entries.Del(siteKey(scope, sequence))
}

// widgetSequences lists the sequences with a materialized dispatcher at the
// widget's own scope.
func (h *hub) widgetSequences(path string) []string {
	var out []string
	h.entries.ForEach(func(_ string, d *dispatcher) bool {
		if d.bound && d.scope.Kind == native.ScopeWidget && d.scope.Target == path {
			out = append(out, d.sequence)
		}
		return true
	})
	return out
}

// dropWidget releases every dispatcher at the widget's scope and returns
// the sequences they covered. Command removal is deferred because the drop
// usually runs from inside the widget's own destroy dispatch.
func (h *hub) dropWidget(path string) []string {
	var sequences []string
	h.entries.ForEach(func(key string, d *dispatcher) bool {
		if d.scope.Kind == native.ScopeWidget && d.scope.Target == path {
			sequences = append(sequences, d.sequence)
			d.release()
			h.entries.Del(key)
		}
		return true
	})
	return sequences
}

// closeAll releases every dispatcher and removes the binding scripts that
// are still reachable.
func (h *hub) closeAll() {
	h.entries.ForEach(func(key string, d *dispatcher) bool {
		if d.bound && (d.scope.Kind != native.ScopeWidget || !h.kit.handle.Destroyed(d.scope.Target)) {
			_ = h.kit.handle.Unbind(d.scope, d.sequence)
		}
		d.releaseNow()
		h.entries.Del(key)
		return true
	})
}

// dispatcher is the shared delivery point for one binding site. It is the
// stream source for every chain built over the site: sinks attach, the
// first one materializes the native command and binding script, the last
// one leaving tears both down again.
type dispatcher struct {
	kit      *Kit
	scope    native.Scope
	sequence string
	sinks    []*sink
	cmdID    string
	bound    bool
}

type sink struct {
	deliver func(events.Event) bool
}

// Attach adds a sink, materializing the native side on first use. The
// returned closure detaches exactly this sink.
func (d *dispatcher) Attach(deliver func(events.Event) bool) (func(), error) {
	if !d.bound {
		if err := d.materialize(); err != nil {
			return nil, err
		}
	}
	entry := &sink{deliver: deliver}
	d.sinks = append(d.sinks, entry)
	return func() { d.detach(entry) }, nil
}

func (d *dispatcher) script() string {
	return d.cmdID + " " + catalog.BindSubstring(events.PatternFor(d.sequence))
}

// materialize registers the dispatch command and appends the binding
// script. Widget sites also install the destroy watch; when the site is
// the destroy sequence itself, the scripts are replayed so the watch stays
// behind the dispatcher and teardown never outruns delivery.
func (d *dispatcher) materialize() error {
	id, err := d.kit.registry.Event(d.sequence, d.dispatch)
	if err != nil {
		return err
	}
	d.cmdID = id
	d.bound = true
	if err := d.kit.handle.Bind(d.scope, d.sequence, d.script(), true); err != nil {
		d.releaseNow()
		return fmt.Errorf("bind %s at %s: %w", d.sequence, d.scope.Key(), err)
	}
	if d.scope.Kind == native.ScopeWidget {
		if err := d.kit.watchDestroy(d.scope.Target); err != nil {
			d.releaseNow()
			d.kit.replay(d.scope, d.sequence)
			return err
		}
		if d.sequence == Destroy {
			d.kit.replay(d.scope, d.sequence)
		}
	}
	return nil
}

// dispatch fans one built event out to every sink in attach order. A sink
// that panics is reported and skipped, the others still run. Any sink
// asking to stop makes the site report the stop verdict.
func (d *dispatcher) dispatch(ev events.Event) (string, error) {
	stopped := false
	sinks := make([]*sink, len(d.sinks))
	copy(sinks, d.sinks)
	for _, entry := range sinks {
		stopped = d.deliver(entry, ev) || stopped
	}
	if stopped {
		return native.Break, nil
	}
	return "", nil
}

func (d *dispatcher) deliver(entry *sink, ev events.Event) (stop bool) {
	defer func() {
		if p := recover(); p != nil {
			d.kit.reportError(fmt.Errorf("listener panic: %v", p),
				commands.OriginEvent, d.sequence, d.scope.Key())
		}
	}()
	return entry.deliver(ev)
}

// detach removes one sink. The last sink leaving releases the command and
// rewrites the binding site without the dispatcher script.
func (d *dispatcher) detach(entry *sink) {
	for i, existing := range d.sinks {
		if existing == entry {
			d.sinks = append(d.sinks[:i], d.sinks[i+1:]...)
			break
		}
	}
	if len(d.sinks) > 0 || !d.bound {
		return
	}
	d.releaseNow()
	d.kit.hub.forget(d.scope, d.sequence)
	if d.scope.Kind != native.ScopeWidget || !d.kit.handle.Destroyed(d.scope.Target) {
		d.kit.replay(d.scope, d.sequence)
	}
}

// releaseNow drops the sinks and the native command immediately.
func (d *dispatcher) releaseNow() {
	if !d.bound {
		return
	}
	d.bound = false
	d.sinks = nil
	d.kit.registry.Deregister(d.cmdID)
	d.cmdID = ""
}

// release drops the bookkeeping at once but defers the command removal one
// idle turn. A release triggered while the site is firing, the destroy
// cascade being the usual case, must not yank the command out from under a
// script the native layer has already queued.
func (d *dispatcher) release() {
	if !d.bound {
		return
	}
	d.bound = false
	d.sinks = nil
	id := d.cmdID
	d.cmdID = ""
	if _, err := d.kit.handle.AfterIdle(func() { d.kit.registry.Deregister(id) }); err != nil {
		d.kit.registry.Deregister(id)
	}
}
