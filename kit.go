package tkbind

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/fogfish/opts"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	json "github.com/goccy/go-json"

	"github.com/tkbind/tkbind/catalog"
	"github.com/tkbind/tkbind/commands"
	"github.com/tkbind/tkbind/events"
	"github.com/tkbind/tkbind/internal/relay"
	"github.com/tkbind/tkbind/keys"
	"github.com/tkbind/tkbind/native"
	"github.com/tkbind/tkbind/pkg/slogx"
	"github.com/tkbind/tkbind/pkg/uuidx"
	"github.com/tkbind/tkbind/sched"
)

// Kit wires one native handle to typed event streams, callback
// registration, widget-owned timers, and an optional relay. Everything a
// Kit creates is tracked, so widget destruction and Close can cascade.
type Kit struct {
	handle   native.Handle
	registry *commands.Registry
	sched    *sched.Scheduler
	hub      *hub

	watched  *haxmap.Map[string, struct{}]
	owned    *haxmap.Map[string, []func()]
	watchCmd string

	onError  commands.ErrorHandler
	now      func() time.Time
	platform keys.Platform
	resolve  func(string) string

	relay      Relay
	relayTopic string
	topic      relay.Topic
	relaySub   relay.Subscription
	senderID   string

	closed atomic.Bool
}

var (
	// WithErrorHandler routes callback and listener failures to handler
	// instead of the default structured log line.
	WithErrorHandler = opts.ForName[Kit, commands.ErrorHandler]("onError")

	// WithNow injects the clock behind scheduling arithmetic. Tests pass
	// the virtual clock of their fake handle.
	WithNow = opts.ForName[Kit, func() time.Time]("now")

	// WithPlatform overrides the modifier decoding policy for key events,
	// which defaults to the host OS.
	WithPlatform = opts.ForName[Kit, keys.Platform]("platform")

	// WithWidgetResolver rewrites widget references before they land in
	// built events, for hosts that wrap native paths in their own objects.
	WithWidgetResolver = opts.ForName[Kit, func(string) string]("resolve")
)

// WithRelay mirrors every emitted virtual event onto a broker topic and
// re-emits events arriving from other kits on the same topic.
func WithRelay(broker Relay, topic string) opts.Option[Kit] {
	return opts.Type[Kit](func(k *Kit) error {
		if broker == nil {
			return errors.New("tkbind: nil relay broker")
		}
		if topic == "" {
			return errors.New("tkbind: empty relay topic")
		}
		k.relay = broker
		k.relayTopic = topic
		return nil
	})
}

// New returns a kit bound to a native handle.
func New(handle native.Handle, options ...opts.Option[Kit]) (*Kit, error) {
	if handle == nil {
		return nil, errors.New("tkbind: nil native handle")
	}
	k := &Kit{
		handle:   handle,
		watched:  haxmap.New[string, struct{}](),
		owned:    haxmap.New[string, []func()](),
		now:      time.Now,
		platform: keys.CurrentPlatform(),
		senderID: uuidx.NewHex(),
	}
	if err := opts.Apply(k, options); err != nil {
		return nil, err
	}

	builderOpts := []opts.Option[catalog.Builder]{catalog.WithPlatform(k.platform)}
	if k.resolve != nil {
		builderOpts = append(builderOpts, catalog.WithResolver(k.resolve))
	}
	builder, err := catalog.NewBuilder(builderOpts...)
	if err != nil {
		return nil, err
	}

	registry, err := commands.New(handle,
		commands.WithBuilder(builder),
		commands.WithErrorHandler(k.route),
	)
	if err != nil {
		return nil, err
	}
	k.registry = registry

	scheduler, err := sched.New(handle, sched.WithNow(k.now))
	if err != nil {
		return nil, err
	}
	k.sched = scheduler
	k.hub = newHub(k)

	if k.relay != nil {
		k.topic = k.relay.Topic(context.Background(), k.relayTopic)
		sub, err := k.topic.Subscribe(context.Background(), relayHook{kit: k})
		if err != nil {
			return nil, fmt.Errorf("subscribe relay topic %q: %w", k.relayTopic, err)
		}
		k.relaySub = sub
	}
	return k, nil
}

// Handle returns the underlying native handle.
func (k *Kit) Handle() native.Handle { return k.handle }

// Registry returns the command registry for callers that need raw command
// registration, transient callbacks for instance.
func (k *Kit) Registry() *commands.Registry { return k.registry }

// Scheduler returns the widget-owned job scheduler.
func (k *Kit) Scheduler() *sched.Scheduler { return k.sched }

// Bind returns a binder scoped to one widget path.
func (k *Kit) Bind(widget string) *Binder {
	return &Binder{kit: k, widget: widget}
}

// SetErrorHandler replaces the failure sink for callbacks, listeners, and
// relay traffic. Passing nil restores the default structured log line.
func (k *Kit) SetErrorHandler(handler commands.ErrorHandler) {
	k.onError = handler
}

// ErrorHandler returns the installed failure sink, or nil while the
// default log line is in effect.
func (k *Kit) ErrorHandler() commands.ErrorHandler { return k.onError }

// route fans a failure out to the installed handler, or to the default
// structured log line when none is set.
func (k *Kit) route(err error, origin commands.Origin, details []any) {
	if handler := k.onError; handler != nil {
		handler(err, origin, details)
		return
	}
	slog.Error("callback failed",
		slogx.Error(err),
		slog.String("origin", string(origin)),
		slog.Any("details", details),
	)
}

// reportError is route plus containment, for failures raised outside the
// registry's own recovery path.
func (k *Kit) reportError(err error, origin commands.Origin, details ...any) {
	defer func() {
		if p := recover(); p != nil {
			slog.Error("error handler panicked",
				slog.Any("panic", p),
				slog.String("origin", string(origin)),
			)
		}
	}()
	k.route(err, origin, details)
}

// watchDestroy installs the kit's destroy notification for a widget: one
// shared command, one appended binding script per widget. Fails when the
// path is already dead.
func (k *Kit) watchDestroy(path string) error {
	if _, ok := k.watched.Get(path); ok {
		return nil
	}
	if k.watchCmd == "" {
		id := "kit_" + uuidx.NewHex()
		_, err := k.registry.Command(func(args []string) (string, error) {
			if len(args) > 0 {
				k.widgetDestroyed(args[0])
			}
			return "", nil
		}, commands.WithID(id))
		if err != nil {
			return fmt.Errorf("install destroy watch: %w", err)
		}
		k.watchCmd = id
	}
	if err := k.handle.Bind(native.WidgetScope(path), Destroy, k.watchCmd+" %W", true); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	k.watched.Set(path, struct{}{})
	return nil
}

// widgetDestroyed runs on the native notification. The widget's binding
// tables die with it, so only commands and bookkeeping need releasing.
// The scheduler hears the same notification through its own watch.
func (k *Kit) widgetDestroyed(path string) {
	k.watched.Del(path)
	k.hub.dropWidget(path)
	k.releaseOwned(path)
}

// destroyWidget is the manual cascade. When the widget is still alive its
// binding sites are also rewritten, so a proactive teardown leaves no
// dangling scripts behind.
func (k *Kit) destroyWidget(path string) {
	k.sched.CancelOwned(path)
	sequences := k.hub.dropWidget(path)
	if !k.handle.Destroyed(path) {
		for _, sequence := range sequences {
			k.replay(native.WidgetScope(path), sequence)
		}
	}
	k.releaseOwned(path)
}

func (k *Kit) trackOwned(path string, cleanup func()) {
	existing, _ := k.owned.Get(path)
	k.owned.Set(path, append(existing, cleanup))
}

func (k *Kit) releaseOwned(path string) {
	cleanups, ok := k.owned.Get(path)
	if !ok {
		return
	}
	k.owned.Del(path)
	for _, cleanup := range cleanups {
		cleanup()
	}
}

// scriptsFor lists every script the kit knows it installed at a binding
// site, in rebuild order. The destroy watches come first and last so job
// cancellation precedes stream delivery and the cascade runs after it.
func (k *Kit) scriptsFor(scope native.Scope, sequence string) []string {
	var scripts []string
	destroySite := sequence == Destroy && scope.Kind == native.ScopeWidget
	if destroySite {
		if script, ok := k.sched.WatchScript(scope.Target); ok {
			scripts = append(scripts, script)
		}
	}
	if d := k.hub.get(scope, sequence); d != nil && d.bound {
		scripts = append(scripts, d.script())
	}
	if destroySite {
		if _, ok := k.watched.Get(scope.Target); ok && k.watchCmd != "" {
			scripts = append(scripts, k.watchCmd+" %W")
		}
	}
	return scripts
}

// replay rewrites one binding site from the kit's own records: replace
// form for the first script, append for the rest, a bare unbind when
// nothing remains.
func (k *Kit) replay(scope native.Scope, sequence string) {
	scripts := k.scriptsFor(scope, sequence)
	if len(scripts) == 0 {
		_ = k.handle.Unbind(scope, sequence)
		return
	}
	for i, script := range scripts {
		_ = k.handle.Bind(scope, sequence, script, i > 0)
	}
}

// emitVirtual synthesizes a virtual event, encoding the pruned payload as
// JSON, and mirrors it onto the relay topic when one is wired.
func (k *Kit) emitVirtual(target, sequence string, data map[string]any) error {
	payload := prunePayload(data)
	if len(payload) == 0 {
		if err := k.handle.SendEvent(target, sequence); err != nil {
			return err
		}
		k.mirror(target, sequence, nil)
		return nil
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload for %s: %w", sequence, err)
	}
	if err := k.handle.SendVirtual(target, sequence, encoded); err != nil {
		return err
	}
	k.mirror(target, sequence, payload)
	return nil
}

// mirror publishes one emitted event to the relay topic, tagged with this
// kit's sender id so the subscriber hook can tell its own traffic apart.
func (k *Kit) mirror(target, sequence string, data map[string]any) {
	if k.topic == nil {
		return
	}
	tagged := make(map[string]any, len(data)+1)
	for key, value := range data {
		tagged[key] = value
	}
	tagged[relaySenderKey] = k.senderID
	ev := events.Virtual{Base: events.Base{
		Sequence:  sequence,
		Target:    target,
		Timestamp: strfmt.DateTime(k.now()),
		Data:      tagged,
	}}
	if err := k.topic.Publish(context.Background(), ev); err != nil {
		k.reportError(fmt.Errorf("relay publish: %w", err), OriginRelay, sequence)
	}
}

// prunePayload drops zero-valued entries so emitted payloads carry only
// meaningful fields.
func prunePayload(data map[string]any) map[string]any {
	if len(data) == 0 {
		return nil
	}
	out := make(map[string]any, len(data))
	for key, value := range data {
		if swag.IsZero(value) {
			continue
		}
		out[key] = value
	}
	return out
}

// Close tears the kit down: relay subscription, jobs, streams, commands,
// and the kit's own binding scripts. Close is idempotent; using the kit
// afterwards is undefined.
func (k *Kit) Close() {
	if !k.closed.CompareAndSwap(false, true) {
		return
	}
	if k.relaySub != nil {
		k.relaySub.Unsubscribe()
	}
	k.hub.closeAll()
	k.sched.CancelAll()
	k.watched.ForEach(func(path string, _ struct{}) bool {
		if !k.handle.Destroyed(path) {
			_ = k.handle.Unbind(native.WidgetScope(path), Destroy)
		}
		k.watched.Del(path)
		return true
	})
	k.owned.ForEach(func(path string, _ []func()) bool {
		k.releaseOwned(path)
		return true
	})
	k.registry.DeregisterAll()
	k.watchCmd = ""
}
