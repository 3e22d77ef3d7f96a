package tkbind

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkbind/tkbind/commands"
	"github.com/tkbind/tkbind/events"
	"github.com/tkbind/tkbind/native"
	"github.com/tkbind/tkbind/native/nativetest"
)

func newKit(t *testing.T) (*Kit, *nativetest.FakeHandle) {
	t.Helper()
	h := nativetest.New()
	k, err := New(h, WithNow(h.Now))
	require.NoError(t, err)
	return k, h
}

func keySubs(keysym string) map[string]string {
	return map[string]string{"%K": keysym, "%A": keysym, "%s": "0"}
}

func keysymOf(t *testing.T, ev events.Event) string {
	t.Helper()
	k, ok := ev.(events.Key)
	require.True(t, ok, "expected a key event, got %T", ev)
	return k.Keysym
}

func TestStreamMaterialization(t *testing.T) {
	t.Run("subscribing is what touches the native layer", func(t *testing.T) {
		k, h := newKit(t)
		stream := k.Bind(".e").On("<KeyPress>")

		assert.Zero(t, h.CommandCount())
		assert.False(t, h.Bound(native.WidgetScope(".e"), "<KeyPress>"))

		var got []string
		_, err := stream.Listen(func(ev events.Event) { got = append(got, keysymOf(t, ev)) })
		require.NoError(t, err)

		scripts := h.Scripts(native.WidgetScope(".e"), "<KeyPress>")
		require.Len(t, scripts, 1)
		assert.True(t, strings.HasPrefix(scripts[0], "evt_"))
		assert.Contains(t, scripts[0], "%K")

		// The dispatch command plus the widget's destroy watch.
		assert.Equal(t, 2, h.CommandCount())

		_, err = h.Fire(".e", "<KeyPress>", keySubs("a"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, got)
	})

	t.Run("second subscription reuses the binding site", func(t *testing.T) {
		k, h := newKit(t)
		b := k.Bind(".e")

		_, err := b.On("<KeyPress>").Listen(func(events.Event) {})
		require.NoError(t, err)
		commandsBefore := h.CommandCount()

		_, err = b.On("<KeyPress>").Listen(func(events.Event) {})
		require.NoError(t, err)

		assert.Equal(t, commandsBefore, h.CommandCount())
		assert.Len(t, h.Scripts(native.WidgetScope(".e"), "<KeyPress>"), 1)
	})

	t.Run("listeners run in subscription order", func(t *testing.T) {
		k, h := newKit(t)
		b := k.Bind(".e")

		var order []string
		_, err := b.On("<KeyPress>").Listen(func(events.Event) { order = append(order, "first") })
		require.NoError(t, err)
		_, err = b.On("<KeyPress>").Listen(func(events.Event) { order = append(order, "second") })
		require.NoError(t, err)

		_, err = h.Fire(".e", "<KeyPress>", keySubs("a"))
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("subscribing on a dead widget fails", func(t *testing.T) {
		k, h := newKit(t)
		h.DestroyWidget(".gone")

		sub, err := k.Bind(".gone").On("<KeyPress>").Listen(func(events.Event) {})
		require.Error(t, err)
		assert.Nil(t, sub)
		assert.Zero(t, h.CommandCount())
	})
}

func TestMultiplexTeardown(t *testing.T) {
	k, h := newKit(t)
	b := k.Bind(".e")

	first, err := b.On("<KeyPress>").Listen(func(events.Event) {})
	require.NoError(t, err)
	second, err := b.On("<KeyPress>").Listen(func(events.Event) {})
	require.NoError(t, err)

	scripts := h.Scripts(native.WidgetScope(".e"), "<KeyPress>")
	require.Len(t, scripts, 1)
	evtID := strings.Fields(scripts[0])[0]

	first.Unsubscribe()
	assert.True(t, h.Bound(native.WidgetScope(".e"), "<KeyPress>"),
		"binding survives while a subscriber remains")
	assert.True(t, h.HasCommand(evtID))

	second.Unsubscribe()
	assert.False(t, h.Bound(native.WidgetScope(".e"), "<KeyPress>"),
		"last unsubscribe unbinds the site")
	assert.False(t, h.HasCommand(evtID))

	// The destroy watch is not part of the stream lifecycle.
	assert.True(t, h.Bound(native.WidgetScope(".e"), "<Destroy>"))

	assert.NotPanics(t, func() { second.Unsubscribe() })
}

func TestStopVerdict(t *testing.T) {
	t.Run("listen lets the event propagate", func(t *testing.T) {
		k, h := newKit(t)
		_, err := k.Bind(".e").On("<KeyPress>").Listen(func(events.Event) {})
		require.NoError(t, err)

		stopped, err := h.Fire(".e", "<KeyPress>", keySubs("a"))
		require.NoError(t, err)
		assert.False(t, stopped)
	})

	t.Run("then-stop consumes the event", func(t *testing.T) {
		k, h := newKit(t)
		_, err := k.Bind(".e").On("<KeyPress>").ThenStop()
		require.NoError(t, err)

		stopped, err := h.Fire(".e", "<KeyPress>", keySubs("a"))
		require.NoError(t, err)
		assert.True(t, stopped)
	})

	t.Run("any stopping subscriber decides the verdict", func(t *testing.T) {
		k, h := newKit(t)
		b := k.Bind(".e")
		var got []string
		_, err := b.On("<KeyPress>").Listen(func(ev events.Event) { got = append(got, keysymOf(t, ev)) })
		require.NoError(t, err)
		_, err = b.On("<KeyPress>").ThenStopWhen(func(ev events.Event) bool {
			return keysymOf(t, ev) == "Escape"
		})
		require.NoError(t, err)

		stopped, err := h.Fire(".e", "<KeyPress>", keySubs("a"))
		require.NoError(t, err)
		assert.False(t, stopped)

		stopped, err = h.Fire(".e", "<KeyPress>", keySubs("Escape"))
		require.NoError(t, err)
		assert.True(t, stopped, "stop verdict aggregates across subscribers")
		assert.Equal(t, []string{"a", "Escape"}, got, "plain listener still saw the stopped event")
	})

	t.Run("cancel-when vetoes without killing the subscription", func(t *testing.T) {
		k, h := newKit(t)
		var got []string
		sub, err := k.Bind(".e").On("<KeyPress>").
			CancelWhen(func(ev events.Event) bool { return keysymOf(t, ev) == "BackSpace" }).
			Listen(func(ev events.Event) { got = append(got, keysymOf(t, ev)) })
		require.NoError(t, err)

		stopped, err := h.Fire(".e", "<KeyPress>", keySubs("BackSpace"))
		require.NoError(t, err)
		assert.True(t, stopped, "vetoed value reports the stop verdict")
		assert.Empty(t, got, "vetoed value never reaches the listener")
		assert.True(t, sub.Active())

		stopped, err = h.Fire(".e", "<KeyPress>", keySubs("a"))
		require.NoError(t, err)
		assert.False(t, stopped)
		assert.Equal(t, []string{"a"}, got)
	})
}

func TestListenerPanicIsContained(t *testing.T) {
	k, h := newKit(t)

	type failure struct {
		origin commands.Origin
		err    error
	}
	var failures []failure
	k.SetErrorHandler(func(err error, origin commands.Origin, details []any) {
		failures = append(failures, failure{origin: origin, err: err})
	})

	b := k.Bind(".e")
	_, err := b.On("<KeyPress>").Listen(func(events.Event) { panic("listener exploded") })
	require.NoError(t, err)
	var got []string
	_, err = b.On("<KeyPress>").Listen(func(ev events.Event) { got = append(got, keysymOf(t, ev)) })
	require.NoError(t, err)

	var stopped bool
	assert.NotPanics(t, func() { stopped, err = h.Fire(".e", "<KeyPress>", keySubs("a")) })
	require.NoError(t, err)

	assert.False(t, stopped)
	assert.Equal(t, []string{"a"}, got, "the panicking subscriber does not break the chain")
	require.Len(t, failures, 1)
	assert.Equal(t, commands.OriginEvent, failures[0].origin)
	assert.Contains(t, failures[0].err.Error(), "listener exploded")
	assert.Empty(t, h.FiredErrors, "the failure is reported, not returned to the native layer")
}

func TestScopeCascade(t *testing.T) {
	t.Run("widget then class then application", func(t *testing.T) {
		k, h := newKit(t)
		h.SetClass(".e", "TEntry")
		b := k.Bind(".e")

		var order []string
		_, err := b.On("<KeyPress>").Listen(func(events.Event) { order = append(order, "widget") })
		require.NoError(t, err)
		_, err = b.On("<KeyPress>", OnClass("TEntry")).Listen(func(events.Event) { order = append(order, "class") })
		require.NoError(t, err)
		_, err = b.On("<KeyPress>", OnAll()).Listen(func(events.Event) { order = append(order, "all") })
		require.NoError(t, err)

		_, err = h.Fire(".e", "<KeyPress>", keySubs("a"))
		require.NoError(t, err)
		assert.Equal(t, []string{"widget", "class", "all"}, order)
	})

	t.Run("stop at widget level starves the outer scopes", func(t *testing.T) {
		k, h := newKit(t)
		h.SetClass(".e", "TEntry")
		b := k.Bind(".e")

		var order []string
		_, err := b.On("<KeyPress>").ThenStop()
		require.NoError(t, err)
		_, err = b.On("<KeyPress>", OnClass("TEntry")).Listen(func(events.Event) { order = append(order, "class") })
		require.NoError(t, err)

		stopped, err := h.Fire(".e", "<KeyPress>", keySubs("a"))
		require.NoError(t, err)
		assert.True(t, stopped)
		assert.Empty(t, order)
	})

	t.Run("class streams outlive any single widget", func(t *testing.T) {
		k, h := newKit(t)
		h.SetClass(".a", "TEntry")
		h.SetClass(".b", "TEntry")

		var got []string
		_, err := k.Bind(".a").On("<KeyPress>", OnClass("TEntry")).Listen(func(ev events.Event) {
			key, _ := ev.(events.Key)
			got = append(got, key.Target)
		})
		require.NoError(t, err)

		_, err = h.Fire(".a", "<KeyPress>", keySubs("x"))
		require.NoError(t, err)
		_, err = h.Fire(".b", "<KeyPress>", keySubs("y"))
		require.NoError(t, err)
		assert.Equal(t, []string{".a", ".b"}, got)
	})
}

func TestDestroyCascade(t *testing.T) {
	t.Run("native destroy releases streams and jobs", func(t *testing.T) {
		k, h := newKit(t)
		b := k.Bind(".w")

		var calls int
		_, err := b.On("<KeyPress>").Listen(func(events.Event) { calls++ })
		require.NoError(t, err)
		_, err = b.After(time.Minute, func() { calls++ })
		require.NoError(t, err)

		h.DestroyWidget(".w")
		h.RunIdle()

		assert.Empty(t, h.FiredErrors)
		assert.Zero(t, k.Scheduler().Len())
		h.Advance(2 * time.Minute)
		assert.Zero(t, calls)

		// Only the two shared watch commands remain.
		assert.Equal(t, 2, h.CommandCount())
	})

	t.Run("destroy listeners hear the event before teardown", func(t *testing.T) {
		k, h := newKit(t)
		b := k.Bind(".w")

		var destroyed []string
		_, err := b.On("<Destroy>").Listen(func(ev events.Event) {
			w, ok := ev.(events.Widget)
			require.True(t, ok)
			destroyed = append(destroyed, w.Target)
		})
		require.NoError(t, err)
		_, err = b.After(time.Minute, func() {})
		require.NoError(t, err)

		h.DestroyWidget(".w")

		assert.Equal(t, []string{".w"}, destroyed)
		assert.Empty(t, h.FiredErrors, "teardown must not outrun delivery")
		assert.Zero(t, k.Scheduler().Len())
	})

	t.Run("unsubscribing a destroy stream keeps the watches", func(t *testing.T) {
		k, h := newKit(t)
		b := k.Bind(".w")

		_, err := b.After(time.Minute, func() {})
		require.NoError(t, err)
		sub, err := b.On("<Destroy>").Listen(func(events.Event) {})
		require.NoError(t, err)

		require.Len(t, h.Scripts(native.WidgetScope(".w"), "<Destroy>"), 3)

		sub.Unsubscribe()

		scripts := h.Scripts(native.WidgetScope(".w"), "<Destroy>")
		require.Len(t, scripts, 2, "watch scripts survive stream teardown")
		for _, script := range scripts {
			assert.False(t, strings.HasPrefix(script, "evt_"), "dispatcher script removed: %s", script)
		}

		// The watches still work.
		h.DestroyWidget(".w")
		assert.Zero(t, k.Scheduler().Len())
		assert.Empty(t, h.FiredErrors)
	})
}
