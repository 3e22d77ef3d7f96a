package signals

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkbind/tkbind"
	"github.com/tkbind/tkbind/commands"
	"github.com/tkbind/tkbind/native"
	"github.com/tkbind/tkbind/native/nativetest"
)

// The kit is the usual host.
var _ Host = (*tkbind.Kit)(nil)

type testHost struct {
	handle   *nativetest.FakeHandle
	registry *commands.Registry
}

func (h testHost) Handle() native.Handle        { return h.handle }
func (h testHost) Registry() *commands.Registry { return h.registry }

func newHost(t *testing.T) testHost {
	t.Helper()
	h := nativetest.New()
	registry, err := commands.New(h)
	require.NoError(t, err)
	return testHost{handle: h, registry: registry}
}

func TestSignalRoundTrip(t *testing.T) {
	t.Run("bool encodes as 1 and 0", func(t *testing.T) {
		host := newHost(t)
		s, err := New(host, true)
		require.NoError(t, err)

		raw, err := host.handle.GetVar(s.Name())
		require.NoError(t, err)
		assert.Equal(t, "1", raw)

		require.NoError(t, s.Set(false))
		raw, err = host.handle.GetVar(s.Name())
		require.NoError(t, err)
		assert.Equal(t, "0", raw)

		v, err := s.Get()
		require.NoError(t, err)
		assert.False(t, v)
	})

	t.Run("int", func(t *testing.T) {
		host := newHost(t)
		s, err := New(host, 42)
		require.NoError(t, err)

		raw, err := host.handle.GetVar(s.Name())
		require.NoError(t, err)
		assert.Equal(t, "42", raw)

		require.NoError(t, s.Set(-7))
		v, err := s.Get()
		require.NoError(t, err)
		assert.Equal(t, -7, v)
	})

	t.Run("float64", func(t *testing.T) {
		host := newHost(t)
		s, err := New(host, 3.5)
		require.NoError(t, err)

		raw, err := host.handle.GetVar(s.Name())
		require.NoError(t, err)
		assert.Equal(t, "3.5", raw)

		require.NoError(t, s.Set(0.25))
		v, err := s.Get()
		require.NoError(t, err)
		assert.Equal(t, 0.25, v)
	})

	t.Run("string passes through verbatim", func(t *testing.T) {
		host := newHost(t)
		s, err := New(host, "hello")
		require.NoError(t, err)

		require.NoError(t, s.Set("two words"))
		v, err := s.Get()
		require.NoError(t, err)
		assert.Equal(t, "two words", v)
	})
}

func TestNamesAreUnique(t *testing.T) {
	host := newHost(t)
	a, err := New(host, 0)
	require.NoError(t, err)
	b, err := New(host, 0)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a.Name(), "SIG"))
	assert.True(t, strings.HasPrefix(b.Name(), "SIG"))
	assert.NotEqual(t, a.Name(), b.Name())
}

func TestSubscribe(t *testing.T) {
	host := newHost(t)
	s, err := New(host, 0)
	require.NoError(t, err)

	var got []int
	sub, err := s.Subscribe(func(v int) { got = append(got, v) })
	require.NoError(t, err)

	require.NoError(t, s.Set(1))
	require.NoError(t, s.Set(2))
	assert.Equal(t, []int{1, 2}, got)

	// Writes from the native side fire the same trace.
	require.NoError(t, host.handle.SetVar(s.Name(), "7"))
	assert.Equal(t, []int{1, 2, 7}, got)

	sub.Unsubscribe()
	require.NoError(t, s.Set(3))
	assert.Equal(t, []int{1, 2, 7}, got)
	assert.Zero(t, host.handle.CommandCount(), "the trace command is released with the subscription")
}

func TestSubscribeRejectsJunk(t *testing.T) {
	host := newHost(t)
	s, err := New(host, 0)
	require.NoError(t, err)

	var got []int
	_, err = s.Subscribe(func(v int) { got = append(got, v) })
	require.NoError(t, err)

	require.NoError(t, host.handle.SetVar(s.Name(), "not-a-number"))

	assert.Empty(t, got)
	require.Len(t, host.handle.FiredErrors, 1)
	assert.Contains(t, host.handle.FiredErrors[0].Error(), "want an integer")
}

func TestDerive(t *testing.T) {
	host := newHost(t)
	size, err := New(host, 12)
	require.NoError(t, err)

	css, err := Derive(size, func(v int) string { return strconv.Itoa(v) + "px" })
	require.NoError(t, err)

	v, err := css.Get()
	require.NoError(t, err)
	assert.Equal(t, "12px", v)

	var got []string
	_, err = css.Subscribe(func(v string) { got = append(got, v) })
	require.NoError(t, err)

	require.NoError(t, size.Set(14))
	v, err = css.Get()
	require.NoError(t, err)
	assert.Equal(t, "14px", v)
	assert.Equal(t, []string{"14px"}, got)

	doubled, err := size.Map(func(v int) int { return v * 2 })
	require.NoError(t, err)
	d, err := doubled.Get()
	require.NoError(t, err)
	assert.Equal(t, 28, d)
}

func TestClose(t *testing.T) {
	t.Run("releases traces and the variable", func(t *testing.T) {
		host := newHost(t)
		s, err := New(host, 1)
		require.NoError(t, err)

		var got []int
		_, err = s.Subscribe(func(v int) { got = append(got, v) })
		require.NoError(t, err)

		s.Close()

		_, err = s.Get()
		require.Error(t, err, "the variable is gone")
		assert.Zero(t, host.handle.CommandCount())

		require.NoError(t, host.handle.SetVar(s.Name(), "5"))
		assert.Empty(t, got)
		assert.Empty(t, host.handle.FiredErrors)

		assert.NotPanics(t, s.Close)
	})

	t.Run("a closed derived signal detaches from its source", func(t *testing.T) {
		host := newHost(t)
		src, err := New(host, 2)
		require.NoError(t, err)
		derived, err := src.Map(func(v int) int { return v * 10 })
		require.NoError(t, err)

		derived.Close()

		require.NoError(t, src.Set(3))
		v, err := src.Get()
		require.NoError(t, err)
		assert.Equal(t, 3, v)
		assert.Empty(t, host.handle.FiredErrors)
		assert.Zero(t, host.handle.CommandCount())
	})

	t.Run("closing the source freezes derived signals", func(t *testing.T) {
		host := newHost(t)
		src, err := New(host, 2)
		require.NoError(t, err)
		derived, err := src.Map(func(v int) int { return v * 10 })
		require.NoError(t, err)

		src.Close()

		v, err := derived.Get()
		require.NoError(t, err)
		assert.Equal(t, 20, v)
		assert.Zero(t, host.handle.CommandCount())
	})
}
