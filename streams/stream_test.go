package streams

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkbind/tkbind/native/nativetest"
	"github.com/tkbind/tkbind/sched"
)

// pump is a hand-cranked source: tests attach chains to it and push values
// through, observing the aggregated stop verdict like the hub would.
type pump[T any] struct {
	sinks     []*pumpSink[T]
	attachErr error
}

type pumpSink[T any] struct {
	fn func(T) bool
}

func (p *pump[T]) Attach(sink func(T) bool) (func(), error) {
	if p.attachErr != nil {
		return nil, p.attachErr
	}
	entry := &pumpSink[T]{fn: sink}
	p.sinks = append(p.sinks, entry)
	return func() {
		for i, e := range p.sinks {
			if e == entry {
				p.sinks = append(p.sinks[:i], p.sinks[i+1:]...)
				return
			}
		}
	}, nil
}

func (p *pump[T]) push(v T) bool {
	stopped := false
	for _, e := range append([]*pumpSink[T](nil), p.sinks...) {
		if e.fn(v) {
			stopped = true
		}
	}
	return stopped
}

func newTimers(t *testing.T) (sched.Owned, *nativetest.FakeHandle) {
	t.Helper()
	h := nativetest.New()
	s, err := sched.New(h, sched.WithNow(h.Now))
	require.NoError(t, err)
	return s.For(".w"), h
}

func TestListen(t *testing.T) {
	t.Run("receives every value without stopping propagation", func(t *testing.T) {
		src := &pump[int]{}
		timers, _ := newTimers(t)

		var got []int
		sub, err := New[int](src, timers).Listen(func(v int) { got = append(got, v) })
		require.NoError(t, err)
		require.True(t, sub.Active())

		assert.False(t, src.push(1))
		assert.False(t, src.push(2))
		assert.Equal(t, []int{1, 2}, got)
	})

	t.Run("attach failure surfaces", func(t *testing.T) {
		src := &pump[int]{attachErr: errors.New("binding refused")}
		timers, _ := newTimers(t)

		sub, err := New[int](src, timers).Map(func(v int) int { return v }).Listen(func(int) {})
		assert.Error(t, err)
		assert.Nil(t, sub)
	})
}

func TestThenStop(t *testing.T) {
	src := &pump[string]{}
	timers, _ := newTimers(t)

	_, err := New[string](src, timers).ThenStop()
	require.NoError(t, err)

	assert.True(t, src.push("any"))
}

func TestThenStopWhen(t *testing.T) {
	src := &pump[string]{}
	timers, _ := newTimers(t)

	_, err := New[string](src, timers).ThenStopWhen(func(v string) bool {
		return v == "Escape"
	})
	require.NoError(t, err)

	assert.False(t, src.push("a"))
	assert.True(t, src.push("Escape"))
	assert.False(t, src.push("b"))
}

func TestUnsubscribe(t *testing.T) {
	t.Run("detaches from the source", func(t *testing.T) {
		src := &pump[int]{}
		timers, _ := newTimers(t)

		calls := 0
		sub, err := New[int](src, timers).Listen(func(int) { calls++ })
		require.NoError(t, err)
		require.Len(t, src.sinks, 1)

		src.push(1)
		sub.Unsubscribe()
		assert.Empty(t, src.sinks)
		assert.False(t, sub.Active())

		src.push(2)
		assert.Equal(t, 1, calls)
	})

	t.Run("second call is a no-op", func(t *testing.T) {
		src := &pump[int]{}
		timers, _ := newTimers(t)

		sub, err := New[int](src, timers).Listen(func(int) {})
		require.NoError(t, err)

		sub.Unsubscribe()
		assert.NotPanics(t, sub.Unsubscribe)
	})

	t.Run("subscriptions are independent", func(t *testing.T) {
		src := &pump[int]{}
		timers, _ := newTimers(t)

		doubled := New[int](src, timers).Map(func(v int) int { return v * 2 })

		var first, second []int
		subA, err := doubled.Listen(func(v int) { first = append(first, v) })
		require.NoError(t, err)
		_, err = doubled.Listen(func(v int) { second = append(second, v) })
		require.NoError(t, err)

		src.push(1)
		subA.Unsubscribe()
		src.push(2)

		assert.Equal(t, []int{2}, first)
		assert.Equal(t, []int{2, 4}, second)
	})
}
