package signals

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/alphadose/haxmap"

	"github.com/tkbind/tkbind/commands"
	"github.com/tkbind/tkbind/native"
	"github.com/tkbind/tkbind/streams"
)

// Value is the closed set of types a native variable can carry without
// loss. The native side stores strings; these four have unambiguous
// encodings both ways.
type Value interface {
	bool | int | float64 | string
}

// Host provides the native pieces a signal binds to. *tkbind.Kit
// satisfies it.
type Host interface {
	Handle() native.Handle
	Registry() *commands.Registry
}

// counter feeds variable names. Interpreter variables are process-global,
// so the allocator is too; everything else about a signal stays on its
// host.
var counter atomic.Uint64

func nextName() string {
	return "SIG" + strconv.FormatUint(counter.Add(1), 10)
}

// Signal is a typed value backed by one interpreter variable. Writes fan
// out to subscribers through a write trace, whether they come from Set or
// from the native side.
type Signal[T Value] struct {
	handle   native.Handle
	registry *commands.Registry
	name     string
	subs     *haxmap.Map[string, *streams.Subscription]
	onClose  func()
	closed   atomic.Bool
}

// New allocates a fresh variable holding initial.
func New[T Value](host Host, initial T) (*Signal[T], error) {
	s := &Signal[T]{
		handle:   host.Handle(),
		registry: host.Registry(),
		name:     nextName(),
		subs:     haxmap.New[string, *streams.Subscription](),
	}
	if err := s.handle.SetVar(s.name, encode(initial)); err != nil {
		return nil, fmt.Errorf("signal %s: %w", s.name, err)
	}
	return s, nil
}

// Name returns the interpreter variable name, for widget options that
// take one, -textvariable and friends.
func (s *Signal[T]) Name() string { return s.name }

// Get reads the current value.
func (s *Signal[T]) Get() (T, error) {
	var zero T
	raw, err := s.handle.GetVar(s.name)
	if err != nil {
		return zero, fmt.Errorf("signal %s: %w", s.name, err)
	}
	return decode[T](s.name, raw)
}

// Set writes a new value. Subscribers fire through the write trace.
func (s *Signal[T]) Set(v T) error {
	if err := s.handle.SetVar(s.name, encode(v)); err != nil {
		return fmt.Errorf("signal %s: %w", s.name, err)
	}
	return nil
}

// Subscribe calls fn with the new value after every write, including
// writes coming from the native side. A value the decoder rejects is
// reported through the registry's error path instead of reaching fn.
func (s *Signal[T]) Subscribe(fn func(T)) (*streams.Subscription, error) {
	id, err := s.registry.TraceCallback(func(commands.Trace) error {
		raw, err := s.handle.GetVar(s.name)
		if err != nil {
			return err
		}
		v, err := decode[T](s.name, raw)
		if err != nil {
			return err
		}
		fn(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.handle.TraceVar(s.name, "write", id); err != nil {
		s.registry.Deregister(id)
		return nil, fmt.Errorf("signal %s: %w", s.name, err)
	}

	var sub *streams.Subscription
	sub = streams.NewSubscription(func() {
		_ = s.handle.UntraceVar(s.name, "write", id)
		s.registry.Deregister(id)
		s.subs.Del(sub.ID())
	})
	s.subs.Set(sub.ID(), sub)
	return sub, nil
}

// Map returns a derived signal holding transform of this one. It updates
// on every write until either side closes.
func (s *Signal[T]) Map(transform func(T) T) (*Signal[T], error) {
	return Derive(s, transform)
}

// Derive returns a signal of a different type tracking src through
// transform. A method cannot introduce a type parameter, hence the
// package-level shape.
func Derive[T, U Value](src *Signal[T], transform func(T) U) (*Signal[U], error) {
	current, err := src.Get()
	if err != nil {
		return nil, err
	}
	out := &Signal[U]{
		handle:   src.handle,
		registry: src.registry,
		name:     nextName(),
		subs:     haxmap.New[string, *streams.Subscription](),
	}
	if err := out.handle.SetVar(out.name, encode(transform(current))); err != nil {
		return nil, fmt.Errorf("signal %s: %w", out.name, err)
	}
	sub, err := src.Subscribe(func(v T) {
		_ = out.Set(transform(v))
	})
	if err != nil {
		return nil, err
	}
	out.onClose = sub.Unsubscribe
	return out, nil
}

// Close detaches every subscriber, unhooks a derived signal from its
// source, and removes the variable. Close is idempotent.
func (s *Signal[T]) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	if s.onClose != nil {
		s.onClose()
	}
	s.subs.ForEach(func(_ string, sub *streams.Subscription) bool {
		sub.Unsubscribe()
		return true
	})
	_ = s.handle.UnsetVar(s.name)
}

func encode[T Value](v T) string {
	switch x := any(v).(type) {
	case bool:
		if x {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return any(v).(string)
	}
}

func decode[T Value](name, raw string) (T, error) {
	var zero T
	switch any(zero).(type) {
	case bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, fmt.Errorf("signal %s holds %q, want a boolean", name, raw)
		}
		return any(b).(T), nil
	case int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return zero, fmt.Errorf("signal %s holds %q, want an integer", name, raw)
		}
		return any(n).(T), nil
	case float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return zero, fmt.Errorf("signal %s holds %q, want a float", name, raw)
		}
		return any(f).(T), nil
	default:
		return any(raw).(T), nil
	}
}
