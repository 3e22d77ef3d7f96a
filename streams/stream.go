package streams

import (
	"github.com/tkbind/tkbind/sched"
)

// Source is where a composed chain attaches. The sink receives each value
// and reports whether native propagation should stop; Attach returns the
// hook that detaches exactly this sink again.
type Source[T any] interface {
	Attach(sink func(T) bool) (func(), error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc[T any] func(sink func(T) bool) (func(), error)

// Attach calls f.
func (f SourceFunc[T]) Attach(sink func(T) bool) (func(), error) { return f(sink) }

// Stream is an immutable pipeline description. Operators wrap the source
// and return a new Stream; terminals attach a sink and return the live
// Subscription.
type Stream[T any] struct {
	src    Source[T]
	timers sched.Owned
}

// New returns a stream over src. Timing operators schedule through timers,
// so deferred values die with the owning widget.
func New[T any](src Source[T], timers sched.Owned) *Stream[T] {
	return &Stream[T]{src: src, timers: timers}
}

// Listen attaches fn as a terminal listener. The value reaches fn after
// every operator in the chain has passed it through.
func (s *Stream[T]) Listen(fn func(T)) (*Subscription, error) {
	detach, err := s.src.Attach(func(v T) bool {
		fn(v)
		return false
	})
	if err != nil {
		return nil, err
	}
	return NewSubscription(detach), nil
}

// ThenStop attaches a terminal that consumes every value: the native
// runtime stops propagating the event to later handlers on the same
// target.
func (s *Stream[T]) ThenStop() (*Subscription, error) {
	detach, err := s.src.Attach(func(T) bool { return true })
	if err != nil {
		return nil, err
	}
	return NewSubscription(detach), nil
}

// ThenStopWhen attaches a terminal that stops native propagation for
// values matching pred and lets the rest pass.
func (s *Stream[T]) ThenStopWhen(pred func(T) bool) (*Subscription, error) {
	detach, err := s.src.Attach(pred)
	if err != nil {
		return nil, err
	}
	return NewSubscription(detach), nil
}
