package streams

// derive returns a stream whose chain inserts one synchronous stage
// between the parent and the downstream sink.
func (s *Stream[T]) derive(stage func(down func(T) bool) func(T) bool) *Stream[T] {
	parent := s.src
	return &Stream[T]{
		src: SourceFunc[T](func(down func(T) bool) (func(), error) {
			return parent.Attach(stage(down))
		}),
		timers: s.timers,
	}
}

// Map transforms each value.
func (s *Stream[T]) Map(f func(T) T) *Stream[T] {
	return s.derive(func(down func(T) bool) func(T) bool {
		return func(v T) bool { return down(f(v)) }
	})
}

// Filter passes only matching values.
func (s *Stream[T]) Filter(pred func(T) bool) *Stream[T] {
	return s.derive(func(down func(T) bool) func(T) bool {
		return func(v T) bool {
			if !pred(v) {
				return false
			}
			return down(v)
		}
	})
}

// Tap runs a side effect and passes the value through unchanged.
func (s *Stream[T]) Tap(fn func(T)) *Stream[T] {
	return s.derive(func(down func(T) bool) func(T) bool {
		return func(v T) bool {
			fn(v)
			return down(v)
		}
	})
}

// SkipWhen silently drops matching values; native propagation continues.
func (s *Stream[T]) SkipWhen(pred func(T) bool) *Stream[T] {
	return s.derive(func(down func(T) bool) func(T) bool {
		return func(v T) bool {
			if pred(v) {
				return false
			}
			return down(v)
		}
	})
}

// CancelWhen vetoes matching values: the chain reports the stop verdict so
// the pending native default action never runs, and the value never
// reaches downstream stages. Later values flow normally.
func (s *Stream[T]) CancelWhen(pred func(T) bool) *Stream[T] {
	return s.derive(func(down func(T) bool) func(T) bool {
		return func(v T) bool {
			if pred(v) {
				return true
			}
			return down(v)
		}
	})
}

// MapTo transforms each value into a different type. A method cannot
// introduce a type parameter, hence the package-level shape.
func MapTo[T, U any](s *Stream[T], f func(T) U) *Stream[U] {
	parent := s.src
	return &Stream[U]{
		src: SourceFunc[U](func(down func(U) bool) (func(), error) {
			return parent.Attach(func(v T) bool { return down(f(v)) })
		}),
		timers: s.timers,
	}
}
