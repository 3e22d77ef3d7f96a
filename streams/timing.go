package streams

import (
	"time"

	"github.com/fogfish/opts"

	"github.com/tkbind/tkbind/sched"
)

// Delay re-emits each value after d has passed. Deferred deliveries carry
// no verdict back; the originating dispatch has already returned.
func (s *Stream[T]) Delay(d time.Duration) *Stream[T] {
	parent, timers := s.src, s.timers
	return &Stream[T]{
		src: SourceFunc[T](func(down func(T) bool) (func(), error) {
			pending := make(map[*sched.Job]struct{})
			detach, err := parent.Attach(func(v T) bool {
				var job *sched.Job
				job, err := timers.After(d, func() {
					delete(pending, job)
					down(v)
				})
				if err != nil {
					return false // owner going away, drop
				}
				pending[job] = struct{}{}
				return false
			})
			if err != nil {
				return nil, err
			}
			return func() {
				detach()
				for job := range pending {
					job.Cancel()
				}
			}, nil
		}),
		timers: timers,
	}
}

// Idle re-emits each value at the next idle moment of the loop, after the
// current event finished processing.
func (s *Stream[T]) Idle() *Stream[T] {
	parent, timers := s.src, s.timers
	return &Stream[T]{
		src: SourceFunc[T](func(down func(T) bool) (func(), error) {
			pending := make(map[*sched.Job]struct{})
			detach, err := parent.Attach(func(v T) bool {
				var job *sched.Job
				job, err := timers.Idle(func() {
					delete(pending, job)
					down(v)
				})
				if err != nil {
					return false
				}
				pending[job] = struct{}{}
				return false
			})
			if err != nil {
				return nil, err
			}
			return func() {
				detach()
				for job := range pending {
					job.Cancel()
				}
			}, nil
		}),
		timers: timers,
	}
}

// Debounce forwards only the last value once no new value has arrived for
// a full quiet period. Each new value re-arms the single pending job.
func (s *Stream[T]) Debounce(d time.Duration) *Stream[T] {
	parent, timers := s.src, s.timers
	return &Stream[T]{
		src: SourceFunc[T](func(down func(T) bool) (func(), error) {
			var pending *sched.Job
			var last T
			detach, err := parent.Attach(func(v T) bool {
				last = v
				if pending != nil {
					pending.Cancel()
					pending = nil
				}
				job, err := timers.After(d, func() {
					pending = nil
					down(last)
				})
				if err != nil {
					return false
				}
				pending = job
				return false
			})
			if err != nil {
				return nil, err
			}
			return func() {
				detach()
				if pending != nil {
					pending.Cancel()
				}
			}, nil
		}),
		timers: timers,
	}
}

// throttleConfig collects the Throttle knobs.
type throttleConfig struct {
	trailing bool
}

// WithTrailing makes Throttle emit once more when the window closes,
// carrying the last value that arrived while it was shut. The trailing
// emission opens a fresh closed window.
var WithTrailing = opts.ForName[throttleConfig, bool]("trailing")

// Throttle emits the first value of each window immediately and swallows
// the rest until d has passed. The leading delivery is synchronous, so its
// verdict still reaches the native dispatch.
func (s *Stream[T]) Throttle(d time.Duration, options ...opts.Option[throttleConfig]) *Stream[T] {
	var cfg throttleConfig
	if err := opts.Apply(&cfg, options); err != nil {
		panic(err)
	}

	parent, timers := s.src, s.timers
	return &Stream[T]{
		src: SourceFunc[T](func(down func(T) bool) (func(), error) {
			open := true
			held := false
			var last T
			var window *sched.Job

			var closeWindow func()
			closeWindow = func() {
				window = nil
				open = true
				if !cfg.trailing || !held {
					return
				}
				v := last
				held = false
				open = false
				if job, err := timers.After(d, closeWindow); err == nil {
					window = job
				} else {
					open = true
				}
				down(v)
			}

			detach, err := parent.Attach(func(v T) bool {
				if !open {
					held = true
					last = v
					return false
				}
				job, err := timers.After(d, closeWindow)
				if err != nil {
					return down(v) // cannot arm a window, stay open
				}
				open = false
				window = job
				return down(v)
			})
			if err != nil {
				return nil, err
			}
			return func() {
				detach()
				if window != nil {
					window.Cancel()
				}
			}, nil
		}),
		timers: timers,
	}
}
