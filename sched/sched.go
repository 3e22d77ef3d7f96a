package sched

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/fogfish/opts"

	"github.com/tkbind/tkbind/native"
	"github.com/tkbind/tkbind/pkg/uuidx"
)

const destroySequence = "<Destroy>"

// Scheduler owns the job table for one native handle. All methods run on
// the loop thread; the concurrent maps exist for cheap iteration during
// cascaded cancels, not for cross-thread access.
type Scheduler struct {
	handle   native.Handle
	jobs     *haxmap.Map[string, *Job]
	watched  *haxmap.Map[string, struct{}]
	watchCmd string
	now      func() time.Time
}

// WithNow injects the clock used for At arithmetic and drift compensation.
// Tests pass the virtual clock of their fake handle.
var WithNow = opts.ForName[Scheduler, func() time.Time]("now")

// New returns a scheduler bound to a native handle.
func New(handle native.Handle, options ...opts.Option[Scheduler]) (*Scheduler, error) {
	s := &Scheduler{
		handle:  handle,
		jobs:    haxmap.New[string, *Job](),
		watched: haxmap.New[string, struct{}](),
		now:     time.Now,
	}
	if err := opts.Apply(s, options); err != nil {
		return nil, err
	}
	return s, nil
}

// Job is one scheduled callback. The zero value is not usable; jobs come
// from the scheduler's primitives.
type Job struct {
	id     string
	owner  string
	s      *Scheduler
	token  string
	active atomic.Bool
}

// ID returns the job id.
func (j *Job) ID() string { return j.id }

// Owner returns the widget path the job is tied to.
func (j *Job) Owner() string { return j.owner }

// Active reports whether the job can still fire.
func (j *Job) Active() bool { return j.active.Load() }

// Cancel prevents future firings. Cancelling twice, or cancelling a job
// that already fired, is a no-op.
func (j *Job) Cancel() {
	if !j.active.CompareAndSwap(true, false) {
		return
	}
	_ = j.s.handle.CancelAfter(j.token)
	j.s.jobs.Del(j.id)
}

// After runs fn once after the delay elapses. Negative delays clamp to
// zero. The job deactivates before fn runs, so cancelling from inside the
// callback is a no-op.
func (s *Scheduler) After(owner string, delay time.Duration, fn func()) (*Job, error) {
	if delay < 0 {
		delay = 0
	}
	return s.oneShot(owner, fn, func(run func()) (string, error) {
		return s.handle.After(delay, run)
	})
}

// Idle runs fn at the next idle moment of the loop.
func (s *Scheduler) Idle(owner string, fn func()) (*Job, error) {
	return s.oneShot(owner, fn, s.handle.AfterIdle)
}

// At runs fn once at the given instant. Instants in the past fire on the
// next loop turn.
func (s *Scheduler) At(owner string, when time.Time, fn func()) (*Job, error) {
	return s.After(owner, when.Sub(s.now()), fn)
}

func (s *Scheduler) oneShot(owner string, fn func(), arm func(func()) (string, error)) (*Job, error) {
	if fn == nil {
		return nil, errors.New("sched: nil callback")
	}
	if err := s.ensureWatch(owner); err != nil {
		return nil, err
	}

	j := &Job{id: "job_" + uuidx.NewHex(), owner: owner, s: s}
	j.active.Store(true)
	run := func() {
		if !j.active.CompareAndSwap(true, false) {
			return
		}
		s.jobs.Del(j.id)
		fn()
	}

	token, err := arm(run)
	if err != nil {
		return nil, fmt.Errorf("schedule for %s: %w", owner, err)
	}
	j.token = token
	s.jobs.Set(j.id, j)
	return j, nil
}

// Every runs fn repeatedly, first after one full period, then with the
// delay to the next tick reduced by however long the callback took. A
// reschedule that fails because the owner went away mid-tick deactivates
// the job.
func (s *Scheduler) Every(owner string, period time.Duration, fn func()) (*Job, error) {
	if fn == nil {
		return nil, errors.New("sched: nil callback")
	}
	if period < 0 {
		period = 0
	}
	if err := s.ensureWatch(owner); err != nil {
		return nil, err
	}

	j := &Job{id: "job_" + uuidx.NewHex(), owner: owner, s: s}
	j.active.Store(true)
	var tick func()
	tick = func() {
		if !j.active.Load() {
			return
		}
		started := s.now()
		fn()
		if !j.active.Load() {
			return
		}
		next := period - s.now().Sub(started)
		if next < 0 {
			next = 0
		}
		token, err := s.handle.After(next, tick)
		if err != nil {
			j.active.Store(false)
			s.jobs.Del(j.id)
			return
		}
		j.token = token
	}

	token, err := s.handle.After(period, tick)
	if err != nil {
		return nil, fmt.Errorf("schedule for %s: %w", owner, err)
	}
	j.token = token
	s.jobs.Set(j.id, j)
	return j, nil
}

// CancelOwned cancels every job tied to the owner. The destroy watch stays
// installed; a widget that keeps living can schedule again without a new
// binding.
func (s *Scheduler) CancelOwned(owner string) {
	s.jobs.ForEach(func(_ string, j *Job) bool {
		if j.owner == owner {
			j.Cancel()
		}
		return true
	})
}

// CancelAll cancels everything, removes the watch bindings, and releases
// the destroy-watch command. Meant for teardown; safe to call more than
// once.
func (s *Scheduler) CancelAll() {
	s.jobs.ForEach(func(_ string, j *Job) bool {
		j.Cancel()
		return true
	})
	s.watched.ForEach(func(owner string, _ struct{}) bool {
		if !s.handle.Destroyed(owner) {
			_ = s.handle.Unbind(native.WidgetScope(owner), destroySequence)
		}
		s.watched.Del(owner)
		return true
	})
	if s.watchCmd != "" {
		_ = s.handle.Deregister(s.watchCmd)
		s.watchCmd = ""
	}
}

// Len returns the number of live jobs.
func (s *Scheduler) Len() int {
	return int(s.jobs.Len())
}

// WatchScript returns the destroy-notification script installed for an
// owner. Callers that rebuild a widget's binding tables use it to carry
// the watch across.
func (s *Scheduler) WatchScript(owner string) (string, bool) {
	if _, ok := s.watched.Get(owner); !ok {
		return "", false
	}
	return s.watchCmd + " %W", true
}

// ensureWatch installs the owner's destroy notification: one shared command
// for the whole scheduler, one appended binding script per owner. Fails
// when the owner path is already dead, which callers surface as a
// scheduling error.
func (s *Scheduler) ensureWatch(owner string) error {
	if _, ok := s.watched.Get(owner); ok {
		return nil
	}
	if s.watchCmd == "" {
		id := "sched_" + uuidx.NewHex()
		err := s.handle.Register(id, func(args []string) (string, error) {
			if len(args) > 0 {
				s.ownerDestroyed(args[0])
			}
			return "", nil
		})
		if err != nil {
			return fmt.Errorf("install destroy watch: %w", err)
		}
		s.watchCmd = id
	}
	script := s.watchCmd + " %W"
	if err := s.handle.Bind(native.WidgetScope(owner), destroySequence, script, true); err != nil {
		return fmt.Errorf("watch %s: %w", owner, err)
	}
	s.watched.Set(owner, struct{}{})
	return nil
}

// ownerDestroyed runs once per destroy notification. The widget's bindings
// die with it, so only the bookkeeping needs resetting here.
func (s *Scheduler) ownerDestroyed(owner string) {
	s.watched.Del(owner)
	s.CancelOwned(owner)
}

// Owned pins a scheduler to one owner. Stream operators hold one of these
// as their timer source so every deferred value dies with the widget that
// produced it.
type Owned struct {
	s     *Scheduler
	owner string
}

// For returns the scheduler pinned to an owner.
func (s *Scheduler) For(owner string) Owned {
	return Owned{s: s, owner: owner}
}

// After schedules a one-shot on the pinned owner.
func (o Owned) After(delay time.Duration, fn func()) (*Job, error) {
	if o.s == nil {
		return nil, errors.New("sched: no scheduler attached")
	}
	return o.s.After(o.owner, delay, fn)
}

// Idle schedules an idle callback on the pinned owner.
func (o Owned) Idle(fn func()) (*Job, error) {
	if o.s == nil {
		return nil, errors.New("sched: no scheduler attached")
	}
	return o.s.Idle(o.owner, fn)
}
