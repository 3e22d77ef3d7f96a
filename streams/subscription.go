package streams

import (
	"sync/atomic"

	"github.com/tkbind/tkbind/pkg/uuidx"
)

// Subscription detaches one terminal listener from its chain.
type Subscription struct {
	id     string
	cancel func()
	done   atomic.Bool
}

// NewSubscription wraps a detach hook. Other packages that hand out
// stream-style handles (variable traces, relay mirrors) use this so every
// listener detaches the same way.
func NewSubscription(cancel func()) *Subscription {
	return &Subscription{id: "sub_" + uuidx.NewHex(), cancel: cancel}
}

// ID returns the subscription id.
func (s *Subscription) ID() string { return s.id }

// Active reports whether the subscription is still attached.
func (s *Subscription) Active() bool { return !s.done.Load() }

// Unsubscribe detaches the listener. The first call wins; later calls and
// calls on an already-dead subscription are no-ops.
func (s *Subscription) Unsubscribe() {
	if !s.done.CompareAndSwap(false, true) {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
}
