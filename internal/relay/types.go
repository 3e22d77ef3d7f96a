package relay

import (
	"context"

	"github.com/tkbind/tkbind/events"
)

// Broker hands out named topics. Implementations exist for in-process
// fan-out and for NATS-backed cross-process mirroring.
type Broker interface {
	Topic(context.Context, string) Topic
}

// Topic is a single named event channel.
type Topic interface {
	Publish(context.Context, events.Event) error
	Subscribe(context.Context, Hook) (Subscription, error)
}

// Subscription is a live attachment of a hook to a topic.
type Subscription interface {
	ID() string
	Unsubscribe()
}

// Hook receives every event published to a subscribed topic.
type Hook interface {
	OnEvent(context.Context, events.Event)
}

// HookFunc adapts a plain function to the Hook interface.
type HookFunc func(context.Context, events.Event)

func (f HookFunc) OnEvent(ctx context.Context, ev events.Event) { f(ctx, ev) }
