package tkbind

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/nats-io/nats.go"

	"github.com/tkbind/tkbind/commands"
	"github.com/tkbind/tkbind/events"
	"github.com/tkbind/tkbind/internal/relay"
)

// Relay is the broker kits mirror through. Wire one in with WithRelay and
// every virtual event emitted by one kit replays on the others sharing the
// topic.
type Relay = relay.Broker

// LocalRelay returns an in-process relay for kits living in one process.
func LocalRelay() Relay { return relay.Local() }

// NATSRelay returns a relay that mirrors events across processes over a
// NATS connection. The topic name doubles as the subject.
func NATSRelay(conn *nats.Conn) Relay { return relay.NATS(conn) }

// OriginRelay tags relay failures in error handler calls.
const OriginRelay = commands.Origin("relay")

// relaySenderKey tags mirrored payloads with the emitting kit, so the hook
// can drop its own traffic instead of replaying it in a loop.
const relaySenderKey = "_sender"

// relayTarget is where replayed events land. The original target names a
// widget in another tree, so the replay goes to the application root.
const relayTarget = "."

type relayHook struct {
	kit *Kit
}

// OnEvent runs on the broker's goroutine, so the replay hops onto the
// interpreter loop through an idle callback.
func (h relayHook) OnEvent(ctx context.Context, ev events.Event) {
	v, ok := ev.(events.Virtual)
	if !ok {
		return
	}
	if sender, _ := v.Data[relaySenderKey].(string); sender == h.kit.senderID {
		return
	}
	if _, err := h.kit.handle.AfterIdle(func() { h.kit.replayRemote(v) }); err != nil {
		h.kit.reportError(fmt.Errorf("relay replay: %w", err), OriginRelay, v.Sequence)
	}
}

// replayRemote re-emits one mirrored event locally, minus the sender tag.
func (k *Kit) replayRemote(v events.Virtual) {
	data := make(map[string]any, len(v.Data))
	for key, value := range v.Data {
		if key == relaySenderKey {
			continue
		}
		data[key] = value
	}
	if len(data) == 0 {
		if err := k.handle.SendEvent(relayTarget, v.Sequence); err != nil {
			k.reportError(fmt.Errorf("relay replay: %w", err), OriginRelay, v.Sequence)
		}
		return
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		k.reportError(fmt.Errorf("relay replay: %w", err), OriginRelay, v.Sequence)
		return
	}
	if err := k.handle.SendVirtual(relayTarget, v.Sequence, encoded); err != nil {
		k.reportError(fmt.Errorf("relay replay: %w", err), OriginRelay, v.Sequence)
	}
}
