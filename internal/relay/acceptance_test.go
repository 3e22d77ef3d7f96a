package relay

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkbind/tkbind/events"
)

type recordingHook struct {
	mu     sync.Mutex
	wg     *sync.WaitGroup
	events []events.Event
}

func newRecordingHook() *recordingHook {
	return &recordingHook{}
}

func (r *recordingHook) OnEvent(ctx context.Context, ev events.Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	if r.wg != nil {
		r.wg.Done()
	}
}

func (r *recordingHook) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *recordingHook) sequences() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		switch e := ev.(type) {
		case events.Virtual:
			out = append(out, e.Sequence)
		case events.Key:
			out = append(out, e.Sequence)
		}
	}
	return out
}

func sampleVirtual(name string, n int) events.Event {
	return events.Virtual{Base: events.Base{
		Sequence:  "<<" + name + ">>",
		Target:    ".entry",
		Timestamp: strfmt.DateTime(time.Now()),
		Data:      map[string]any{"n": float64(n)},
	}}
}

// brokerFactory creates a fresh broker instance for one test case.
type brokerFactory func(t *testing.T) Broker

type acceptanceTest struct {
	name string
	test func(t *testing.T, createBroker brokerFactory)
}

// runAcceptanceTests runs the shared suite against a broker implementation.
func runAcceptanceTests(t *testing.T, name string, factory brokerFactory) {
	tests := []acceptanceTest{
		{"creates unique topics", testUniqueTopics},
		{"reuses existing topics", testReuseTopics},
		{"publishes events to all subscribers", testPublishToAllSubscribers},
		{"handles subscription lifecycle", testSubscriptionLifecycle},
		{"handles context cancellation", testContextCancellation},
		{"validates hook requirement", testHookValidation},
		{"handles slow subscribers", testSlowSubscribers},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", name, tt.name), func(t *testing.T) {
			tt.test(t, factory)
		})
	}
}

func TestBrokerImplementations(t *testing.T) {
	t.Run("Local", func(t *testing.T) {
		runAcceptanceTests(t, "Local", func(t *testing.T) Broker {
			return Local()
		})
	})

	t.Run("NATS", func(t *testing.T) {
		probe, err := nats.Connect(nats.DefaultURL, nats.Timeout(500*time.Millisecond))
		if err != nil {
			t.Skipf("nats server not available: %v", err)
		}
		probe.Close()

		runAcceptanceTests(t, "NATS", func(t *testing.T) Broker {
			nc, err := nats.Connect(nats.DefaultURL)
			require.NoError(t, err)
			t.Cleanup(func() { nc.Close() })
			return NATS(nc)
		})
	})
}

func testUniqueTopics(t *testing.T, createBroker brokerFactory) {
	broker := createBroker(t)
	topic1 := broker.Topic(context.Background(), "test1")
	topic2 := broker.Topic(context.Background(), "test2")
	assert.NotEqual(t, topic1, topic2)
}

func testReuseTopics(t *testing.T, createBroker brokerFactory) {
	broker := createBroker(t)
	topic1 := broker.Topic(context.Background(), "test")
	topic2 := broker.Topic(context.Background(), "test")
	assert.Equal(t, topic1, topic2)
}

func testPublishToAllSubscribers(t *testing.T, createBroker brokerFactory) {
	broker := createBroker(t)
	topic := broker.Topic(context.Background(), "fanout")
	ctx := context.Background()

	recorder1 := newRecordingHook()
	recorder2 := newRecordingHook()

	sub1, err := topic.Subscribe(ctx, recorder1)
	require.NoError(t, err)
	sub2, err := topic.Subscribe(ctx, recorder2)
	require.NoError(t, err)
	defer sub1.Unsubscribe()
	defer sub2.Unsubscribe()

	// Give the subscriptions a moment to establish before publishing.
	time.Sleep(100 * time.Millisecond)

	var wg sync.WaitGroup
	wg.Add(4) // 2 recorders * 2 events
	recorder1.wg = &wg
	recorder2.wg = &wg

	require.NoError(t, topic.Publish(ctx, sampleVirtual("Saved", 1)))
	require.NoError(t, topic.Publish(ctx, sampleVirtual("Changed", 2)))

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for events to be processed")
	}

	assert.ElementsMatch(t, []string{"<<Saved>>", "<<Changed>>"}, recorder1.sequences())
	assert.ElementsMatch(t, []string{"<<Saved>>", "<<Changed>>"}, recorder2.sequences())
}

func testSubscriptionLifecycle(t *testing.T, createBroker brokerFactory) {
	broker := createBroker(t)
	topic := broker.Topic(context.Background(), "lifecycle")
	ctx := context.Background()

	recorder := newRecordingHook()
	sub, err := topic.Subscribe(ctx, recorder)
	require.NoError(t, err)

	sub.Unsubscribe()
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, topic.Publish(ctx, sampleVirtual("Saved", 1)))
	time.Sleep(100 * time.Millisecond)

	assert.Zero(t, recorder.count())
}

func testContextCancellation(t *testing.T, createBroker brokerFactory) {
	broker := createBroker(t)
	topic := broker.Topic(context.Background(), "cancellation")

	ctx, cancel := context.WithCancel(context.Background())
	recorder := newRecordingHook()
	sub, err := topic.Subscribe(ctx, recorder)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	cancel()
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, topic.Publish(context.Background(), sampleVirtual("Saved", 1)))
	time.Sleep(100 * time.Millisecond)

	assert.Zero(t, recorder.count())
}

func testHookValidation(t *testing.T, createBroker brokerFactory) {
	broker := createBroker(t)
	topic := broker.Topic(context.Background(), "validation")

	_, err := topic.Subscribe(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hook is required")
}

type slowHook struct {
	*recordingHook
	delay time.Duration
}

func (h *slowHook) OnEvent(ctx context.Context, ev events.Event) {
	time.Sleep(h.delay)
	h.recordingHook.OnEvent(ctx, ev)
}

func testSlowSubscribers(t *testing.T, createBroker brokerFactory) {
	broker := createBroker(t)
	topic := broker.Topic(context.Background(), "slow")
	ctx := context.Background()

	recorder := &slowHook{
		recordingHook: newRecordingHook(),
		delay:         200 * time.Millisecond,
	}
	sub, err := topic.Subscribe(ctx, recorder)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	time.Sleep(100 * time.Millisecond)

	const numEvents = 10
	for i := 0; i < numEvents; i++ {
		require.NoError(t, topic.Publish(ctx, sampleVirtual("Tick", i)))
	}

	time.Sleep(500 * time.Millisecond)

	// The backlog outpaces a subscriber that takes 200ms per event.
	assert.Less(t, recorder.count(), numEvents)
}
