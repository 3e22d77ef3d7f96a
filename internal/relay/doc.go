// Package relay implements a small pub/sub layer for distributing typed
// events between kits, either inside one process or across processes.
//
// Interface hierarchy:
//   - Broker: hands out named topics
//     └── Topic: publish/subscribe for one event stream
//     └── Subscription: explicit lifecycle with cleanup
//
// The local broker fans out through buffered channels and drops
// subscribers that stay blocked past a timeout. The NATS broker encodes
// events with the discriminated JSON codec from the events package and
// uses the topic id as the subject.
//
// The package is internal; the root package re-exports the Broker
// interface together with constructors for both implementations.
package relay
