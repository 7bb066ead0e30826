// Package pubsub implements the in-process topic broker that fans
// change events out to live subscribers.
package pubsub

import (
	"sync"

	"github.com/nickgartmann/todo-trek/internal/todo"
)

// DefaultBuffer is the per-subscription channel buffer. A subscriber
// that falls more than this many events behind starts losing events
// rather than blocking publishers.
const DefaultBuffer = 16

// Broker is a topic-based fan-out dispatcher.
//
// Delivery is best-effort, at-most-once: Publish never blocks, and an
// event offered to a full subscription buffer is dropped. Events from
// a single publisher arrive in publish order; there is no cross-
// publisher ordering and no sequence numbering.
//
// Thread-safety: all methods are safe for concurrent use.
type Broker struct {
	mu     sync.Mutex
	topics map[string]map[*Subscription]struct{}
	buffer int
	closed bool
}

// Option configures a Broker.
type Option func(*Broker)

// WithBuffer sets the per-subscription channel buffer.
// Use WithBuffer(1) to test drop behavior.
func WithBuffer(n int) Option {
	return func(b *Broker) {
		b.buffer = n
	}
}

// New creates an empty broker.
func New(opts ...Option) *Broker {
	b := &Broker{
		topics: make(map[string]map[*Subscription]struct{}),
		buffer: DefaultBuffer,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscription is a single subscriber's registration on one topic.
type Subscription struct {
	broker *Broker
	topic  string
	ch     chan todo.Event
	once   sync.Once
}

// C returns the channel events are delivered on. The channel is closed
// when the subscription or the broker is closed.
func (s *Subscription) C() <-chan todo.Event {
	return s.ch
}

// Close removes the subscription from its topic and closes C.
// Safe to call multiple times.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.remove(s)
		close(s.ch)
	})
}

// Subscribe registers interest in a topic and returns the new
// subscription. Returns nil if the broker is closed.
func (b *Broker) Subscribe(topic string) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	sub := &Subscription{
		broker: b,
		topic:  topic,
		ch:     make(chan todo.Event, b.buffer),
	}

	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[*Subscription]struct{})
		b.topics[topic] = subs
	}
	subs[sub] = struct{}{}

	return sub
}

// Publish delivers ev to every current subscriber of topic.
// Never blocks: a subscriber whose buffer is full misses the event.
func (b *Broker) Publish(topic string, ev todo.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	for sub := range b.topics[topic] {
		// Non-blocking send - slow subscribers lose events instead of
		// stalling the mutation path.
		select {
		case sub.ch <- ev:
		default:
		}
	}
}

// Close shuts the broker down, closing every subscription channel.
// Subsequent Publish calls are no-ops and Subscribe returns nil.
func (b *Broker) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true

	var all []*Subscription
	for _, subs := range b.topics {
		for sub := range subs {
			all = append(all, sub)
		}
	}
	b.topics = nil
	// Channels are closed outside the lock: a concurrent
	// Subscription.Close may be blocked in remove() waiting for it.
	b.mu.Unlock()

	for _, sub := range all {
		sub.once.Do(func() {
			close(sub.ch)
		})
	}
}

// remove detaches a subscription from its topic.
func (b *Broker) remove(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	if subs, ok := b.topics[s.topic]; ok {
		delete(subs, s)
		if len(subs) == 0 {
			delete(b.topics, s.topic)
		}
	}
}
