package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickgartmann/todo-trek/internal/todo"
)

func testEvent(title string) todo.Event {
	return todo.ListAdded{List: todo.List{ID: "list-1", Title: title}}
}

func TestPublish_FansOutToAllSubscribers(t *testing.T) {
	b := New()
	defer b.Close()

	sub1 := b.Subscribe("todos:alice")
	sub2 := b.Subscribe("todos:alice")
	defer sub1.Close()
	defer sub2.Close()

	b.Publish("todos:alice", testEvent("Groceries"))

	for _, sub := range []*Subscription{sub1, sub2} {
		select {
		case ev := <-sub.C():
			assert.Equal(t, "list_added", ev.Kind())
		default:
			t.Error("subscriber did not receive the event")
		}
	}
}

func TestPublish_TopicIsolation(t *testing.T) {
	b := New()
	defer b.Close()

	alice := b.Subscribe("todos:alice")
	bob := b.Subscribe("todos:bob")
	defer alice.Close()
	defer bob.Close()

	b.Publish("todos:alice", testEvent("Groceries"))

	select {
	case <-alice.C():
	default:
		t.Error("alice did not receive her event")
	}
	select {
	case ev := <-bob.C():
		t.Errorf("bob received alice's event: %v", ev)
	default:
	}
}

func TestPublish_NoSubscribers(t *testing.T) {
	b := New()
	defer b.Close()

	// Must not block or panic.
	b.Publish("todos:nobody", testEvent("Groceries"))
}

func TestPublish_DropsWhenBufferFull(t *testing.T) {
	b := New(WithBuffer(1))
	defer b.Close()

	sub := b.Subscribe("todos:alice")
	defer sub.Close()

	b.Publish("todos:alice", testEvent("first"))
	b.Publish("todos:alice", testEvent("dropped"))

	ev := <-sub.C()
	la, ok := ev.(todo.ListAdded)
	require.True(t, ok)
	assert.Equal(t, "first", la.List.Title)

	select {
	case ev := <-sub.C():
		t.Errorf("overflow event was delivered: %v", ev)
	default:
	}
}

func TestPublish_PreservesOrder(t *testing.T) {
	b := New(WithBuffer(8))
	defer b.Close()

	sub := b.Subscribe("todos:alice")
	defer sub.Close()

	titles := []string{"one", "two", "three"}
	for _, title := range titles {
		b.Publish("todos:alice", testEvent(title))
	}

	for _, want := range titles {
		ev := <-sub.C()
		la, ok := ev.(todo.ListAdded)
		require.True(t, ok)
		assert.Equal(t, want, la.List.Title)
	}
}

func TestSubscription_CloseStopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	sub := b.Subscribe("todos:alice")
	sub.Close()

	// Publishing after close must not panic on the closed channel.
	b.Publish("todos:alice", testEvent("Groceries"))

	_, ok := <-sub.C()
	assert.False(t, ok, "channel should be closed")
}

func TestSubscription_CloseIdempotent(t *testing.T) {
	b := New()
	defer b.Close()

	sub := b.Subscribe("todos:alice")
	sub.Close()
	sub.Close()
}

func TestBroker_Close(t *testing.T) {
	b := New()

	sub := b.Subscribe("todos:alice")
	b.Close()

	_, ok := <-sub.C()
	assert.False(t, ok, "subscription channel should close with the broker")

	assert.Nil(t, b.Subscribe("todos:alice"), "Subscribe after Close should return nil")

	// No-ops after close.
	b.Publish("todos:alice", testEvent("Groceries"))
	b.Close()
}

func TestBroker_CloseThenSubscriptionClose(t *testing.T) {
	b := New()

	sub := b.Subscribe("todos:alice")
	b.Close()

	// Closing an already-broker-closed subscription must not panic.
	sub.Close()
}
