package engine

import (
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/nickgartmann/todo-trek/internal/pubsub"
	"github.com/nickgartmann/todo-trek/internal/store"
	"github.com/nickgartmann/todo-trek/internal/todo"
	"github.com/nickgartmann/todo-trek/internal/validate"
)

// Engine coordinates mutations against the store and publishes one
// change event per committed mutation.
//
// Thread-safety: all methods are safe for concurrent use. Mutations on
// the same list serialize on the store's per-list lock; everything
// else runs concurrently.
type Engine struct {
	store  *store.Store
	broker *pubsub.Broker
	ids    todo.IDGenerator
	now    func() time.Time
}

// Option allows configuration of engine parameters.
type Option func(*Engine)

// WithIDGenerator overrides entity ID generation.
// Use todo.NewFixedGenerator for deterministic tests.
func WithIDGenerator(g todo.IDGenerator) Option {
	return func(e *Engine) {
		e.ids = g
	}
}

// WithClock overrides the wall clock used for timestamps.
// Use a fixed clock for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine over the given store and broker.
//
// The broker may be nil, in which case mutations still commit but no
// events are published. Defaults: UUIDv7 IDs, UTC wall clock.
func New(s *store.Store, b *pubsub.Broker, opts ...Option) *Engine {
	e := &Engine{
		store:  s,
		broker: b,
		ids:    todo.UUIDv7Generator{},
		now:    func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Watch subscribes to every change event for the user's data.
// Callers must Close the subscription when done.
// Returns nil if the engine has no broker or the broker is closed.
func (e *Engine) Watch(userID string) *pubsub.Subscription {
	if e.broker == nil {
		return nil
	}
	return e.broker.Subscribe(todo.Topic(userID))
}

// publish sends ev to the owning user's topic. Called strictly after
// the corresponding transaction has committed, never under the list
// lock. Delivery is best-effort; failures are not surfaced.
func (e *Engine) publish(userID string, ev todo.Event) {
	if e.broker == nil {
		return
	}
	e.broker.Publish(todo.Topic(userID), ev)
	slog.Debug("published event", "kind", ev.Kind(), "user_id", userID)
}

// checkInput runs a validator result into the engine error taxonomy.
func checkInput(err error) error {
	if err == nil {
		return nil
	}
	var fe validate.FieldErrors
	if errors.As(err, &fe) {
		return validationError(fe)
	}
	return storageError("validate input", err)
}

// mapStoreError converts storage errors into the engine taxonomy.
// sql.ErrNoRows becomes NotFound for the named entity.
func mapStoreError(entity, op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundError(entity)
	}
	return storageError(op, err)
}
