package engine

import (
	"context"
	"database/sql"

	"github.com/nickgartmann/todo-trek/internal/todo"
	"github.com/nickgartmann/todo-trek/internal/validate"
)

// CreateTodo appends a new todo at the end of the list and publishes
// TodoAdded.
//
// The append position is the list's todo count, read inside the
// per-list locked transaction: two concurrent creates on the same list
// serialize and receive consecutive positions rather than colliding on
// a stale count.
//
// The new todo takes the list's owner; creating a todo under another
// user's list fails with NotFound.
func (e *Engine) CreateTodo(ctx context.Context, userID, listID string, raw map[string]any) (todo.Todo, error) {
	params, err := validate.Todo(raw)
	if err != nil {
		return todo.Todo{}, checkInput(err)
	}

	var created todo.Todo
	err = e.store.WithListTx(ctx, listID, func(tx *sql.Tx) error {
		list, err := e.store.GetList(ctx, tx, userID, listID)
		if err != nil {
			return err
		}

		count, err := e.store.CountTodos(ctx, tx, listID)
		if err != nil {
			return err
		}

		now := e.now()
		created = todo.Todo{
			ID:         e.ids.Generate(),
			UserID:     list.UserID,
			ListID:     list.ID,
			Title:      params.Title,
			Status:     params.Status,
			Position:   count,
			InsertedAt: now,
			UpdatedAt:  now,
		}
		return e.store.InsertTodo(ctx, tx, created)
	})
	if err != nil {
		return todo.Todo{}, mapStoreError("list", "create todo", err)
	}

	e.publish(userID, todo.TodoAdded{Todo: created})
	return created, nil
}

// RepositionTodo moves a todo to newIndex within its list, shifting
// the todos in between by one to keep positions dense, and publishes
// TodoRepositioned.
//
// newIndex is clamped to the list's last index; an out-of-range move
// lands the todo at the end. Negative indices are rejected as a
// validation error. A move to the todo's current position changes
// nothing but still publishes.
//
// The whole read-clamp-shift-write sequence runs inside one per-list
// locked transaction. On any failure the transaction rolls back and no
// partial shift is visible.
func (e *Engine) RepositionTodo(ctx context.Context, userID, todoID string, newIndex int) (todo.Todo, error) {
	if newIndex < 0 {
		return todo.Todo{}, validationError(validate.FieldErrors{
			"position": {"must not be negative"},
		})
	}

	// The owning list is needed to key the lock. Current position and
	// count are re-read inside the transaction; only ListID is trusted
	// from this read (todos never change lists).
	t, err := e.store.GetTodo(ctx, e.store.DB(), userID, todoID)
	if err != nil {
		return todo.Todo{}, mapStoreError("todo", "reposition todo", err)
	}

	var moved todo.Todo
	err = e.store.WithListTx(ctx, t.ListID, func(tx *sql.Tx) error {
		t, err := e.store.GetTodo(ctx, tx, userID, todoID)
		if err != nil {
			return err
		}

		count, err := e.store.CountTodos(ctx, tx, t.ListID)
		if err != nil {
			return err
		}

		idx := newIndex
		if idx > count-1 {
			idx = count - 1
		}

		switch {
		case idx > t.Position:
			// Everything in (old, new] slides down one.
			if err := e.store.ShiftPositions(ctx, tx, t.ListID, t.ID, t.Position+1, idx, -1); err != nil {
				return err
			}
		case idx < t.Position:
			// Everything in [new, old) slides up one.
			if err := e.store.ShiftPositions(ctx, tx, t.ListID, t.ID, idx, t.Position-1, +1); err != nil {
				return err
			}
		}

		now := e.now()
		if err := e.store.SetPosition(ctx, tx, t.ID, idx, now); err != nil {
			return err
		}

		t.Position = idx
		t.UpdatedAt = now
		moved = t
		return nil
	})
	if err != nil {
		return todo.Todo{}, mapStoreError("todo", "reposition todo", err)
	}

	e.publish(userID, todo.TodoRepositioned{Todo: moved})
	return moved, nil
}

// DeleteTodo removes a todo and renumbers the todos after it so the
// list's positions stay dense, then publishes TodoDeleted.
func (e *Engine) DeleteTodo(ctx context.Context, userID, todoID string) (todo.Todo, error) {
	t, err := e.store.GetTodo(ctx, e.store.DB(), userID, todoID)
	if err != nil {
		return todo.Todo{}, mapStoreError("todo", "delete todo", err)
	}

	var deleted todo.Todo
	err = e.store.WithListTx(ctx, t.ListID, func(tx *sql.Tx) error {
		t, err := e.store.GetTodo(ctx, tx, userID, todoID)
		if err != nil {
			return err
		}

		if err := e.store.DeleteTodo(ctx, tx, userID, todoID); err != nil {
			return err
		}

		deleted = t
		return e.store.CompactPositions(ctx, tx, t.ListID, t.Position)
	})
	if err != nil {
		return todo.Todo{}, mapStoreError("todo", "delete todo", err)
	}

	e.publish(userID, todo.TodoDeleted{Todo: deleted})
	return deleted, nil
}
