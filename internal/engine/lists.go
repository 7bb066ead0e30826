package engine

import (
	"context"
	"database/sql"

	"github.com/nickgartmann/todo-trek/internal/todo"
	"github.com/nickgartmann/todo-trek/internal/validate"
)

// CreateList creates an empty list for the user from raw input and
// publishes ListAdded.
func (e *Engine) CreateList(ctx context.Context, userID string, raw map[string]any) (todo.List, error) {
	params, err := validate.List(raw)
	if err != nil {
		return todo.List{}, checkInput(err)
	}

	now := e.now()
	l := todo.List{
		ID:         e.ids.Generate(),
		UserID:     userID,
		Title:      params.Title,
		InsertedAt: now,
		UpdatedAt:  now,
	}

	if err := e.store.InsertList(ctx, e.store.DB(), l); err != nil {
		return todo.List{}, storageError("create list", err)
	}

	e.publish(userID, todo.ListAdded{List: l})
	return l, nil
}

// UpdateList renames a list from raw input and publishes ListUpdated.
func (e *Engine) UpdateList(ctx context.Context, userID, listID string, raw map[string]any) (todo.List, error) {
	params, err := validate.List(raw)
	if err != nil {
		return todo.List{}, checkInput(err)
	}

	l, err := e.store.GetList(ctx, e.store.DB(), userID, listID)
	if err != nil {
		return todo.List{}, mapStoreError("list", "update list", err)
	}

	l.Title = params.Title
	l.UpdatedAt = e.now()

	if err := e.store.UpdateListTitle(ctx, e.store.DB(), l); err != nil {
		return todo.List{}, mapStoreError("list", "update list", err)
	}

	e.publish(userID, todo.ListUpdated{List: l})
	return l, nil
}

// DeleteList removes a list unconditionally and publishes ListDeleted.
// The list's todos go with it via storage-level cascade; no per-todo
// events are emitted.
func (e *Engine) DeleteList(ctx context.Context, userID, listID string) (todo.List, error) {
	var deleted todo.List
	err := e.store.WithTx(ctx, func(tx *sql.Tx) error {
		l, err := e.store.GetList(ctx, tx, userID, listID)
		if err != nil {
			return err
		}
		deleted = l
		return e.store.DeleteList(ctx, tx, userID, listID)
	})
	if err != nil {
		return todo.List{}, mapStoreError("list", "delete list", err)
	}

	e.publish(userID, todo.ListDeleted{List: deleted})
	return deleted, nil
}

// GetList returns a single list owned by the user.
func (e *Engine) GetList(ctx context.Context, userID, listID string) (todo.List, error) {
	l, err := e.store.GetList(ctx, e.store.DB(), userID, listID)
	if err != nil {
		return todo.List{}, mapStoreError("list", "get list", err)
	}
	return l, nil
}

// ListLists returns the user's lists ordered by creation time.
func (e *Engine) ListLists(ctx context.Context, userID string) ([]todo.List, error) {
	lists, err := e.store.ListsForUser(ctx, e.store.DB(), userID)
	if err != nil {
		return nil, storageError("list lists", err)
	}
	return lists, nil
}
