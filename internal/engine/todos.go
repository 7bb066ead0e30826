package engine

import (
	"context"

	"github.com/nickgartmann/todo-trek/internal/todo"
	"github.com/nickgartmann/todo-trek/internal/validate"
)

// ToggleComplete flips a todo between started and completed and
// publishes TodoToggled with the updated status. No lock is taken:
// the flip is a single conditional update and never touches position.
func (e *Engine) ToggleComplete(ctx context.Context, userID, todoID string) (todo.Todo, error) {
	t, err := e.store.GetTodo(ctx, e.store.DB(), userID, todoID)
	if err != nil {
		return todo.Todo{}, mapStoreError("todo", "toggle todo", err)
	}

	now := e.now()
	if err := e.store.ToggleStatus(ctx, e.store.DB(), userID, todoID, now); err != nil {
		return todo.Todo{}, mapStoreError("todo", "toggle todo", err)
	}

	t.Status = t.Status.Toggle()
	t.UpdatedAt = now

	e.publish(userID, todo.TodoToggled{Todo: t})
	return t, nil
}

// UpdateTodo applies a validated title change and publishes
// TodoUpdated. Status changes go through ToggleComplete; position
// changes go through RepositionTodo.
func (e *Engine) UpdateTodo(ctx context.Context, userID, todoID string, raw map[string]any) (todo.Todo, error) {
	params, err := validate.Todo(raw)
	if err != nil {
		return todo.Todo{}, checkInput(err)
	}

	t, err := e.store.GetTodo(ctx, e.store.DB(), userID, todoID)
	if err != nil {
		return todo.Todo{}, mapStoreError("todo", "update todo", err)
	}

	t.Title = params.Title
	t.UpdatedAt = e.now()

	if err := e.store.UpdateTodoTitle(ctx, e.store.DB(), t); err != nil {
		return todo.Todo{}, mapStoreError("todo", "update todo", err)
	}

	e.publish(userID, todo.TodoUpdated{Todo: t})
	return t, nil
}

// GetTodo returns a single todo owned by the user.
func (e *Engine) GetTodo(ctx context.Context, userID, todoID string) (todo.Todo, error) {
	t, err := e.store.GetTodo(ctx, e.store.DB(), userID, todoID)
	if err != nil {
		return todo.Todo{}, mapStoreError("todo", "get todo", err)
	}
	return t, nil
}

// ListTodos returns a list's todos in position order.
// Returns NotFound if the list does not exist for the user.
func (e *Engine) ListTodos(ctx context.Context, userID, listID string) ([]todo.Todo, error) {
	if _, err := e.store.GetList(ctx, e.store.DB(), userID, listID); err != nil {
		return nil, mapStoreError("list", "list todos", err)
	}

	todos, err := e.store.TodosForList(ctx, e.store.DB(), userID, listID)
	if err != nil {
		return nil, storageError("list todos", err)
	}
	return todos, nil
}
