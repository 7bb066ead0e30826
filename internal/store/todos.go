package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nickgartmann/todo-trek/internal/todo"
)

// InsertTodo inserts a todo row with its already-computed position.
// Callers compute position under the owning list's lock (see WithListTx).
func (s *Store) InsertTodo(ctx context.Context, q DBTX, t todo.Todo) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO todos (id, user_id, list_id, title, status, position, inserted_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.UserID, t.ListID, t.Title, t.Status, t.Position, t.InsertedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

// UpdateTodoTitle applies a field-level update, scoped to the owner.
// Returns sql.ErrNoRows if no todo matches.
func (s *Store) UpdateTodoTitle(ctx context.Context, q DBTX, t todo.Todo) error {
	res, err := q.ExecContext(ctx, `
		UPDATE todos
		SET title = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, t.Title, t.UpdatedAt, t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update todo: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update todo: %w", sql.ErrNoRows)
	}
	return nil
}

// ToggleStatus flips started<->completed with a single conditional
// update scoped to id and owner. Flipping in SQL keeps concurrent
// toggles alternating instead of losing updates to a stale read.
// Returns sql.ErrNoRows if no todo matches.
func (s *Store) ToggleStatus(ctx context.Context, q DBTX, userID, todoID string, updatedAt time.Time) error {
	res, err := q.ExecContext(ctx, `
		UPDATE todos
		SET status = CASE status WHEN 'started' THEN 'completed' ELSE 'started' END,
		    updated_at = ?
		WHERE id = ? AND user_id = ?
	`, updatedAt, todoID, userID)
	if err != nil {
		return fmt.Errorf("toggle status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("toggle status: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("toggle status: %w", sql.ErrNoRows)
	}
	return nil
}

// DeleteTodo removes a todo row, scoped to its owner. Remaining
// positions are NOT renumbered here; callers compact under the list
// lock (see CompactPositions).
// Returns sql.ErrNoRows if no todo matches.
func (s *Store) DeleteTodo(ctx context.Context, q DBTX, userID, todoID string) error {
	res, err := q.ExecContext(ctx, `
		DELETE FROM todos WHERE id = ? AND user_id = ?
	`, todoID, userID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete todo: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete todo: %w", sql.ErrNoRows)
	}
	return nil
}

// GetTodo returns a single todo by ID, scoped to its owner.
// Returns sql.ErrNoRows if no todo matches.
func (s *Store) GetTodo(ctx context.Context, q DBTX, userID, todoID string) (todo.Todo, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, user_id, list_id, title, status, position, inserted_at, updated_at
		FROM todos
		WHERE id = ? AND user_id = ?
	`, todoID, userID)

	t, err := scanTodo(row)
	if err != nil {
		return todo.Todo{}, fmt.Errorf("get todo: %w", err)
	}
	return t, nil
}

// TodosForList returns a list's todos in position order, with ID as a
// deterministic tiebreak.
//
// Returns an empty slice (not nil) if the list has no todos.
func (s *Store) TodosForList(ctx context.Context, q DBTX, userID, listID string) ([]todo.Todo, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, user_id, list_id, title, status, position, inserted_at, updated_at
		FROM todos
		WHERE list_id = ? AND user_id = ?
		ORDER BY position ASC, id ASC
	`, listID, userID)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	todos := []todo.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}

	return todos, nil
}

// CountTodos returns the number of todos in a list. Read under the
// list lock, this is also the next append position.
func (s *Store) CountTodos(ctx context.Context, q DBTX, listID string) (int, error) {
	var count int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM todos WHERE list_id = ?
	`, listID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}
	return count, nil
}

// ShiftPositions adds delta to the position of every todo in the list
// whose position lies in [lo, hi], excluding excludeID (the todo being
// moved). Must run inside a WithListTx transaction.
func (s *Store) ShiftPositions(ctx context.Context, q DBTX, listID, excludeID string, lo, hi, delta int) error {
	_, err := q.ExecContext(ctx, `
		UPDATE todos
		SET position = position + ?
		WHERE list_id = ? AND id <> ? AND position >= ? AND position <= ?
	`, delta, listID, excludeID, lo, hi)
	if err != nil {
		return fmt.Errorf("shift positions: %w", err)
	}
	return nil
}

// SetPosition places a todo at pos. Must run inside a WithListTx
// transaction.
// Returns sql.ErrNoRows if no todo matches.
func (s *Store) SetPosition(ctx context.Context, q DBTX, todoID string, pos int, updatedAt time.Time) error {
	res, err := q.ExecContext(ctx, `
		UPDATE todos
		SET position = ?, updated_at = ?
		WHERE id = ?
	`, pos, updatedAt, todoID)
	if err != nil {
		return fmt.Errorf("set position: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set position: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("set position: %w", sql.ErrNoRows)
	}
	return nil
}

// CompactPositions decrements the position of every todo in the list
// past the given index, closing the gap a deletion leaves. Must run
// inside a WithListTx transaction.
func (s *Store) CompactPositions(ctx context.Context, q DBTX, listID string, from int) error {
	_, err := q.ExecContext(ctx, `
		UPDATE todos
		SET position = position - 1
		WHERE list_id = ? AND position > ?
	`, listID, from)
	if err != nil {
		return fmt.Errorf("compact positions: %w", err)
	}
	return nil
}

func scanTodo(sc scanner) (todo.Todo, error) {
	var t todo.Todo
	err := sc.Scan(&t.ID, &t.UserID, &t.ListID, &t.Title, &t.Status, &t.Position, &t.InsertedAt, &t.UpdatedAt)
	if err != nil {
		return todo.Todo{}, err
	}
	return t, nil
}
