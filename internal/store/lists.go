package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nickgartmann/todo-trek/internal/todo"
)

// InsertList inserts a list row.
func (s *Store) InsertList(ctx context.Context, q DBTX, l todo.List) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO lists (id, user_id, title, inserted_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, l.ID, l.UserID, l.Title, l.InsertedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert list: %w", err)
	}
	return nil
}

// UpdateListTitle renames a list, scoped to its owner.
// Returns sql.ErrNoRows if no list matches.
func (s *Store) UpdateListTitle(ctx context.Context, q DBTX, l todo.List) error {
	res, err := q.ExecContext(ctx, `
		UPDATE lists
		SET title = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, l.Title, l.UpdatedAt, l.ID, l.UserID)
	if err != nil {
		return fmt.Errorf("update list: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update list: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update list: %w", sql.ErrNoRows)
	}
	return nil
}

// DeleteList removes a list row, scoped to its owner. Todos cascade at
// the storage level (foreign_keys=ON).
// Returns sql.ErrNoRows if no list matches.
func (s *Store) DeleteList(ctx context.Context, q DBTX, userID, listID string) error {
	res, err := q.ExecContext(ctx, `
		DELETE FROM lists WHERE id = ? AND user_id = ?
	`, listID, userID)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete list: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete list: %w", sql.ErrNoRows)
	}
	return nil
}

// GetList returns a single list by ID, scoped to its owner.
// Returns sql.ErrNoRows if no list matches.
func (s *Store) GetList(ctx context.Context, q DBTX, userID, listID string) (todo.List, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, user_id, title, inserted_at, updated_at
		FROM lists
		WHERE id = ? AND user_id = ?
	`, listID, userID)

	l, err := scanList(row)
	if err != nil {
		return todo.List{}, fmt.Errorf("get list: %w", err)
	}
	return l, nil
}

// ListsForUser returns all of a user's lists ordered by creation time,
// with ID as a deterministic tiebreak.
//
// Returns an empty slice (not nil) if the user has no lists.
func (s *Store) ListsForUser(ctx context.Context, q DBTX, userID string) ([]todo.List, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, user_id, title, inserted_at, updated_at
		FROM lists
		WHERE user_id = ?
		ORDER BY inserted_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query lists: %w", err)
	}
	defer rows.Close()

	lists := []todo.List{}
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lists: %w", err)
	}

	return lists, nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanList(sc scanner) (todo.List, error) {
	var l todo.List
	err := sc.Scan(&l.ID, &l.UserID, &l.Title, &l.InsertedAt, &l.UpdatedAt)
	if err != nil {
		return todo.List{}, err
	}
	return l, nil
}
