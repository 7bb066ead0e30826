package store

import (
	"context"
	"database/sql"
	"fmt"
)

// WithTx runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back otherwise; a rollback leaves no partial
// writes visible.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// WithListTx runs fn inside a transaction holding the exclusive lock
// for listID. All position-mutating operations on a list go through
// here, so reads of the list's todo count and the subsequent shift
// updates cannot interleave with another writer to the same list.
//
// The lock is held until the transaction commits or rolls back, and is
// never held across event publishing (callers publish after WithListTx
// returns).
func (s *Store) WithListTx(ctx context.Context, listID string, fn func(tx *sql.Tx) error) error {
	release := s.locks.Acquire(listID)
	defer release()

	return s.WithTx(ctx, fn)
}
