// Package store provides SQLite-backed storage for lists and todos.
//
// The store exposes row-level operations plus the transaction facility
// the ordering engine builds on:
//
//   - WithTx: a plain atomic transaction
//   - WithListTx: a transaction guarded by an exclusive per-list lock
//
// All position-mutating work (append, reposition, delete-compact) runs
// inside WithListTx so concurrent writers to the same list are fully
// serialized, while writers to distinct lists proceed independently.
// The lock is an in-process keyed mutex - the advisory-lock realization
// for embedded storage - held from before BEGIN until commit/rollback.
//
// Row operations take a DBTX so they work both inside and outside a
// transaction.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: todos cascade on list deletion
package store
