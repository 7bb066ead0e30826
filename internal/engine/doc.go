// Package engine implements the ordering engine and change notifier.
//
// The engine is the only writer of todo positions. Every
// position-affecting mutation (append, move, delete) runs as a locked
// read-modify-write transaction against the store:
//
//  1. Acquire the exclusive per-list lock
//  2. Re-read current state (the moved todo, the list's todo count)
//  3. Clamp the requested index to the list's bounds
//  4. Shift the affected position range by one
//  5. Write the final position
//
// All five steps happen under one transaction and one lock, so for a
// fixed list the set of positions observed between transactions is
// always exactly {0..count-1}. Mutations on different lists never
// block each other.
//
// After a mutation commits, exactly one typed event is published on
// the owning user's topic. Publishing is strictly post-commit,
// fire-and-forget, and never happens while the list lock is held: the
// transaction is the source of truth and notification is a best-effort
// side effect.
//
// Non-ordering paths (toggle, field updates) are single conditional
// updates and take no lock.
package engine
