// Package todo provides the domain types shared by all other internal
// packages: lists, todos, the event sum type published on every
// mutation, and entity ID generation.
//
// This package contains type definitions only. All other internal
// packages import todo; todo imports nothing internal. This keeps the
// domain model the foundational layer with no circular dependencies.
package todo
