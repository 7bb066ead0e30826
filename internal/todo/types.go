package todo

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a todo.
type Status string

const (
	// StatusStarted is the initial state of every todo.
	StatusStarted Status = "started"
	// StatusCompleted marks a todo as done.
	StatusCompleted Status = "completed"
)

// ValidStatuses defines the allowed status values.
var ValidStatuses = map[Status]bool{
	StatusStarted:   true,
	StatusCompleted: true,
}

// Toggle returns the opposite status.
func (s Status) Toggle() Status {
	if s == StatusCompleted {
		return StatusStarted
	}
	return StatusCompleted
}

// List is a named, user-owned container of todos. Lists are ordered by
// creation time among a user's lists.
type List struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	InsertedAt time.Time `json:"inserted_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Todo is a single task item. Position is the zero-based rank of the
// todo within its list; positions within a list are unique and
// contiguous starting at 0.
type Todo struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ListID     string    `json:"list_id"`
	Title      string    `json:"title"`
	Status     Status    `json:"status"`
	Position   int       `json:"position"`
	InsertedAt time.Time `json:"inserted_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Topic returns the pub/sub topic carrying all change events for a
// user's lists and todos.
func Topic(userID string) string {
	return fmt.Sprintf("todos:%s", userID)
}
