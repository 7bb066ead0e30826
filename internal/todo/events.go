package todo

import "fmt"

// Event is the closed set of change notifications published after a
// mutation commits. Exactly one event is published per successful
// mutation, on the owning user's topic (see Topic).
//
// The set of variants is sealed by the unexported marker method:
// subscribers can switch exhaustively on the concrete types below.
type Event interface {
	// Kind names the mutation that produced the event.
	Kind() string

	// eventMarker restricts implementers to this package.
	eventMarker()
}

// TodoAdded is published when a todo is created. Todo carries the
// post-insert state, including its assigned position.
type TodoAdded struct {
	Todo Todo
}

// TodoUpdated is published after a field-level todo update.
type TodoUpdated struct {
	Todo Todo
}

// TodoDeleted is published after a todo is removed. Todo carries the
// state the todo had at deletion time.
type TodoDeleted struct {
	Todo Todo
}

// TodoToggled is published after a status flip. Todo.Status is the
// new status.
type TodoToggled struct {
	Todo Todo
}

// TodoRepositioned is published after a move. Todo.Position is the
// effective (clamped) target index.
type TodoRepositioned struct {
	Todo Todo
}

// ListAdded is published when a list is created.
type ListAdded struct {
	List List
}

// ListUpdated is published after a list rename.
type ListUpdated struct {
	List List
}

// ListDeleted is published after a list (and, by cascade, its todos)
// is removed.
type ListDeleted struct {
	List List
}

func (TodoAdded) Kind() string        { return "todo_added" }
func (TodoUpdated) Kind() string      { return "todo_updated" }
func (TodoDeleted) Kind() string      { return "todo_deleted" }
func (TodoToggled) Kind() string      { return "todo_toggled" }
func (TodoRepositioned) Kind() string { return "todo_repositioned" }
func (ListAdded) Kind() string        { return "list_added" }
func (ListUpdated) Kind() string      { return "list_updated" }
func (ListDeleted) Kind() string      { return "list_deleted" }

// String renders each event as a stable single line, used by the watch
// command and the scenario harness's golden traces.

func (e TodoAdded) String() string {
	return fmt.Sprintf("%s list=%s todo=%s pos=%d %q", e.Kind(), e.Todo.ListID, e.Todo.ID, e.Todo.Position, e.Todo.Title)
}

func (e TodoUpdated) String() string {
	return fmt.Sprintf("%s list=%s todo=%s %q", e.Kind(), e.Todo.ListID, e.Todo.ID, e.Todo.Title)
}

func (e TodoDeleted) String() string {
	return fmt.Sprintf("%s list=%s todo=%s pos=%d", e.Kind(), e.Todo.ListID, e.Todo.ID, e.Todo.Position)
}

func (e TodoToggled) String() string {
	return fmt.Sprintf("%s list=%s todo=%s status=%s", e.Kind(), e.Todo.ListID, e.Todo.ID, e.Todo.Status)
}

func (e TodoRepositioned) String() string {
	return fmt.Sprintf("%s list=%s todo=%s pos=%d", e.Kind(), e.Todo.ListID, e.Todo.ID, e.Todo.Position)
}

func (e ListAdded) String() string {
	return fmt.Sprintf("%s list=%s %q", e.Kind(), e.List.ID, e.List.Title)
}

func (e ListUpdated) String() string {
	return fmt.Sprintf("%s list=%s %q", e.Kind(), e.List.ID, e.List.Title)
}

func (e ListDeleted) String() string {
	return fmt.Sprintf("%s list=%s %q", e.Kind(), e.List.ID, e.List.Title)
}

func (TodoAdded) eventMarker()        {}
func (TodoUpdated) eventMarker()      {}
func (TodoDeleted) eventMarker()      {}
func (TodoToggled) eventMarker()      {}
func (TodoRepositioned) eventMarker() {}
func (ListAdded) eventMarker()        {}
func (ListUpdated) eventMarker()      {}
func (ListDeleted) eventMarker()      {}
