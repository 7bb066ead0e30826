// Package harness provides a conformance testing framework for the
// ordering engine.
//
// Scenarios are YAML files (testdata/scenarios) describing a setup,
// a sequence of mutations, and the expected final position layout.
// The runner executes everything against a fresh engine with a fixed
// clock and sequential IDs, records the events a subscriber observes,
// and compares a rendered trace against golden files (testdata/) via
// goldie.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
package harness

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/nickgartmann/todo-trek/internal/engine"
	"github.com/nickgartmann/todo-trek/internal/pubsub"
	"github.com/nickgartmann/todo-trek/internal/testutil"
	"github.com/nickgartmann/todo-trek/internal/todo"
)

// traceBuffer is the subscription buffer for scenario runs. Large
// enough that no scenario ever drops an event.
const traceBuffer = 1024

// Result holds everything a scenario run produced.
type Result struct {
	// Trace is the rendered event stream, one line per event, in the
	// order the subscriber received them.
	Trace []string

	// Final maps list title to todo titles in final position order.
	Final map[string][]string
}

// Run executes a scenario against a fresh engine and asserts the
// expected final layout. The returned result carries the observed
// trace for golden comparison.
func Run(t *testing.T, sc *Scenario) *Result {
	t.Helper()

	st := testutil.OpenStore(t)
	broker := pubsub.New(pubsub.WithBuffer(traceBuffer))
	t.Cleanup(broker.Close)

	eng := engine.New(st, broker,
		engine.WithIDGenerator(testutil.NewSeqGenerator()),
		engine.WithClock(testutil.FixedClock(testutil.Epoch, 0)),
	)

	sub := broker.Subscribe(todo.Topic(sc.User))
	require.NotNil(t, sub, "broker closed before scenario start")
	defer sub.Close()

	ctx := t.Context()

	// Handles: title -> entity ID, stable across renames.
	lists := map[string]string{}
	todos := map[string]string{}

	for _, setup := range sc.Setup {
		l, err := eng.CreateList(ctx, sc.User, map[string]any{"title": setup.List})
		require.NoError(t, err, "setup list %q", setup.List)
		lists[setup.List] = l.ID

		for _, title := range setup.Todos {
			td, err := eng.CreateTodo(ctx, sc.User, l.ID, map[string]any{"title": title})
			require.NoError(t, err, "setup todo %q", title)
			todos[title] = td.ID
		}
	}

	for i, op := range sc.Ops {
		require.NoError(t, applyOp(t, ctx, eng, sc.User, op, lists, todos), "op %d (%s)", i, op.Op)
	}

	res := &Result{Final: map[string][]string{}}

	for _, ev := range drain(sub) {
		res.Trace = append(res.Trace, fmt.Sprint(ev))
	}

	for title, id := range lists {
		items, err := eng.ListTodos(ctx, sc.User, id)
		if engine.IsNotFound(err) {
			continue // deleted during the scenario
		}
		require.NoError(t, err, "final read of list %q", title)

		names := make([]string, len(items))
		for i, item := range items {
			names[i] = item.Title
		}
		res.Final[title] = names
	}

	for list, want := range sc.Expect {
		require.Equal(t, want, res.Final[list], "final order of list %q", list)
	}

	return res
}

// RunWithGolden executes a scenario and compares the rendered result
// against testdata/<scenario-name>.golden.
func RunWithGolden(t *testing.T, sc *Scenario) {
	t.Helper()

	res := Run(t, sc)

	g := goldie.New(t)
	g.Assert(t, sc.Name, render(sc, res))
}

// applyOp dispatches a single scenario op to the engine, keeping the
// handle maps current.
func applyOp(t *testing.T, ctx context.Context, eng *engine.Engine, user string, op Op, lists, todos map[string]string) error {
	switch op.Op {
	case "add":
		td, err := eng.CreateTodo(ctx, user, mustHandle(t, lists, op.List), map[string]any{"title": op.Title})
		if err != nil {
			return err
		}
		todos[op.Title] = td.ID
		return nil
	case "move":
		_, err := eng.RepositionTodo(ctx, user, mustHandle(t, todos, op.Todo), op.Index)
		return err
	case "toggle":
		_, err := eng.ToggleComplete(ctx, user, mustHandle(t, todos, op.Todo))
		return err
	case "update":
		_, err := eng.UpdateTodo(ctx, user, mustHandle(t, todos, op.Todo), map[string]any{"title": op.Title})
		return err
	case "delete":
		_, err := eng.DeleteTodo(ctx, user, mustHandle(t, todos, op.Todo))
		return err
	case "create_list":
		l, err := eng.CreateList(ctx, user, map[string]any{"title": op.Title})
		if err != nil {
			return err
		}
		lists[op.Title] = l.ID
		return nil
	case "rename_list":
		_, err := eng.UpdateList(ctx, user, mustHandle(t, lists, op.List), map[string]any{"title": op.Title})
		return err
	case "delete_list":
		_, err := eng.DeleteList(ctx, user, mustHandle(t, lists, op.List))
		return err
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
}

func mustHandle(t *testing.T, handles map[string]string, name string) string {
	t.Helper()
	id, ok := handles[name]
	if !ok {
		t.Fatalf("scenario references unknown handle %q", name)
	}
	return id
}

// drain returns the events currently buffered on the subscription.
func drain(sub *pubsub.Subscription) []todo.Event {
	var events []todo.Event
	for {
		select {
		case ev := <-sub.C():
			events = append(events, ev)
		default:
			return events
		}
	}
}

// render produces the golden file content: the scenario header, the
// trace, and the final layout with lists sorted by title.
func render(sc *Scenario, res *Result) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "scenario: %s\n", sc.Name)
	fmt.Fprintf(&b, "user: %s\n", sc.User)
	fmt.Fprintln(&b, "trace:")
	for _, line := range res.Trace {
		fmt.Fprintf(&b, "  %s\n", line)
	}

	titles := make([]string, 0, len(res.Final))
	for title := range res.Final {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	fmt.Fprintln(&b, "final:")
	for _, title := range titles {
		fmt.Fprintf(&b, "  %s:", title)
		for _, name := range res.Final[title] {
			fmt.Fprintf(&b, " [%s]", name)
		}
		fmt.Fprintln(&b)
	}

	return b.Bytes()
}
