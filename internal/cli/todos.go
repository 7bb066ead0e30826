package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nickgartmann/todo-trek/internal/engine"
	"github.com/nickgartmann/todo-trek/internal/todo"
)

// NewTodosCommand creates the todos command.
func NewTodosCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "todos <list-id>",
		Short: "Show a list's todos in position order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, rootOpts, func(ctx context.Context, eng *engine.Engine) error {
				todos, err := eng.ListTodos(ctx, rootOpts.UserID, args[0])
				if err != nil {
					return domainExit(err)
				}

				f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return f.Success(todos, renderTodos(todos))
			})
		},
	}
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <list-id> <title>",
		Short: "Append a todo to the end of a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, rootOpts, func(ctx context.Context, eng *engine.Engine) error {
				t, err := eng.CreateTodo(ctx, rootOpts.UserID, args[0], map[string]any{"title": args[1]})
				if err != nil {
					return domainExit(err)
				}

				f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return f.Success(t, fmt.Sprintf("added %s at position %d (%s)", t.Title, t.Position, t.ID))
			})
		},
	}
}

// NewMoveCommand creates the move command.
func NewMoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "move <todo-id> <index>",
		Short: "Move a todo to a new position in its list",
		Long: `Move a todo to a zero-based position within its list.

Positions past the end of the list are clamped to the last index.
The todos in between shift by one so positions stay dense.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("invalid index %q", args[1]), err)
			}

			return withEngine(cmd, rootOpts, func(ctx context.Context, eng *engine.Engine) error {
				t, err := eng.RepositionTodo(ctx, rootOpts.UserID, args[0], idx)
				if err != nil {
					return domainExit(err)
				}

				f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return f.Success(t, fmt.Sprintf("moved %s to position %d", t.Title, t.Position))
			})
		},
	}
}

// NewToggleCommand creates the toggle command.
func NewToggleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <todo-id>",
		Short: "Flip a todo between started and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, rootOpts, func(ctx context.Context, eng *engine.Engine) error {
				t, err := eng.ToggleComplete(ctx, rootOpts.UserID, args[0])
				if err != nil {
					return domainExit(err)
				}

				f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return f.Success(t, fmt.Sprintf("%s is now %s", t.Title, t.Status))
			})
		},
	}
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <todo-id> <title>",
		Short: "Change a todo's title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, rootOpts, func(ctx context.Context, eng *engine.Engine) error {
				t, err := eng.UpdateTodo(ctx, rootOpts.UserID, args[0], map[string]any{"title": args[1]})
				if err != nil {
					return domainExit(err)
				}

				f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return f.Success(t, fmt.Sprintf("updated %s", t.ID))
			})
		},
	}
}

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <todo-id>",
		Short: "Delete a todo",
		Long: `Delete a todo from its list.

The todos after it move up one position so the list stays dense.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, rootOpts, func(ctx context.Context, eng *engine.Engine) error {
				t, err := eng.DeleteTodo(ctx, rootOpts.UserID, args[0])
				if err != nil {
					return domainExit(err)
				}

				f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return f.Success(t, fmt.Sprintf("deleted %s (%s)", t.Title, t.ID))
			})
		},
	}
}

func renderTodos(todos []todo.Todo) string {
	if len(todos) == 0 {
		return "no todos"
	}

	var b strings.Builder
	for i, t := range todos {
		if i > 0 {
			b.WriteByte('\n')
		}
		mark := " "
		if t.Status == todo.StatusCompleted {
			mark = "x"
		}
		fmt.Fprintf(&b, "%2d [%s] %s  %s (updated %s)", t.Position, mark, t.ID, t.Title, humanize.Time(t.UpdatedAt))
	}
	return b.String()
}
