package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nickgartmann/todo-trek/internal/engine"
	"github.com/nickgartmann/todo-trek/internal/todo"
)

// NewListsCommand creates the lists command group.
func NewListsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Show and manage the user's lists",
		Long: `Show the user's lists, oldest first.

Example:
  todotrek lists
  todotrek lists new "Groceries"
  todotrek lists rename 0198c0de-... "Errands"
  todotrek lists rm 0198c0de-...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, rootOpts, func(ctx context.Context, eng *engine.Engine) error {
				lists, err := eng.ListLists(ctx, rootOpts.UserID)
				if err != nil {
					return domainExit(err)
				}

				f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return f.Success(lists, renderLists(lists))
			})
		},
	}

	cmd.AddCommand(newListsNewCommand(rootOpts))
	cmd.AddCommand(newListsRenameCommand(rootOpts))
	cmd.AddCommand(newListsRemoveCommand(rootOpts))

	return cmd
}

func newListsNewCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "new <title>",
		Short: "Create a new list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, rootOpts, func(ctx context.Context, eng *engine.Engine) error {
				l, err := eng.CreateList(ctx, rootOpts.UserID, map[string]any{"title": args[0]})
				if err != nil {
					return domainExit(err)
				}

				f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return f.Success(l, fmt.Sprintf("created list %s (%s)", l.Title, l.ID))
			})
		},
	}
}

func newListsRenameCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <list-id> <title>",
		Short: "Rename a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, rootOpts, func(ctx context.Context, eng *engine.Engine) error {
				l, err := eng.UpdateList(ctx, rootOpts.UserID, args[0], map[string]any{"title": args[1]})
				if err != nil {
					return domainExit(err)
				}

				f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return f.Success(l, fmt.Sprintf("renamed list %s to %s", l.ID, l.Title))
			})
		},
	}
}

func newListsRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <list-id>",
		Short: "Delete a list and all of its todos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, rootOpts, func(ctx context.Context, eng *engine.Engine) error {
				l, err := eng.DeleteList(ctx, rootOpts.UserID, args[0])
				if err != nil {
					return domainExit(err)
				}

				f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return f.Success(l, fmt.Sprintf("deleted list %s (%s)", l.Title, l.ID))
			})
		},
	}
}

func renderLists(lists []todo.List) string {
	if len(lists) == 0 {
		return "no lists"
	}

	var b strings.Builder
	for i, l := range lists {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s  %s (created %s)", l.ID, l.Title, humanize.Time(l.InsertedAt))
	}
	return b.String()
}
