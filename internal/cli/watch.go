package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nickgartmann/todo-trek/internal/engine"
	"github.com/nickgartmann/todo-trek/internal/todo"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream change events for the user's data",
		Long: `Subscribe to the user's change topic and print every event until
interrupted.

The broker is in-process: watch observes mutations made through this
process, which makes it useful when todotrek is embedded as a library
or driven programmatically, and as a live demonstration of the event
stream in tests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, rootOpts, func(ctx context.Context, eng *engine.Engine) error {
				sub := eng.Watch(rootOpts.UserID)
				if sub == nil {
					return WrapExitError(ExitCommandError, "subscription unavailable", nil)
				}
				defer sub.Close()

				ctx, cancel := context.WithCancel(ctx)
				defer cancel()

				sigChan := make(chan os.Signal, 1)
				signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
				defer signal.Stop(sigChan)

				fmt.Fprintf(cmd.OutOrStdout(), "watching %s\n", todo.Topic(rootOpts.UserID))

				for {
					select {
					case <-sigChan:
						return nil
					case <-ctx.Done():
						return nil
					case ev, ok := <-sub.C():
						if !ok {
							return nil
						}
						fmt.Fprintln(cmd.OutOrStdout(), ev)
					}
				}
			})
		},
	}
}
