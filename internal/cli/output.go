package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nickgartmann/todo-trek/internal/engine"
	"github.com/nickgartmann/todo-trek/internal/pubsub"
	"github.com/nickgartmann/todo-trek/internal/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Domain failure (not found, validation)
	ExitCommandError = 2 // Command error (invalid paths, storage failure, etc.)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// domainExit maps engine errors to exit-coded CLI errors: not-found
// and validation failures are domain failures (exit 1), anything else
// is a storage/command problem (exit 2).
func domainExit(err error) error {
	if err == nil {
		return nil
	}
	if engine.IsNotFound(err) || engine.IsValidation(err) {
		return WrapExitError(ExitFailure, "request failed", err)
	}
	return WrapExitError(ExitCommandError, "storage failure", err)
}

// withEngine opens the configured database, builds an engine over it,
// runs fn, and tears everything down.
func withEngine(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, eng *engine.Engine) error) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	broker := pubsub.New()
	defer broker.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return fn(ctx, engine.New(st, broker))
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`         // "ok" or "error"
	Data   interface{} `json:"data,omitempty"` // success payload
}

// Success outputs data in the configured format. In text mode, text
// is printed as-is; in JSON mode, data is wrapped in a CLIResponse.
func (f *OutputFormatter) Success(data interface{}, text string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}
	_, err := fmt.Fprintln(f.Writer, text)
	return err
}
