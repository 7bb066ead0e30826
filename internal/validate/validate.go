// Package validate is the validated-input facility: given raw field
// values it returns either typed params ready for storage or a
// structured set of field-level validation errors.
//
// Validation rules live in schema.cue and are evaluated with the CUE
// SDK's Go API directly (not a CLI subprocess). The mutation paths in
// internal/engine only orchestrate when to validate and how to react;
// they never implement field rules themselves.
package validate

import (
	"fmt"
	"sort"
	"strings"

	_ "embed"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"golang.org/x/text/unicode/norm"

	"github.com/nickgartmann/todo-trek/internal/todo"
)

//go:embed schema.cue
var schemaSrc string

// FieldErrors maps a field name to its validation messages.
// FieldErrors implements error so it can travel an error return.
type FieldErrors map[string][]string

// Error renders fields in sorted order for deterministic output.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e[f], "; ")))
	}
	return strings.Join(parts, ", ")
}

// ListParams is validated input for creating or renaming a list.
type ListParams struct {
	Title string `json:"title"`
}

// TodoParams is validated input for creating or updating a todo.
// Status defaults to started when absent.
type TodoParams struct {
	Title  string      `json:"title"`
	Status todo.Status `json:"status,omitempty"`
}

// List validates raw list fields against #ListParams.
func List(raw map[string]any) (ListParams, error) {
	var p ListParams
	if err := unify("#ListParams", raw, &p); err != nil {
		return ListParams{}, err
	}
	return p, nil
}

// Todo validates raw todo fields against #TodoParams.
func Todo(raw map[string]any) (TodoParams, error) {
	var p TodoParams
	if err := unify("#TodoParams", raw, &p); err != nil {
		return TodoParams{}, err
	}
	if p.Status == "" {
		p.Status = todo.StatusStarted
	}
	return p, nil
}

// unify evaluates raw input against the named schema definition and
// decodes the result into out on success.
func unify(def string, raw map[string]any, out any) error {
	raw = normalizeInput(raw)

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSrc)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile validation schema: %w", err)
	}

	d := schema.LookupPath(cue.ParsePath(def))
	if err := d.Err(); err != nil {
		return fmt.Errorf("lookup %s: %w", def, err)
	}

	v := d.Unify(ctx.Encode(raw))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fieldErrors(err)
	}

	if err := v.Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", def, err)
	}
	return nil
}

// normalizeInput trims and NFC-normalizes string fields so that
// equal-looking titles compare and validate identically regardless of
// the source's Unicode composition.
func normalizeInput(raw map[string]any) map[string]any {
	cleaned := make(map[string]any, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			cleaned[k] = norm.NFC.String(strings.TrimSpace(s))
			continue
		}
		cleaned[k] = v
	}
	return cleaned
}

// fieldErrors converts a CUE validation error into FieldErrors keyed
// by field path. CUE errors may contain multiple errors.
func fieldErrors(err error) FieldErrors {
	fe := make(FieldErrors)
	for _, e := range cueerrors.Errors(err) {
		field := strings.Join(e.Path(), ".")
		if field == "" {
			field = "input"
		}
		format, args := e.Msg()
		fe[field] = append(fe[field], fmt.Sprintf(format, args...))
	}
	return fe
}
