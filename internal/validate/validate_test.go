package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickgartmann/todo-trek/internal/todo"
)

func TestList_Valid(t *testing.T) {
	p, err := List(map[string]any{"title": "Groceries"})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", p.Title)
}

func TestList_MissingTitle(t *testing.T) {
	_, err := List(map[string]any{})
	require.Error(t, err)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "title")
}

func TestList_EmptyTitle(t *testing.T) {
	_, err := List(map[string]any{"title": ""})
	require.Error(t, err)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "title")
}

func TestList_WhitespaceOnlyTitle(t *testing.T) {
	// Trimming happens before validation, so whitespace-only input
	// fails the minimum-length rule.
	_, err := List(map[string]any{"title": "   "})
	require.Error(t, err)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "title")
}

func TestList_TitleTooLong(t *testing.T) {
	_, err := List(map[string]any{"title": strings.Repeat("x", 101)})
	require.Error(t, err)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "title")
}

func TestList_TitleAtMaxLength(t *testing.T) {
	p, err := List(map[string]any{"title": strings.Repeat("x", 100)})
	require.NoError(t, err)
	assert.Len(t, p.Title, 100)
}

func TestList_MaxLengthCountsRunes(t *testing.T) {
	// 100 multibyte runes are within bounds even though the byte count
	// is far larger.
	p, err := List(map[string]any{"title": strings.Repeat("ü", 100)})
	require.NoError(t, err)
	assert.Equal(t, 100, len([]rune(p.Title)))
}

func TestList_TrimsAndNormalizes(t *testing.T) {
	// "u" + combining diaeresis composes to the single rune "ü".
	p, err := List(map[string]any{"title": "  Grün  "})
	require.NoError(t, err)
	assert.Equal(t, "Grün", p.Title)
}

func TestTodo_Valid(t *testing.T) {
	p, err := Todo(map[string]any{"title": "Milk", "status": "completed"})
	require.NoError(t, err)
	assert.Equal(t, "Milk", p.Title)
	assert.Equal(t, todo.StatusCompleted, p.Status)
}

func TestTodo_StatusDefaultsToStarted(t *testing.T) {
	p, err := Todo(map[string]any{"title": "Milk"})
	require.NoError(t, err)
	assert.Equal(t, todo.StatusStarted, p.Status)
}

func TestTodo_InvalidStatus(t *testing.T) {
	_, err := Todo(map[string]any{"title": "Milk", "status": "paused"})
	require.Error(t, err)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "status")
}

func TestTodo_MissingTitle(t *testing.T) {
	_, err := Todo(map[string]any{"status": "started"})
	require.Error(t, err)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "title")
}

func TestFieldErrors_Error(t *testing.T) {
	fe := FieldErrors{
		"title":  {"is required"},
		"status": {"must be started or completed"},
	}

	// Fields render in sorted order for stable messages.
	assert.Equal(t, "status: must be started or completed, title: is required", fe.Error())
}
