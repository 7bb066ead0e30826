package testutil

import (
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/nickgartmann/todo-trek/internal/store"
	"github.com/nickgartmann/todo-trek/internal/todo"
)

// OpenStore opens a fresh SQLite store in a per-test temp directory
// and closes it when the test finishes.
func OpenStore(t *testing.T) *store.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// SeqGenerator generates "id-1", "id-2", ... entity IDs.
//
// Unlike todo.NewFixedGenerator it never exhausts, which suits
// scenario tests that create an unknown number of entities.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SeqGenerator struct {
	mu sync.Mutex
	n  int
}

// NewSeqGenerator creates a generator whose first ID is "id-1".
func NewSeqGenerator() *SeqGenerator {
	return &SeqGenerator{}
}

// Generate returns the next sequential ID.
func (g *SeqGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return "id-" + strconv.Itoa(g.n)
}

var _ todo.IDGenerator = (*SeqGenerator)(nil)
