package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarios runs every scenario under testdata/scenarios against
// its golden trace.
func TestScenarios(t *testing.T) {
	entries, err := os.ReadDir(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)
	require.NotEmpty(t, entries, "no scenario files found")

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join("testdata", "scenarios", entry.Name())
		sc, err := LoadScenario(path)
		require.NoError(t, err, "load %s", path)

		t.Run(sc.Name, func(t *testing.T) {
			RunWithGolden(t, sc)
		})
	}
}

func TestLoadScenario_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: minimal\n"), 0o644))

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "minimal", sc.Name)
	assert.Equal(t, "scenario-user", sc.User)
}

func TestLoadScenario_MissingName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("user: alice\n"), 0o644))

	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestRun_TraceMatchesCommitOrder(t *testing.T) {
	sc := &Scenario{
		Name: "inline",
		User: "carol",
		Setup: []SetupList{
			{List: "Inbox", Todos: []string{"One", "Two"}},
		},
		Ops: []Op{
			{Op: "toggle", Todo: "One"},
			{Op: "move", Todo: "Two", Index: 0},
		},
		Expect: map[string][]string{
			"Inbox": {"Two", "One"},
		},
	}

	res := Run(t, sc)

	require.Len(t, res.Trace, 5)
	assert.Contains(t, res.Trace[0], "list_added")
	assert.Contains(t, res.Trace[3], "todo_toggled")
	assert.Contains(t, res.Trace[4], "todo_repositioned")
}
