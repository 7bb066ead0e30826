package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios exercise a sequence of mutations against a fresh engine
// and pin down both the final per-list position layout and the event
// trace observed by a subscriber.
//
// Entities are referenced by title: list and todo titles act as
// handles and must be unique within a scenario. Handles keep pointing
// at the same entity even after a rename.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// User owns every list and todo the scenario touches.
	// Defaults to "scenario-user".
	User string `yaml:"user,omitempty"`

	// Setup creates the initial lists and their todos, in order.
	// Setup runs through the engine, so its events appear in the trace.
	Setup []SetupList `yaml:"setup"`

	// Ops is the main mutation sequence.
	Ops []Op `yaml:"ops"`

	// Expect pins the final position layout: list title -> todo titles
	// in position order.
	Expect map[string][]string `yaml:"expect"`
}

// SetupList declares one list and its initial todos (appended in order,
// so the first todo lands at position 0).
type SetupList struct {
	List  string   `yaml:"list"`
	Todos []string `yaml:"todos,omitempty"`
}

// Op is a single mutation step.
type Op struct {
	// Op is one of: add, move, toggle, update, delete,
	// create_list, rename_list, delete_list.
	Op string `yaml:"op"`

	// List references a list by handle (add, create_list, rename_list,
	// delete_list).
	List string `yaml:"list,omitempty"`

	// Todo references a todo by handle (move, toggle, update, delete).
	Todo string `yaml:"todo,omitempty"`

	// Title is the new title (add, update, create_list, rename_list).
	Title string `yaml:"title,omitempty"`

	// Index is the target position for move.
	Index int `yaml:"index,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if sc.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if sc.User == "" {
		sc.User = "scenario-user"
	}

	return &sc, nil
}
