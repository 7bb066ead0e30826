package todo

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Toggle(t *testing.T) {
	assert.Equal(t, StatusCompleted, StatusStarted.Toggle())
	assert.Equal(t, StatusStarted, StatusCompleted.Toggle())
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "todos:alice", Topic("alice"))
	assert.Equal(t, "todos:", Topic(""))
}

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}

	id1 := gen.Generate()
	id2 := gen.Generate()

	assert.NotEqual(t, id1, id2)

	u, err := uuid.Parse(id1)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), u.Version())
}

func TestFixedGenerator(t *testing.T) {
	gen := NewFixedGenerator("a", "b")

	assert.Equal(t, "a", gen.Generate())
	assert.Equal(t, "b", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

func TestEventKinds(t *testing.T) {
	cases := []struct {
		ev   Event
		want string
	}{
		{TodoAdded{}, "todo_added"},
		{TodoUpdated{}, "todo_updated"},
		{TodoDeleted{}, "todo_deleted"},
		{TodoToggled{}, "todo_toggled"},
		{TodoRepositioned{}, "todo_repositioned"},
		{ListAdded{}, "list_added"},
		{ListUpdated{}, "list_updated"},
		{ListDeleted{}, "list_deleted"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.ev.Kind())
	}
}

func TestEventStrings(t *testing.T) {
	td := Todo{ID: "todo-1", ListID: "list-1", Title: "Milk", Status: StatusCompleted, Position: 2}
	l := List{ID: "list-1", Title: "Groceries"}

	assert.Equal(t, `todo_added list=list-1 todo=todo-1 pos=2 "Milk"`, TodoAdded{Todo: td}.String())
	assert.Equal(t, `todo_updated list=list-1 todo=todo-1 "Milk"`, TodoUpdated{Todo: td}.String())
	assert.Equal(t, "todo_deleted list=list-1 todo=todo-1 pos=2", TodoDeleted{Todo: td}.String())
	assert.Equal(t, "todo_toggled list=list-1 todo=todo-1 status=completed", TodoToggled{Todo: td}.String())
	assert.Equal(t, "todo_repositioned list=list-1 todo=todo-1 pos=2", TodoRepositioned{Todo: td}.String())
	assert.Equal(t, `list_added list=list-1 "Groceries"`, ListAdded{List: l}.String())
	assert.Equal(t, `list_updated list=list-1 "Groceries"`, ListUpdated{List: l}.String())
	assert.Equal(t, `list_deleted list=list-1 "Groceries"`, ListDeleted{List: l}.String())
}
