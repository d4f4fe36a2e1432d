package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func descriptions(l *List) []string {
	out := make([]string, 0, l.Size())
	for _, t := range l.Tasks() {
		out = append(out, t.Description())
	}
	return out
}

func TestListBasics(t *testing.T) {
	l := NewList()
	assert.True(t, l.IsEmpty())
	assert.False(t, l.IsValidIndex(0))

	l.Add(NewTodo("a"))
	l.Add(NewTodo("b"))
	l.Add(NewTodo("c"))

	assert.Equal(t, 3, l.Size())
	assert.True(t, l.IsValidIndex(0))
	assert.True(t, l.IsValidIndex(2))
	assert.False(t, l.IsValidIndex(3))
	assert.False(t, l.IsValidIndex(-1))
	assert.Equal(t, "b", l.Get(1).Description())
}

func TestListRemoveShifts(t *testing.T) {
	l := NewList(NewTodo("a"), NewTodo("b"), NewTodo("c"))

	removed := l.Remove(0)
	assert.Equal(t, "a", removed.Description())
	assert.Equal(t, 2, l.Size())
	assert.Equal(t, []string{"b", "c"}, descriptions(l))

	removed = l.Remove(1)
	assert.Equal(t, "c", removed.Description())
	assert.Equal(t, []string{"b"}, descriptions(l))
}

func TestListTasksIsCopy(t *testing.T) {
	l := NewList(NewTodo("a"))
	tasks := l.Tasks()
	tasks[0] = NewTodo("z")
	assert.Equal(t, "a", l.Get(0).Description())
}

func TestListFind(t *testing.T) {
	milk := NewTodo("buy milk")
	l := NewList(milk, NewTodo("walk dog"), NewTodo("Milkshake run"))

	found := l.Find("MILK")
	assert.Equal(t, []string{"buy milk", "Milkshake run"}, descriptions(found))

	// Found tasks are the same values as in the source list.
	found.Get(0).Mark()
	assert.True(t, milk.IsDone())

	assert.Equal(t, 0, l.Find("cat").Size())
	assert.Equal(t, 3, l.Size())
}

func TestListSortedStable(t *testing.T) {
	e := NewEventAt("e1", mustTime(t, "2025-01-01 0900"), mustTime(t, "2025-01-01 1000"))
	d1 := NewDeadlineAt("d1", mustTime(t, "2025-01-01 1800"))
	t1 := NewTodo("t1")
	d2 := NewDeadlineAt("d2", mustTime(t, "2024-01-01 1800"))
	t2 := NewTodo("t2")
	l := NewList(e, d1, t1, d2, t2)

	sorted := l.Sorted()
	require.Equal(t, 5, sorted.Size())
	assert.Equal(t, []string{"t1", "t2", "d1", "d2", "e1"}, descriptions(sorted))
	assert.Equal(t, []string{"e1", "d1", "t1", "d2", "t2"}, descriptions(l))
}
