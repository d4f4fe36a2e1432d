package task

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// List is an ordered task collection. Insertion order is display and
// storage order.
type List struct {
	tasks []Task
}

// NewList returns a list holding tasks in the given order.
func NewList(tasks ...Task) *List {
	l := &List{tasks: make([]Task, 0, len(tasks))}
	l.tasks = append(l.tasks, tasks...)
	return l
}

// Size returns the number of tasks.
func (l *List) Size() int {
	return len(l.tasks)
}

// IsEmpty reports whether the list has no tasks.
func (l *List) IsEmpty() bool {
	return len(l.tasks) == 0
}

// IsValidIndex reports whether 0 <= i < Size().
func (l *List) IsValidIndex(i int) bool {
	return i >= 0 && i < len(l.tasks)
}

// Get returns the task at i. It panics if i is not a valid index;
// check IsValidIndex first.
func (l *List) Get(i int) Task {
	return l.tasks[i]
}

// Add appends t.
func (l *List) Add(t Task) {
	l.tasks = append(l.tasks, t)
}

// Remove deletes and returns the task at i. Later tasks shift down by one.
func (l *List) Remove(i int) Task {
	removed := l.tasks[i]
	copy(l.tasks[i:], l.tasks[i+1:])
	l.tasks[len(l.tasks)-1] = nil
	l.tasks = l.tasks[:len(l.tasks)-1]
	return removed
}

// Tasks returns the tasks in order. The slice is a copy; the tasks are not.
func (l *List) Tasks() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Find returns a new list of the tasks whose description contains keyword,
// ignoring case. The returned list shares task values with l.
func (l *List) Find(keyword string) *List {
	needle := fold(keyword)
	found := NewList()
	for _, t := range l.tasks {
		if strings.Contains(fold(t.Description()), needle) {
			found.Add(t)
		}
	}
	return found
}

// Sorted returns a new list ordered by category rank. Ties keep their
// original order. l is not modified.
func (l *List) Sorted() *List {
	sorted := NewList(l.tasks...)
	sort.SliceStable(sorted.tasks, func(i, j int) bool {
		return sorted.tasks[i].Kind().Rank() < sorted.tasks[j].Kind().Rank()
	})
	return sorted
}

func fold(s string) string {
	return cases.Fold().String(s)
}
