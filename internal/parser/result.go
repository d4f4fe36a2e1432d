package parser

import "github.com/nibzard/taskline/internal/task"

// ResultKind says what a successful command did.
type ResultKind int

const (
	ResultExit ResultKind = iota
	ResultList
	ResultSort
	ResultFound
	ResultAdded
	ResultMarked
	ResultUnmarked
	ResultDeleted
)

func (k ResultKind) String() string {
	switch k {
	case ResultExit:
		return "exit"
	case ResultList:
		return "list"
	case ResultSort:
		return "sort"
	case ResultFound:
		return "find"
	case ResultAdded:
		return "added"
	case ResultMarked:
		return "marked"
	case ResultUnmarked:
		return "unmarked"
	case ResultDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Result is the outcome of a successful command.
type Result struct {
	Kind ResultKind

	// Task is the affected task for added, marked, unmarked and deleted.
	Task task.Task

	// Index is the 1-based position of Task for marked and unmarked, and of
	// the new task for added. Zero otherwise.
	Index int

	// Count is the collection size after the command for added and deleted.
	Count int

	// Tasks holds the tasks to display for list, sort and find. For list it
	// is the collection itself; for sort and find it is a new list.
	Tasks *task.List
}

// Mutates reports whether the command changed the collection and the
// caller should persist it.
func (r Result) Mutates() bool {
	switch r.Kind {
	case ResultAdded, ResultMarked, ResultUnmarked, ResultDeleted:
		return true
	default:
		return false
	}
}

// IsExit reports whether the session should end.
func (r Result) IsExit() bool {
	return r.Kind == ResultExit
}
