// Package parser turns one line of user input into a change to a task list
// or a query over it.
//
// Process holds no state between calls. Every check runs before the list is
// touched, so a command that fails leaves the list exactly as it was.
// Checks run in a fixed order: an empty list is reported before a bad index
// or keyword, field presence before date parsing, date parsing before date
// ordering.
package parser

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/nibzard/taskline/internal/task"
)

// Command keywords.
const (
	cmdBye      = "bye"
	cmdList     = "list"
	cmdSort     = "sort"
	cmdMark     = "mark"
	cmdUnmark   = "unmark"
	cmdDelete   = "delete"
	cmdTodo     = "todo"
	cmdDeadline = "deadline"
	cmdEvent    = "event"
	cmdFind     = "find"
)

// Argument separators.
const (
	sepBy   = "/by"
	sepFrom = "/from"
	sepTo   = "/to"
)

// Process interprets line against tasks. On success it returns what was
// done; on failure it returns a *task.Error and tasks is unchanged.
func Process(line string, tasks *task.List) (Result, error) {
	keyword, rest := splitKeyword(strings.TrimSpace(line))

	switch keyword {
	case cmdBye:
		if rest == "" {
			return Result{Kind: ResultExit}, nil
		}
	case cmdList:
		if rest == "" {
			return handleList(tasks)
		}
	case cmdSort:
		if rest == "" {
			return handleSort(tasks)
		}
	case cmdMark:
		return handleMark(tasks, rest)
	case cmdUnmark:
		return handleUnmark(tasks, rest)
	case cmdDelete:
		return handleDelete(tasks, rest)
	case cmdTodo:
		if rest == "" {
			return Result{}, task.NewError(task.ErrOnlyTodo)
		}
		return handleTodo(tasks, rest)
	case cmdDeadline:
		if rest == "" {
			return Result{}, task.NewError(task.ErrOnlyDeadline)
		}
		return handleDeadline(tasks, rest)
	case cmdEvent:
		if rest == "" {
			return Result{}, task.NewError(task.ErrOnlyEvent)
		}
		return handleEvent(tasks, rest)
	case cmdFind:
		return handleFind(tasks, rest)
	}
	return Result{}, task.NewError(task.ErrInvalidCommand)
}

// splitKeyword returns the lower-cased first word of input and the trimmed
// remainder.
func splitKeyword(input string) (string, string) {
	idx := strings.IndexFunc(input, unicode.IsSpace)
	if idx < 0 {
		return strings.ToLower(input), ""
	}
	return strings.ToLower(input[:idx]), strings.TrimSpace(input[idx:])
}

func handleList(tasks *task.List) (Result, error) {
	if tasks.IsEmpty() {
		return Result{}, task.NewError(task.ErrEmptyList)
	}
	return Result{Kind: ResultList, Tasks: tasks}, nil
}

func handleSort(tasks *task.List) (Result, error) {
	if tasks.IsEmpty() {
		return Result{}, task.NewError(task.ErrEmptyList)
	}
	return Result{Kind: ResultSort, Tasks: tasks.Sorted()}, nil
}

// parseIndex validates a 1-based task number and returns the 0-based index.
func parseIndex(tasks *task.List, arg string, notNumeric task.ErrorKind) (int, error) {
	if tasks.IsEmpty() {
		return 0, task.NewError(task.ErrEmptyList)
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, &task.Error{Kind: notNumeric, Err: err}
	}
	idx := n - 1
	if !tasks.IsValidIndex(idx) {
		return 0, task.Errorf(task.ErrInvalidTaskNumber,
			"Invalid task number. Please choose a number between 1 and %d.", tasks.Size())
	}
	return idx, nil
}

func handleMark(tasks *task.List, arg string) (Result, error) {
	idx, err := parseIndex(tasks, arg, task.ErrInvalidMark)
	if err != nil {
		return Result{}, err
	}
	t := tasks.Get(idx)
	t.Mark()
	return Result{Kind: ResultMarked, Task: t, Index: idx + 1}, nil
}

func handleUnmark(tasks *task.List, arg string) (Result, error) {
	idx, err := parseIndex(tasks, arg, task.ErrInvalidUnmark)
	if err != nil {
		return Result{}, err
	}
	t := tasks.Get(idx)
	t.Unmark()
	return Result{Kind: ResultUnmarked, Task: t, Index: idx + 1}, nil
}

func handleDelete(tasks *task.List, arg string) (Result, error) {
	idx, err := parseIndex(tasks, arg, task.ErrInvalidDelete)
	if err != nil {
		return Result{}, err
	}
	removed := tasks.Remove(idx)
	return Result{Kind: ResultDeleted, Task: removed, Index: idx + 1, Count: tasks.Size()}, nil
}

func handleTodo(tasks *task.List, body string) (Result, error) {
	description := strings.TrimSpace(body)
	if description == "" {
		return Result{}, task.NewError(task.ErrEmptyTodo)
	}
	return added(tasks, task.NewTodo(description)), nil
}

func handleDeadline(tasks *task.List, body string) (Result, error) {
	description, by, ok := strings.Cut(body, sepBy)
	if !ok {
		return Result{}, task.NewError(task.ErrEmptyDeadline)
	}
	description = strings.TrimSpace(description)
	by = strings.TrimSpace(by)
	if description == "" || by == "" {
		return Result{}, task.NewError(task.ErrEmptyDeadline)
	}
	at, err := task.ParseDateTime(by)
	if err != nil {
		return Result{}, &task.Error{Kind: task.ErrInvalidDateTime, Err: err}
	}
	return added(tasks, task.NewDeadlineAt(description, at)), nil
}

func handleEvent(tasks *task.List, body string) (Result, error) {
	description, times, ok := strings.Cut(body, sepFrom)
	if !ok {
		return Result{}, task.NewError(task.ErrEmptyEvent)
	}
	from, to, ok := strings.Cut(times, sepTo)
	if !ok {
		return Result{}, task.NewError(task.ErrEmptyEvent)
	}
	description = strings.TrimSpace(description)
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if description == "" || from == "" || to == "" {
		return Result{}, task.NewError(task.ErrEmptyEvent)
	}

	start, err := task.ParseDateTime(from)
	if err != nil {
		return Result{}, &task.Error{Kind: task.ErrInvalidDateTime, Err: err}
	}
	end, err := task.ParseDateTime(to)
	if err != nil {
		return Result{}, &task.Error{Kind: task.ErrInvalidDateTime, Err: err}
	}
	if !end.After(start) {
		return Result{}, task.NewError(task.ErrInvalidDateRange)
	}
	return added(tasks, task.NewEventAt(description, start, end)), nil
}

func handleFind(tasks *task.List, keyword string) (Result, error) {
	if tasks.IsEmpty() {
		return Result{}, task.NewError(task.ErrEmptyList)
	}
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return Result{}, task.NewError(task.ErrEmptyFind)
	}
	return Result{Kind: ResultFound, Tasks: tasks.Find(keyword)}, nil
}

func added(tasks *task.List, t task.Task) Result {
	tasks.Add(t)
	return Result{Kind: ResultAdded, Task: t, Index: tasks.Size(), Count: tasks.Size()}
}
