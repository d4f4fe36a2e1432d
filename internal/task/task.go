package task

import (
	"fmt"
	"time"
)

// DateTimeLayout is the canonical input and storage pattern (yyyy-MM-dd HHmm).
const DateTimeLayout = "2006-01-02 1504"

// DisplayLayout is the human form used when rendering tasks.
const DisplayLayout = "Jan 2 2006 3PM"

// Kind identifies a task variant.
type Kind int

const (
	KindTodo Kind = iota
	KindDeadline
	KindEvent
)

// Tag returns the single-letter type tag used in storage and display.
func (k Kind) Tag() string {
	switch k {
	case KindTodo:
		return "T"
	case KindDeadline:
		return "D"
	case KindEvent:
		return "E"
	default:
		return "?"
	}
}

// Rank returns the category rank used by sort (Todo < Deadline < Event).
func (k Kind) Rank() int {
	return int(k)
}

func (k Kind) String() string {
	switch k {
	case KindTodo:
		return "todo"
	case KindDeadline:
		return "deadline"
	case KindEvent:
		return "event"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindFromTag maps a storage tag back to a Kind.
func KindFromTag(tag string) (Kind, bool) {
	switch tag {
	case "T":
		return KindTodo, true
	case "D":
		return KindDeadline, true
	case "E":
		return KindEvent, true
	default:
		return 0, false
	}
}

// Task is implemented by *Todo, *Deadline and *Event only.
type Task interface {
	Kind() Kind
	Description() string
	IsDone() bool
	Mark()
	Unmark()
	// String renders the one-line display form.
	String() string

	sealed()
}

// state is the part every variant shares.
type state struct {
	description string
	done        bool
}

func (s *state) Description() string { return s.description }
func (s *state) IsDone() bool        { return s.done }
func (s *state) Mark()               { s.done = true }
func (s *state) Unmark()             { s.done = false }
func (s *state) sealed()             {}

func (s *state) marker() string {
	if s.done {
		return "[X] "
	}
	return "[ ] "
}

// Todo is a task with only a description.
type Todo struct {
	state
}

// NewTodo creates a not-done Todo.
func NewTodo(description string) *Todo {
	return &Todo{state: state{description: description}}
}

func (t *Todo) Kind() Kind { return KindTodo }

func (t *Todo) String() string {
	return "[T]" + t.marker() + t.description
}

// Deadline is a task due at a specific date-time.
type Deadline struct {
	state
	by time.Time
}

// NewDeadline parses by with DateTimeLayout.
func NewDeadline(description, by string) (*Deadline, error) {
	at, err := ParseDateTime(by)
	if err != nil {
		return nil, err
	}
	return NewDeadlineAt(description, at), nil
}

// NewDeadlineAt creates a Deadline from an already parsed time.
func NewDeadlineAt(description string, by time.Time) *Deadline {
	return &Deadline{state: state{description: description}, by: by}
}

func (d *Deadline) Kind() Kind { return KindDeadline }

// By returns the due date-time.
func (d *Deadline) By() time.Time { return d.by }

func (d *Deadline) String() string {
	return "[D]" + d.marker() + d.description + " (by: " + FormatDisplay(d.by) + ")"
}

// Event is a task spanning a start and an end date-time.
//
// The end is not checked against the start here; interactive input is
// validated by the parser and loaded data is accepted as stored.
type Event struct {
	state
	from time.Time
	to   time.Time
}

// NewEvent parses from and to with DateTimeLayout.
func NewEvent(description, from, to string) (*Event, error) {
	start, err := ParseDateTime(from)
	if err != nil {
		return nil, err
	}
	end, err := ParseDateTime(to)
	if err != nil {
		return nil, err
	}
	return NewEventAt(description, start, end), nil
}

// NewEventAt creates an Event from already parsed times.
func NewEventAt(description string, from, to time.Time) *Event {
	return &Event{state: state{description: description}, from: from, to: to}
}

func (e *Event) Kind() Kind { return KindEvent }

// From returns the start date-time.
func (e *Event) From() time.Time { return e.from }

// To returns the end date-time.
func (e *Event) To() time.Time { return e.to }

func (e *Event) String() string {
	return "[E]" + e.marker() + e.description +
		" (from: " + FormatDisplay(e.from) + " to: " + FormatDisplay(e.to) + ")"
}

// ParseDateTime parses s with the canonical pattern. Failures are
// ErrDateTimeParse errors wrapping the time package error.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return time.Time{}, WrapError(ErrDateTimeParse, err,
			fmt.Sprintf("Invalid date/time %q, expected yyyy-MM-dd HHmm", s))
	}
	return t, nil
}

// FormatDateTime formats t with the canonical pattern.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// FormatDisplay formats t for humans, e.g. "Jan 1 2025 6PM".
func FormatDisplay(t time.Time) string {
	return t.Format(DisplayLayout)
}
