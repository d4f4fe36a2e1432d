package task

import (
	"errors"
	"fmt"
)

// ErrorKind identifies a user-level failure. Every kind is recoverable: the
// command is rejected and the collection is left as it was.
//
// An ErrorKind is itself an error so callers can write
// errors.Is(err, task.ErrEmptyList).
type ErrorKind int

const (
	// Command shape.
	ErrInvalidCommand ErrorKind = iota + 1
	ErrOnlyTodo
	ErrOnlyDeadline
	ErrOnlyEvent

	// Field validation.
	ErrEmptyTodo
	ErrEmptyDeadline
	ErrEmptyEvent
	ErrEmptyFind
	ErrEmptyList

	// Index validation.
	ErrInvalidTaskNumber
	ErrInvalidMark
	ErrInvalidUnmark
	ErrInvalidDelete

	// Date-times.
	ErrInvalidDateTime
	ErrInvalidDateRange
	ErrDateTimeParse

	// Storage.
	ErrStorageLoad
	ErrStorageSave
	ErrInvalidStorageFormat
)

type kindInfo struct {
	name    string
	message string
}

var kinds = map[ErrorKind]kindInfo{
	ErrInvalidCommand:       {"InvalidCommand", "Unknown command. Please use 'todo', 'deadline', 'event', 'mark', 'unmark', 'delete', 'find', 'sort', 'list' or 'bye'."},
	ErrOnlyTodo:             {"OnlyTodo", "You cannot type todo and not do anything"},
	ErrOnlyDeadline:         {"OnlyDeadline", "You cannot type deadline and not do anything"},
	ErrOnlyEvent:            {"OnlyEvent", "You cannot type event and not do anything"},
	ErrEmptyTodo:            {"EmptyTodo", "The description of a todo cannot be empty."},
	ErrEmptyDeadline:        {"EmptyDeadline", "Invalid deadline format. Use: deadline <description> /by <yyyy-MM-dd HHmm>"},
	ErrEmptyEvent:           {"EmptyEvent", "Invalid event format. Use: event <description> /from <yyyy-MM-dd HHmm> /to <yyyy-MM-dd HHmm>"},
	ErrEmptyFind:            {"EmptyFind", "Please provide a keyword to find."},
	ErrEmptyList:            {"EmptyList", "Your task list is empty."},
	ErrInvalidTaskNumber:    {"InvalidTaskNumber", "Invalid task number."},
	ErrInvalidMark:          {"InvalidMark", "Please provide a valid task number to mark."},
	ErrInvalidUnmark:        {"InvalidUnmark", "Please provide a valid task number to unmark."},
	ErrInvalidDelete:        {"InvalidDelete", "Please provide a valid task number to delete."},
	ErrInvalidDateTime:      {"InvalidDateTime", "Invalid date/time format. Please use 'yyyy-MM-dd HHmm'."},
	ErrInvalidDateRange:     {"InvalidDateRange", "End date must be after start date"},
	ErrDateTimeParse:        {"DateTimeParse", "Invalid date/time format found"},
	ErrStorageLoad:          {"StorageLoad", "Failed to load storage file."},
	ErrStorageSave:          {"StorageSave", "Failed to save storage file."},
	ErrInvalidStorageFormat: {"InvalidStorageFormat", "Invalid storage file format."},
}

// String returns the kind name, e.g. "EmptyList".
func (k ErrorKind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error returns the default user-facing message for the kind.
func (k ErrorKind) Error() string {
	if info, ok := kinds[k]; ok {
		return info.message
	}
	return "unknown error"
}

// Error is a user-level failure with a kind and a message.
type Error struct {
	Kind ErrorKind
	Msg  string // overrides the kind's default message when set
	Err  error  // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Kind.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the same ErrorKind.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// NewError returns an Error carrying the kind's default message.
func NewError(kind ErrorKind) *Error {
	return &Error{Kind: kind}
}

// Errorf returns an Error with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WrapError returns an Error with a message and an underlying cause.
func WrapError(kind ErrorKind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of err, or 0 if err is not a task error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k ErrorKind
	if errors.As(err, &k) {
		return k
	}
	return 0
}
