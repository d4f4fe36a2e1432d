package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/taskline/internal/parser"
	"github.com/nibzard/taskline/internal/task"
)

const (
	greeting = "Bow before Muzan, and I will keep track of your tasks."
	query    = "What can I do for you?"
	farewell = "Bye. Hope to see you again soon!"
	rule     = "-----------"
)

// Console renders session output as plain text.
type Console struct {
	w io.Writer
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Greet writes the greeting and the opening prompt.
func (c *Console) Greet() {
	io.WriteString(c.w, Greeting())
}

// Result writes the confirmation or query output for res.
func (c *Console) Result(res parser.Result) {
	io.WriteString(c.w, FormatResult(res))
}

// Error writes the message of err.
func (c *Console) Error(err error) {
	io.WriteString(c.w, FormatError(err))
}

// Greeting returns the text shown when a session starts.
func Greeting() string {
	return greeting + "\n\n" + query + "\n\n"
}

// FormatResult returns the text shown for a successful command.
func FormatResult(res parser.Result) string {
	var b strings.Builder
	switch res.Kind {
	case parser.ResultExit:
		b.WriteString(farewell + "\n\n")
	case parser.ResultList, parser.ResultSort, parser.ResultFound:
		writeList(&b, res.Tasks)
	case parser.ResultAdded:
		fmt.Fprintf(&b, "%s\nadded: %s\n%s\n\n", rule, res.Task, rule)
	case parser.ResultMarked:
		fmt.Fprintf(&b, "Marked task %d as done.\n%s\n", res.Index, res.Task)
	case parser.ResultUnmarked:
		fmt.Fprintf(&b, "Unmarked task %d.\n%s\n", res.Index, res.Task)
	case parser.ResultDeleted:
		fmt.Fprintf(&b, "Noted. I've removed this task:\n%s\nNow you have %d tasks in the list.\n", res.Task, res.Count)
	}
	return b.String()
}

// FormatError returns the text shown for a failed command.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return err.Error() + "\n"
}

func writeList(b *strings.Builder, tasks *task.List) {
	b.WriteString(rule + "\n")
	if tasks != nil {
		for i, t := range tasks.Tasks() {
			fmt.Fprintf(b, "%d. %s\n", i+1, t)
		}
	}
	b.WriteString(rule + "\n\n")
}
