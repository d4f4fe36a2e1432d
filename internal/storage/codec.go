package storage

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/taskline/internal/task"
)

const (
	fieldSep     = " | "
	eventTimeSep = " to "
)

// Skipped describes a line dropped by DecodeLenient.
type Skipped struct {
	Line   int    // 1-based
	Raw    string
	Reason string
}

// EncodeLine renders a single task in the storage format.
func EncodeLine(t task.Task) string {
	done := "0"
	if t.IsDone() {
		done = "1"
	}
	fields := []string{t.Kind().Tag(), done, t.Description()}
	switch v := t.(type) {
	case *task.Deadline:
		fields = append(fields, task.FormatDateTime(v.By()))
	case *task.Event:
		fields = append(fields, task.FormatDateTime(v.From())+eventTimeSep+task.FormatDateTime(v.To()))
	}
	return strings.Join(fields, fieldSep)
}

// Encode writes one line per task.
func Encode(w io.Writer, tasks []task.Task) error {
	bw := bufio.NewWriter(w)
	for _, t := range tasks {
		if _, err := bw.WriteString(EncodeLine(t)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodeLenient reads as many tasks as it can. Lines with too few fields, an
// unknown type tag, or a missing or unparseable date-time are skipped and
// reported. A read error stops decoding; the tasks read so far are returned
// along with the error.
func DecodeLenient(r io.Reader) ([]task.Task, []Skipped, error) {
	var (
		tasks   []task.Task
		skipped []Skipped
	)
	err := scanLines(r, func(n int, line string) error {
		t, reason := decodeLine(line, false)
		if reason != "" {
			skipped = append(skipped, Skipped{Line: n, Raw: line, Reason: reason})
			return nil
		}
		tasks = append(tasks, t)
		return nil
	})
	return tasks, skipped, err
}

// DecodeStrict fails on the first malformed line with an
// ErrInvalidStorageFormat error naming the line number and content. Read
// failures are ErrStorageLoad errors.
func DecodeStrict(r io.Reader) ([]task.Task, error) {
	var tasks []task.Task
	err := scanLines(r, func(n int, line string) error {
		t, reason := decodeLine(line, true)
		if reason != "" {
			return task.Errorf(task.ErrInvalidStorageFormat, "%s at line %d: %s", reason, n, line)
		}
		tasks = append(tasks, t)
		return nil
	})
	if err != nil {
		if task.KindOf(err) == task.ErrInvalidStorageFormat {
			return nil, err
		}
		return nil, task.WrapError(task.ErrStorageLoad, err, "Failed to load state: "+err.Error())
	}
	return tasks, nil
}

// scanLines calls fn for every line of r. Lines have no length limit and
// a trailing "\r\n" or "\n" is removed. A final line without a newline is
// still reported.
func scanLines(r io.Reader, fn func(n int, line string) error) error {
	br := bufio.NewReader(r)
	n := 0
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		if line == "" && err == io.EOF {
			return nil
		}
		n++
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if fnErr := fn(n, line); fnErr != nil {
			return fnErr
		}
		if err == io.EOF {
			return nil
		}
	}
}

// decodeLine returns the task for line, or a non-empty reason when the line
// cannot be used. In strict mode a completion flag other than 0 or 1 is also
// rejected; leniently, anything but 1 means not done.
//
// The description may itself contain '|': for Todo lines it is everything
// after the flag, for Deadline and Event lines everything between the flag
// and the last field.
func decodeLine(line string, strict bool) (task.Task, string) {
	parts := strings.Split(line, "|")
	if len(parts) < 3 {
		return nil, "Malformed line"
	}

	tag := strings.TrimSpace(parts[0])
	kind, ok := task.KindFromTag(tag)
	if !ok {
		return nil, fmt.Sprintf("Unknown task type %q", tag)
	}

	flag := strings.TrimSpace(parts[1])
	if strict && flag != "0" && flag != "1" {
		return nil, fmt.Sprintf("Invalid completion flag %q", flag)
	}
	done := flag == "1"

	var t task.Task
	switch kind {
	case task.KindTodo:
		t = task.NewTodo(strings.TrimSpace(strings.Join(parts[2:], "|")))

	case task.KindDeadline:
		if len(parts) < 4 {
			return nil, "Missing deadline datetime"
		}
		desc := strings.TrimSpace(strings.Join(parts[2:len(parts)-1], "|"))
		d, err := task.NewDeadline(desc, strings.TrimSpace(parts[len(parts)-1]))
		if err != nil {
			return nil, "Invalid date/time"
		}
		t = d

	case task.KindEvent:
		if len(parts) < 4 {
			return nil, "Missing event datetime(s)"
		}
		desc := strings.TrimSpace(strings.Join(parts[2:len(parts)-1], "|"))
		times := strings.SplitN(parts[len(parts)-1], eventTimeSep, 2)
		if len(times) != 2 {
			return nil, "Invalid event times"
		}
		e, err := task.NewEvent(desc, strings.TrimSpace(times[0]), strings.TrimSpace(times[1]))
		if err != nil {
			return nil, "Invalid date/time"
		}
		t = e
	}

	if done {
		t.Mark()
	}
	return t, ""
}
