package storage

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/taskline/internal/task"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Record is the structured form of a task used by Export.
type Record struct {
	Type        string `json:"type" yaml:"type"`
	Done        bool   `json:"done" yaml:"done"`
	Description string `json:"description" yaml:"description"`
	By          string `json:"by,omitempty" yaml:"by,omitempty"`
	From        string `json:"from,omitempty" yaml:"from,omitempty"`
	To          string `json:"to,omitempty" yaml:"to,omitempty"`
}

// Records converts tasks to their structured form. Date-times use the
// canonical pattern.
func Records(tasks []task.Task) []Record {
	out := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		r := Record{
			Type:        t.Kind().String(),
			Done:        t.IsDone(),
			Description: t.Description(),
		}
		switch v := t.(type) {
		case *task.Deadline:
			r.By = task.FormatDateTime(v.By())
		case *task.Event:
			r.From = task.FormatDateTime(v.From())
			r.To = task.FormatDateTime(v.To())
		}
		out = append(out, r)
	}
	return out
}

// Export writes tasks to w as JSON (2-space indent) or YAML.
func Export(w io.Writer, tasks []task.Task, format string) error {
	records := Records(tasks)
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown export format %q (expected json|yaml)", format)
	}
}
