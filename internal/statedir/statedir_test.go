package statedir

import (
	"path/filepath"
	"testing"
)

func TestPaths(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"tasks in cwd", TasksPath(""), filepath.Join(".taskline", "tasks.txt")},
		{"tasks dot", TasksPath("."), filepath.Join(".taskline", "tasks.txt")},
		{"tasks in dir", TasksPath("proj"), filepath.Join("proj", ".taskline", "tasks.txt")},
		{"config in dir", ConfigPath("proj"), filepath.Join("proj", ".taskline", "taskline.toml")},
		{"dir", DirPath("proj"), filepath.Join("proj", ".taskline")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, tt.got)
			}
		})
	}
}

func TestContains(t *testing.T) {
	if !Contains(TasksPath("/tmp/proj")) {
		t.Error("expected task path to be inside the state dir")
	}
	if Contains("/tmp/proj/tasks.txt") {
		t.Error("expected plain path to be outside the state dir")
	}
}
