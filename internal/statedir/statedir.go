// Package statedir provides constants and helpers for the .taskline directory.
package statedir

import "path/filepath"

const (
	// Dir is the name of the per-project state directory.
	Dir = ".taskline"

	// TasksFile is the default task file name (inside .taskline).
	TasksFile = "tasks.txt"

	// ConfigFile is the config file name (inside .taskline).
	ConfigFile = "taskline.toml"
)

// TasksPath returns the task file path within a work directory.
func TasksPath(workDir string) string {
	return joinPath(workDir, TasksFile)
}

// ConfigPath returns the config file path within a work directory.
func ConfigPath(workDir string) string {
	return joinPath(workDir, ConfigFile)
}

// DirPath returns the .taskline directory within a work directory.
func DirPath(workDir string) string {
	if workDir == "." || workDir == "" {
		return Dir
	}
	return filepath.Join(workDir, Dir)
}

// Contains reports whether path lives directly inside a .taskline directory.
func Contains(path string) bool {
	return filepath.Base(filepath.Dir(path)) == Dir
}

func joinPath(workDir, file string) string {
	return filepath.Join(DirPath(workDir), file)
}
