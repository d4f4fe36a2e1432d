// Package hooks invokes an external command after the task file changes.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
)

// Options configures a hook invocation.
type Options struct {
	Command  string
	Action   string // what changed: added, marked, unmarked, deleted
	TaskFile string
	Count    int    // tasks in the file after the change
	Task     string // rendered task affected by the change
	WorkDir  string
	Stdout   io.Writer
	Stderr   io.Writer
}

// Result captures the outcome of a hook invocation.
type Result struct {
	Ran      bool
	Command  []string
	ExitCode int
}

// Invoke runs the hook command as
//
//	<command> <action> <task file> <count> <task>
//
// It does nothing when no command is configured.
func Invoke(ctx context.Context, opts Options) (Result, error) {
	if opts.Command == "" {
		return Result{}, nil
	}
	if opts.TaskFile != "" {
		info, err := os.Stat(opts.TaskFile)
		if err != nil && !os.IsNotExist(err) {
			return Result{}, fmt.Errorf("stat task file: %w", err)
		}
		if err == nil && info.IsDir() {
			return Result{}, fmt.Errorf("task file is a directory: %s", opts.TaskFile)
		}
	}

	args := []string{opts.Action, opts.TaskFile, strconv.Itoa(opts.Count), opts.Task}

	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, opts.Command, args...)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	cmd.Stdout = writerOr(opts.Stdout, os.Stdout)
	cmd.Stderr = writerOr(opts.Stderr, os.Stderr)
	cmd.Env = append(os.Environ(),
		"TASKLINE_ACTION="+opts.Action,
		"TASKLINE_FILE="+opts.TaskFile,
	)

	err := cmd.Run()
	result := Result{
		Ran:      true,
		Command:  cmd.Args,
		ExitCode: exitCodeFromError(err),
	}
	if err != nil {
		return result, fmt.Errorf("hook command failed: %w", err)
	}
	return result, nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
