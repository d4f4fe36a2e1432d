package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nibzard/taskline/internal/config"
	"github.com/nibzard/taskline/internal/parser"
	"github.com/nibzard/taskline/internal/session"
	"github.com/nibzard/taskline/internal/storage"
	"github.com/nibzard/taskline/internal/task"
	"github.com/nibzard/taskline/internal/ui"
)

// checkCommand validates the task file strictly and reports what it found.
func checkCommand(cfg *config.Config, args []string, s streams) error {
	fs := flag.NewFlagSet("taskline check", flag.ContinueOnError)
	fs.SetOutput(s.err)
	verbose := fs.Bool("v", false, "List the tasks that were read")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := taskPath(cfg, fs.Args())
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "taskline check")
	fmt.Fprintln(s.out, "==============")
	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "Project root: %s\n", cfg.ProjectRoot)
	fmt.Fprintln(s.out)

	fmt.Fprintf(s.out, "Task file: %s\n", path)
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintln(s.out, "  ⚠️  Not found (a session starts with an empty list)")
		return nil
	case err != nil:
		fmt.Fprintf(s.out, "  ❌ Error: %v\n", err)
		return err
	case info.IsDir():
		fmt.Fprintln(s.out, "  ❌ Error: path is a directory")
		return fmt.Errorf("task file is a directory: %s", path)
	}

	tasks, err := storage.New(path).LoadStrict()
	if err != nil {
		fmt.Fprintf(s.out, "  ❌ %v\n", err)
		return err
	}
	fmt.Fprintf(s.out, "  ✅ Valid (%d tasks)\n", tasks.Size())
	if *verbose {
		for i, t := range tasks.Tasks() {
			fmt.Fprintf(s.out, "    %d. %s\n", i+1, t)
		}
	}
	return nil
}

// lsCommand prints the task list once, optionally sorted or filtered.
func lsCommand(cfg *config.Config, args []string, s streams) error {
	fs := flag.NewFlagSet("taskline ls", flag.ContinueOnError)
	fs.SetOutput(s.err)
	sorted := fs.Bool("sort", false, "Order by type: todos, deadlines, events")
	keyword := fs.String("find", "", "Only tasks whose description contains the keyword")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sorted && *keyword != "" {
		return fmt.Errorf("-sort and -find cannot be combined")
	}
	path, err := taskPath(cfg, fs.Args())
	if err != nil {
		return err
	}

	line := "list"
	switch {
	case *sorted:
		line = "sort"
	case *keyword != "":
		line = "find " + *keyword
	}

	tasks := storage.New(path, storage.WithLogger(newLogger(cfg, s.err))).Load()
	console := ui.NewConsole(s.out)
	res, err := parser.Process(line, tasks)
	if err != nil {
		// An empty list is a normal answer here.
		console.Error(err)
		if errors.Is(err, task.ErrEmptyList) {
			return nil
		}
		return err
	}
	console.Result(res)
	return nil
}

// execCommand applies a single session command to the task file.
func execCommand(ctx context.Context, cfg *config.Config, args []string, s streams) error {
	fs := flag.NewFlagSet("taskline exec", flag.ContinueOnError)
	fs.SetOutput(s.err)
	strict := fs.Bool("strict", false, "Fail on malformed task files and save errors")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("exec needs a command, e.g. taskline exec todo buy milk")
	}
	path, err := taskPath(cfg, nil)
	if err != nil {
		return err
	}

	logger := newLogger(cfg, s.err)
	store := &execStore{Storage: storage.New(path, storage.WithLogger(logger)), strict: *strict}
	var tasks *task.List
	if *strict {
		tasks, err = store.LoadStrict()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	if tasks == nil {
		tasks = store.Load()
	}

	sess, err := session.New(session.Options{
		Tasks:       tasks,
		Store:       store,
		Renderer:    ui.NewConsole(s.out),
		HookCommand: cfg.HookCommand,
		HookOutput:  s.err,
		WorkDir:     cfg.ProjectRoot,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	_, err = sess.Handle(ctx, strings.Join(fs.Args(), " "))
	return err
}

// execStore returns save failures when -strict is set.
type execStore struct {
	*storage.Storage
	strict bool
}

func (e *execStore) Save(tasks *task.List) error {
	if !e.strict {
		return e.Storage.Save(tasks)
	}
	return e.Storage.SaveStrict(tasks)
}

// exportCommand writes the task list as structured data.
func exportCommand(cfg *config.Config, args []string, s streams) error {
	fs := flag.NewFlagSet("taskline export", flag.ContinueOnError)
	fs.SetOutput(s.err)
	format := fs.String("format", storage.FormatJSON, "Output format (json|yaml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := taskPath(cfg, fs.Args())
	if err != nil {
		return err
	}

	tasks := storage.New(path, storage.WithLogger(newLogger(cfg, s.err))).Load()
	return storage.Export(s.out, tasks.Tasks(), *format)
}
