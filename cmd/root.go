// Package cmd implements the CLI command structure for taskline.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskline/internal/config"
	"github.com/nibzard/taskline/internal/logging"
	"github.com/nibzard/taskline/internal/session"
	"github.com/nibzard/taskline/internal/storage"
	"github.com/nibzard/taskline/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// streams are the process streams a command reads and writes.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// Run executes the taskline CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
}

func run(ctx context.Context, args []string, s streams) error {
	fs := flag.NewFlagSet("taskline", flag.ContinueOnError)
	fs.SetOutput(s.err)
	fs.Usage = func() {
		printUsage(fs, s.err)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, s.out)
		return nil
	}
	if *showVersion {
		return versionCommand(s)
	}

	// No args, or a leading flag, means "run".
	subcommand := "run"
	remaining := fs.Args()
	if len(remaining) > 0 && !strings.HasPrefix(remaining[0], "-") {
		subcommand = remaining[0]
		remaining = remaining[1:]
	}

	switch subcommand {
	case "run":
		return runCommand(ctx, cfg, remaining, s)
	case "tui":
		return tuiCommand(ctx, cfg, remaining, s)
	case "check":
		return checkCommand(cfg, remaining, s)
	case "ls":
		return lsCommand(cfg, remaining, s)
	case "exec":
		return execCommand(ctx, cfg, remaining, s)
	case "export":
		return exportCommand(cfg, remaining, s)
	case "tail":
		return tailCommand(ctx, cfg, remaining, s)
	case "config":
		return configCommand(cws, remaining, s)
	case "version":
		return versionCommand(s)
	case "help":
		printUsage(fs, s.out)
		return nil
	default:
		// An existing file is taken as the task file for run.
		if fi, err := os.Stat(subcommand); err == nil && !fi.IsDir() {
			return runCommand(ctx, cfg, append([]string{subcommand}, remaining...), s)
		}
		fmt.Fprintf(s.err, "Unknown command: %s\n", subcommand)
		printUsage(fs, s.err)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// runCommand starts an interactive console session on the process streams.
func runCommand(ctx context.Context, cfg *config.Config, args []string, s streams) error {
	fs := flag.NewFlagSet("taskline run", flag.ContinueOnError)
	fs.SetOutput(s.err)
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := taskPath(cfg, fs.Args())
	if err != nil {
		return err
	}

	logger := newLogger(cfg, s.err)
	sess, done, err := newSession(cfg, path, ui.NewConsole(s.out), s.out, logger)
	if err != nil {
		return err
	}
	defer done()

	return sess.Run(ctx, s.in)
}

// tuiCommand starts the chat-style terminal UI.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string, s streams) error {
	fs := flag.NewFlagSet("taskline tui", flag.ContinueOnError)
	fs.SetOutput(s.err)
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := taskPath(cfg, fs.Args())
	if err != nil {
		return err
	}

	logger := newLogger(cfg, s.err)
	done := func() {}
	defer func() { done() }()

	build := func(r session.Renderer) (*session.Session, error) {
		// Hook output would corrupt the alternate screen.
		sess, closer, err := newSession(cfg, path, r, io.Discard, logger)
		if err != nil {
			return nil, err
		}
		done = closer
		return sess, nil
	}
	return ui.RunTUI(ctx, build, path)
}

// newSession wires storage, transcript and hooks into a session. The
// returned func closes the transcript.
func newSession(cfg *config.Config, path string, r session.Renderer, hookOut io.Writer, logger *log.Logger) (*session.Session, func(), error) {
	store := storage.New(path, storage.WithLogger(logger))
	opts := session.Options{
		Tasks:       store.Load(),
		Store:       store,
		Renderer:    r,
		HookCommand: cfg.HookCommand,
		HookOutput:  hookOut,
		WorkDir:     cfg.ProjectRoot,
		Logger:      logger,
	}

	done := func() {}
	if cfg.Transcript {
		rl, err := logging.NewRunLogger(cfg.LogDir, path)
		if err != nil {
			logger.Warn("transcript disabled", "err", err)
		} else {
			logger.Debug("writing transcript", "path", rl.LogPath)
			opts.Transcript = rl
			done = func() { _ = rl.Close() }
		}
	}

	sess, err := session.New(opts)
	if err != nil {
		done()
		return nil, nil, err
	}
	return sess, done, nil
}

func newLogger(cfg *config.Config, w io.Writer) *log.Logger {
	opts := logging.DefaultOptions()
	opts.Level = cfg.LogLevel
	opts.Format = cfg.LogFormat
	opts.Timestamps = cfg.LogTimestamps
	opts.Caller = cfg.LogCaller
	opts.Output = w
	return logging.New(opts)
}

// taskPath resolves the optional [file] argument against the config.
func taskPath(cfg *config.Config, args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	path := cfg.TaskFile
	if len(args) == 1 {
		path = args[0]
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.ProjectRoot, path)
	}
	return path, nil
}

// versionCommand prints version information.
func versionCommand(s streams) error {
	fmt.Fprintf(s.out, "taskline version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "taskline - keep track of todos, deadlines and events")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskline [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run [file]        Start an interactive session (default command)")
	fmt.Fprintln(w, "  tui [file]        Start the chat-style terminal UI")
	fmt.Fprintln(w, "  check [file]      Validate the task file strictly")
	fmt.Fprintln(w, "  ls [file]         List tasks")
	fmt.Fprintln(w, "  exec <command>    Run one command against the task file")
	fmt.Fprintln(w, "  export [file]     Write tasks as JSON or YAML")
	fmt.Fprintln(w, "  tail              Show the latest session transcript")
	fmt.Fprintln(w, "  config            Show the effective configuration")
	fmt.Fprintln(w, "  version           Show version information")
	fmt.Fprintln(w, "  help              Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Session Commands:")
	fmt.Fprintln(w, "  todo <description>")
	fmt.Fprintln(w, "  deadline <description> /by <yyyy-MM-dd HHmm>")
	fmt.Fprintln(w, "  event <description> /from <yyyy-MM-dd HHmm> /to <yyyy-MM-dd HHmm>")
	fmt.Fprintln(w, "  mark <n>, unmark <n>, delete <n>")
	fmt.Fprintln(w, "  find <keyword>, sort, list, bye")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -sort         Order by type: todos, deadlines, events")
	fmt.Fprintln(w, "  -find string  Only tasks whose description contains the keyword")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exec Options (use with 'exec' command):")
	fmt.Fprintln(w, "  -strict       Fail on malformed task files and save errors")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options (use with 'export' command):")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        json or yaml (default json)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, -follow   Follow the transcript (like tail -f)")
	fmt.Fprintln(w, "  -n int        Number of lines to show (0 = all)")
	fmt.Fprintln(w, "  -list         List transcripts instead of tailing")
}
