// Package session runs the interactive command loop: read a line, apply it
// to the task list, persist changes, and render the outcome.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskline/internal/hooks"
	"github.com/nibzard/taskline/internal/logging"
	"github.com/nibzard/taskline/internal/parser"
	"github.com/nibzard/taskline/internal/task"
)

// ReadErrorMessage is rendered when input can no longer be read.
const ReadErrorMessage = "An error occurred while reading input."

// Renderer presents session output.
type Renderer interface {
	Greet()
	Result(parser.Result)
	Error(error)
}

// Store persists the task list. A Save error is rendered in place of the
// result and the hook does not run.
type Store interface {
	Save(*task.List) error
	Path() string
}

// Transcript records processed commands.
type Transcript interface {
	Record(logging.Entry) error
}

// Options configures a Session.
type Options struct {
	Tasks       *task.List // defaults to an empty list
	Store       Store
	Renderer    Renderer
	Transcript  Transcript // optional
	HookCommand string     // optional, run after every persisted change
	HookOutput  io.Writer  // hook stdout and stderr; defaults to the process streams
	WorkDir     string
	Logger      *log.Logger
}

// Session holds the task list for one interactive run.
type Session struct {
	tasks      *task.List
	store      Store
	renderer   Renderer
	transcript Transcript
	hook       string
	hookOut    io.Writer
	workDir    string
	logger     *log.Logger
}

// New creates a session. Store and Renderer are required.
func New(opts Options) (*Session, error) {
	if opts.Store == nil {
		return nil, errors.New("session: store is required")
	}
	if opts.Renderer == nil {
		return nil, errors.New("session: renderer is required")
	}
	tasks := opts.Tasks
	if tasks == nil {
		tasks = task.NewList()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{
		tasks:      tasks,
		store:      opts.Store,
		renderer:   opts.Renderer,
		transcript: opts.Transcript,
		hook:       opts.HookCommand,
		hookOut:    opts.HookOutput,
		workDir:    opts.WorkDir,
		logger:     logger,
	}, nil
}

// Tasks returns the session's task list.
func (s *Session) Tasks() *task.List {
	return s.tasks
}

// Greet renders the greeting.
func (s *Session) Greet() {
	s.renderer.Greet()
}

// Run greets, then processes lines from r until bye, end of input or
// cancellation. A failed command is rendered and the loop continues. Only a
// read failure or cancellation is returned.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.Greet()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go readLines(ctx, r, lines, readErr)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return s.finishInput(ctx, <-readErr)
			}
			res, _ := s.Handle(ctx, line)
			if res.IsExit() {
				return nil
			}
		}
	}
}

// readLines feeds lines to out until input ends or ctx is done, then
// reports the scanner error and closes out.
func readLines(ctx context.Context, r io.Reader, out chan<- string, errc chan<- error) {
	defer close(out)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		select {
		case out <- scanner.Text():
		case <-ctx.Done():
			errc <- ctx.Err()
			return
		}
	}
	errc <- scanner.Err()
}

func (s *Session) finishInput(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		s.renderer.Error(errors.New(ReadErrorMessage))
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// Handle processes one line and renders the outcome. On success a mutating
// command has been persisted before Handle returns. The returned error is
// the command's or the store's *task.Error, already rendered.
func (s *Session) Handle(ctx context.Context, line string) (parser.Result, error) {
	res, err := parser.Process(line, s.tasks)
	if err != nil {
		s.logger.Debug("command rejected", "input", line, "kind", task.KindOf(err).String())
		s.renderer.Error(err)
		s.record(line, res, err)
		return res, err
	}

	if res.Mutates() {
		if err := s.store.Save(s.tasks); err != nil {
			s.logger.Warn("save failed", "path", s.store.Path(), "err", err)
			s.renderer.Error(err)
			s.record(line, res, err)
			return res, err
		}
		s.runHook(ctx, res)
	}
	s.logger.Debug("command applied", "input", line, "result", res.Kind, "count", s.tasks.Size())
	s.renderer.Result(res)
	s.record(line, res, nil)
	return res, nil
}

func (s *Session) runHook(ctx context.Context, res parser.Result) {
	if s.hook == "" {
		return
	}
	opts := hooks.Options{
		Command:  s.hook,
		Action:   res.Kind.String(),
		TaskFile: s.store.Path(),
		Count:    s.tasks.Size(),
		WorkDir:  s.workDir,
		Stdout:   s.hookOut,
		Stderr:   s.hookOut,
	}
	if res.Task != nil {
		opts.Task = res.Task.String()
	}
	result, err := hooks.Invoke(ctx, opts)
	if err != nil {
		s.logger.Warn("hook failed", "command", s.hook, "exit_code", result.ExitCode, "err", err)
		return
	}
	s.logger.Debug("hook ran", "command", result.Command)
}

func (s *Session) record(line string, res parser.Result, err error) {
	if s.transcript == nil {
		return
	}
	entry := logging.Entry{Input: line}
	if err != nil {
		entry.ErrorKind = task.KindOf(err).String()
		entry.Error = err.Error()
	} else {
		entry.Result = res.Kind.String()
		if res.Task != nil {
			entry.Task = res.Task.String()
		}
		if res.Mutates() {
			entry.Count = s.tasks.Size()
		}
	}
	if recErr := s.transcript.Record(entry); recErr != nil {
		s.logger.Warn("transcript write failed", "err", recErr)
	}
}
