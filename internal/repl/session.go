package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/billmal071/bookshelf/internal/books"
	"github.com/billmal071/bookshelf/internal/tui"
)

// DefaultPrompt is shown before every line of input
const DefaultPrompt = "Enter 'get' to list all books, 'get <id>' (or 1, 2, 3) to show a book, or 'exit' to quit: "

const helpText = `Commands:
  get        list all books
  get <id>   show the book with that id
  1, 2, 3    shortcuts for get 1, get 2, get 3
  help       show this help
  exit       quit`

// Recorder stores the outcome of each dispatched command
type Recorder interface {
	Record(command string, rows int, err error) error
}

// ProgressFunc is called when a request starts; the returned func is called when it ends
type ProgressFunc func(label string) (stop func())

// Session is one interactive read-dispatch-render loop
type Session struct {
	client   books.Client
	in       io.Reader
	out      io.Writer
	prompt   string
	recorder Recorder
	progress ProgressFunc
	logger   *zap.Logger
}

// NewSession creates a session reading commands from in and writing tables to out
func NewSession(client books.Client, in io.Reader, out io.Writer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		client: client,
		in:     in,
		out:    out,
		prompt: DefaultPrompt,
		logger: logger,
	}
}

// WithPrompt replaces the prompt text
func (s *Session) WithPrompt(prompt string) *Session {
	if prompt != "" {
		s.prompt = prompt
	}
	return s
}

// WithRecorder records every dispatched command
func (s *Session) WithRecorder(r Recorder) *Session {
	s.recorder = r
	return s
}

// WithProgress shows progress while requests are in flight
func (s *Session) WithProgress(p ProgressFunc) *Session {
	s.progress = p
	return s
}

// Run loops until "exit", end of input, or ctx is cancelled. Fetch failures
// are reported and the loop continues.
func (s *Session) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(s.in, done)

	for {
		fmt.Fprint(s.out, s.prompt)

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(s.out)
			if err := <-readErr; err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			s.printInputError(err)
			continue
		}
		if cmd.Action == ActionExit {
			return nil
		}

		if err := s.Dispatch(ctx, cmd); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.printError(err)
		}
	}
}

// Dispatch runs a single command. Exit is a no-op here; Run handles it.
func (s *Session) Dispatch(ctx context.Context, cmd Command) error {
	s.logger.Debug("dispatching command", zap.Stringer("command", cmd))

	switch cmd.Action {
	case ActionHelp:
		fmt.Fprintln(s.out, helpText)
		return nil

	case ActionListAll:
		var list []books.Book
		err := s.fetch("Fetching books", func() (err error) {
			list, err = s.client.FetchAll(ctx)
			return err
		})
		if err == nil {
			err = tui.RenderBooks(s.out, list)
		}
		s.record(cmd, len(list), err)
		return err

	case ActionShowOne:
		var book books.Book
		err := s.fetch(fmt.Sprintf("Fetching book %d", cmd.ID), func() (err error) {
			book, err = s.client.FetchOne(ctx, cmd.ID)
			return err
		})
		rows := 0
		if err == nil {
			err = tui.RenderBook(s.out, book)
			rows = 1
		}
		s.record(cmd, rows, err)
		return err
	}

	return nil
}

func (s *Session) fetch(label string, fn func() error) error {
	if s.progress != nil {
		stop := s.progress(label)
		defer stop()
	}
	return fn()
}

func (s *Session) record(cmd Command, rows int, err error) {
	if s.recorder == nil {
		return
	}
	if recErr := s.recorder.Record(cmd.String(), rows, err); recErr != nil {
		s.logger.Warn("failed to record command", zap.Stringer("command", cmd), zap.Error(recErr))
	}
}

func (s *Session) printInputError(err error) {
	if errors.Is(err, ErrInvalidID) {
		fmt.Fprintln(s.out, tui.WarningStyle.Render(fmt.Sprintf("%v. Please try again.", err)))
		return
	}
	fmt.Fprintln(s.out, tui.WarningStyle.Render("Invalid choice. Please try again."))
}

func (s *Session) printError(err error) {
	fmt.Fprintln(s.out, tui.ErrorStyle.Render("Error: "+err.Error()))
}

// readLines feeds lines from r into the returned channel until EOF or until
// done is closed. Lines have no length limit. The error channel receives the
// read error after EOF, nil for a clean end of input.
func readLines(r io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		reader := bufio.NewReader(r)
		for {
			line, err := reader.ReadString('\n')
			if line != "" {
				select {
				case lines <- strings.TrimRight(line, "\r\n"):
				case <-done:
					return
				}
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					err = nil
				}
				errc <- err
				return
			}
		}
	}()

	return lines, errc
}
