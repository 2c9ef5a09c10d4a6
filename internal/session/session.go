package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spins/internal/catalog"
	"github.com/desertthunder/spins/internal/models"
	"github.com/desertthunder/spins/internal/shared"
	"github.com/desertthunder/spins/internal/ui"
)

// DefaultPrompt is shown before each read outside of test mode.
const DefaultPrompt = "> "

// State is the lifecycle of a [Session].
type State int

const (
	Running State = iota
	Terminated
)

// Session reads commands, applies them to a catalog, and reports back through its [Output].
type Session struct {
	catalog models.Catalog
	input   *bufio.Reader
	console io.Writer
	out     *Output
	prompt  string
	logger  *log.Logger
	state   State
}

// Options configures a Session. Zero values fall back to a fresh in-memory catalog, stdin, stdout, and the default prompt.
//
// Setting Capture enables test mode: every message is also written to Capture and the prompt is empty.
type Options struct {
	Catalog models.Catalog
	Input   io.Reader
	Console io.Writer
	Capture io.Writer
	Prompt  string
	Logger  *log.Logger
}

// New creates a Session in the [Running] state.
func New(opts Options) *Session {
	if opts.Catalog == nil {
		opts.Catalog = catalog.New()
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Console == nil {
		opts.Console = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	if opts.Capture != nil {
		opts.Prompt = ""
	}

	return &Session{
		catalog: opts.Catalog,
		input:   bufio.NewReader(opts.Input),
		console: opts.Console,
		out:     NewOutput(opts.Console, opts.Capture),
		prompt:  opts.Prompt,
		logger:  shared.WithLogger(opts.Logger, "component", "session"),
		state:   Running,
	}
}

// State reports whether the session is still accepting commands.
func (s *Session) State() State { return s.state }

// Run processes commands until quit, end of input, or ctx is done.
//
// End of input is a normal exit. Errors are returned only when output cannot be written, input fails
// for a reason other than EOF, or the catalog backend itself fails.
func (s *Session) Run(ctx context.Context) error {
	for s.state == Running {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(); err != nil {
			return err
		}
	}

	if n, err := s.catalog.Count(); err == nil {
		s.logger.Debug("session terminated", "albums", n)
	}
	return nil
}

// Step prompts, reads one line, and executes it.
func (s *Session) Step() error {
	line, err := s.readLine()
	if errors.Is(err, shared.ErrEndOfInput) {
		s.logger.Debug("input closed, terminating")
		s.state = Terminated
		return nil
	}
	if err != nil {
		return err
	}

	return s.Execute(line)
}

// Execute tokenizes and dispatches a single command line.
//
// Catalog and input errors from the handler are reported as messages; anything else is returned.
func (s *Session) Execute(line string) error {
	name, args := Tokenize(line)

	var err error
	if h, ok := handlers[Command(name)]; ok {
		s.logger.Debug("dispatch", "command", name, "args", len(args))
		err = h(s, args)
	} else {
		err = fmt.Errorf("%w: %q", shared.ErrUnrecognizedCommand, name)
	}

	if err == nil {
		return nil
	}

	msg, ok := userMessage(err)
	if !ok {
		return err
	}

	s.logger.Debug("command rejected", "command", name, "error", err)
	return s.out.Emit(msg)
}

// readLine writes the prompt and returns the next line without its terminator.
func (s *Session) readLine() (string, error) {
	if s.prompt != "" {
		if _, err := io.WriteString(s.console, ui.Prompt(s.prompt)); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}
	}

	line, err := s.input.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if err != nil && line == "" {
		return "", shared.ErrEndOfInput
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}
