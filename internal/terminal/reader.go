package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ErrInterrupted is returned when the user aborts input with Ctrl-C.
var ErrInterrupted = errors.New("input interrupted")

// Reader yields one trimmed line of user input per call.
type Reader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// New returns an interactive prompt when in is a terminal and a plain
// line scanner otherwise (pipes, redirected files).
func New(in *os.File, out io.Writer) Reader {
	if term.IsTerminal(int(in.Fd())) {
		return NewPrompt(in, out)
	}
	return NewScanner(in, out)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Scanner reads lines from a non-interactive stream. Reads run on a
// background goroutine so a cancelled context unblocks ReadLine even while
// the stream is idle.
type Scanner struct {
	in    io.Reader
	out   io.Writer
	once  sync.Once
	lines chan scanResult
}

type scanResult struct {
	text string
	err  error
}

// NewScanner creates a Scanner that echoes prompts to out.
func NewScanner(in io.Reader, out io.Writer) *Scanner {
	return &Scanner{in: in, out: out, lines: make(chan scanResult)}
}

func (s *Scanner) scan() {
	defer close(s.lines)
	sc := bufio.NewScanner(s.in)
	for sc.Scan() {
		s.lines <- scanResult{text: sc.Text()}
	}
	if err := sc.Err(); err != nil {
		s.lines <- scanResult{err: fmt.Errorf("read line: %w", err)}
	}
}

// ReadLine writes prompt and returns the next trimmed line. It returns
// io.EOF once the input is exhausted and ctx.Err() when ctx is cancelled
// before a line arrives.
func (s *Scanner) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.once.Do(func() { go s.scan() })

	fmt.Fprint(s.out, prompt)
	select {
	case <-ctx.Done():
		fmt.Fprintln(s.out)
		return "", ctx.Err()
	case r, ok := <-s.lines:
		if !ok {
			fmt.Fprintln(s.out)
			return "", io.EOF
		}
		if r.err != nil {
			fmt.Fprintln(s.out)
			return "", r.err
		}
		return strings.TrimSpace(r.text), nil
	}
}
