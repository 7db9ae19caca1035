// Package tui presents the assistant on a terminal: a plain line-oriented
// shell for pipes and scripts, and a Bubble Tea program for interactive use.
package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/assistant/internal/assistant"
	"github.com/smileynet/assistant/internal/config"
)

// ErrInputClosed indicates input ended before an exit command.
var ErrInputClosed = errors.New("tui: input closed before exit command")

// Dispatcher runs command lines. Implemented by *assistant.Dispatcher.
type Dispatcher interface {
	Dispatch(line string) (assistant.Reply, error)
	Terminated() bool
}

// Shell drives a read-dispatch-print loop until the dispatcher terminates.
// Run returns nil after an exit command and ErrInputClosed if input runs out
// first.
type Shell interface {
	Run(ctx context.Context) error
}

// Options configures shell creation.
type Options struct {
	In       io.Reader // Input source (default: os.Stdin).
	Out      io.Writer // Output destination (default: os.Stdout).
	Mode     string    // config.ModeAuto, ModePlain or ModeTUI.
	Prompt   string
	Greeting string
	Color    config.Color
}

// NewShell returns a TUI shell when mode asks for one, or when mode is auto
// and both ends are terminals. Otherwise it returns a plain shell.
func NewShell(d Dispatcher, opts Options) Shell {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	plain := &PlainShell{
		d:        d,
		in:       opts.In,
		out:      opts.Out,
		prompt:   opts.Prompt,
		greeting: opts.Greeting,
		styles:   NewStyles(opts.Out, opts.Color),
	}

	switch opts.Mode {
	case config.ModePlain:
		return plain
	case config.ModeTUI:
	default:
		if !isTTY(opts.In) || !isTTY(opts.Out) {
			return plain
		}
	}
	return &TUIShell{plain: plain}
}

// isTTY reports whether v is a file connected to a terminal.
func isTTY(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainShell prints a prompt, reads one line, prints the reply.
type PlainShell struct {
	d        Dispatcher
	in       io.Reader
	out      io.Writer
	prompt   string
	greeting string
	styles   Styles
}

// Run loops until an exit command, end of input, or ctx cancellation.
// Cancellation is seen even while a read is blocked.
func (s *PlainShell) Run(ctx context.Context) error {
	if s.greeting != "" {
		_, _ = fmt.Fprintln(s.out, s.styles.Info.Render(s.greeting))
	}
	return s.loop(ctx, newLineReader(s.in))
}

func (s *PlainShell) loop(ctx context.Context, lines *lineReader) error {
	for !s.d.Terminated() {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, _ = fmt.Fprint(s.out, s.styles.Prompt.Render(s.prompt))
		line, err := lines.next(ctx)
		if err != nil {
			_, _ = fmt.Fprintln(s.out)
			return err
		}
		reply, err := s.d.Dispatch(line)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(s.out, s.styles.Reply(reply))
	}
	return nil
}

type readResult struct {
	line string
	err  error
}

// lineReader reads newline-terminated lines of any length. At most one read
// is in flight; a read abandoned on cancellation finishes into a buffered
// channel and is discarded.
type lineReader struct {
	r *bufio.Reader
}

func newLineReader(in io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(in)}
}

// next returns the next line without its terminator. It returns
// ErrInputClosed at end of input and ctx.Err() if ctx is done first.
func (l *lineReader) next(ctx context.Context) (string, error) {
	done := make(chan readResult, 1)
	go func() {
		line, err := l.r.ReadString('\n')
		done <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if err := ctx.Err(); err != nil {
			return "", err
		}
		line := strings.TrimSuffix(strings.TrimSuffix(res.line, "\n"), "\r")
		switch {
		case res.err == nil:
			return line, nil
		case errors.Is(res.err, io.EOF) && res.line != "":
			// Final line without a newline; EOF is reported on the next read.
			return line, nil
		case errors.Is(res.err, io.EOF):
			return "", ErrInputClosed
		default:
			return "", fmt.Errorf("tui: reading input: %w", res.err)
		}
	}
}

// TUIShell runs the assistant as a Bubble Tea program.
// Falls back to the plain shell if the program fails to start.
type TUIShell struct {
	plain *PlainShell
}

// Run starts the Bubble Tea program and reports how the session ended.
func (s *TUIShell) Run(ctx context.Context) error {
	p := s.plain
	model := NewModel(p.d,
		WithPrompt(p.prompt),
		WithGreeting(p.greeting),
		WithStyles(p.styles),
	)
	prog := tea.NewProgram(model,
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
		tea.WithContext(ctx),
	)

	final, err := prog.Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// Nothing was dispatched if the program never came up; carry on in
		// plain mode with the same dispatcher.
		if m, ok := final.(Model); !ok || len(m.transcript) == 0 {
			return p.Run(ctx)
		}
		return fmt.Errorf("tui: %w", err)
	}
	return final.(Model).Result()
}
