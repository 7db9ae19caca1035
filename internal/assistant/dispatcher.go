// Package assistant parses command lines and routes them to the handlers that
// query and mutate the address book.
package assistant

import (
	"strings"

	"go.uber.org/zap"

	"github.com/smileynet/assistant/internal/contact"
)

// Kind classifies a reply so the shell can present it.
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Reply is the plain-text outcome of one command line.
type Reply struct {
	Text string
	Kind Kind
}

func info(text string) Reply    { return Reply{Text: text, Kind: KindInfo} }
func success(text string) Reply { return Reply{Text: text, Kind: KindSuccess} }
func failure(text string) Reply { return Reply{Text: text, Kind: KindError} }

// State is the dispatcher lifecycle. The only transition is
// StateRunning to StateTerminated.
type State int

const (
	StateRunning State = iota
	StateTerminated
)

func (s State) String() string {
	if s == StateTerminated {
		return "terminated"
	}
	return "running"
}

// Call is a single handler invocation.
type Call struct {
	Book    *contact.AddressBook
	Command *Command
	Args    []string
}

// Require returns the first n arguments, or a *MissingArgumentError when
// fewer were given.
func (c *Call) Require(n int) ([]string, error) {
	if len(c.Args) < n {
		return nil, &MissingArgumentError{
			Command: c.Command.Name,
			Usage:   c.Command.Usage,
			Want:    n,
			Got:     len(c.Args),
		}
	}
	return c.Args[:n], nil
}

// Handler runs one command against the address book.
type Handler func(call *Call) (Reply, error)

// Parse splits line on whitespace. The first field, lowercased, is the
// command; the rest are its arguments. A blank line is malformed.
func Parse(line string) (string, []string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, ErrMalformedCommand
	}
	return strings.ToLower(fields[0]), fields[1:], nil
}

// Dispatcher owns the session state and routes command lines.
type Dispatcher struct {
	book     *contact.AddressBook
	registry *Registry
	log      *zap.Logger
	state    State
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// New creates a running Dispatcher over book with the built-in commands.
func New(book *contact.AddressBook, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		book:     book,
		registry: Builtins(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithRegistry replaces the built-in command set.
func WithRegistry(r *Registry) Option {
	return func(d *Dispatcher) { d.registry = r }
}

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// State returns the current lifecycle state.
func (d *Dispatcher) State() State {
	return d.state
}

// Terminated reports whether an exit command has been dispatched.
func (d *Dispatcher) Terminated() bool {
	return d.state == StateTerminated
}

// Dispatch runs one command line and returns its reply.
// User mistakes (bad phone, unknown contact, missing arguments, unknown
// command) come back as KindError replies with a nil error. A non-nil error
// is either ErrTerminated or a failure no handler anticipated.
func (d *Dispatcher) Dispatch(line string) (Reply, error) {
	if d.state == StateTerminated {
		return Reply{}, ErrTerminated
	}

	name, args, err := Parse(line)
	if err != nil {
		d.log.Debug("malformed command line")
		return reject(err), nil
	}

	cmd, err := d.registry.Lookup(name)
	if err != nil {
		d.log.Debug("unknown command",
			zap.String("command", name),
			zap.Strings("known", d.registry.Keywords()),
		)
		return reject(err), nil
	}

	reply, err := cmd.Run(&Call{Book: d.book, Command: cmd, Args: args})
	if err != nil {
		d.log.Error("command failed", zap.String("command", cmd.Name), zap.Error(err))
		return Reply{}, err
	}
	d.log.Debug("command dispatched",
		zap.String("command", cmd.Name),
		zap.Int("args", len(args)),
		zap.Stringer("kind", reply.Kind),
	)

	if cmd.Terminal {
		d.state = StateTerminated
		d.log.Info("session terminated", zap.Int("contacts", d.book.Len()))
	}
	return reply, nil
}

// reject converts a routing failure into an error reply.
func reject(err error) Reply {
	text, ok := userMessage(err)
	if !ok {
		text = msgInvalidCommand
	}
	return failure(text)
}
