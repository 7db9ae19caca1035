package assistant

import (
	"errors"
	"fmt"

	"github.com/smileynet/assistant/internal/contact"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrMalformedCommand = errors.New("assistant: malformed command")
	ErrTerminated       = errors.New("assistant: dispatcher terminated")
)

// UnknownCommandError indicates a command keyword that is not registered.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("assistant: unknown command %q", e.Name)
}

func (e *UnknownCommandError) Unwrap() error {
	return ErrMalformedCommand
}

// MissingArgumentError indicates a command received fewer positional
// arguments than it reads.
type MissingArgumentError struct {
	Command string
	Usage   string
	Want    int
	Got     int
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("assistant: %s: want %d arguments, got %d", e.Command, e.Want, e.Got)
}

// Hint returns the usage line shown to the user.
func (e *MissingArgumentError) Hint() string {
	if e.Usage == "" {
		return msgInvalidCommand
	}
	return msgInvalidCommand + " Usage: " + e.Usage
}

// guard wraps a handler so the failures a user can cause come back as error
// replies. Anything else is returned unchanged.
func guard(h Handler) Handler {
	return func(call *Call) (Reply, error) {
		reply, err := h(call)
		if err == nil {
			return reply, nil
		}
		if text, ok := userMessage(err); ok {
			return failure(text), nil
		}
		return Reply{}, err
	}
}

// userMessage maps the user-facing error kinds to their reply text.
func userMessage(err error) (string, bool) {
	var (
		ve *contact.ValidationError
		nf *contact.NotFoundError
		ma *MissingArgumentError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Message, true
	case errors.As(err, &nf) && nf.Name != "":
		return fmt.Sprintf("Contact %s not found.", nf.Name), true
	case errors.Is(err, contact.ErrNotFound):
		return "Contact not found.", true
	case errors.As(err, &ma):
		return ma.Hint(), true
	case errors.Is(err, ErrMalformedCommand):
		return msgInvalidCommand, true
	}
	return "", false
}
