package assistant

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/smileynet/assistant/internal/contact"
)

// Reply texts shared across handlers.
const (
	msgInvalidCommand = "Invalid command."
	msgGreeting       = "How can I help you?"
	msgFarewell       = "Good bye!"
	msgAdded          = "Contact added."
	msgUpdated        = "Contact updated."
	msgNoContacts     = "No contacts found."
)

// Builtins returns a Registry with the standard command set.
func Builtins() *Registry {
	r := NewRegistry()
	r.Register(Command{Name: "hello", Aliases: []string{"hi"}, Run: greet})
	r.Register(Command{Name: "add", Usage: "add [name] [phone]", Run: addContact})
	r.Register(Command{Name: "change", Usage: "change [name] [old_phone] [new_phone]", Run: changeContact})
	r.Register(Command{Name: "phone", Usage: "phone [name]", Run: showPhone})
	r.Register(Command{Name: "all", Run: showAll})
	r.Register(Command{Name: "close", Aliases: []string{"exit", "bye"}, Terminal: true, Run: farewell})
	return r
}

func greet(*Call) (Reply, error) {
	return info(msgGreeting), nil
}

func farewell(*Call) (Reply, error) {
	return info(msgFarewell), nil
}

// addContact creates a record only once its first phone has validated, so a
// rejected phone never leaves a partial contact behind.
func addContact(call *Call) (Reply, error) {
	args, err := call.Require(2)
	if err != nil {
		return Reply{}, err
	}
	name, phone := args[0], args[1]

	if _, ok := call.Book.Find(name); ok {
		return failure(fmt.Sprintf("Contact %s already exists.", name)), nil
	}

	rec, err := contact.NewRecord(name)
	if err != nil {
		return Reply{}, err
	}
	if err := rec.AddPhone(phone); err != nil {
		return Reply{}, err
	}
	call.Book.AddRecord(rec)
	return success(msgAdded), nil
}

// changeContact reports success even when the old phone is not on the
// record; Record.EditPhone treats that case as a no-op.
func changeContact(call *Call) (Reply, error) {
	args, err := call.Require(3)
	if err != nil {
		return Reply{}, err
	}
	name, oldPhone, newPhone := args[0], args[1], args[2]

	rec, err := call.Book.Get(name)
	if err != nil {
		return Reply{}, err
	}
	if err := rec.EditPhone(oldPhone, newPhone); err != nil {
		return Reply{}, err
	}
	return success(msgUpdated), nil
}

func showPhone(call *Call) (Reply, error) {
	args, err := call.Require(1)
	if err != nil {
		return Reply{}, err
	}
	rec, err := call.Book.Get(args[0])
	if err != nil {
		return Reply{}, err
	}
	return info(rec.String()), nil
}

func showAll(call *Call) (Reply, error) {
	if call.Book.IsEmpty() {
		return failure(msgNoContacts), nil
	}
	lines := lo.Map(call.Book.Records(), func(r *contact.Record, _ int) string {
		return r.String()
	})
	return info(strings.Join(lines, "\n")), nil
}
