package assistant

import (
	"sort"

	"github.com/samber/lo"
)

// Command describes one keyword of the command protocol.
type Command struct {
	Name     string
	Aliases  []string
	Usage    string // e.g. "add [name] [phone]"; shown when Call.Require fails.
	Terminal bool   // Dispatching it ends the session.
	Run      Handler
}

// Registry maps command keywords, aliases included, to commands.
// It is not safe for concurrent use; registration should happen at startup.
type Registry struct {
	commands map[string]*Command
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// Register adds c under its name and every alias. Keywords already taken are
// overwritten. The handler is wrapped with the user-error guard.
// Panics if the name is empty or the handler is nil (programmer error).
func (r *Registry) Register(c Command) {
	if c.Name == "" {
		panic("assistant: Register called with empty name")
	}
	if c.Run == nil {
		panic("assistant: Register called with nil handler")
	}
	c.Run = guard(c.Run)
	for _, kw := range append([]string{c.Name}, c.Aliases...) {
		r.commands[kw] = &c
	}
}

// Lookup returns the command registered under keyword.
func (r *Registry) Lookup(keyword string) (*Command, error) {
	c, ok := r.commands[keyword]
	if !ok {
		return nil, &UnknownCommandError{Name: keyword}
	}
	return c, nil
}

// Keywords returns every registered keyword in sorted order.
func (r *Registry) Keywords() []string {
	kws := lo.Keys(r.commands)
	sort.Strings(kws)
	return kws
}
