package cmd

import (
	"strings"

	"emberdb/internal/resp"
)

// CommandError is a command-level failure, written back to the wire
// as a simple error (`-<Message>\r\n`). Matches the teacher's
// CommandError shape.
type CommandError struct {
	Message string
}

func (e *CommandError) Error() string { return e.Message }

// Handler is a registered command's implementation. It receives the
// per-connection Session (so it can read/mutate transaction state,
// queue deferred actions, or reach the shared App) plus the command's
// arguments (the command name itself is not included).
type Handler func(s *Session, args []resp.Value) (resp.Value, error)

// Command is one entry in the Registry: a name, its handler, and an
// arity check (-1 means variable).
type Command struct {
	Name    string
	Arity   int
	Handler Handler
}

// Registry is the name -> Command lookup table the dispatcher
// consults for every decoded command token.
type Registry struct {
	commands map[string]*Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command, 32)}
}

// Register adds cmd under its upper-cased name.
func (r *Registry) Register(c *Command) {
	r.commands[strings.ToUpper(c.Name)] = c
}

// Get looks up a command by name, case-insensitively.
func (r *Registry) Get(name string) (*Command, bool) {
	c, ok := r.commands[strings.ToUpper(name)]
	return c, ok
}

// List returns every registered command name.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	return names
}

// Execute looks up name and runs its handler against args, converting
// both an unknown command and an arity mismatch into the same
// CommandError shape a handler would return itself.
func (r *Registry) Execute(s *Session, name string, args []resp.Value) resp.Value {
	c, ok := r.Get(name)
	if !ok {
		return resp.Err("ERR unknown command '" + name + "'")
	}
	if c.Arity >= 0 && len(args) != c.Arity {
		return resp.Err("ERR wrong number of arguments for '" + strings.ToLower(name) + "' command")
	}
	v, err := c.Handler(s, args)
	if err != nil {
		return resp.Err(err.Error())
	}
	return v
}

// isTransactionControl reports whether name is one of the three
// commands that always run immediately regardless of an open
// Transaction (spec §4.6, I5).
func isTransactionControl(name string) bool {
	switch strings.ToUpper(name) {
	case "MULTI", "EXEC", "DISCARD":
		return true
	}
	return false
}

// Dispatch is the C6 entry point: it applies the queue-or-execute
// decision from spec §4.6 before handing off to Execute.
func (r *Registry) Dispatch(s *Session, name string, args []resp.Value) resp.Value {
	upper := strings.ToUpper(name)
	if s.InTransaction() && !isTransactionControl(upper) {
		s.QueueCommand(upper, args)
		return resp.Simple("QUEUED")
	}
	return r.Execute(s, upper, args)
}
