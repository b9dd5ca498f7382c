package cmd

import (
	"net"
	"sync/atomic"

	"emberdb/internal/config"
	"emberdb/internal/repl"
	"emberdb/internal/resp"
	"emberdb/internal/store"
)

// App is the shared, process-wide application handle every Session
// holds a reference to: the keyspace, immutable settings, the
// replication manager, the command registry, and the monotonic
// client-id counter. Nothing here is mutated per-connection.
type App struct {
	KS       *store.Keyspace
	Settings *config.Settings
	Repl     *repl.Manager
	Registry *Registry

	// RequirePass gates AUTH when non-empty; off by default, a
	// supplementary feature never required by the core command set
	// (MULTI/EXEC are never conditioned on it).
	RequirePass string

	nextClientID atomic.Int64
}

// NewApp wires the shared handle together.
func NewApp(ks *store.Keyspace, settings *config.Settings, replManager *repl.Manager) *App {
	a := &App{KS: ks, Settings: settings, Repl: replManager}
	a.Registry = NewRegistry()
	RegisterAll(a.Registry)
	return a
}

// NextClientID hands out a fresh, monotonically increasing id (I's
// ClientId entity). Ids start at 1.
func (a *App) NextClientID() int64 {
	return a.nextClientID.Add(1)
}

// QueuedCommand is one FIFO entry in a client's Transaction: the
// original decoded command name and arguments, captured verbatim so
// EXEC can replay them through the same dispatch path.
type QueuedCommand struct {
	Name string
	Args []resp.Value
}

// Transaction is the per-client FIFO described by spec I4/I5: it
// exists between MULTI and the matching EXEC/DISCARD.
type Transaction struct {
	Commands []QueuedCommand
}

// DeferredAction produces extra bytes to write after a handler's
// primary reply has already been flushed — used by PSYNC to emit the
// snapshot blob in a second write, per the connection actor's drain
// step (C8).
type DeferredAction func() []byte

// Session is per-connection state: everything the dispatcher needs
// that must NOT be shared across clients. Unlike the teacher's
// hardcoded "default" transaction key, a Transaction here is a field
// on the Session itself, so two clients never see each other's queued
// commands.
type Session struct {
	App        *App
	ClientID   int64
	RemoteAddr string
	Conn       net.Conn

	txn      *Transaction
	Deferred []DeferredAction
}

// NewSession builds a fresh per-connection session.
func NewSession(app *App, clientID int64, remoteAddr string, conn net.Conn) *Session {
	return &Session{App: app, ClientID: clientID, RemoteAddr: remoteAddr, Conn: conn}
}

// InTransaction reports whether a Transaction currently exists for
// this client (I4).
func (s *Session) InTransaction() bool {
	return s.txn != nil
}

// BeginTransaction creates an empty Transaction if one does not
// already exist; MULTI is idempotent per spec §4.6.
func (s *Session) BeginTransaction() {
	if s.txn == nil {
		s.txn = &Transaction{}
	}
}

// QueueCommand appends name/args to the current Transaction. Callers
// must check InTransaction first.
func (s *Session) QueueCommand(name string, args []resp.Value) {
	s.txn.Commands = append(s.txn.Commands, QueuedCommand{Name: name, Args: args})
}

// TakeTransaction removes and returns the current Transaction, or nil
// if none exists (used by both EXEC and DISCARD).
func (s *Session) TakeTransaction() *Transaction {
	t := s.txn
	s.txn = nil
	return t
}

// Defer appends an action to be run after the in-flight reply is
// written; the connection actor drains these in order.
func (s *Session) Defer(action DeferredAction) {
	s.Deferred = append(s.Deferred, action)
}

// DrainDeferred returns and clears the pending deferred actions.
func (s *Session) DrainDeferred() []DeferredAction {
	d := s.Deferred
	s.Deferred = nil
	return d
}
