package cmd

import "emberdb/internal/resp"

// cmdMulti creates an empty Transaction for this client if one does
// not already exist; a second MULTI is idempotent (spec §4.6).
func cmdMulti(s *Session, args []resp.Value) (resp.Value, error) {
	s.BeginTransaction()
	return resp.Simple("OK"), nil
}

// cmdExec runs every queued command in FIFO order against this same
// Session, collecting their replies into one array reply, then
// discards the Transaction. Because the Transaction lives on the
// Session rather than under a shared "default" key, one client's
// queued writes are never visible to another client's EXEC.
func cmdExec(s *Session, args []resp.Value) (resp.Value, error) {
	txn := s.TakeTransaction()
	if txn == nil {
		return resp.Value{}, &CommandError{"ERR EXEC without MULTI"}
	}
	replies := make([]resp.Value, len(txn.Commands))
	for i, c := range txn.Commands {
		replies[i] = s.App.Registry.Execute(s, c.Name, c.Args)
	}
	return resp.Arr(replies...), nil
}

// cmdDiscard drops the pending Transaction without executing it.
func cmdDiscard(s *Session, args []resp.Value) (resp.Value, error) {
	if s.TakeTransaction() == nil {
		return resp.Value{}, &CommandError{"ERR DISCARD without MULTI"}
	}
	return resp.Simple("OK"), nil
}
