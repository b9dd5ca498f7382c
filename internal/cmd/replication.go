package cmd

import (
	"strconv"

	"emberdb/internal/resp"
)

// syntheticSnapshot is the fixed byte sequence emitted after
// FULLRESYNC (spec §6 / §9): a minimal, valid, empty snapshot in this
// datastore's own §4.4 format — the "REDIS0011" header followed by a
// database index of zero and immediate EOF. Its exact content is
// explicitly left to the implementation by spec §9's open question;
// this is the smallest sequence the loader in internal/rdbfile itself
// accepts.
var syntheticSnapshot = []byte{
	'R', 'E', 'D', 'I', 'S', '0', '0', '1', '1',
	0x00, // database index, size-encoded zero
	0xFF, // EOF
}

// cmdReplConf implements REPLCONF name value (spec §4.6), delegating
// to the replication manager.
func cmdReplConf(s *Session, args []resp.Value) (resp.Value, error) {
	argStrings := make([]string, len(args))
	for i, a := range args {
		argStrings[i] = a.Str
	}
	remote := ""
	if s.Conn != nil {
		remote = s.Conn.RemoteAddr().String()
	}
	result, err := s.App.Repl.HandleReplConf(remote, argStrings)
	if err != nil {
		return resp.Value{}, &CommandError{err.Error()}
	}
	return resp.Simple(result), nil
}

// cmdPSync implements PSYNC replid offset (spec §4.6/§4.9): it replies
// FULLRESYNC immediately, then defers the raw snapshot write (no
// trailing CRLF) and the replica's registration for ongoing write
// propagation to the connection actor's post-reply drain step, since
// both must happen only after the FULLRESYNC line has actually been
// flushed to the wire.
func cmdPSync(s *Session, args []resp.Value) (resp.Value, error) {
	reply := resp.Simple(s.App.Repl.FullResyncReply())
	s.Defer(func() []byte {
		if s.Conn != nil {
			s.App.Repl.RegisterReplica(s.Conn)
		}
		header := "$" + strconv.Itoa(len(syntheticSnapshot)) + "\r\n"
		return append([]byte(header), syntheticSnapshot...)
	})
	return reply, nil
}
