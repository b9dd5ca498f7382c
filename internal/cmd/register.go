package cmd

// RegisterAll wires every command this datastore implements into r.
// Arity uses -1 for variable-argument commands.
func RegisterAll(r *Registry) {
	r.Register(&Command{Name: "PING", Arity: -1, Handler: cmdPing})
	r.Register(&Command{Name: "ECHO", Arity: 1, Handler: cmdEcho})
	r.Register(&Command{Name: "SET", Arity: -1, Handler: cmdSet})
	r.Register(&Command{Name: "GET", Arity: 1, Handler: cmdGet})
	r.Register(&Command{Name: "DEL", Arity: -1, Handler: cmdDel})
	r.Register(&Command{Name: "EXISTS", Arity: -1, Handler: cmdExists})
	r.Register(&Command{Name: "EXPIRE", Arity: 2, Handler: cmdExpire})
	r.Register(&Command{Name: "PEXPIRE", Arity: 2, Handler: cmdPExpire})
	r.Register(&Command{Name: "TTL", Arity: 1, Handler: cmdTTL})
	r.Register(&Command{Name: "PTTL", Arity: 1, Handler: cmdPTTL})
	r.Register(&Command{Name: "KEYS", Arity: -1, Handler: cmdKeys})
	r.Register(&Command{Name: "TYPE", Arity: 1, Handler: cmdType})
	r.Register(&Command{Name: "DBSIZE", Arity: 0, Handler: cmdDBSize})
	r.Register(&Command{Name: "FLUSHALL", Arity: -1, Handler: cmdFlush})
	r.Register(&Command{Name: "FLUSHDB", Arity: -1, Handler: cmdFlush})
	r.Register(&Command{Name: "INCR", Arity: 1, Handler: cmdIncr})

	r.Register(&Command{Name: "CONFIG", Arity: -1, Handler: cmdConfig})
	r.Register(&Command{Name: "INFO", Arity: -1, Handler: cmdInfo})

	r.Register(&Command{Name: "XADD", Arity: -1, Handler: cmdXAdd})
	r.Register(&Command{Name: "XLEN", Arity: 1, Handler: cmdXLen})
	r.Register(&Command{Name: "XRANGE", Arity: 3, Handler: cmdXRange})
	r.Register(&Command{Name: "XREAD", Arity: -1, Handler: cmdXRead})

	r.Register(&Command{Name: "MULTI", Arity: 0, Handler: cmdMulti})
	r.Register(&Command{Name: "EXEC", Arity: 0, Handler: cmdExec})
	r.Register(&Command{Name: "DISCARD", Arity: 0, Handler: cmdDiscard})

	r.Register(&Command{Name: "REPLCONF", Arity: -1, Handler: cmdReplConf})
	r.Register(&Command{Name: "PSYNC", Arity: 2, Handler: cmdPSync})

	r.Register(&Command{Name: "AUTH", Arity: -1, Handler: cmdAuth})
}
