package cmd

import "emberdb/internal/resp"

// cmdAuth implements a minimal requirepass gate, grounded on the
// teacher's AuthHandler: when no password is configured any AUTH
// succeeds, otherwise the single argument must match exactly. It is
// deliberately not enforced anywhere else in the dispatcher, so the
// core command set (including MULTI/EXEC) behaves exactly as spec
// §4.6 describes regardless of whether AUTH is in use.
func cmdAuth(s *Session, args []resp.Value) (resp.Value, error) {
	if s.App.RequirePass == "" {
		return resp.Simple("OK"), nil
	}
	if len(args) != 1 {
		return resp.Value{}, &CommandError{"ERR wrong number of arguments for 'auth' command"}
	}
	if args[0].Str != s.App.RequirePass {
		return resp.Value{}, &CommandError{"ERR invalid password"}
	}
	return resp.Simple("OK"), nil
}
