package cmd

import (
	"strconv"
	"strings"

	"emberdb/internal/resp"
)

// cmdConfig implements the GET subcommand of CONFIG, reading a
// projection of the immutable Settings (spec §4.6). SET is accepted
// but a no-op, matching how the teacher treats runtime CONFIG SET for
// settings that are fixed at startup here.
func cmdConfig(s *Session, args []resp.Value) (resp.Value, error) {
	if len(args) < 2 {
		return resp.Value{}, &CommandError{"ERR wrong number of arguments for 'config' command"}
	}
	sub := strings.ToUpper(args[0].Str)
	switch sub {
	case "GET":
		name := strings.ToLower(args[1].Str)
		value, ok := configValue(s, name)
		if !ok {
			return resp.NullBulk(), nil
		}
		return resp.Arr(resp.Str3(name), resp.Str3(value)), nil
	case "SET":
		return resp.Simple("OK"), nil
	default:
		return resp.Value{}, &CommandError{"ERR unknown subcommand or wrong number of arguments for 'config' command"}
	}
}

func configValue(s *Session, name string) (string, bool) {
	settings := s.App.Settings
	switch name {
	case "dir":
		return settings.Dir, true
	case "dbfilename":
		return settings.DBFilename, true
	case "port":
		return strconv.Itoa(settings.Port), true
	case "replicaof":
		return settings.ReplicaOf, true
	default:
		return "", false
	}
}
