package cmd

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"emberdb/internal/config"
	"emberdb/internal/resp"
	"emberdb/internal/store"
)

func cmdPing(s *Session, args []resp.Value) (resp.Value, error) {
	if len(args) == 1 {
		return resp.Str3(args[0].Str), nil
	}
	return resp.Simple("PONG"), nil
}

func cmdEcho(s *Session, args []resp.Value) (resp.Value, error) {
	return resp.Str3(args[0].Str), nil
}

// cmdSet implements SET key value [PX ms | EX s], case-insensitive
// options, per spec §4.6. Writes propagate to registered replicas.
func cmdSet(s *Session, args []resp.Value) (resp.Value, error) {
	if len(args) < 2 {
		return resp.Value{}, &CommandError{"ERR wrong number of arguments for 'set' command"}
	}
	key := args[0].Str
	value := args[1].Str

	hasTTL := false
	var ttl time.Duration
	for i := 2; i+1 < len(args); i += 2 {
		opt := strings.ToUpper(args[i].Str)
		n, err := strconv.ParseInt(args[i+1].Str, 10, 64)
		if err != nil {
			return resp.Value{}, &CommandError{"ERR value is not an integer or out of range"}
		}
		switch opt {
		case "PX":
			hasTTL = true
			ttl = time.Duration(n) * time.Millisecond
		case "EX":
			hasTTL = true
			ttl = time.Duration(n) * time.Second
		default:
			return resp.Value{}, &CommandError{"ERR syntax error"}
		}
	}

	s.App.KS.Put(key, store.NewStringValue(value), hasTTL, ttl)
	propagate(s, "SET", args)
	return resp.Simple("OK"), nil
}

func cmdGet(s *Session, args []resp.Value) (resp.Value, error) {
	v, ok := s.App.KS.Get(args[0].Str)
	if !ok {
		return resp.NullBulk(), nil
	}
	return resp.Str3(v.Text()), nil
}

func cmdDel(s *Session, args []resp.Value) (resp.Value, error) {
	if len(args) < 1 {
		return resp.Value{}, &CommandError{"ERR wrong number of arguments for 'del' command"}
	}
	var n int64
	for _, a := range args {
		if s.App.KS.Del(a.Str) {
			n++
		}
	}
	return resp.Int3(n), nil
}

func cmdExists(s *Session, args []resp.Value) (resp.Value, error) {
	if len(args) < 1 {
		return resp.Value{}, &CommandError{"ERR wrong number of arguments for 'exists' command"}
	}
	var n int64
	for _, a := range args {
		if s.App.KS.Exists(a.Str) {
			n++
		}
	}
	return resp.Int3(n), nil
}

func cmdExpire(s *Session, args []resp.Value) (resp.Value, error) {
	n, err := strconv.ParseInt(args[1].Str, 10, 64)
	if err != nil {
		return resp.Value{}, &CommandError{"ERR value is not an integer or out of range"}
	}
	if s.App.KS.Expire(args[0].Str, time.Duration(n)*time.Second) {
		return resp.Int3(1), nil
	}
	return resp.Int3(0), nil
}

func cmdPExpire(s *Session, args []resp.Value) (resp.Value, error) {
	n, err := strconv.ParseInt(args[1].Str, 10, 64)
	if err != nil {
		return resp.Value{}, &CommandError{"ERR value is not an integer or out of range"}
	}
	if s.App.KS.Expire(args[0].Str, time.Duration(n)*time.Millisecond) {
		return resp.Int3(1), nil
	}
	return resp.Int3(0), nil
}

func cmdTTL(s *Session, args []resp.Value) (resp.Value, error) {
	ms := s.App.KS.TTLMillis(args[0].Str)
	if ms < 0 {
		return resp.Int3(ms), nil
	}
	return resp.Int3(ms / 1000), nil
}

func cmdPTTL(s *Session, args []resp.Value) (resp.Value, error) {
	return resp.Int3(s.App.KS.TTLMillis(args[0].Str)), nil
}

// cmdKeys returns every live key; the pattern argument is accepted
// but globbing is explicitly a non-goal (spec §4.6).
func cmdKeys(s *Session, args []resp.Value) (resp.Value, error) {
	keys := s.App.KS.Keys()
	out := make([]resp.Value, len(keys))
	for i, k := range keys {
		out[i] = resp.Str3(k)
	}
	return resp.Arr(out...), nil
}

func cmdType(s *Session, args []resp.Value) (resp.Value, error) {
	return resp.Simple(s.App.KS.TypeOf(args[0].Str)), nil
}

func cmdDBSize(s *Session, args []resp.Value) (resp.Value, error) {
	return resp.Int3(int64(s.App.KS.Size())), nil
}

func cmdFlush(s *Session, args []resp.Value) (resp.Value, error) {
	s.App.KS.Flush()
	return resp.Simple("OK"), nil
}

// cmdIncr implements INCR per spec §4.6: missing key becomes
// Integer(1); an existing String that parses as a signed 64-bit value
// or an existing Integer is incremented; anything else is a type
// error. The open question in spec §9 (Integer vs String storage
// representation after increment) is resolved here by always storing
// the result as Integer, so TYPE and subsequent INCR/GET stay
// internally consistent.
func cmdIncr(s *Session, args []resp.Value) (resp.Value, error) {
	key := args[0].Str
	v, ok := s.App.KS.Get(key)
	var n int64
	if ok {
		switch v.Kind {
		case store.KindInteger:
			n = v.Int
		case store.KindString:
			parsed, err := strconv.ParseInt(v.Str, 10, 64)
			if err != nil {
				return resp.Value{}, &CommandError{"ERR value is not an integer or out of range"}
			}
			n = parsed
		default:
			return resp.Value{}, &CommandError{"ERR value is not an integer or out of range"}
		}
	}
	n++
	s.App.KS.Put(key, store.NewIntegerValue(n), false, 0)
	propagate(s, "INCR", args)
	return resp.Int3(n), nil
}

// propagate forwards a write command to registered replicas in its
// originally decoded wire form (spec §4.9 C9). It is a no-op on a
// slave instance (I7: propagation is one-way master -> replica).
func propagate(s *Session, name string, args []resp.Value) {
	if s.App.Settings.InstanceType != config.Master || s.App.Repl == nil {
		return
	}
	full := make([]resp.Value, 0, len(args)+1)
	full = append(full, resp.Str3(name))
	full = append(full, args...)
	var buf bytes.Buffer
	_ = resp.Encode(&buf, resp.Arr(full...))
	s.App.Repl.Broadcast(buf.Bytes())
}
