package cmd

import (
	"strconv"
	"strings"
	"time"

	"emberdb/internal/resp"
	"emberdb/internal/store"
)

// cmdXRead implements XREAD [BLOCK ms] STREAMS key... id... per spec
// §4.7 (C7). The keyspace guard is never held across the blocking
// sleep: each read action below acquires it only for the duration of
// a single Keyspace call.
func cmdXRead(s *Session, args []resp.Value) (resp.Value, error) {
	blockMs, hasBlock, keys, ids, err := parseXReadArgs(args)
	if err != nil {
		return resp.Value{}, err
	}
	// "$" names the tail as of the call, not of each poll: resolve it once
	// so entries added while blocked are strictly greater than it.
	for i, id := range ids {
		if id == "$" {
			if last, ok := s.App.KS.LastStreamKey(keys[i]); ok {
				ids[i] = last.String()
			} else {
				ids[i] = "0-0"
			}
		}
	}

	if !hasBlock {
		return xreadOnce(s, keys, ids), nil
	}
	if blockMs > 0 {
		time.Sleep(time.Duration(blockMs) * time.Millisecond)
		return xreadOnce(s, keys, ids), nil
	}
	for {
		time.Sleep(1000 * time.Millisecond)
		v := xreadOnce(s, keys, ids)
		if v.Type != resp.BulkString || !v.IsNull {
			return v, nil
		}
	}
}

func parseXReadArgs(args []resp.Value) (blockMs int64, hasBlock bool, keys []string, ids []string, err error) {
	i := 0
	for i < len(args) {
		opt := strings.ToUpper(args[i].Str)
		switch opt {
		case "BLOCK":
			if i+1 >= len(args) {
				return 0, false, nil, nil, &CommandError{"ERR syntax error"}
			}
			n, perr := strconv.ParseInt(args[i+1].Str, 10, 64)
			if perr != nil {
				return 0, false, nil, nil, &CommandError{"ERR timeout is not an integer or out of range"}
			}
			blockMs = n
			hasBlock = true
			i += 2
		case "STREAMS":
			i++
			rest := args[i:]
			if len(rest) == 0 || len(rest)%2 != 0 {
				return 0, false, nil, nil, &CommandError{"ERR Unbalanced XREAD list of streams: for each stream key an ID or '$' must be specified."}
			}
			half := len(rest) / 2
			keys = make([]string, half)
			ids = make([]string, half)
			for j := 0; j < half; j++ {
				keys[j] = rest[j].Str
				ids[j] = rest[half+j].Str
			}
			return blockMs, hasBlock, keys, ids, nil
		default:
			return 0, false, nil, nil, &CommandError{"ERR syntax error"}
		}
	}
	return 0, false, nil, nil, &CommandError{"ERR syntax error"}
}

// xreadOnce runs the single read action spec §4.7 describes: for each
// stream, the first entry strictly greater than its resolved starting
// id. A stream contributing nothing is omitted from the reply; if no
// stream contributed anything the reply is null-bulk.
func xreadOnce(s *Session, keys, ids []string) resp.Value {
	var streams []resp.Value
	for i, key := range keys {
		last, hasLast := s.App.KS.LastStreamKey(key)
		startID, err := store.ParseStreamID(ids[i], last, hasLast, 0, true)
		if err != nil {
			continue
		}
		entries := s.App.KS.StreamSnapshot(key)
		var matched []resp.Value
		for _, e := range entries {
			if store.CompareStreamID(e.ID, startID) > 0 {
				matched = append(matched, encodeStreamEntry(e))
			}
		}
		if len(matched) == 0 {
			continue
		}
		streams = append(streams, resp.Arr(resp.Str3(key), resp.Arr(matched...)))
	}
	if len(streams) == 0 {
		return resp.NullBulk()
	}
	return resp.Arr(streams...)
}
