package cmd

import (
	"math"

	"emberdb/internal/resp"
	"emberdb/internal/store"
)

// cmdXAdd implements XADD key id field value [field value ...] per
// spec §4.2/§4.6: the id is resolved against the stream's current
// tail, rejected if it is the reserved 0-0 id (I2) or not strictly
// greater than the last entry (I1).
func cmdXAdd(s *Session, args []resp.Value) (resp.Value, error) {
	if len(args) < 4 || (len(args)-2)%2 != 0 {
		return resp.Value{}, &CommandError{"ERR wrong number of arguments for 'xadd' command"}
	}
	key := args[0].Str
	idToken := args[1].Str

	last, hasLast := s.App.KS.LastStreamKey(key)
	id, err := store.ParseStreamID(idToken, last, hasLast, 0, true)
	if err != nil {
		return resp.Value{}, &CommandError{err.Error()}
	}
	if store.IsZeroStreamID(id) {
		return resp.Value{}, &CommandError{"ERR The ID specified in XADD must be greater than 0-0"}
	}
	if hasLast && store.CompareStreamID(id, last) <= 0 {
		return resp.Value{}, &CommandError{"ERR The ID specified in XADD is equal or smaller than the target stream top item"}
	}

	fields := make([]store.FieldValue, 0, (len(args)-2)/2)
	for i := 2; i < len(args); i += 2 {
		fields = append(fields, store.FieldValue{Name: args[i].Str, Value: args[i+1].Str})
	}

	if err := s.App.KS.PutStreamEntry(key, store.StreamEntry{ID: id, Fields: fields}); err != nil {
		return resp.Value{}, &CommandError{err.Error()}
	}
	propagate(s, "XADD", args)
	return resp.Str3(id.String()), nil
}

func cmdXLen(s *Session, args []resp.Value) (resp.Value, error) {
	return resp.Int3(int64(len(s.App.KS.StreamSnapshot(args[0].Str)))), nil
}

// cmdXRange implements XRANGE key start end per spec §4.6: an
// inclusive range over (ms, seq) order; start defaults its seq to 0,
// end defaults its seq to the maximum.
func cmdXRange(s *Session, args []resp.Value) (resp.Value, error) {
	key := args[0].Str
	start, err := store.ParseStreamID(args[1].Str, store.StreamID{}, false, 0, true)
	if err != nil {
		return resp.Value{}, &CommandError{err.Error()}
	}
	end, err := store.ParseStreamID(args[2].Str, store.StreamID{}, false, math.MaxUint64, true)
	if err != nil {
		return resp.Value{}, &CommandError{err.Error()}
	}
	if store.CompareStreamID(end, start) < 0 {
		return resp.Value{}, &CommandError{"ERR Invalid range"}
	}

	entries := s.App.KS.StreamSnapshot(key)
	out := make([]resp.Value, 0, len(entries))
	for _, e := range entries {
		if store.CompareStreamID(e.ID, start) >= 0 && store.CompareStreamID(e.ID, end) <= 0 {
			out = append(out, encodeStreamEntry(e))
		}
	}
	return resp.Arr(out...), nil
}

// encodeStreamEntry renders a StreamEntry as the two-element array
// spec §4.3 describes: its id, then a flat array of alternating
// field-name/field-value bulk strings.
func encodeStreamEntry(e store.StreamEntry) resp.Value {
	fields := make([]resp.Value, 0, len(e.Fields)*2)
	for _, f := range e.Fields {
		fields = append(fields, resp.Str3(f.Name), resp.Str3(f.Value))
	}
	return resp.Arr(resp.Str3(e.ID.String()), resp.Arr(fields...))
}
