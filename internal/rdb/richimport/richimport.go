// Package richimport is a supplementary, opt-in snapshot importer built
// on github.com/hdt3213/rdb's full parser. It understands real Redis
// RDB files (including compression and object types this datastore's
// own rdbfile loader never produces), unlike the minimal hand-rolled
// loader used on the normal startup path. It is only reached when an
// operator explicitly asks to import a foreign dump.
package richimport

import (
	"fmt"
	"os"
	"reflect"

	"github.com/hdt3213/rdb/parser"

	"emberdb/internal/logger"
	"emberdb/internal/store"
)

// Import reads the RDB file at path using the full parser and loads
// any entries this datastore can represent into ks. Object types with
// no equivalent here (lists, hashes, sets, sorted sets) are skipped
// with a warning rather than rejected outright, since a foreign dump
// may legitimately contain them.
func Import(path string, ks *store.Keyspace) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening rdb file: %w", err)
	}
	defer f.Close()

	decoder := parser.NewDecoder(f)
	err = decoder.Parse(func(o parser.RedisObject) bool {
		switch o.GetType() {
		case parser.StringType:
			importString(ks, o.(*parser.StringObject))
		case parser.StreamType:
			importStream(ks, o.(*parser.StreamObject))
		default:
			logger.Warnf("richimport: skipping unsupported object %q of type %v", o.GetKey(), o.GetType())
		}
		return true
	})
	if err != nil {
		return fmt.Errorf("parsing rdb file: %w", err)
	}
	return nil
}

func importString(ks *store.Keyspace, str *parser.StringObject) {
	if str.Expiration != nil && !str.Expiration.IsZero() {
		ks.PutExpiresAt(str.Key, store.NewStringValue(string(str.Value)), true, str.Expiration.UnixMilli())
		return
	}
	ks.PutExpiresAt(str.Key, store.NewStringValue(string(str.Value)), false, 0)
}

// importStream walks a parser.StreamObject via reflection rather than
// direct field access: the upstream library's stream entry shape has
// shifted across versions, and reflection keeps this importer working
// against whichever layout the linked version provides.
func importStream(ks *store.Keyspace, so *parser.StreamObject) {
	key := so.GetKey()
	forEachStreamEntry(so, func(id store.StreamID, fields []store.FieldValue) {
		if err := ks.PutStreamEntry(key, store.StreamEntry{ID: id, Fields: fields}); err != nil {
			logger.Errorf("richimport: stream %s entry %d-%d: %v", key, id.Ms, id.Seq, err)
		}
	})
}

func forEachStreamEntry(so *parser.StreamObject, cb func(id store.StreamID, fields []store.FieldValue)) {
	v := reflect.ValueOf(so)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if !v.IsValid() || v.Kind() != reflect.Struct {
		return
	}
	entries := v.FieldByName("Entries")
	if !entries.IsValid() || entries.Kind() != reflect.Slice {
		return
	}
	for i := 0; i < entries.Len(); i++ {
		ev := entries.Index(i)
		if ev.Kind() == reflect.Ptr {
			ev = ev.Elem()
		}
		if !ev.IsValid() || ev.Kind() != reflect.Struct {
			continue
		}
		msgs := ev.FieldByName("Msgs")
		if !msgs.IsValid() || msgs.Kind() != reflect.Slice {
			continue
		}
		for j := 0; j < msgs.Len(); j++ {
			mv := msgs.Index(j)
			if mv.Kind() == reflect.Ptr {
				mv = mv.Elem()
			}
			if !mv.IsValid() || mv.Kind() != reflect.Struct {
				continue
			}
			id := extractStreamID(mv.FieldByName("Id"))
			fields := extractFields(mv.FieldByName("Fields"))
			cb(id, fields)
		}
	}
}

func extractStreamID(idV reflect.Value) store.StreamID {
	if !idV.IsValid() {
		return store.StreamID{}
	}
	if idV.Kind() == reflect.Ptr {
		if idV.IsNil() {
			return store.StreamID{}
		}
		idV = idV.Elem()
	}
	if idV.IsValid() && idV.Kind() == reflect.Struct {
		return store.StreamID{
			Ms:  extractUintField(idV, []string{"Ms", "MsTime", "Time"}),
			Seq: extractUintField(idV, []string{"Seq", "Sequence"}),
		}
	}
	return store.StreamID{}
}

func extractUintField(v reflect.Value, names []string) uint64 {
	for _, name := range names {
		f := v.FieldByName(name)
		if !f.IsValid() {
			continue
		}
		switch f.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return f.Uint()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return uint64(f.Int())
		}
	}
	return 0
}

func extractFields(fv reflect.Value) []store.FieldValue {
	var out []store.FieldValue
	if !fv.IsValid() || fv.Kind() != reflect.Map {
		return out
	}
	iter := fv.MapRange()
	for iter.Next() {
		k := iter.Key()
		v := iter.Value()
		out = append(out, store.FieldValue{
			Name:  fmt.Sprint(k.Interface()),
			Value: stringifyReflectValue(v),
		})
	}
	return out
}

func stringifyReflectValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return string(v.Bytes())
		}
	}
	return fmt.Sprint(v.Interface())
}
