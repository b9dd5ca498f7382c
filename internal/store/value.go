package store

import (
	"strconv"
	"strings"
)

// ValueKind tags the alternative held by a Value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindInteger
	KindStream
	KindArray
	KindBoolean
	KindNull
)

// StreamEntry is a single appended record in a Stream-typed Value: an
// id plus an ordered sequence of field/value pairs.
type StreamEntry struct {
	ID     StreamID
	Fields []FieldValue
}

// FieldValue is one name/value pair inside a StreamEntry, kept ordered
// as received rather than collapsed into a map.
type FieldValue struct {
	Name  string
	Value string
}

// Value is the tagged variant every Entry holds: a byte-string, a
// signed 64-bit integer, an ordered stream, a nested array, a boolean,
// or null. Only the field matching Kind is meaningful.
type Value struct {
	Kind    ValueKind
	Str     string
	Int     int64
	Stream  []StreamEntry
	Array   []Value
	Boolean bool
}

func NewStringValue(s string) Value  { return Value{Kind: KindString, Str: s} }
func NewIntegerValue(n int64) Value  { return Value{Kind: KindInteger, Int: n} }
func NewBooleanValue(b bool) Value   { return Value{Kind: KindBoolean, Boolean: b} }
func NewArrayValue(vs []Value) Value { return Value{Kind: KindArray, Array: vs} }
func NullValue() Value               { return Value{Kind: KindNull} }

// Text renders a Value as the datastore's canonical textual form, used
// only where a handler needs a simple-string-shaped representation:
// strings unchanged, integers as decimal, streams as their joined
// entry text, arrays as comma-joined recursive text.
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindStream:
		parts := make([]string, len(v.Stream))
		for i, e := range v.Stream {
			parts[i] = e.ID.String()
		}
		return strings.Join(parts, "")
	case KindArray:
		parts := make([]string, len(v.Array))
		for i, el := range v.Array {
			parts[i] = el.Text()
		}
		return strings.Join(parts, ",")
	case KindBoolean:
		if v.Boolean {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// TypeName returns the TYPE-facing name of v's kind.
func (v Value) TypeName() string {
	switch v.Kind {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindStream:
		return "stream"
	case KindArray:
		return "list"
	default:
		return "none"
	}
}
