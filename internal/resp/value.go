// Package resp implements the line-framed wire protocol: decoding a byte
// stream into typed tokens and encoding typed tokens back to bytes.
package resp

// Type identifies the shape of a decoded/encoded protocol token.
type Type int

const (
	SimpleString Type = iota
	Error
	Integer
	BulkString
	Array
	Null
	Boolean
	Double
	BigNumber
	BulkError
	Verbatim
	Map
	Set
	Invalid
)

// Value is a decoded (or to-be-encoded) protocol token. Only the fields
// relevant to Type are meaningful; the rest are zero.
type Value struct {
	Type   Type
	Str    string  // SimpleString, Error, BulkString, BigNumber, BulkError, Verbatim payload
	Int    int64   // Integer
	Dbl    float64 // Double
	Bool   bool    // Boolean
	VEnc   string  // Verbatim 3-char encoding, e.g. "txt"
	Array  []Value // Array, Set, flattened Map (k0,v0,k1,v1,...)
	IsNull bool    // Null-bulk / Null-array marker for BulkString/Array
}

// Str3 builds a bulk string token.
func Str3(s string) Value { return Value{Type: BulkString, Str: s} }

// NullBulk builds the designated null-bulk token.
func NullBulk() Value { return Value{Type: BulkString, IsNull: true} }

// Int3 builds an integer token.
func Int3(n int64) Value { return Value{Type: Integer, Int: n} }

// Simple builds a simple-string token.
func Simple(s string) Value { return Value{Type: SimpleString, Str: s} }

// Err builds a simple-error token.
func Err(s string) Value { return Value{Type: Error, Str: s} }

// Arr builds an array token.
func Arr(vs ...Value) Value { return Value{Type: Array, Array: vs} }

// NullArray builds the designated null-array token.
func NullArray() Value { return Value{Type: Array, IsNull: true} }
