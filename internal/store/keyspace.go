package store

import (
	"fmt"
	"sync"
	"time"
)

// Keyspace is the shared keyed store: a mapping from key to Entry
// guarded by a single coarse-grained mutex. Every operation takes the
// guard only for its synchronous portion; callers that need to block
// (XREAD) must release it first — Keyspace never blocks internally.
type Keyspace struct {
	mu   sync.Mutex
	data map[string]Entry
}

// NewKeyspace returns an empty keyspace.
func NewKeyspace() *Keyspace {
	return &Keyspace{data: make(map[string]Entry)}
}

// Get returns the current value for key, honoring lazy TTL expiration,
// and whether the key is present at all (a present-but-expired key
// reports ok=false, same as an absent one).
func (k *Keyspace) Get(key string) (Value, bool) {
	now := time.Now()
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.data[key]
	if !ok || e.Expired(now) {
		return Value{}, false
	}
	return e.Value, true
}

// Put overwrites key with value. hasTTL/ttl gives a relative TTL
// resolved to an absolute expiration at call time using the wall
// clock; hasTTL false means the entry never expires.
func (k *Keyspace) Put(key string, value Value, hasTTL bool, ttl time.Duration) {
	e := Entry{Value: value}
	if hasTTL {
		e.HasExpiry = true
		e.ExpiresAt = time.Now().Add(ttl).UnixMilli()
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.data[key] = e
}

// PutExpiresAt overwrites key with value using an already-absolute
// expiration timestamp in Unix milliseconds; used by the snapshot
// loader, which reads absolute expirations straight off disk.
func (k *Keyspace) PutExpiresAt(key string, value Value, hasExpiry bool, expiresAtMs int64) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.data[key] = Entry{Value: value, HasExpiry: hasExpiry, ExpiresAt: expiresAtMs}
}

// Del removes key, reporting whether it was present (and not already
// logically expired).
func (k *Keyspace) Del(key string) bool {
	now := time.Now()
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.data[key]
	delete(k.data, key)
	return ok && !e.Expired(now)
}

// Exists reports whether key currently resolves to a live entry.
func (k *Keyspace) Exists(key string) bool {
	_, ok := k.Get(key)
	return ok
}

// Expire sets an absolute expiration (relative ttl resolved against
// wall-clock now) on an existing key, reporting whether key existed.
func (k *Keyspace) Expire(key string, ttl time.Duration) bool {
	now := time.Now()
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.data[key]
	if !ok || e.Expired(now) {
		return false
	}
	e.HasExpiry = true
	e.ExpiresAt = now.Add(ttl).UnixMilli()
	k.data[key] = e
	return true
}

// TTLMillis returns the remaining TTL in milliseconds: -2 if the key
// is absent/expired, -1 if present with no expiry, else the remainder.
func (k *Keyspace) TTLMillis(key string) int64 {
	now := time.Now()
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.data[key]
	if !ok || e.Expired(now) {
		return -2
	}
	if !e.HasExpiry {
		return -1
	}
	remaining := e.ExpiresAt - now.UnixMilli()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// PutStreamEntry appends an entry to the Stream-typed Value at key,
// creating an empty stream if key is absent. Fails if key holds a
// non-stream, non-expired value.
func (k *Keyspace) PutStreamEntry(key string, entry StreamEntry) error {
	now := time.Now()
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.data[key]
	if !ok || e.Expired(now) {
		e = Entry{Value: Value{Kind: KindStream}}
	} else if e.Value.Kind != KindStream {
		return fmt.Errorf("WRONGTYPE Operation against a key holding the wrong kind of value")
	}
	e.Value.Stream = append(e.Value.Stream, entry)
	k.data[key] = e
	return nil
}

// LastStreamKey returns the id of the tail entry of the stream at
// key, if any.
func (k *Keyspace) LastStreamKey(key string) (StreamID, bool) {
	now := time.Now()
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.data[key]
	if !ok || e.Expired(now) || e.Value.Kind != KindStream || len(e.Value.Stream) == 0 {
		return StreamID{}, false
	}
	return e.Value.Stream[len(e.Value.Stream)-1].ID, true
}

// StreamSnapshot returns a copy of the ordered entries of the stream
// at key, or nil if key is absent/expired/not a stream. Used by
// XRANGE/XREAD, which scan outside the keyspace guard.
func (k *Keyspace) StreamSnapshot(key string) []StreamEntry {
	now := time.Now()
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.data[key]
	if !ok || e.Expired(now) || e.Value.Kind != KindStream {
		return nil
	}
	out := make([]StreamEntry, len(e.Value.Stream))
	copy(out, e.Value.Stream)
	return out
}

// Keys returns a snapshot of currently live (non-expired) keys; the
// enumeration order is unspecified.
func (k *Keyspace) Keys() []string {
	now := time.Now()
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([]string, 0, len(k.data))
	for key, e := range k.data {
		if !e.Expired(now) {
			out = append(out, key)
		}
	}
	return out
}

// TypeOf reports the key's current data-model type name, or "none".
func (k *Keyspace) TypeOf(key string) string {
	v, ok := k.Get(key)
	if !ok {
		return "none"
	}
	return v.TypeName()
}

// Size returns the number of currently live keys.
func (k *Keyspace) Size() int {
	return len(k.Keys())
}

// Flush discards every key.
func (k *Keyspace) Flush() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.data = make(map[string]Entry)
}
