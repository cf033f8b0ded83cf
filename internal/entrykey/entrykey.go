// Package entrykey implements EntryKey: the 128-bit, lexicographically
// sortable identifier the clipboard log is keyed by (spec §3, §4.1).
//
// A key embeds a millisecond wall-clock timestamp in its high bits and an
// 80-bit random tail in its low bits, exactly the ULID layout — so this
// package is a thin wrapper around github.com/oklog/ulid/v2 rather than a
// reimplementation. Cross-host collisions are not prevented (the spec does
// not require it); the random tail just makes them negligible.
package entrykey

import (
	"crypto/rand"
	"database/sql/driver"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Key is an EntryKey: sorts chronologically byte-for-byte.
type Key ulid.ULID

// Zero is the smallest possible key, useful as a "no key yet" sentinel.
var Zero Key

// String renders the canonical 26-character Crockford base32 form.
func (k Key) String() string {
	return ulid.ULID(k).String()
}

// Compare returns -1, 0, or 1, the same contract as bytes.Compare.
func (k Key) Compare(other Key) int {
	return ulid.ULID(k).Compare(ulid.ULID(other))
}

// Less reports whether k sorts strictly before other.
func (k Key) Less(other Key) bool {
	return k.Compare(other) < 0
}

// Parse decodes a canonical string form back into a Key.
func Parse(s string) (Key, error) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return Key{}, fmt.Errorf("entrykey: parse %q: %w", s, err)
	}
	return Key(id), nil
}

// MarshalText implements encoding.TextMarshaler so a Key round-trips as a
// JSON string and can be used as a map key / SQL TEXT column.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Value implements driver.Valuer so a Key can be written straight into the
// clipboard.key TEXT column (spec §6).
func (k Key) Value() (driver.Value, error) {
	return k.String(), nil
}

// Scan implements sql.Scanner for reading the clipboard.key column back.
func (k *Key) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return k.UnmarshalText([]byte(v))
	case []byte:
		return k.UnmarshalText(v)
	default:
		return fmt.Errorf("entrykey: cannot scan %T into Key", src)
	}
}

// Generator mints strictly increasing Keys for a single host, even when
// called more than once within the same millisecond (spec §4.1 "Key
// algorithm"). It wraps ulid.Monotonic, which keeps a per-millisecond
// random tail and increments it (rather than re-randomizing) for
// same-millisecond calls, guaranteeing monotonic order without a visible
// sequence counter.
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
}

// NewGenerator creates a Generator seeded from crypto/rand.
func NewGenerator() *Generator {
	return &Generator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// New mints a fresh Key for "now".
func (g *Generator) New() (Key, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now()), g.entropy)
	if err != nil {
		return Key{}, fmt.Errorf("entrykey: generate: %w", err)
	}
	return Key(id), nil
}
