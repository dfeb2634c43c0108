package cbytes

import (
	"bytes"
	"encoding/hex"
)

// Bytes is the comparable form of a value.
// It owns its buffer and is never modified after creation, so it can be
// shared between goroutines.
// A nil *Bytes represents an absent value and sorts first.
type Bytes struct {
	b []byte
}

// FromEncoded returns a Bytes holding a copy of b, which must already
// be in comparable form, for example a key read back from storage.
func FromEncoded(b []byte) *Bytes {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &Bytes{b: cp}
}

// Len returns the number of bytes. It returns 0 for nil.
func (c *Bytes) Len() int {
	if c == nil {
		return 0
	}
	return len(c.b)
}

// AppendTo appends the comparable bytes to dst.
func (c *Bytes) AppendTo(dst []byte) []byte {
	if c == nil {
		return dst
	}
	return append(dst, c.b...)
}

// Compare returns -1, 0 or 1 depending on whether c sorts before,
// with or after other, using unsigned lexicographic order.
func (c *Bytes) Compare(other *Bytes) int {
	switch {
	case c == nil && other == nil:
		return 0
	case c == nil:
		return -1
	case other == nil:
		return 1
	}

	return bytes.Compare(c.b, other.b)
}

// Equal reports whether c and other hold the same bytes.
func (c *Bytes) Equal(other *Bytes) bool {
	if c == nil || other == nil {
		return c == other
	}

	// lengths differ most of the time, avoid the full scan
	if len(c.b) != len(other.b) {
		return false
	}

	return c.Compare(other) == 0
}

// String returns the bytes in hexadecimal, or "null".
func (c *Bytes) String() string {
	if c == nil {
		return "null"
	}
	return hex.EncodeToString(c.b)
}

// Compare is the ordering used for comparable bytes.
// It can be passed directly to slices.SortFunc.
func Compare(a, b *Bytes) int {
	return a.Compare(b)
}
