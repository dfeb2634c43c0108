// Package buffer provides a read-only byte buffer that may be stored as
// several non-contiguous fragments.
//
// Large values are kept fragmented to avoid copying them into a single
// allocation. Readers walk the fragments transparently.
package buffer

import (
	"io"
)

// DefaultFragmentSize is the fragment size used by Split when
// no size is given.
const DefaultFragmentSize = 128 * 1024

// A View is an immutable sequence of bytes stored as one or more fragments.
// A View never copies nor modifies the fragments it was built with.
// The zero value is an empty, non-nil buffer.
type View struct {
	frags [][]byte
	size  int
}

// New returns a view over the given fragments, in order.
// Empty fragments are skipped.
func New(fragments ...[]byte) *View {
	v := View{
		frags: make([][]byte, 0, len(fragments)),
	}

	for _, f := range fragments {
		if len(f) == 0 {
			continue
		}
		v.frags = append(v.frags, f)
		v.size += len(f)
	}

	return &v
}

// FromBytes returns a single-fragment view over b.
// A nil or empty b returns an empty view, not a nil one.
func FromBytes(b []byte) *View {
	return New(b)
}

// Split returns a view over b cut in fragments of at most size bytes.
// If size <= 0, DefaultFragmentSize is used.
func Split(b []byte, size int) *View {
	if size <= 0 {
		size = DefaultFragmentSize
	}

	frags := make([][]byte, 0, len(b)/size+1)
	for len(b) > size {
		frags = append(frags, b[:size:size])
		b = b[size:]
	}
	frags = append(frags, b)

	return New(frags...)
}

// Size returns the total number of bytes of the view.
func (v *View) Size() int {
	return v.size
}

// Empty returns true if the view contains no byte.
func (v *View) Empty() bool {
	return v.size == 0
}

// Fragments returns the non-empty fragments of the view.
// They must not be modified.
func (v *View) Fragments() [][]byte {
	return v.frags
}

// CopyTo copies the content of the view into dst and returns
// the number of bytes copied, which is the minimum of len(dst) and v.Size().
func (v *View) CopyTo(dst []byte) int {
	var n int
	for _, f := range v.frags {
		if n == len(dst) {
			break
		}
		n += copy(dst[n:], f)
	}

	return n
}

// Bytes returns a contiguous copy of the view.
func (v *View) Bytes() []byte {
	b := make([]byte, v.size)
	v.CopyTo(b)
	return b
}

// Reader returns a cursor positioned at the first byte of the view.
func (v *View) Reader() Reader {
	return Reader{frags: v.frags, remaining: v.size}
}

// A Reader reads a View sequentially, one byte at a time,
// crossing fragment boundaries transparently.
// It is a value type so that it can live on the stack.
type Reader struct {
	frags     [][]byte
	frag      int
	pos       int
	remaining int
}

var _ io.ByteReader = (*Reader)(nil)

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return r.remaining
}

// ReadByte returns the next byte, or io.EOF once the view is exhausted.
func (r *Reader) ReadByte() (byte, error) {
	if r.remaining == 0 {
		return 0, io.EOF
	}

	for r.pos == len(r.frags[r.frag]) {
		r.frag++
		r.pos = 0
	}

	c := r.frags[r.frag][r.pos]
	r.pos++
	r.remaining--
	return c, nil
}

// Compare returns the unsigned lexicographic order of two views,
// regardless of how they are fragmented.
func Compare(a, b *View) int {
	ra, rb := a.Reader(), b.Reader()

	for {
		ca, erra := ra.ReadByte()
		cb, errb := rb.ReadByte()

		switch {
		case erra != nil && errb != nil:
			return 0
		case erra != nil:
			return -1
		case errb != nil:
			return 1
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		}
	}
}
