package cbytes

import (
	"github.com/chaisql/keyorder/pkg/buffer"
	"github.com/chaisql/keyorder/types"
	"github.com/cockroachdb/errors"
)

// EndOfStream is returned by View.Next once all the bytes have been produced.
// It is lower than any byte so that a stream that ends first sorts first,
// like bytes.Compare does for a prefix.
const EndOfStream = -1

// A View lazily produces the comparable bytes of a single value,
// reading its raw bytes in place.
// A View can only be read once and must not be used concurrently.
// It must not outlive the raw bytes it reads.
type View struct {
	s    Strategy
	c    Cursor
	done bool
}

// OpenView returns a view producing the comparable form of raw, of type t.
// A nil raw returns a nil view.
func OpenView(t types.Type, raw *buffer.View) (*View, error) {
	if raw == nil {
		return nil, nil
	}

	s, err := StrategyFor(t)
	if err != nil {
		return nil, err
	}

	v := View{s: s, c: newCursor(raw)}
	return &v, nil
}

// Next returns the next comparable byte, between 0 and 255,
// or EndOfStream when there is none left.
// Calling Next after it returned EndOfStream panics.
func (v *View) Next() int {
	if v.done {
		panic(errors.AssertionFailedf("comparable view read past end of stream"))
	}

	n := v.s.Next(&v.c)
	if n == EndOfStream {
		v.done = true
	}

	return n
}

// CompareViews consumes both views and returns -1, 0 or 1 depending on
// whether a sorts before, with or after b.
// A nil view sorts before any other view. Two nil views are equal.
func CompareViews(a, b *View) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	for {
		x, y := a.Next(), b.Next()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		case x == EndOfStream:
			return 0
		}
	}
}

// CompareRaw compares the raw forms a and b of two values of type t
// through their comparable form, without building it.
// Nil values sort first.
func CompareRaw(t types.Type, a, b *buffer.View) (int, error) {
	s, err := StrategyFor(t)
	if err != nil {
		return 0, err
	}

	switch {
	case a == nil && b == nil:
		return 0, nil
	case a == nil:
		return -1, nil
	case b == nil:
		return 1, nil
	}

	va := View{s: s, c: newCursor(a)}
	vb := View{s: s, c: newCursor(b)}
	return CompareViews(&va, &vb), nil
}
