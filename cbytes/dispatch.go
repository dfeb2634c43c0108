package cbytes

import (
	"github.com/chaisql/keyorder/pkg/buffer"
	"github.com/chaisql/keyorder/types"
	"github.com/cockroachdb/errors"
)

// ErrUnsupportedType is returned when a type has no comparable encoding.
var ErrUnsupportedType = errors.New("comparable encoding not implemented")

// A Strategy implements the comparable encoding of one variant.
// Strategies are stateless: the streaming state lives in the Cursor.
type Strategy interface {
	// EncodedSize returns the size of the comparable form of raw.
	EncodedSize(raw *buffer.View) int
	// Encode writes the comparable form of raw into dst.
	// dst has EncodedSize(raw) bytes and raw is not empty.
	Encode(dst []byte, raw *buffer.View)
	// DecodedSize returns the size of the native form of enc.
	DecodedSize(enc []byte) int
	// Decode writes the native form of enc into dst.
	// dst has DecodedSize(enc) bytes and enc is not empty.
	Decode(dst []byte, enc []byte)
	// Next returns the next comparable byte read from c, or EndOfStream.
	Next(c *Cursor) int
}

var signedFixedStrategy Strategy = signedFixed{}

// StrategyFor returns the strategy used to encode values of type t.
func StrategyFor(t types.Type) (Strategy, error) {
	switch v := t.Variant(); v.Kind {
	case types.VariantSignedFixed:
		return signedFixedStrategy, nil
	case types.VariantUnsupported:
		return nil, unsupported(t)
	default:
		return nil, errors.Mark(
			errors.Newf("comparable encoding not implemented for type %s (variant %s)", t, v.Kind),
			ErrUnsupportedType,
		)
	}
}

func unsupported(t types.Type) error {
	return errors.Mark(errors.Newf("comparable encoding not implemented for type %s", t), ErrUnsupportedType)
}

// A Cursor reads the raw bytes of a value on behalf of a Strategy.
type Cursor struct {
	r       buffer.Reader
	started bool
}

func newCursor(raw *buffer.View) Cursor {
	return Cursor{r: raw.Reader()}
}

// Read returns the next raw byte. first is true for the first byte
// ever returned by the cursor. ok is false once the raw bytes are exhausted.
func (c *Cursor) Read() (b byte, first bool, ok bool) {
	b, err := c.r.ReadByte()
	if err != nil {
		return 0, false, false
	}

	first = !c.started
	c.started = true
	return b, first, true
}

// Remaining returns the number of raw bytes not read yet.
func (c *Cursor) Remaining() int {
	return c.r.Len()
}
