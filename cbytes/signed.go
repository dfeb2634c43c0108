package cbytes

import (
	"github.com/chaisql/keyorder/pkg/buffer"
)

const signBit byte = 1 << 7

// signedFixed encodes big-endian two's-complement integers of any width.
// Only the sign bit is out of order under unsigned comparison, so it is
// the only bit that changes; the length is preserved.
type signedFixed struct{}

func (signedFixed) EncodedSize(raw *buffer.View) int {
	return raw.Size()
}

func (signedFixed) Encode(dst []byte, raw *buffer.View) {
	raw.CopyTo(dst)
	dst[0] ^= signBit
}

func (signedFixed) DecodedSize(enc []byte) int {
	return len(enc)
}

func (signedFixed) Decode(dst []byte, enc []byte) {
	copy(dst, enc)
	dst[0] ^= signBit
}

func (signedFixed) Next(c *Cursor) int {
	b, first, ok := c.Read()
	if !ok {
		return EndOfStream
	}

	if first {
		b ^= signBit
	}

	return int(b)
}
