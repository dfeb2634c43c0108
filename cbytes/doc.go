/*
Package cbytes converts typed values to and from comparable bytes: byte sequences
whose unsigned lexicographic order is the natural order of the values they encode.

Two values a and b of the same type satisfy

	bytes.Compare(Encode(a), Encode(b)) == types.Compare(a, b)

so a storage engine can sort and range-scan typed keys without decoding them.

# Format

Fixed-width signed integers (tinyint, smallint, integer, bigint) and timestamps
are stored natively as big-endian two's-complement. Their comparable form has the
same length and the same bytes, except that the most significant bit of the first
byte is inverted, which moves negative values below positive ones:

	int32(-1)          ff ff ff ff  ->  7f ff ff ff
	int32(0)           00 00 00 00  ->  80 00 00 00
	int32(2147483647)  7f ff ff ff  ->  ff ff ff ff

This layout is persisted in keys: changing it for an existing type breaks the
order of keys already on disk.

Types without a comparable encoding return ErrUnsupportedType. No encoding is
ever guessed.

# Absent values

A nil *buffer.View (absent raw bytes) encodes to a nil *Bytes and opens a nil
*View. Nil sorts before any present value.

# Streaming

A View produces the comparable bytes of a value one at a time, straight from its
raw bytes, so two values can be compared without building either encoding.
CompareViews and Compare always agree.
*/
package cbytes
