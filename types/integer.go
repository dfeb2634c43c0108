package types

import (
	"strconv"

	"golang.org/x/exp/constraints"
)

var (
	_ Value = NewTinyintValue(0)
	_ Value = NewSmallintValue(0)
	_ Value = NewIntegerValue(0)
	_ Value = NewBigintValue(0)
)

type TinyintValue int8

// NewTinyintValue returns a SQL TINYINT value.
func NewTinyintValue(x int8) TinyintValue {
	return TinyintValue(x)
}

func (v TinyintValue) V() any {
	return int8(v)
}

func (v TinyintValue) Type() Type {
	return TypeTinyint
}

func (v TinyintValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

type SmallintValue int16

// NewSmallintValue returns a SQL SMALLINT value.
func NewSmallintValue(x int16) SmallintValue {
	return SmallintValue(x)
}

func (v SmallintValue) V() any {
	return int16(v)
}

func (v SmallintValue) Type() Type {
	return TypeSmallint
}

func (v SmallintValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

type IntegerValue int32

// NewIntegerValue returns a SQL INTEGER value.
func NewIntegerValue(x int32) IntegerValue {
	return IntegerValue(x)
}

func (v IntegerValue) V() any {
	return int32(v)
}

func (v IntegerValue) Type() Type {
	return TypeInteger
}

func (v IntegerValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

type BigintValue int64

// NewBigintValue returns a SQL BIGINT value.
func NewBigintValue(x int64) BigintValue {
	return BigintValue(x)
}

func (v BigintValue) V() any {
	return int64(v)
}

func (v BigintValue) Type() Type {
	return TypeBigint
}

func (v BigintValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

// appendSigned appends the big-endian two's-complement form of x,
// truncated to width bytes.
func appendSigned[T constraints.Signed](dst []byte, x T, width int) []byte {
	u := uint64(int64(x))
	for i := width - 1; i >= 0; i-- {
		dst = append(dst, byte(u>>(8*i)))
	}
	return dst
}

// readSigned decodes a big-endian two's-complement integer of len(b) bytes,
// sign-extending it to T.
func readSigned[T constraints.Signed](b []byte) T {
	var u uint64
	for _, c := range b {
		u = u<<8 | uint64(c)
	}

	shift := 64 - 8*len(b)
	return T(int64(u<<shift) >> shift)
}
