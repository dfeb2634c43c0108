package types

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/cockroachdb/errors"
)

// Serialize returns the native serialized form of v.
// Nulls serialize to nil.
func Serialize(v Value) ([]byte, error) {
	if IsNull(v) {
		return nil, nil
	}

	t := v.Type()
	switch t {
	case TypeTinyint:
		return appendSigned(nil, int8(v.(TinyintValue)), 1), nil
	case TypeSmallint:
		return appendSigned(nil, int16(v.(SmallintValue)), 2), nil
	case TypeInteger:
		return appendSigned(nil, int32(v.(IntegerValue)), 4), nil
	case TypeBigint:
		return appendSigned(nil, int64(v.(BigintValue)), 8), nil
	case TypeTimestamp:
		return appendSigned(nil, v.(TimestampValue).UnixMilli(), 8), nil
	case TypeBoolean:
		if v.(BooleanValue) {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case TypeDouble:
		return binary.BigEndian.AppendUint64(nil, math.Float64bits(float64(v.(DoubleValue)))), nil
	case TypeText:
		return []byte(v.(TextValue)), nil
	case TypeBlob:
		b := v.(BlobValue)
		cp := make([]byte, len(b))
		copy(cp, b)
		return cp, nil
	}

	return nil, errors.Errorf("cannot serialize value of type %s", t)
}

// Deserialize decodes the native serialized form of a value of type t.
// The returned value never aliases b.
func Deserialize(t Type, b []byte) (Value, error) {
	if w := t.Width(); w > 0 && len(b) != w {
		return nil, errors.Wrapf(ErrInvalidLength, "%s requires %d bytes, got %d", t, w, len(b))
	}

	switch t {
	case TypeTinyint:
		return NewTinyintValue(readSigned[int8](b)), nil
	case TypeSmallint:
		return NewSmallintValue(readSigned[int16](b)), nil
	case TypeInteger:
		return NewIntegerValue(readSigned[int32](b)), nil
	case TypeBigint:
		return NewBigintValue(readSigned[int64](b)), nil
	case TypeTimestamp:
		return NewTimestampValue(time.UnixMilli(readSigned[int64](b))), nil
	case TypeBoolean:
		return NewBooleanValue(b[0] != 0), nil
	case TypeDouble:
		return NewDoubleValue(math.Float64frombits(binary.BigEndian.Uint64(b))), nil
	case TypeText:
		return NewTextValue(string(b)), nil
	case TypeBlob:
		cp := make([]byte, len(b))
		copy(cp, b)
		return NewBlobValue(cp), nil
	}

	panic(fmt.Sprintf("unsupported type %#v", t))
}
