package types

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ParseValue parses the literal s as a value of type t.
// The literal NULL, in any case, returns the typed null.
func ParseValue(t Type, s string) (Value, error) {
	if strings.EqualFold(s, "null") {
		return NewNullValue(t), nil
	}

	switch t {
	case TypeTinyint, TypeSmallint, TypeInteger, TypeBigint:
		x, err := strconv.ParseInt(s, 10, 8*t.Width())
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return nil, errors.Wrapf(ErrOutOfRange, "%s for %s", s, t)
			}
			return nil, errors.Wrapf(ErrInvalidLiteral, "%q is not a valid %s", s, t)
		}
		switch t {
		case TypeTinyint:
			return NewTinyintValue(int8(x)), nil
		case TypeSmallint:
			return NewSmallintValue(int16(x)), nil
		case TypeInteger:
			return NewIntegerValue(int32(x)), nil
		default:
			return NewBigintValue(x), nil
		}
	case TypeTimestamp:
		ts, err := ParseTimestamp(s)
		if err != nil {
			return nil, err
		}
		return NewTimestampValue(ts), nil
	case TypeBoolean:
		x, err := strconv.ParseBool(s)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidLiteral, "%q is not a valid %s", s, t)
		}
		return NewBooleanValue(x), nil
	case TypeDouble:
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidLiteral, "%q is not a valid %s", s, t)
		}
		return NewDoubleValue(x), nil
	case TypeText:
		return NewTextValue(s), nil
	case TypeBlob:
		b, err := hex.DecodeString(strings.TrimPrefix(s, `\x`))
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidLiteral, "%q is not a valid %s", s, t)
		}
		return NewBlobValue(b), nil
	}

	return nil, errors.Errorf("cannot parse literal of type %s", t)
}
