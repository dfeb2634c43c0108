package types

import (
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-module/carbon/v2"
)

var _ Value = NewTimestampValue(time.Time{})

// TimestampValue is a point in time with millisecond precision.
// Its native form is the signed number of milliseconds since the Unix epoch.
type TimestampValue time.Time

// NewTimestampValue returns a SQL TIMESTAMP value.
// Precision beyond the millisecond is dropped.
func NewTimestampValue(x time.Time) TimestampValue {
	return TimestampValue(x.UTC().Truncate(time.Millisecond))
}

func (v TimestampValue) V() any {
	return time.Time(v)
}

func (v TimestampValue) Type() Type {
	return TypeTimestamp
}

func (v TimestampValue) String() string {
	return strconv.Quote(time.Time(v).Format(time.RFC3339Nano))
}

func (v TimestampValue) UnixMilli() int64 {
	return time.Time(v).UnixMilli()
}

// ParseTimestamp parses s in any layout understood by carbon.
// Timestamps without a zone are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	c := carbon.Parse(s, "UTC")
	if c.Error != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidLiteral, "invalid timestamp %q", s)
	}

	return c.ToStdTime(), nil
}
