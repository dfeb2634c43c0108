package types

import (
	"fmt"
	"time"
)

// A Value is a typed value of the database.
// A null value keeps the type it was created for.
type Value interface {
	Type() Type
	// V returns the underlying Go value, or nil for nulls.
	V() any
	String() string
}

var _ Value = NewNullValue(TypeInteger)

// NullValue is the null value of a given type.
type NullValue struct {
	t Type
}

// NewNullValue returns the null value of type t.
func NewNullValue(t Type) NullValue {
	return NullValue{t: t}
}

func (v NullValue) Type() Type {
	return v.t
}

func (v NullValue) V() any {
	return nil
}

func (v NullValue) String() string {
	return "NULL"
}

// IsNull returns true if v is nil or a typed null.
func IsNull(v Value) bool {
	return v == nil || v.V() == nil
}

// NewValue wraps a Go value in the Value of type t.
// It panics if x doesn't have the Go type backing t.
func NewValue(t Type, x any) Value {
	if x == nil {
		return NewNullValue(t)
	}

	switch t {
	case TypeTinyint:
		return NewTinyintValue(x.(int8))
	case TypeSmallint:
		return NewSmallintValue(x.(int16))
	case TypeInteger:
		return NewIntegerValue(x.(int32))
	case TypeBigint:
		return NewBigintValue(x.(int64))
	case TypeTimestamp:
		return NewTimestampValue(x.(time.Time))
	case TypeBoolean:
		return NewBooleanValue(x.(bool))
	case TypeDouble:
		return NewDoubleValue(x.(float64))
	case TypeText:
		return NewTextValue(x.(string))
	case TypeBlob:
		return NewBlobValue(x.([]byte))
	}

	panic(fmt.Sprintf("unsupported type %#v", t))
}

// AsInt64 returns the integral content of v, widened to int64.
// Timestamps return their number of milliseconds since the Unix epoch.
func AsInt64(v Value) int64 {
	switch x := v.(type) {
	case TinyintValue:
		return int64(x)
	case SmallintValue:
		return int64(x)
	case IntegerValue:
		return int64(x)
	case BigintValue:
		return int64(x)
	case TimestampValue:
		return x.UnixMilli()
	}

	panic(fmt.Sprintf("cannot convert %s value to int64", v.Type()))
}

// Compare returns the natural order of two non-null values of the same type.
// It is used as the reference ordering for comparable keys.
func Compare(a, b Value) int {
	if a.Type() != b.Type() {
		panic(fmt.Sprintf("cannot compare %s with %s", a.Type(), b.Type()))
	}

	switch a.Type() {
	case TypeTinyint, TypeSmallint, TypeInteger, TypeBigint, TypeTimestamp:
		return compareOrdered(AsInt64(a), AsInt64(b))
	case TypeBoolean:
		x, y := bool(a.(BooleanValue)), bool(b.(BooleanValue))
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case TypeDouble:
		return compareOrdered(float64(a.(DoubleValue)), float64(b.(DoubleValue)))
	case TypeText:
		return compareOrdered(string(a.(TextValue)), string(b.(TextValue)))
	case TypeBlob:
		return compareOrdered(string(a.(BlobValue)), string(b.(BlobValue)))
	}

	panic(fmt.Sprintf("unsupported type %#v", a.Type()))
}

func compareOrdered[T int64 | float64 | string](x, y T) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}
