// Package types defines the catalog of database types, their values and their
// native serialized form.
//
// The native form of every integral type is big-endian two's-complement,
// which is the form the cbytes package turns into comparable keys.
package types

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidLength is returned when a serialized value doesn't have
	// the width required by its type.
	ErrInvalidLength = errors.New("invalid serialized length")

	// ErrOutOfRange is returned when a literal doesn't fit in the target type.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidLiteral is returned when a literal cannot be parsed as the target type.
	ErrInvalidLiteral = errors.New("invalid literal")
)

// Type represents a type supported by the database.
type Type uint8

// List of supported types.
const (
	TypeTinyint Type = iota + 1
	TypeSmallint
	TypeInteger
	TypeBigint
	TypeTimestamp
	TypeBoolean
	TypeDouble
	TypeText
	TypeBlob
)

// Types lists every type of the catalog, in declaration order.
var Types = []Type{
	TypeTinyint,
	TypeSmallint,
	TypeInteger,
	TypeBigint,
	TypeTimestamp,
	TypeBoolean,
	TypeDouble,
	TypeText,
	TypeBlob,
}

func (t Type) String() string {
	switch t {
	case TypeTinyint:
		return "tinyint"
	case TypeSmallint:
		return "smallint"
	case TypeInteger:
		return "integer"
	case TypeBigint:
		return "bigint"
	case TypeTimestamp:
		return "timestamp"
	case TypeBoolean:
		return "boolean"
	case TypeDouble:
		return "double"
	case TypeText:
		return "text"
	case TypeBlob:
		return "blob"
	}

	panic(fmt.Sprintf("unsupported type %#v", t))
}

// ParseType returns the type named s.
func ParseType(s string) (Type, error) {
	for _, t := range Types {
		if t.String() == s {
			return t, nil
		}
	}

	switch s {
	case "int", "int4":
		return TypeInteger, nil
	case "int1":
		return TypeTinyint, nil
	case "int2":
		return TypeSmallint, nil
	case "int8":
		return TypeBigint, nil
	case "bool":
		return TypeBoolean, nil
	case "bytea":
		return TypeBlob, nil
	}

	return 0, errors.Errorf("unknown type %q", s)
}

// IsInteger returns true if t is one of the fixed-width integer types.
func (t Type) IsInteger() bool {
	return t == TypeTinyint || t == TypeSmallint || t == TypeInteger || t == TypeBigint
}

// Width returns the size of the native form of t, in bytes,
// or 0 if t is variable-length.
func (t Type) Width() int {
	switch t {
	case TypeTinyint, TypeBoolean:
		return 1
	case TypeSmallint:
		return 2
	case TypeInteger:
		return 4
	case TypeBigint, TypeTimestamp, TypeDouble:
		return 8
	case TypeText, TypeBlob:
		return 0
	}

	panic(fmt.Sprintf("unsupported type %#v", t))
}

// VariantKind identifies an encoding strategy family.
type VariantKind uint8

const (
	// VariantUnsupported marks types that have no comparable encoding yet.
	VariantUnsupported VariantKind = iota
	// VariantSignedFixed is a fixed-width big-endian two's-complement integer.
	VariantSignedFixed
)

func (k VariantKind) String() string {
	switch k {
	case VariantUnsupported:
		return "unsupported"
	case VariantSignedFixed:
		return "signed-fixed"
	}

	return fmt.Sprintf("VariantKind(%d)", uint8(k))
}

// Variant is the tag used to route a type to its encoding strategy.
// Width is the size of the native form for fixed-width variants.
type Variant struct {
	Kind  VariantKind
	Width int
}

// Variant returns the encoding variant of t.
// Timestamps are stored as signed milliseconds and share the integer variant.
func (t Type) Variant() Variant {
	switch t {
	case TypeTinyint, TypeSmallint, TypeInteger, TypeBigint, TypeTimestamp:
		return Variant{Kind: VariantSignedFixed, Width: t.Width()}
	}

	return Variant{Kind: VariantUnsupported}
}
