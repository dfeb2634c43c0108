package testutil

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/chaisql/keyorder/internal/testutil/assert"
	"github.com/chaisql/keyorder/pkg/buffer"
	"github.com/chaisql/keyorder/types"
	"golang.org/x/exp/constraints"
)

// FixedTypes lists the types encoded with the signed fixed-width variant.
var FixedTypes = []types.Type{
	types.TypeTinyint,
	types.TypeSmallint,
	types.TypeInteger,
	types.TypeBigint,
	types.TypeTimestamp,
}

// UnsupportedTypes lists the types that have no comparable encoding.
var UnsupportedTypes = []types.Type{
	types.TypeBoolean,
	types.TypeDouble,
	types.TypeText,
	types.TypeBlob,
}

// NewRand returns a random source for the test. The seed is logged
// so that a failure can be replayed.
func NewRand(t testing.TB) *rand.Rand {
	t.Helper()

	seed := time.Now().UnixNano()
	t.Logf("random seed: %d", seed)
	return rand.New(rand.NewSource(seed))
}

// RandomSigned returns a random integer spread across the whole range of T.
// One draw out of eight is a boundary value: min, max, -1, 0 or 1.
func RandomSigned[T constraints.Signed](r *rand.Rand, bits int) T {
	min := int64(-1) << (bits - 1)
	max := -(min + 1)

	if r.Intn(8) == 0 {
		edges := []int64{min, max, -1, 0, 1}
		return T(edges[r.Intn(len(edges))])
	}

	// shift a full 64 bit draw down to the width of T,
	// keeping the sign bit random
	x := int64(r.Uint64()) >> (64 - bits)
	if x < min || x > max {
		panic("random value out of range")
	}
	return T(x)
}

// RandomValue returns a random non-null value of the fixed-width type t.
func RandomValue(r *rand.Rand, t types.Type) types.Value {
	switch t {
	case types.TypeTinyint:
		return types.NewTinyintValue(RandomSigned[int8](r, 8))
	case types.TypeSmallint:
		return types.NewSmallintValue(RandomSigned[int16](r, 16))
	case types.TypeInteger:
		return types.NewIntegerValue(RandomSigned[int32](r, 32))
	case types.TypeBigint:
		return types.NewBigintValue(RandomSigned[int64](r, 64))
	case types.TypeTimestamp:
		// stay within the range supported by time.UnixMilli
		ms := RandomSigned[int64](r, 48)
		return types.NewTimestampValue(time.UnixMilli(ms))
	}

	panic("no random generator for type " + t.String())
}

// MinMax returns the lowest and highest values of the fixed-width integer type t.
func MinMax(t types.Type) (types.Value, types.Value) {
	switch t {
	case types.TypeTinyint:
		return types.NewTinyintValue(math.MinInt8), types.NewTinyintValue(math.MaxInt8)
	case types.TypeSmallint:
		return types.NewSmallintValue(math.MinInt16), types.NewSmallintValue(math.MaxInt16)
	case types.TypeInteger:
		return types.NewIntegerValue(math.MinInt32), types.NewIntegerValue(math.MaxInt32)
	case types.TypeBigint:
		return types.NewBigintValue(math.MinInt64), types.NewBigintValue(math.MaxInt64)
	}

	panic("no bounds for type " + t.String())
}

// Raw returns the native serialized form of v, as a single fragment view.
func Raw(t testing.TB, v types.Value) *buffer.View {
	t.Helper()

	b, err := types.Serialize(v)
	assert.NoError(t, err)
	if b == nil {
		return nil
	}
	return buffer.FromBytes(b)
}
