package cbytes_test

import (
	"bytes"
	"context"
	"encoding/hex"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/chaisql/keyorder/cbytes"
	"github.com/chaisql/keyorder/internal/testutil"
	"github.com/chaisql/keyorder/internal/testutil/assert"
	"github.com/chaisql/keyorder/pkg/buffer"
	"github.com/chaisql/keyorder/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func mustHex(t testing.TB, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestEncodeSignedFixed(t *testing.T) {
	tests := []struct {
		name  string
		value types.Value
		raw   string
		want  string
	}{
		{"tinyint min", types.NewTinyintValue(math.MinInt8), "80", "00"},
		{"tinyint -1", types.NewTinyintValue(-1), "ff", "7f"},
		{"tinyint 0", types.NewTinyintValue(0), "00", "80"},
		{"tinyint max", types.NewTinyintValue(math.MaxInt8), "7f", "ff"},
		{"smallint min", types.NewSmallintValue(math.MinInt16), "8000", "0000"},
		{"smallint 1", types.NewSmallintValue(1), "0001", "8001"},
		{"smallint 256", types.NewSmallintValue(256), "0100", "8100"},
		{"integer -2", types.NewIntegerValue(-2), "fffffffe", "7ffffffe"},
		{"integer max", types.NewIntegerValue(math.MaxInt32), "7fffffff", "ffffffff"},
		{"bigint -1", types.NewBigintValue(-1), "ffffffffffffffff", "7fffffffffffffff"},
		{"bigint min", types.NewBigintValue(math.MinInt64), "8000000000000000", "0000000000000000"},
		{"timestamp epoch", types.NewTimestampValue(time.UnixMilli(0)), "0000000000000000", "8000000000000000"},
		{"timestamp before epoch", types.NewTimestampValue(time.UnixMilli(-1)), "ffffffffffffffff", "7fffffffffffffff"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			raw, err := types.Serialize(test.value)
			require.NoError(t, err)
			require.Equal(t, mustHex(t, test.raw), raw)

			got, err := cbytes.Encode(test.value.Type(), buffer.FromBytes(raw))
			require.NoError(t, err)
			require.Equal(t, test.want, got.String())
			require.Equal(t, len(raw), got.Len())

			// the input must be left untouched
			require.Equal(t, mustHex(t, test.raw), raw)

			dec, err := cbytes.Decode(test.value.Type(), got)
			require.NoError(t, err)
			require.Equal(t, raw, dec)
		})
	}
}

func TestEncodeInt32Ordering(t *testing.T) {
	values := []int32{math.MinInt32, -1, 0, 1, math.MaxInt32}

	var encoded []*cbytes.Bytes
	for i := len(values) - 1; i >= 0; i-- {
		raw, err := types.Serialize(types.NewIntegerValue(values[i]))
		require.NoError(t, err)

		cb, err := cbytes.Encode(types.TypeInteger, buffer.FromBytes(raw))
		require.NoError(t, err)
		require.Len(t, cb.AppendTo(nil), 4)

		// only the top bit of the first byte differs from the native form
		enc := cb.AppendTo(nil)
		require.Equal(t, raw[0]^0x80, enc[0])
		require.Equal(t, raw[1:], enc[1:])

		encoded = append(encoded, cb)
	}

	sort.Slice(encoded, func(i, j int) bool {
		return bytes.Compare(encoded[i].AppendTo(nil), encoded[j].AppendTo(nil)) < 0
	})

	var got []int32
	for _, cb := range encoded {
		v, err := cbytes.DecodeToValue(types.TypeInteger, cb)
		require.NoError(t, err)
		got = append(got, int32(v.(types.IntegerValue)))
	}

	require.Equal(t, values, got)
}

func TestRoundTrip(t *testing.T) {
	r := testutil.NewRand(t)

	for _, typ := range testutil.FixedTypes {
		t.Run(typ.String(), func(t *testing.T) {
			for i := 0; i < 1000; i++ {
				v := testutil.RandomValue(r, typ)

				cb, err := cbytes.FromValue(v)
				require.NoError(t, err)
				require.Equal(t, typ.Width(), cb.Len())

				got, err := cbytes.DecodeToValue(typ, cb)
				require.NoError(t, err)
				require.Equal(t, v, got)
			}
		})
	}
}

func TestOrderPreservation(t *testing.T) {
	r := testutil.NewRand(t)

	for _, typ := range testutil.FixedTypes {
		t.Run(typ.String(), func(t *testing.T) {
			values := make([]types.Value, 500)
			for i := range values {
				values[i] = testutil.RandomValue(r, typ)
			}

			byValue := append([]types.Value(nil), values...)
			sort.SliceStable(byValue, func(i, j int) bool {
				return types.Compare(byValue[i], byValue[j]) < 0
			})

			type pair struct {
				v  types.Value
				cb *cbytes.Bytes
			}
			pairs := make([]pair, len(values))
			for i, v := range values {
				cb, err := cbytes.FromValue(v)
				require.NoError(t, err)
				pairs[i] = pair{v, cb}
			}
			sort.SliceStable(pairs, func(i, j int) bool {
				return cbytes.Compare(pairs[i].cb, pairs[j].cb) < 0
			})

			byBytes := make([]types.Value, len(pairs))
			for i, p := range pairs {
				byBytes[i] = p.v
			}

			if diff := cmp.Diff(byValue, byBytes, cmp.Comparer(func(a, b types.Value) bool {
				return types.Compare(a, b) == 0
			})); diff != "" {
				t.Fatalf("mismatched order (-value +bytes):\n%s", diff)
			}
		})
	}
}

func TestBoundaries(t *testing.T) {
	for _, typ := range []types.Type{types.TypeTinyint, types.TypeSmallint, types.TypeInteger, types.TypeBigint} {
		t.Run(typ.String(), func(t *testing.T) {
			min, max := testutil.MinMax(typ)
			minusOne, err := types.ParseValue(typ, "-1")
			require.NoError(t, err)
			zero, err := types.ParseValue(typ, "0")
			require.NoError(t, err)

			enc := func(v types.Value) *cbytes.Bytes {
				cb, err := cbytes.FromValue(v)
				require.NoError(t, err)
				return cb
			}

			lowest := enc(min)
			require.Equal(t, bytes.Repeat([]byte{0x00}, typ.Width()), lowest.AppendTo(nil))
			highest := enc(max)
			require.Equal(t, bytes.Repeat([]byte{0xff}, typ.Width()), highest.AppendTo(nil))

			// -1 sorts immediately below 0: they are adjacent byte strings
			a, b := enc(minusOne).AppendTo(nil), enc(zero).AppendTo(nil)
			require.Equal(t, -1, bytes.Compare(a, b))
			require.Equal(t, byte(0x7f), a[0])
			require.Equal(t, byte(0x80), b[0])
			require.Equal(t, bytes.Repeat([]byte{0xff}, typ.Width()-1), a[1:])
			require.Equal(t, bytes.Repeat([]byte{0x00}, typ.Width()-1), b[1:])
		})
	}
}

func TestFragmentedInput(t *testing.T) {
	raw := mustHex(t, "fedcba9876543210")
	want, err := cbytes.Encode(types.TypeBigint, buffer.FromBytes(raw))
	require.NoError(t, err)

	for size := 1; size <= len(raw); size++ {
		got, err := cbytes.Encode(types.TypeBigint, buffer.Split(raw, size))
		require.NoError(t, err)
		require.True(t, want.Equal(got), "fragment size %d", size)
	}

	got, err := cbytes.Encode(types.TypeBigint, buffer.New(raw[:3], nil, raw[3:5], []byte{}, raw[5:]))
	require.NoError(t, err)
	require.True(t, want.Equal(got))
}

func TestNullPropagation(t *testing.T) {
	t.Run("Encode absent", func(t *testing.T) {
		cb, err := cbytes.Encode(types.TypeInteger, nil)
		require.NoError(t, err)
		require.Nil(t, cb)
	})

	t.Run("Encode empty", func(t *testing.T) {
		cb, err := cbytes.Encode(types.TypeInteger, buffer.FromBytes(nil))
		require.NoError(t, err)
		require.NotNil(t, cb)
		require.Zero(t, cb.Len())

		raw, err := cbytes.Decode(types.TypeInteger, cb)
		require.NoError(t, err)
		require.Nil(t, raw)
	})

	t.Run("FromValue null", func(t *testing.T) {
		for _, typ := range types.Types {
			cb, err := cbytes.FromValue(types.NewNullValue(typ))
			require.NoError(t, err)
			require.Nil(t, cb)
		}

		cb, err := cbytes.FromValue(nil)
		require.NoError(t, err)
		require.Nil(t, cb)
	})

	t.Run("Decode absent", func(t *testing.T) {
		raw, err := cbytes.Decode(types.TypeInteger, nil)
		require.NoError(t, err)
		require.Nil(t, raw)
	})

	t.Run("DecodeToValue absent", func(t *testing.T) {
		for _, typ := range testutil.FixedTypes {
			v, err := cbytes.DecodeToValue(typ, nil)
			require.NoError(t, err)
			require.True(t, types.IsNull(v))
			require.Equal(t, typ, v.Type())
		}
	})
}

func TestNullOrdering(t *testing.T) {
	min, _ := testutil.MinMax(types.TypeInteger)
	lowest, err := cbytes.FromValue(min)
	require.NoError(t, err)
	empty, err := cbytes.Encode(types.TypeInteger, buffer.FromBytes(nil))
	require.NoError(t, err)

	require.Equal(t, -1, cbytes.Compare(nil, lowest))
	require.Equal(t, 1, cbytes.Compare(lowest, nil))
	require.Equal(t, -1, cbytes.Compare(nil, empty))
	require.Equal(t, 0, cbytes.Compare(nil, nil))
	require.Equal(t, "null", (*cbytes.Bytes)(nil).String())
}

func TestUnsupportedTypes(t *testing.T) {
	for _, typ := range testutil.UnsupportedTypes {
		t.Run(typ.String(), func(t *testing.T) {
			raw := buffer.FromBytes([]byte{1})

			cb, err := cbytes.Encode(typ, raw)
			assert.ErrorIs(t, err, cbytes.ErrUnsupportedType)
			require.Nil(t, cb)
			require.Contains(t, err.Error(), "not implemented for type "+typ.String())

			// empty input still needs a strategy to size the output
			cb, err = cbytes.Encode(typ, buffer.FromBytes(nil))
			assert.ErrorIs(t, err, cbytes.ErrUnsupportedType)
			require.Nil(t, cb)

			_, err = cbytes.Decode(typ, cbytes.FromEncoded([]byte{1}))
			assert.ErrorIs(t, err, cbytes.ErrUnsupportedType)

			_, err = cbytes.DecodeToValue(typ, cbytes.FromEncoded([]byte{1}))
			assert.ErrorIs(t, err, cbytes.ErrUnsupportedType)

			v, err := cbytes.OpenView(typ, raw)
			assert.ErrorIs(t, err, cbytes.ErrUnsupportedType)
			require.Nil(t, v)

			_, err = cbytes.CompareRaw(typ, raw, raw)
			assert.ErrorIs(t, err, cbytes.ErrUnsupportedType)

			_, err = cbytes.EncodeValues(context.Background(), typ, []*buffer.View{raw}, 1)
			assert.ErrorIs(t, err, cbytes.ErrUnsupportedType)
		})
	}

	t.Run("FromValue", func(t *testing.T) {
		for _, v := range []types.Value{
			types.NewTextValue("a"),
			types.NewBlobValue([]byte{1}),
			types.NewBooleanValue(true),
			types.NewDoubleValue(1.5),
		} {
			cb, err := cbytes.FromValue(v)
			assert.ErrorIs(t, err, cbytes.ErrUnsupportedType)
			require.Nil(t, cb)
		}
	})
}

func TestEncodeValues(t *testing.T) {
	r := testutil.NewRand(t)

	raws := make([]*buffer.View, 200)
	for i := range raws {
		if i%10 == 0 {
			continue
		}
		raws[i] = testutil.Raw(t, testutil.RandomValue(r, types.TypeBigint))
	}

	for _, workers := range []int{0, 1, 4} {
		got, err := cbytes.EncodeValues(context.Background(), types.TypeBigint, raws, workers)
		require.NoError(t, err)
		require.Len(t, got, len(raws))

		for i, raw := range raws {
			want, err := cbytes.Encode(types.TypeBigint, raw)
			require.NoError(t, err)
			require.True(t, want.Equal(got[i]), "index %d", i)
		}
	}

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := cbytes.EncodeValues(ctx, types.TypeBigint, raws, 2)
		require.ErrorIs(t, err, context.Canceled)
	})
}
