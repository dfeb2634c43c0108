package cbytes_test

import (
	"testing"

	"github.com/chaisql/keyorder/cbytes"
	"github.com/chaisql/keyorder/internal/testutil"
	"github.com/chaisql/keyorder/pkg/buffer"
	"github.com/chaisql/keyorder/types"
	"github.com/stretchr/testify/require"
)

// drain reads a view until the end of the stream.
func drain(t testing.TB, v *cbytes.View) []byte {
	t.Helper()

	var out []byte
	for {
		n := v.Next()
		if n == cbytes.EndOfStream {
			return out
		}
		require.True(t, n >= 0 && n <= 255, "byte out of range: %d", n)
		out = append(out, byte(n))
	}
}

func TestViewMatchesEncode(t *testing.T) {
	r := testutil.NewRand(t)

	for _, typ := range testutil.FixedTypes {
		t.Run(typ.String(), func(t *testing.T) {
			for i := 0; i < 200; i++ {
				raw, err := types.Serialize(testutil.RandomValue(r, typ))
				require.NoError(t, err)

				want, err := cbytes.Encode(typ, buffer.FromBytes(raw))
				require.NoError(t, err)

				// every fragmentation yields the same stream
				for size := 1; size <= len(raw); size++ {
					v, err := cbytes.OpenView(typ, buffer.Split(raw, size))
					require.NoError(t, err)
					require.Equal(t, want.AppendTo(nil), drain(t, v))
				}
			}
		})
	}
}

func TestViewFlipsFirstByteOnly(t *testing.T) {
	// the sign bit is set on every byte of the raw value
	v, err := cbytes.OpenView(types.TypeInteger, buffer.Split([]byte{0x80, 0x80, 0x80, 0x80}, 1))
	require.NoError(t, err)

	require.Equal(t, 0x00, v.Next())
	require.Equal(t, 0x80, v.Next())
	require.Equal(t, 0x80, v.Next())
	require.Equal(t, 0x80, v.Next())
	require.Equal(t, cbytes.EndOfStream, v.Next())
}

func TestViewPastEndOfStream(t *testing.T) {
	v, err := cbytes.OpenView(types.TypeTinyint, buffer.FromBytes([]byte{0x01}))
	require.NoError(t, err)

	require.Equal(t, 0x81, v.Next())
	require.Equal(t, cbytes.EndOfStream, v.Next())
	require.Panics(t, func() { v.Next() })
}

func TestViewEmpty(t *testing.T) {
	v, err := cbytes.OpenView(types.TypeInteger, buffer.FromBytes(nil))
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, cbytes.EndOfStream, v.Next())
}

func TestCompareViews(t *testing.T) {
	open := func(x int32) *cbytes.View {
		v, err := cbytes.OpenView(types.TypeInteger, testutil.Raw(t, types.NewIntegerValue(x)))
		require.NoError(t, err)
		return v
	}

	tests := []struct {
		name string
		a, b func() *cbytes.View
		want int
	}{
		{"nil nil", func() *cbytes.View { return nil }, func() *cbytes.View { return nil }, 0},
		{"nil first", func() *cbytes.View { return nil }, func() *cbytes.View { return open(-2147483648) }, -1},
		{"nil last", func() *cbytes.View { return open(-2147483648) }, func() *cbytes.View { return nil }, 1},
		{"negative below positive", func() *cbytes.View { return open(-1) }, func() *cbytes.View { return open(0) }, -1},
		{"equal", func() *cbytes.View { return open(42) }, func() *cbytes.View { return open(42) }, 0},
		{"greater", func() *cbytes.View { return open(256) }, func() *cbytes.View { return open(255) }, 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, cbytes.CompareViews(test.a(), test.b()))
		})
	}

	t.Run("absent raw opens no view", func(t *testing.T) {
		v, err := cbytes.OpenView(types.TypeInteger, nil)
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("prefix sorts first", func(t *testing.T) {
		// same variant, different widths: only the stream length differs
		a, err := cbytes.OpenView(types.TypeBigint, buffer.FromBytes([]byte{0x01, 0x02}))
		require.NoError(t, err)
		b, err := cbytes.OpenView(types.TypeBigint, buffer.FromBytes([]byte{0x01, 0x02, 0x03}))
		require.NoError(t, err)
		require.Equal(t, -1, cbytes.CompareViews(a, b))
	})
}

func TestCrossPathAgreement(t *testing.T) {
	r := testutil.NewRand(t)

	for _, typ := range testutil.FixedTypes {
		t.Run(typ.String(), func(t *testing.T) {
			for i := 0; i < 1000; i++ {
				a, b := testutil.RandomValue(r, typ), testutil.RandomValue(r, typ)
				if i%50 == 0 {
					b = a
				}
				rawA, rawB := testutil.Raw(t, a), testutil.Raw(t, b)

				ca, err := cbytes.Encode(typ, rawA)
				require.NoError(t, err)
				cb, err := cbytes.Encode(typ, rawB)
				require.NoError(t, err)

				va, err := cbytes.OpenView(typ, rawA)
				require.NoError(t, err)
				vb, err := cbytes.OpenView(typ, rawB)
				require.NoError(t, err)

				want := types.Compare(a, b)
				require.Equal(t, want, cbytes.Compare(ca, cb), "%s vs %s", a, b)
				require.Equal(t, want, cbytes.CompareViews(va, vb), "%s vs %s", a, b)

				got, err := cbytes.CompareRaw(typ, rawA, rawB)
				require.NoError(t, err)
				require.Equal(t, want, got)
				require.Equal(t, want == 0, ca.Equal(cb))
			}
		})
	}

	t.Run("nulls", func(t *testing.T) {
		raw := testutil.Raw(t, types.NewIntegerValue(0))

		got, err := cbytes.CompareRaw(types.TypeInteger, nil, raw)
		require.NoError(t, err)
		require.Equal(t, -1, got)

		got, err = cbytes.CompareRaw(types.TypeInteger, raw, nil)
		require.NoError(t, err)
		require.Equal(t, 1, got)

		got, err = cbytes.CompareRaw(types.TypeInteger, nil, nil)
		require.NoError(t, err)
		require.Equal(t, 0, got)
	})
}
