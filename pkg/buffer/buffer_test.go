package buffer_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/chaisql/keyorder/pkg/buffer"
	"github.com/stretchr/testify/require"
)

func readAll(t testing.TB, v *buffer.View) []byte {
	t.Helper()

	r := v.Reader()
	var out []byte
	for {
		require.Equal(t, v.Size()-len(out), r.Len())
		c, err := r.ReadByte()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, c)
	}
}

func TestView(t *testing.T) {
	data := []byte("hello fragmented world")

	tests := []struct {
		name string
		v    *buffer.View
	}{
		{"single", buffer.FromBytes(data)},
		{"split 1", buffer.Split(data, 1)},
		{"split 5", buffer.Split(data, 5)},
		{"split default", buffer.Split(data, 0)},
		{"with empty fragments", buffer.New(nil, data[:3], []byte{}, data[3:10], nil, data[10:])},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, len(data), test.v.Size())
			require.False(t, test.v.Empty())
			require.Equal(t, data, test.v.Bytes())
			require.Equal(t, data, readAll(t, test.v))

			for _, f := range test.v.Fragments() {
				require.NotEmpty(t, f)
			}

			short := make([]byte, 4)
			require.Equal(t, 4, test.v.CopyTo(short))
			require.Equal(t, data[:4], short)
		})
	}
}

func TestViewEmpty(t *testing.T) {
	for _, v := range []*buffer.View{buffer.FromBytes(nil), buffer.New(), buffer.Split(nil, 3), {}} {
		require.True(t, v.Empty())
		require.Zero(t, v.Size())
		require.Empty(t, v.Bytes())

		r := v.Reader()
		_, err := r.ReadByte()
		require.Equal(t, io.EOF, err)
	}
}

func TestSplitSharesMemory(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	v := buffer.Split(data, 2)
	require.Len(t, v.Fragments(), 2)

	data[2] = 9
	require.Equal(t, []byte{1, 2, 9, 4}, v.Bytes())
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "a", -1},
		{"abc", "abc", 0},
		{"abd", "abc", 1},
		{"ab", "abc", -1},
		{"\x80", "\x7f", 1},
		{"x", "ab", 1},
	}

	for _, test := range tests {
		a, b := []byte(test.a), []byte(test.b)
		require.Equal(t, bytes.Compare(a, b), test.want)

		for size := 1; size <= 3; size++ {
			got := buffer.Compare(buffer.Split(a, size), buffer.FromBytes(b))
			require.Equal(t, test.want, got, "Compare(%q, %q) fragment size %d", test.a, test.b, size)
		}
	}
}
