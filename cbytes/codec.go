package cbytes

import (
	"context"

	"github.com/chaisql/keyorder/pkg/buffer"
	"github.com/chaisql/keyorder/types"
	"golang.org/x/sync/errgroup"
)

// Encode returns the comparable form of raw, the native form of a value of type t.
// A nil raw returns nil. An empty raw returns an empty, non-nil Bytes.
// raw is only read.
func Encode(t types.Type, raw *buffer.View) (*Bytes, error) {
	if raw == nil {
		return nil, nil
	}

	s, err := StrategyFor(t)
	if err != nil {
		return nil, err
	}

	return encode(s, raw), nil
}

func encode(s Strategy, raw *buffer.View) *Bytes {
	b := make([]byte, s.EncodedSize(raw))
	if raw.Empty() {
		return &Bytes{b: b}
	}

	s.Encode(b, raw)
	return &Bytes{b: b}
}

// Decode returns the native form of the comparable bytes cb of type t.
// A nil or empty cb decodes to nil.
func Decode(t types.Type, cb *Bytes) ([]byte, error) {
	if cb.Len() == 0 {
		return nil, nil
	}

	s, err := StrategyFor(t)
	if err != nil {
		return nil, err
	}

	b := make([]byte, s.DecodedSize(cb.b))
	s.Decode(b, cb.b)
	return b, nil
}

// DecodeToValue decodes cb and deserializes it as a value of type t.
// Absent bytes return the null value of t.
func DecodeToValue(t types.Type, cb *Bytes) (types.Value, error) {
	raw, err := Decode(t, cb)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return types.NewNullValue(t), nil
	}

	return types.Deserialize(t, raw)
}

// FromValue serializes v and returns its comparable form.
// Nulls return nil without being serialized.
func FromValue(v types.Value) (*Bytes, error) {
	if types.IsNull(v) {
		return nil, nil
	}

	raw, err := types.Serialize(v)
	if err != nil {
		return nil, err
	}

	return Encode(v.Type(), buffer.FromBytes(raw))
}

// EncodeValues encodes every raw value of type t, using up to workers goroutines.
// The result is in the same order as raws. Nil entries stay nil.
// If workers <= 0, the number of goroutines is not limited.
func EncodeValues(ctx context.Context, t types.Type, raws []*buffer.View, workers int) ([]*Bytes, error) {
	s, err := StrategyFor(t)
	if err != nil {
		return nil, err
	}

	out := make([]*Bytes, len(raws))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i := range raws {
		i := i
		if raws[i] == nil {
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			out[i] = encode(s, raws[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
