package tree

import (
	"bytes"
	"context"
	"runtime"

	"github.com/chaisql/keyorder/cbytes"
	"github.com/chaisql/keyorder/internal/kv"
	"github.com/chaisql/keyorder/pkg/buffer"
	"github.com/chaisql/keyorder/types"
	"github.com/cockroachdb/errors"
)

var (
	// ErrNullKey is returned when a key is null.
	ErrNullKey = errors.New("key cannot be null")

	// ErrTypeMismatch is returned when a key doesn't have the type of the tree.
	ErrTypeMismatch = errors.New("key type mismatch")
)

// valueTag prefixes every stored value so that empty values
// can be stored.
const valueTag byte = 0x01

// A Tree is an abstraction over a k-v store that allows
// manipulating data using keys of the type system.
// Keys are stored in their comparable form, which makes the
// store iterate over them in the natural order of their values.
// A Tree doesn't support duplicate keys.
type Tree struct {
	Store   *kv.Store
	Type    types.Type
	Options Options
}

// Options of a tree.
type Options struct {
	// Workers is the number of goroutines used by PutBatch to
	// encode keys. Defaults to GOMAXPROCS.
	Workers int
}

// New returns a tree whose keys are values of type keyType.
func New(store *kv.Store, keyType types.Type) *Tree {
	return &Tree{
		Store: store,
		Type:  keyType,
	}
}

func (t *Tree) check(key types.Value) error {
	if types.IsNull(key) {
		return errors.WithStack(ErrNullKey)
	}

	if key.Type() != t.Type {
		return errors.Wrapf(ErrTypeMismatch, "expected %s, got %s", t.Type, key.Type())
	}

	return nil
}

func (t *Tree) encodeKey(key types.Value) ([]byte, error) {
	if err := t.check(key); err != nil {
		return nil, err
	}

	cb, err := cbytes.FromValue(key)
	if err != nil {
		return nil, err
	}

	return cb.AppendTo(nil), nil
}

func (t *Tree) decodeKey(k []byte) (types.Value, error) {
	return cbytes.DecodeToValue(t.Type, cbytes.FromEncoded(k))
}

func encodeValue(v []byte) []byte {
	enc := make([]byte, 0, len(v)+1)
	enc = append(enc, valueTag)
	return append(enc, v...)
}

// Put adds or replaces a key-value combination to the tree.
// If the key already exists, its value will be replaced by
// the given value.
func (t *Tree) Put(key types.Value, value []byte) error {
	k, err := t.encodeKey(key)
	if err != nil {
		return err
	}

	return t.Store.Put(k, encodeValue(value))
}

// PutBatch puts every key with the value of the same index.
// Keys are encoded concurrently, then written in order.
func (t *Tree) PutBatch(ctx context.Context, keys []types.Value, values [][]byte) error {
	if len(keys) != len(values) {
		return errors.Newf("got %d keys and %d values", len(keys), len(values))
	}

	raws := make([]*buffer.View, len(keys))
	for i, key := range keys {
		if err := t.check(key); err != nil {
			return errors.Wrapf(err, "key %d", i)
		}

		b, err := types.Serialize(key)
		if err != nil {
			return err
		}
		raws[i] = buffer.FromBytes(b)
	}

	workers := t.Options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	encoded, err := cbytes.EncodeValues(ctx, t.Type, raws, workers)
	if err != nil {
		return err
	}

	for i, cb := range encoded {
		err = t.Store.Put(cb.AppendTo(nil), encodeValue(values[i]))
		if err != nil {
			return err
		}
	}

	return nil
}

// Get a key from the tree. If the key doesn't exist,
// it returns kv.ErrKeyNotFound.
func (t *Tree) Get(key types.Value) ([]byte, error) {
	k, err := t.encodeKey(key)
	if err != nil {
		return nil, err
	}

	v, err := t.Store.Get(k)
	if err != nil {
		return nil, err
	}

	return v[1:], nil
}

// Exists returns true if the key exists in the tree.
func (t *Tree) Exists(key types.Value) (bool, error) {
	k, err := t.encodeKey(key)
	if err != nil {
		return false, err
	}

	return t.Store.Exists(k)
}

// Delete a key from the tree. If the key doesn't exist,
// it returns kv.ErrKeyNotFound.
func (t *Tree) Delete(key types.Value) error {
	k, err := t.encodeKey(key)
	if err != nil {
		return err
	}

	return t.Store.Delete(k)
}

// Truncate the tree.
func (t *Tree) Truncate() error {
	return t.Store.Truncate()
}

// A Range of keys to iterate on.
// By default, Min and Max are inclusive.
// If Exclusive is true, Min and Max are excluded
// from the results.
// A nil Min or Max leaves that side of the range open.
type Range struct {
	Min, Max  types.Value
	Exclusive bool
}

// bounds translates the range into store bounds.
// All keys of a tree have the same length, so appending a
// zero byte to a key gives a bound that sorts right after it
// and before any other key.
func (t *Tree) bounds(rng *Range) (lower, upper []byte, err error) {
	if rng.Min != nil {
		lower, err = t.encodeKey(rng.Min)
		if err != nil {
			return nil, nil, err
		}
		if rng.Exclusive {
			lower = append(lower, 0)
		}
	}

	if rng.Max != nil {
		upper, err = t.encodeKey(rng.Max)
		if err != nil {
			return nil, nil, err
		}
		if !rng.Exclusive {
			upper = append(upper, 0)
		}
	}

	return lower, upper, nil
}

// IterateOnRange iterates on all keys that are in the given range.
// Keys are returned in the order of their values, or in reverse order
// if reverse is true.
// The value passed to fn is only valid during the call.
func (t *Tree) IterateOnRange(rng *Range, reverse bool, fn func(key types.Value, value []byte) error) error {
	if rng == nil {
		rng = &Range{}
	}

	lower, upper, err := t.bounds(rng)
	if err != nil {
		return err
	}
	if lower != nil && upper != nil && bytes.Compare(lower, upper) >= 0 {
		return nil
	}

	it, err := t.Store.Iterator(lower, upper)
	if err != nil {
		return err
	}
	defer it.Close()

	if !reverse {
		it.First()
	} else {
		it.Last()
	}

	for it.Valid() {
		k, err := t.decodeKey(it.Key())
		if err != nil {
			return err
		}

		err = fn(k, it.Value()[1:])
		if err != nil {
			return err
		}

		if !reverse {
			it.Next()
		} else {
			it.Prev()
		}
	}

	return it.Error()
}
