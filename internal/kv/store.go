package kv

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

// A Store is a named key space of a transaction.
// Every key of a store is stored under the same prefix,
// which Pebble orders bytewise with the rest of the key.
type Store struct {
	tx     *Transaction
	name   []byte
	prefix []byte
}

// Name of the store.
func (s *Store) Name() string {
	return string(s.name)
}

func (s *Store) buildKey(k []byte) []byte {
	key := make([]byte, 0, len(s.prefix)+len(k))
	key = append(key, s.prefix...)
	return append(key, k...)
}

// upperBound is the first key following every key of the store.
func (s *Store) upperBound() []byte {
	k := s.buildKey(nil)
	k[len(k)-1] = 0xff
	return k
}

// Put stores a key value pair. If it already exists, it overrides it.
func (s *Store) Put(k, v []byte) error {
	if err := s.tx.checkWrite(); err != nil {
		return err
	}

	if len(k) == 0 {
		return errors.New("cannot store empty key")
	}

	if len(v) == 0 {
		return errors.New("cannot store empty value")
	}

	err := s.tx.batch.Set(s.buildKey(k), v, nil)
	if err != nil {
		return err
	}

	return s.tx.ensureBatchSize()
}

// Get returns a value associated with the given key. If not found, returns ErrKeyNotFound.
func (s *Store) Get(k []byte) ([]byte, error) {
	if err := s.tx.checkRead(); err != nil {
		return nil, err
	}

	return get(s.tx.reader, s.buildKey(k))
}

// Exists returns whether a key exists and is visible by the transaction.
func (s *Store) Exists(k []byte) (bool, error) {
	if err := s.tx.checkRead(); err != nil {
		return false, err
	}

	return exists(s.tx.reader, s.buildKey(k))
}

// Delete a record by key. If not found, returns ErrKeyNotFound.
func (s *Store) Delete(k []byte) error {
	if err := s.tx.checkWrite(); err != nil {
		return err
	}

	key := s.buildKey(k)
	ok, err := exists(s.tx.batch, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.WithStack(ErrKeyNotFound)
	}

	err = s.tx.batch.Delete(key, nil)
	if err != nil {
		return err
	}

	return s.tx.ensureBatchSize()
}

// Truncate deletes all the records of the store.
func (s *Store) Truncate() error {
	if err := s.tx.checkWrite(); err != nil {
		return err
	}

	it := s.tx.batch.NewIter(&pebble.IterOptions{
		LowerBound: s.buildKey(nil),
		UpperBound: s.upperBound(),
	})
	defer it.Close()

	for it.First(); it.Valid(); it.Next() {
		err := s.tx.batch.Delete(it.Key(), nil)
		if err != nil {
			return err
		}
	}

	return it.Error()
}

// Iterator returns an iterator over the keys k of the store
// such that lower <= k < upper. A nil bound leaves that side open.
// The iterator must be positioned with First or Last before use.
func (s *Store) Iterator(lower, upper []byte) (*Iterator, error) {
	if err := s.tx.checkRead(); err != nil {
		return nil, err
	}

	opts := pebble.IterOptions{
		LowerBound: s.buildKey(lower),
		UpperBound: s.upperBound(),
	}
	if upper != nil {
		opts.UpperBound = s.buildKey(upper)
	}

	return &Iterator{
		it:        s.tx.reader.NewIter(&opts),
		prefixLen: len(s.prefix),
	}, nil
}

// Iterator iterates over the keys of a store in bytewise order.
type Iterator struct {
	it        *pebble.Iterator
	prefixLen int
}

func (it *Iterator) First() bool { return it.it.First() }
func (it *Iterator) Last() bool  { return it.it.Last() }
func (it *Iterator) Next() bool  { return it.it.Next() }
func (it *Iterator) Prev() bool  { return it.it.Prev() }
func (it *Iterator) Valid() bool { return it.it.Valid() }

// Key returns the current key, without the store prefix.
// It is only valid until the next move of the iterator.
func (it *Iterator) Key() []byte {
	return it.it.Key()[it.prefixLen:]
}

// Value returns the current value.
// It is only valid until the next move of the iterator.
func (it *Iterator) Value() []byte {
	return it.it.Value()
}

func (it *Iterator) Error() error {
	return it.it.Error()
}

func (it *Iterator) Close() error {
	return it.it.Close()
}
