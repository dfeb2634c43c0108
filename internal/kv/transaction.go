package kv

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

const (
	separator   byte = 0x1F
	storeKey         = "__keyorder.store"
	storePrefix      = 's'
)

// A Transaction groups reads and writes over the stores of an engine.
// It is not safe for concurrent use.
type Transaction struct {
	ctx       context.Context
	ng        *Engine
	batch     *pebble.Batch
	reader    pebble.Reader
	writable  bool
	discarded bool
}

// Writable reports whether the transaction accepts writes.
func (t *Transaction) Writable() bool {
	return t.writable
}

// Rollback the transaction. Can be used safely after commit.
func (t *Transaction) Rollback() error {
	if t.discarded {
		return errors.WithStack(ErrTransactionDiscarded)
	}

	t.discarded = true

	return t.reader.Close()
}

// Commit the transaction.
// It fails if the context of the transaction was canceled.
func (t *Transaction) Commit() error {
	if t.discarded {
		return errors.WithStack(ErrTransactionDiscarded)
	}

	if !t.writable {
		return errors.WithStack(ErrTransactionReadOnly)
	}

	if err := t.ctx.Err(); err != nil {
		_ = t.Rollback()
		return err
	}

	t.discarded = true

	defer t.batch.Close()

	return t.batch.Commit(t.writeOptions())
}

func (t *Transaction) writeOptions() *pebble.WriteOptions {
	if t.ng.opts.Sync {
		return pebble.Sync
	}

	return pebble.NoSync
}

func (t *Transaction) checkRead() error {
	if t.discarded {
		return errors.WithStack(ErrTransactionDiscarded)
	}

	return nil
}

func (t *Transaction) checkWrite() error {
	if err := t.checkRead(); err != nil {
		return err
	}

	if !t.writable {
		return errors.WithStack(ErrTransactionReadOnly)
	}

	return nil
}

// ensureBatchSize flushes the batch once it grows past the configured size.
// Writes flushed this way are no longer undone by Rollback.
func (t *Transaction) ensureBatchSize() error {
	if t.batch.Len() < t.ng.opts.MaxBatchSize {
		return nil
	}

	err := t.batch.Commit(pebble.NoSync)
	if err != nil {
		return err
	}

	t.ng.log.Debug("intermediate batch commit")
	t.batch.Reset()

	return nil
}

func buildStoreKey(name []byte) []byte {
	key := make([]byte, 0, len(storeKey)+1+len(name))
	key = append(key, storeKey...)
	key = append(key, separator)
	key = append(key, name...)

	return key
}

func buildStorePrefixKey(name []byte) []byte {
	prefix := make([]byte, 0, len(name)+3)
	prefix = append(prefix, storePrefix)
	prefix = append(prefix, separator)
	prefix = append(prefix, name...)
	prefix = append(prefix, separator)

	return prefix
}

func validateStoreName(name []byte) error {
	if len(name) == 0 {
		return errors.New("store name cannot be empty")
	}

	for _, c := range name {
		if c == separator {
			return errors.Newf("invalid store name %q", name)
		}
	}

	return nil
}

// CreateStore creates a store.
// If the store already exists, returns ErrStoreAlreadyExists.
func (t *Transaction) CreateStore(name []byte) error {
	if err := t.checkWrite(); err != nil {
		return err
	}

	if err := validateStoreName(name); err != nil {
		return err
	}

	key := buildStoreKey(name)
	ok, err := exists(t.batch, key)
	if err != nil {
		return err
	}
	if ok {
		return errors.Wrapf(ErrStoreAlreadyExists, "%s", name)
	}

	return t.batch.Set(key, nil, nil)
}

// GetStore returns a store by name.
// If the store doesn't exist, returns ErrStoreNotFound.
func (t *Transaction) GetStore(name []byte) (*Store, error) {
	if err := t.checkRead(); err != nil {
		return nil, err
	}

	ok, err := exists(t.reader, buildStoreKey(name))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrapf(ErrStoreNotFound, "%s", name)
	}

	return &Store{
		tx:     t,
		name:   name,
		prefix: append(buildStorePrefixKey(name), 0),
	}, nil
}

// DropStore deletes the store and all its keys.
func (t *Transaction) DropStore(name []byte) error {
	if err := t.checkWrite(); err != nil {
		return err
	}

	s, err := t.GetStore(name)
	if err != nil {
		return err
	}

	err = s.Truncate()
	if err != nil {
		return err
	}

	return t.batch.Delete(buildStoreKey(name), nil)
}

// get returns a copy of the value associated with the given key.
// If not found, returns ErrKeyNotFound.
func get(r pebble.Reader, k []byte) ([]byte, error) {
	value, closer, err := r.Get(k)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, errors.WithStack(ErrKeyNotFound)
		}

		return nil, err
	}

	cp := make([]byte, len(value))
	copy(cp, value)

	err = closer.Close()
	if err != nil {
		return nil, err
	}

	return cp, nil
}

func exists(r pebble.Reader, k []byte) (bool, error) {
	_, closer, err := r.Get(k)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return false, nil
		}

		return false, err
	}

	err = closer.Close()
	if err != nil {
		return false, err
	}

	return true, nil
}
