// Package kv stores comparable keys in Pebble.
// Keys are compared bytewise: the comparable encoding makes their
// byte order match the order of the values they were built from.
package kv

import (
	"bytes"
	"context"

	"github.com/chaisql/keyorder/lib/pebbleutil"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"go.uber.org/zap"
)

const (
	// 10MB
	defaultMaxBatchSize = 10 * 1024 * 1024
)

// DefaultComparer orders keys bytewise.
var DefaultComparer = &pebble.Comparer{
	Compare:        bytes.Compare,
	Equal:          bytes.Equal,
	AbbreviatedKey: pebble.DefaultComparer.AbbreviatedKey,
	FormatKey:      pebble.DefaultComparer.FormatKey,
	Separator:      pebble.DefaultComparer.Separator,
	Successor:      pebble.DefaultComparer.Successor,
	// This name is part of the C++ Level-DB implementation's default file
	// format, and should not be changed.
	Name: "leveldb.BytewiseComparator",
}

// Options configures an Engine.
// The zero value opens an on-disk database without logging.
type Options struct {
	// InMemory keeps the whole database in memory. The path is ignored.
	InMemory bool
	// Logger receives the engine and Pebble logs. Nil discards them.
	Logger *zap.Logger
	// Sync forces commits to be synced to disk.
	Sync bool
	// MaxBatchSize is the size in bytes above which a write transaction
	// flushes its batch to the database. Defaults to 10MB.
	MaxBatchSize int
}

// Engine wraps a Pebble database.
type Engine struct {
	DB   *pebble.DB
	opts Options
	log  *zap.Logger
}

// Open creates or opens the database located at path.
func Open(path string, opts Options) (*Engine, error) {
	if opts.MaxBatchSize <= 0 {
		opts.MaxBatchSize = defaultMaxBatchSize
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	popts := pebble.Options{
		Comparer: DefaultComparer,
	}
	if opts.Logger != nil {
		popts.Logger = pebbleutil.NewLogger(opts.Logger)
	} else {
		popts.Logger = pebbleutil.NoopLogger{}
	}
	if opts.InMemory {
		popts.FS = vfs.NewMem()
		path = ""
	}

	db, err := pebble.Open(path, &popts)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open database at %q", path)
	}

	log.Info("database opened", zap.String("path", path), zap.Bool("in_memory", opts.InMemory))

	return &Engine{
		DB:   db,
		opts: opts,
		log:  log,
	}, nil
}

// Close the engine and underlying Pebble database.
func (e *Engine) Close() error {
	err := e.DB.Close()
	if err != nil {
		return err
	}

	e.log.Info("database closed")
	return nil
}

// TxOptions is used to configure a transaction upon creation.
type TxOptions struct {
	Writable bool
}

// Begin creates a transaction.
// Writable transactions use an indexed batch, read-only ones
// read from a snapshot of the database.
func (e *Engine) Begin(ctx context.Context, opts TxOptions) (*Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tx := Transaction{
		ctx:      ctx,
		ng:       e,
		writable: opts.Writable,
	}

	if opts.Writable {
		tx.batch = e.DB.NewIndexedBatch()
		tx.reader = tx.batch
	} else {
		tx.reader = e.DB.NewSnapshot()
	}

	return &tx, nil
}
