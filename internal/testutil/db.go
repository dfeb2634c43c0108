package testutil

import (
	"context"
	"testing"

	"github.com/chaisql/keyorder/internal/kv"
	"github.com/chaisql/keyorder/internal/testutil/assert"
	"github.com/chaisql/keyorder/internal/tree"
	"github.com/chaisql/keyorder/types"
	"go.uber.org/zap/zaptest"
)

// NewEngine opens an in-memory engine, closed at the end of the test.
func NewEngine(t testing.TB) *kv.Engine {
	t.Helper()

	return NewEngineWithOptions(t, kv.Options{})
}

// NewEngineWithOptions opens an in-memory engine configured with opts.
// Logs go to the test output unless opts.Logger is set.
func NewEngineWithOptions(t testing.TB, opts kv.Options) *kv.Engine {
	t.Helper()

	opts.InMemory = true
	if opts.Logger == nil {
		opts.Logger = zaptest.NewLogger(t)
	}

	ng, err := kv.Open("", opts)
	assert.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, ng.Close())
	})

	return ng
}

// NewTestTx begins a writable transaction, rolled back at the end of the test.
func NewTestTx(t testing.TB, ng *kv.Engine) *kv.Transaction {
	t.Helper()

	tx, err := ng.Begin(context.Background(), kv.TxOptions{Writable: true})
	assert.NoError(t, err)

	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	return tx
}

// NewTestStore creates a store in a new writable transaction.
func NewTestStore(t testing.TB, name string) *kv.Store {
	t.Helper()

	tx := NewTestTx(t, NewEngine(t))

	assert.NoError(t, tx.CreateStore([]byte(name)))
	st, err := tx.GetStore([]byte(name))
	assert.NoError(t, err)

	return st
}

// NewTestTree creates a tree keyed by values of type typ.
func NewTestTree(t testing.TB, typ types.Type) *tree.Tree {
	t.Helper()

	return tree.New(NewTestStore(t, "test"), typ)
}
