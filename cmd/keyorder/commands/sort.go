package commands

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/chaisql/keyorder/cbytes"
	"github.com/chaisql/keyorder/internal/kv"
	"github.com/chaisql/keyorder/internal/tree"
	"github.com/chaisql/keyorder/types"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const sortStore = "sort"

// NewSortCommand returns a cli.Command for "keyorder sort".
func NewSortCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "sort",
		Usage:     "Sorts values by their comparable form",
		UsageText: `keyorder sort --type TYPE [--db PATH] [--json] -- VALUE...`,
		Description: `The sort command prints the values in ascending order, one per line. NULL values come first.

$ keyorder sort --type integer -- 3 -1 null 0
NULL
-1
0
3

With --db, the values are loaded into a Pebble database at PATH and printed
in the order the database iterates over them. The database is created if it doesn't exist.

$ keyorder sort --type integer --db mydb --json '[3, -1, null, "0"]'`,
		Flags: []cli.Flag{
			typeFlag(),
			jsonFlag(),
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path of the Pebble database used to sort the values.",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of goroutines encoding the values loaded with --db.",
			},
		},
	}

	cmd.Action = func(c *cli.Context) error {
		t, err := parseType(c)
		if err != nil {
			return err
		}

		values, err := readValues(c, t)
		if err != nil {
			return err
		}

		if path := c.String("db"); path != "" {
			return sortWithTree(c.Context, c.App.Writer, logger(c), path, c.Int("workers"), t, values)
		}

		sorted, err := sortValues(values)
		if err != nil {
			return err
		}

		for _, v := range sorted {
			fmt.Fprintln(c.App.Writer, v)
		}
		return nil
	}

	return &cmd
}

type encodedValue struct {
	v  types.Value
	cb *cbytes.Bytes
}

// sortValues sorts values by their comparable form.
// Equal values keep their relative order.
func sortValues(values []types.Value) ([]types.Value, error) {
	list := make([]encodedValue, len(values))
	for i, v := range values {
		cb, err := cbytes.FromValue(v)
		if err != nil {
			return nil, err
		}
		list[i] = encodedValue{v: v, cb: cb}
	}

	slices.SortStableFunc(list, func(a, b encodedValue) int {
		return cbytes.Compare(a.cb, b.cb)
	})

	sorted := make([]types.Value, len(list))
	for i := range list {
		sorted[i] = list[i].v
	}
	return sorted, nil
}

// sortWithTree loads the values into a tree and prints them back in
// iteration order. The tree has no duplicate keys, so each key stores the
// number of times its value was given. Nulls cannot be keys and are printed first.
func sortWithTree(ctx context.Context, w io.Writer, log *zap.Logger, path string, workers int, t types.Type, values []types.Value) (err error) {
	ng, err := kv.Open(path, kv.Options{Logger: log})
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, ng.Close())
	}()

	tx, err := ng.Begin(ctx, kv.TxOptions{Writable: true})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.DropStore([]byte(sortStore))
	if err != nil && !errors.Is(err, kv.ErrStoreNotFound) {
		return err
	}
	err = tx.CreateStore([]byte(sortStore))
	if err != nil {
		return err
	}
	st, err := tx.GetStore([]byte(sortStore))
	if err != nil {
		return err
	}

	tr := tree.New(st, t)
	tr.Options.Workers = workers

	var nulls int
	var keys []types.Value
	var counts []int
	index := make(map[string]int)
	for _, v := range values {
		if types.IsNull(v) {
			nulls++
			continue
		}

		cb, err := cbytes.FromValue(v)
		if err != nil {
			return err
		}

		i, ok := index[cb.String()]
		if !ok {
			i = len(keys)
			index[cb.String()] = i
			keys = append(keys, v)
			counts = append(counts, 0)
		}
		counts[i]++
	}

	counters := make([][]byte, len(keys))
	for i, n := range counts {
		counters[i] = strconv.AppendInt(nil, int64(n), 10)
	}

	err = tr.PutBatch(ctx, keys, counters)
	if err != nil {
		return err
	}
	log.Debug("values loaded", zap.String("path", path), zap.Int("keys", len(keys)), zap.Int("nulls", nulls))

	for i := 0; i < nulls; i++ {
		fmt.Fprintln(w, types.NewNullValue(t))
	}

	err = tr.IterateOnRange(nil, false, func(k types.Value, v []byte) error {
		n, err := strconv.Atoi(string(v))
		if err != nil {
			return errors.Wrapf(err, "invalid counter for key %s", k)
		}

		for i := 0; i < n; i++ {
			fmt.Fprintln(w, k)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return tx.Commit()
}
