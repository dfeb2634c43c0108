package commands

import (
	"fmt"

	"github.com/chaisql/keyorder/cbytes"
	"github.com/chaisql/keyorder/types"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// NewCompareCommand returns a cli.Command for "keyorder compare".
func NewCompareCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "compare",
		Usage:     "Compares two values through their comparable form",
		UsageText: `keyorder compare --type TYPE [--json] -- A B`,
		Description: `The compare command prints -1, 0 or 1 depending on whether A sorts before, with or after B.
The result is computed on the encoded bytes and on the streaming views of both values,
and the command fails if they disagree. NULL sorts before any other value.

$ keyorder compare --type bigint -- -5 3
-1`,
		Flags: []cli.Flag{
			typeFlag(),
			jsonFlag(),
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
		if len(values) != 2 {
			return errors.Newf("compare expects 2 values, got %d", len(values))
		}

		res, err := compare(t, values[0], values[1])
		if err != nil {
			return err
		}

		logger(c).Debug("compared values",
			zap.Stringer("a", values[0]),
			zap.Stringer("b", values[1]),
			zap.Int("result", res),
		)
		fmt.Fprintln(c.App.Writer, res)
		return nil
	}

	return &cmd
}

// compare returns the order of a and b after checking that the
// encoded and streaming comparisons agree.
func compare(t types.Type, a, b types.Value) (int, error) {
	ca, err := cbytes.FromValue(a)
	if err != nil {
		return 0, err
	}
	cb, err := cbytes.FromValue(b)
	if err != nil {
		return 0, err
	}

	ra, err := rawView(a)
	if err != nil {
		return 0, err
	}
	rb, err := rawView(b)
	if err != nil {
		return 0, err
	}

	encoded := cbytes.Compare(ca, cb)
	streamed, err := cbytes.CompareRaw(t, ra, rb)
	if err != nil {
		return 0, err
	}

	if encoded != streamed {
		return 0, errors.AssertionFailedf("comparison of %s and %s disagrees: encoded %d, streamed %d", a, b, encoded, streamed)
	}

	return encoded, nil
}
