package commands

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/chaisql/keyorder/cbytes"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// NewEncodeCommand returns a cli.Command for "keyorder encode".
func NewEncodeCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "encode",
		Usage:     "Prints the comparable form of values",
		UsageText: `keyorder encode --type TYPE [--json] -- VALUE...`,
		Description: `The encode command prints each value followed by a tab and its comparable form in hexadecimal.
NULL values have no comparable form and are printed as null.

$ keyorder encode --type integer -- -1 0 null
-1	7fffffff
0	80000000
NULL	null`,
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

		log := logger(c)
		for _, v := range values {
			cb, err := cbytes.FromValue(v)
			if err != nil {
				return err
			}

			log.Debug("encoded value", zap.Stringer("value", v), zap.Int("size", cb.Len()))
			fmt.Fprintf(c.App.Writer, "%s\t%s\n", v, cb)
		}

		return nil
	}

	return &cmd
}

// NewDecodeCommand returns a cli.Command for "keyorder decode".
func NewDecodeCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "decode",
		Usage:     "Prints the values of comparable forms",
		UsageText: `keyorder decode --type TYPE HEX...`,
		Description: `The decode command reads comparable forms in hexadecimal and prints the values they encode.
The literal null decodes to NULL.

$ keyorder decode --type smallint 7fff 8001
-1
1`,
		Flags: []cli.Flag{
			typeFlag(),
		},
	}

	cmd.Action = func(c *cli.Context) error {
		t, err := parseType(c)
		if err != nil {
			return err
		}

		for _, arg := range c.Args().Slice() {
			var cb *cbytes.Bytes
			if !strings.EqualFold(arg, "null") {
				b, err := hex.DecodeString(arg)
				if err != nil {
					return errors.Wrapf(err, "invalid hexadecimal %q", arg)
				}
				cb = cbytes.FromEncoded(b)
			}

			v, err := cbytes.DecodeToValue(t, cb)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, v)
		}

		return nil
	}

	return &cmd
}
