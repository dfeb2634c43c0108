package commands

import (
	"github.com/buger/jsonparser"
	"github.com/chaisql/keyorder/pkg/buffer"
	"github.com/chaisql/keyorder/types"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

func typeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "type",
		Aliases:  []string{"t"},
		Usage:    "Type of the values: tinyint, smallint, integer, bigint or timestamp.",
		Required: true,
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "json",
		Aliases: []string{"j"},
		Usage:   "Read the values from a single JSON array argument.",
	}
}

func parseType(c *cli.Context) (types.Type, error) {
	return types.ParseType(c.String("type"))
}

// readValues parses the arguments of the command as values of type t.
// With --json, the only argument is a JSON array whose elements are
// literals, numbers or null.
func readValues(c *cli.Context, t types.Type) ([]types.Value, error) {
	if !c.Bool("json") {
		values := make([]types.Value, 0, c.NArg())
		for _, arg := range c.Args().Slice() {
			v, err := types.ParseValue(t, arg)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil
	}

	if c.NArg() != 1 {
		return nil, errors.Newf("--json expects a single argument, got %d", c.NArg())
	}

	return parseJSONArray([]byte(c.Args().First()), t)
}

func parseJSONArray(data []byte, t types.Type) ([]types.Value, error) {
	var values []types.Value
	var err error

	_, perr := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, _ error) {
		if err != nil {
			return
		}

		var v types.Value
		switch dataType {
		case jsonparser.Null:
			v = types.NewNullValue(t)
		case jsonparser.String:
			var s string
			s, err = jsonparser.ParseString(value)
			if err != nil {
				return
			}
			v, err = types.ParseValue(t, s)
		case jsonparser.Number, jsonparser.Boolean:
			v, err = types.ParseValue(t, string(value))
		default:
			err = errors.Newf("unexpected JSON value at offset %d: %s", offset, value)
		}
		if err != nil {
			return
		}

		values = append(values, v)
	})
	if err != nil {
		return nil, err
	}
	if perr != nil {
		return nil, errors.Wrap(perr, "invalid JSON array")
	}

	return values, nil
}

// rawView returns the native form of v, or nil for nulls.
func rawView(v types.Value) (*buffer.View, error) {
	if types.IsNull(v) {
		return nil, nil
	}

	b, err := types.Serialize(v)
	if err != nil {
		return nil, err
	}

	return buffer.FromBytes(b), nil
}
