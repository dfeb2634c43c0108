package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const loggerKey = "logger"

// NewApp creates the keyorder CLI app.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "keyorder"
	app.Usage = "Encode, compare and sort values with their comparable byte form"
	app.EnableBashCompletion = true

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log debug information to stderr.",
		},
	}

	app.Commands = []*cli.Command{
		NewEncodeCommand(),
		NewDecodeCommand(),
		NewCompareCommand(),
		NewSortCommand(),
	}

	// inject cancelable context to all commands
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		defer cancel()
		<-ch
	}()

	for i := range app.Commands {
		action := app.Commands[i].Action
		app.Commands[i].Action = func(c *cli.Context) error {
			c.Context = ctx
			return action(c)
		}
	}

	app.Before = func(c *cli.Context) error {
		l, err := newLogger(c.Bool("verbose"))
		if err != nil {
			return err
		}

		if c.App.Metadata == nil {
			c.App.Metadata = make(map[string]interface{})
		}
		c.App.Metadata[loggerKey] = l
		return nil
	}

	app.After = func(c *cli.Context) error {
		signal.Stop(ch)
		cancel()

		if l, ok := c.App.Metadata[loggerKey].(*zap.Logger); ok {
			_ = l.Sync()
		}
		return nil
	}

	return app
}

// newLogger returns a development logger in verbose mode,
// and a production logger limited to warnings otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func logger(c *cli.Context) *zap.Logger {
	if l, ok := c.App.Metadata[loggerKey].(*zap.Logger); ok {
		return l
	}

	return zap.NewNop()
}
