package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/saskatoon/internal/build"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	paramDebug     = "debug"
	paramWorkdir   = "workdir"
	paramLogLevel  = "log-level"
	paramLogFormat = "log-format"
)

func Main(name string, usage string, commands ...*cli.Command) {
	app := &cli.App{
		Name:     name,
		Usage:    usage,
		Commands: commands,
		Version:  build.LongVersion,
		Before: func(ctx *cli.Context) error {
			// Switch to new working directory if defined
			if workdir := ctx.String(paramWorkdir); workdir != "" {
				if err := os.Chdir(workdir); err != nil {
					return errors.Wrap(err, "could not change working directory")
				}
			}

			logger, err := newLogger(ctx.App.ErrWriter, ctx.String(paramLogLevel), ctx.String(paramLogFormat))
			if err != nil {
				return errors.WithStack(err)
			}

			slog.SetDefault(logger)

			return nil
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    paramDebug,
				Value:   false,
				EnvVars: []string{"SASKATOON_CLI_DEBUG"},
				Usage:   "Print errors with their stack trace",
			},
			&cli.StringFlag{
				Name:    paramWorkdir,
				Value:   "",
				EnvVars: []string{"SASKATOON_CLI_WORKDIR"},
				Usage:   "The working directory",
			},
			&cli.StringFlag{
				Name:    paramLogLevel,
				EnvVars: []string{"SASKATOON_CLI_LOG_LEVEL"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    paramLogFormat,
				EnvVars: []string{"SASKATOON_CLI_LOG_FORMAT"},
				Usage:   "Set logging format (text, json)",
				Value:   "text",
			},
		},
	}

	app.ExitErrHandler = func(ctx *cli.Context, err error) {
		if err == nil {
			return
		}

		if ctx.Bool(paramDebug) {
			slog.ErrorContext(ctx.Context, fmt.Sprintf("%+v", err))
			return
		}

		slog.ErrorContext(ctx.Context, err.Error())
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func newLogger(w io.Writer, level string, format string) (*slog.Logger, error) {
	var slogLevel slog.Level
	if err := slogLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "invalid log level '%s'", level)
	}

	opts := &slog.HandlerOptions{
		Level:     slogLevel,
		AddSource: true,
	}

	var handler slog.Handler
	switch format {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, errors.Errorf("invalid log format '%s'", format)
	}

	return slog.New(slogx.ContextHandler{Handler: handler}), nil
}
