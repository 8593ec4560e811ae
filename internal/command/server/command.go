package server

import (
	"log/slog"
	"os"
	"os/signal"

	"github.com/bornholm/saskatoon/internal/command/common"
	"github.com/bornholm/saskatoon/internal/setup"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "Start the administration and api server",
		Flags: common.WithCommonFlags(),
		Action: func(ctx *cli.Context) error {
			conf, err := common.LoadConfig(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			if _, err := setup.NewStoreFromConfig(ctx.Context, conf); err != nil {
				return errors.WithStack(err)
			}

			server, err := setup.NewHTTPServerFromConfig(ctx.Context, conf)
			if err != nil {
				return errors.Wrap(err, "could not setup http server")
			}

			slog.InfoContext(ctx.Context, "starting server", slog.String("address", conf.HTTP.Address))

			runCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt)
			defer stop()

			if err := server.Run(runCtx); err != nil {
				return errors.Wrap(err, "could not run server")
			}

			return nil
		},
	}
}
