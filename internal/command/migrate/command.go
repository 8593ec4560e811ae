package migrate

import (
	"log/slog"

	"github.com/bornholm/saskatoon/internal/command/common"
	"github.com/bornholm/saskatoon/internal/setup"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create or update the database schema",
		Flags: common.WithCommonFlags(),
		Action: func(ctx *cli.Context) error {
			conf, err := common.LoadConfig(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			if _, err := setup.NewStoreFromConfig(ctx.Context, conf); err != nil {
				return errors.WithStack(err)
			}

			slog.InfoContext(ctx.Context, "database migrated", slog.String("dsn", conf.Storage.Database.DSN))

			return nil
		},
	}
}
