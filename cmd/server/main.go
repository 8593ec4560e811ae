package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/saskatoon/internal/config"
	"github.com/bornholm/saskatoon/internal/setup"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.ErrorContext(ctx, "server stopped with an error", slogx.Error(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, "could not load .env file")
	}

	conf, err := config.Parse()
	if err != nil {
		return errors.Wrap(err, "could not parse config")
	}

	slog.SetDefault(slog.New(slogx.ContextHandler{
		Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     conf.Logger.Level,
			AddSource: true,
		}),
	}))

	slog.DebugContext(ctx, "configuration loaded", slog.Any("config", conf))

	if _, err := setup.NewStoreFromConfig(ctx, conf); err != nil {
		return errors.Wrap(err, "could not setup store")
	}

	server, err := setup.NewHTTPServerFromConfig(ctx, conf)
	if err != nil {
		return errors.Wrap(err, "could not setup http server")
	}

	slog.InfoContext(ctx, "starting saskatoon", slog.String("address", conf.HTTP.Address), slog.String("base_url", conf.HTTP.BaseURL))

	if err := server.Run(ctx); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
