package common

import (
	"io/fs"
	"log/slog"

	"github.com/bornholm/saskatoon/internal/config"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	paramEnvFile = "env-file"
)

var (
	flagEnvFile = &cli.StringSliceFlag{
		Name:    paramEnvFile,
		EnvVars: []string{"SASKATOON_CLI_ENV_FILE"},
		Value:   cli.NewStringSlice(".env"),
		Usage:   "environment files to load before parsing the configuration",
	}
)

func WithCommonFlags(flags ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		flagEnvFile,
	}, flags...)
}

// LoadConfig loads the environment files, missing ones being ignored, then
// parses the configuration from the environment.
func LoadConfig(ctx *cli.Context) (*config.Config, error) {
	for _, filename := range ctx.StringSlice(paramEnvFile) {
		if err := godotenv.Load(filename); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return nil, errors.Wrapf(err, "could not load environment file '%s'", filename)
		}

		slog.DebugContext(ctx.Context, "environment file loaded", slog.String("filename", filename))
	}

	conf, err := config.Parse()
	if err != nil {
		return nil, errors.Wrap(err, "could not parse config")
	}

	return conf, nil
}
