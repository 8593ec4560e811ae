package setup

import (
	"context"
	"crypto/rand"
	"sync"

	"github.com/bornholm/saskatoon/internal/config"
	"github.com/pkg/errors"
)

func createFromConfigOnce[T any](factory func(ctx context.Context, conf *config.Config) (T, error)) func(ctx context.Context, conf *config.Config) (T, error) {
	var (
		once  sync.Once
		value T
		err   error
	)

	return func(ctx context.Context, conf *config.Config) (T, error) {
		once.Do(func() {
			value, err = factory(ctx, conf)
			if err != nil {
				err = errors.WithStack(err)
			}
		})

		return value, err
	}
}

func getRandomBytes(n int) ([]byte, error) {
	data := make([]byte, n)

	if _, err := rand.Read(data); err != nil {
		return nil, errors.WithStack(err)
	}

	return data, nil
}
