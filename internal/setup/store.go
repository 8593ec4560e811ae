package setup

import (
	"context"

	"github.com/bornholm/saskatoon/internal/adapter/cache"
	gormAdapter "github.com/bornholm/saskatoon/internal/adapter/gorm"
	"github.com/bornholm/saskatoon/internal/config"
	"github.com/pkg/errors"
)

var getStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*gormAdapter.Store, error) {
	db, err := getGormDatabaseFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return gormAdapter.NewStore(db), nil
})

var getCachedStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*cache.Store, error) {
	store, err := getStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return cache.NewStore(store, conf.Storage.Cache.Size, conf.Storage.Cache.TTL), nil
})

// NewStoreFromConfig returns the store, migrating the database schema if
// needed.
func NewStoreFromConfig(ctx context.Context, conf *config.Config) (*gormAdapter.Store, error) {
	store, err := getStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if _, err := store.Database(ctx); err != nil {
		return nil, errors.Wrap(err, "could not migrate database")
	}

	return store, nil
}
