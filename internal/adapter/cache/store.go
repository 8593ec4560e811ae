package cache

import (
	"context"
	"time"

	"github.com/bornholm/saskatoon/internal/core/model"
	"github.com/bornholm/saskatoon/internal/core/port"
	"github.com/pkg/errors"
)

// Backend is the store decorated by the cache.
type Backend interface {
	port.PropertyStore
	port.HarvestStore
}

// Store caches the single record lookups of its backend, query results
// feeding the cache too. Entries expire after their time to live.
type Store struct {
	backend       Backend
	propertyCache *MultiIndexCache[*CacheableProperty]
	harvestCache  *MultiIndexCache[*CacheableHarvest]
}

// QueryProperties implements [port.PropertyStore].
func (s *Store) QueryProperties(ctx context.Context, opts port.QueryPropertiesOptions) ([]model.Property, int64, error) {
	properties, total, err := s.backend.QueryProperties(ctx, opts)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	for _, p := range properties {
		s.propertyCache.Add(NewCacheableProperty(p))
	}

	return properties, total, nil
}

// GetPropertyByID implements [port.PropertyStore].
func (s *Store) GetPropertyByID(ctx context.Context, id model.PropertyID) (model.Property, error) {
	if property, exists := s.propertyCache.Get(propertyCacheKey(id)); exists {
		return property, nil
	}

	property, err := s.backend.GetPropertyByID(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	s.propertyCache.Add(NewCacheableProperty(property))

	return property, nil
}

// QueryHarvests implements [port.HarvestStore].
func (s *Store) QueryHarvests(ctx context.Context, opts port.QueryHarvestsOptions) ([]model.Harvest, int64, error) {
	harvests, total, err := s.backend.QueryHarvests(ctx, opts)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	for _, h := range harvests {
		s.harvestCache.Add(NewCacheableHarvest(h))
	}

	return harvests, total, nil
}

// GetHarvestByID implements [port.HarvestStore].
func (s *Store) GetHarvestByID(ctx context.Context, id model.HarvestID) (model.Harvest, error) {
	if harvest, exists := s.harvestCache.Get(harvestCacheKey(id)); exists {
		return harvest, nil
	}

	harvest, err := s.backend.GetHarvestByID(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	s.harvestCache.Add(NewCacheableHarvest(harvest))

	return harvest, nil
}

// Purge empties the caches, ie after records were changed bypassing the
// store.
func (s *Store) Purge() {
	s.propertyCache.Purge()
	s.harvestCache.Purge()
}

func NewStore(backend Backend, size int, ttl time.Duration) *Store {
	return &Store{
		backend:       backend,
		propertyCache: NewMultiIndexCache[*CacheableProperty]("property", size, ttl),
		harvestCache:  NewMultiIndexCache[*CacheableHarvest]("harvest", size, ttl),
	}
}

var (
	_ port.PropertyStore = &Store{}
	_ port.HarvestStore  = &Store{}
)
