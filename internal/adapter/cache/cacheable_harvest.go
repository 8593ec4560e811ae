package cache

import (
	"strconv"

	"github.com/bornholm/saskatoon/internal/core/model"
)

type CacheableHarvest struct {
	model.Harvest
}

// CacheKeys implements [Cacheable].
func (h *CacheableHarvest) CacheKeys() []string {
	return []string{
		harvestCacheKey(h.ID()),
	}
}

func NewCacheableHarvest(harvest model.Harvest) *CacheableHarvest {
	return &CacheableHarvest{harvest}
}

func harvestCacheKey(id model.HarvestID) string {
	return "harvest:" + strconv.FormatUint(uint64(id), 10)
}

var (
	_ model.Harvest = &CacheableHarvest{}
	_ Cacheable     = &CacheableHarvest{}
)
