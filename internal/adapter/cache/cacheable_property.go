package cache

import (
	"strconv"

	"github.com/bornholm/saskatoon/internal/core/model"
)

type CacheableProperty struct {
	model.Property
}

// CacheKeys implements [Cacheable].
func (p *CacheableProperty) CacheKeys() []string {
	return []string{
		propertyCacheKey(p.ID()),
	}
}

func NewCacheableProperty(property model.Property) *CacheableProperty {
	return &CacheableProperty{property}
}

func propertyCacheKey(id model.PropertyID) string {
	return "property:" + strconv.FormatUint(uint64(id), 10)
}

var (
	_ model.Property = &CacheableProperty{}
	_ Cacheable      = &CacheableProperty{}
)
