package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameCacheLookups = "cache_lookups"
	LabelCache       = "cache"
	LabelResult      = "result"
)

const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

var CacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameCacheLookups,
		Help:      "Store cache lookups by result",
		Namespace: Namespace,
	},
	[]string{LabelCache, LabelResult},
)
