package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameAPIRequests = "api_requests"
	LabelEndpoint   = "endpoint"
	LabelStatus     = "status"
)

var APIRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameAPIRequests,
		Help:      "Harvest JSON API requests",
		Namespace: Namespace,
	},
	[]string{LabelEndpoint, LabelStatus},
)
