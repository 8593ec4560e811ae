package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameAuthFailures = "auth_failures"
	LabelPrefix      = "prefix"
)

var AuthFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameAuthFailures,
		Help:      "Rejected basic authentication attempts",
		Namespace: Namespace,
	},
	[]string{LabelPrefix},
)
