package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameAdminActions = "admin_actions"
	LabelApp         = "app"
	LabelModel       = "model"
	LabelAction      = "action"
)

const (
	ActionAdd    = "add"
	ActionChange = "change"
	ActionDelete = "delete"
)

var AdminActions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameAdminActions,
		Help:      "Admin site records added, changed or deleted",
		Namespace: Namespace,
	},
	[]string{LabelApp, LabelModel, LabelAction},
)
