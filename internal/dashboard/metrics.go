package dashboard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "adminui"

type metrics struct {
	loads              *prometheus.CounterVec
	records            prometheus.Gauge
	commits            prometheus.Counter
	validationFailures prometheus.Counter
	deletes            prometheus.Counter
	lockRejections     prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		loads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "member_loads_total",
			Help:      "Members fetch attempts by result.",
		}, []string{"result"}),
		records: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "members",
			Help:      "Records currently in the store.",
		}),
		commits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "member_commits_total",
			Help:      "Committed edits and creations.",
		}),
		validationFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Saves rejected by validation.",
		}),
		deletes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "member_deletes_total",
			Help:      "Removed records.",
		}),
		lockRejections: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edit_lock_rejections_total",
			Help:      "Edit or delete requests rejected because another record is under edit.",
		}),
	}
}
