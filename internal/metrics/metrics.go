package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "donkin_search_calls_total",
		Help: "External search calls by outcome (ok, empty, error).",
	}, []string{"outcome"})

	TriggerRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "donkin_trigger_runs_total",
		Help: "Trigger runs by result (updates, no_updates, busy, failed).",
	}, []string{"result"})

	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "donkin_notifications_total",
		Help: "Digest notifications by result (sent, failed, skipped).",
	}, []string{"result"})

	StoreSaveFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "donkin_store_save_failures_total",
		Help: "Failed writes to the key-value store by key.",
	}, []string{"key"})
)
