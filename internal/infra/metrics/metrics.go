// Package metrics exposes Prometheus counters for the progression
// engine and the sync coordinator. All metrics are registered on the
// default registry and served from /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActionsTotal counts engine actions by kind (complete, skip,
	// purchase, use_item, freeze, recover).
	ActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "questforge",
		Subsystem: "engine",
		Name:      "actions_total",
		Help:      "Engine actions processed, by action kind.",
	}, []string{"action"})

	// ActionErrors counts rejected actions by kind.
	ActionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "questforge",
		Subsystem: "engine",
		Name:      "action_errors_total",
		Help:      "Engine actions rejected by validation or persistence.",
	}, []string{"action"})

	// NotificationsTotal counts emitted notifications by type.
	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "questforge",
		Subsystem: "engine",
		Name:      "notifications_total",
		Help:      "Notifications emitted to the UI, by type.",
	}, []string{"type"})

	// SyncWrites counts persisted document writes by mode
	// (immediate, debounced).
	SyncWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "questforge",
		Subsystem: "sync",
		Name:      "writes_total",
		Help:      "Document writes flushed to the store, by mode.",
	}, []string{"mode"})

	// SyncRetries counts write attempts that failed and were retried.
	SyncRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "questforge",
		Subsystem: "sync",
		Name:      "retries_total",
		Help:      "Failed write attempts that triggered a retry.",
	})

	// SyncGaveUp counts writes abandoned after exhausting retries.
	SyncGaveUp = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "questforge",
		Subsystem: "sync",
		Name:      "gave_up_total",
		Help:      "Writes abandoned after the retry budget was spent.",
	})

	// RemoteApplied counts remote snapshots applied over local state.
	RemoteApplied = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "questforge",
		Subsystem: "sync",
		Name:      "remote_applied_total",
		Help:      "Remote document changes applied last-writer-wins.",
	})

	// EchoSuppressed counts own-write echoes dropped by subscribers.
	EchoSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "questforge",
		Subsystem: "sync",
		Name:      "echo_suppressed_total",
		Help:      "Subscription callbacks ignored as own-session echoes.",
	})
)
