// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CIOperation is the kind of request sent to a CI server
type CIOperation string

const (
	// CIOperationBuildInfo is used when fetching the build of a commit
	CIOperationBuildInfo CIOperation = "build_info"
	// CIOperationNotify is used when notifying the CI server about a push
	CIOperationNotify CIOperation = "notify"
)

var ciCallLabels = []string{"vendor", "operation", "response_code"}

var (
	ciCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cilinks",
			Name:      "ci_calls_total",
			Help:      "A counter of CI server API calls.",
		},
		ciCallLabels,
	)

	ciCallsDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cilinks",
			Name:      "ci_calls_duration_seconds",
			Help:      "A histogram of the duration of CI server API calls.",
			Buckets:   prometheus.DefBuckets,
		},
		ciCallLabels,
	)

	hookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cilinks",
			Name:      "hook_events_total",
			Help:      "A counter of push hook events dispatched to CI services.",
		},
		[]string{"vendor", "event", "handled"},
	)

	registry = prometheus.NewRegistry()
)

func init() {
	registry.MustRegister(ciCallsTotal, ciCallsDurationSeconds, hookEventsTotal)
}

// RecordCICall records a CI server call. responseCode is 0 when no response was received.
func RecordCICall(vendor string, operation CIOperation, responseCode int, duration time.Duration) {
	labels := prometheus.Labels{
		"vendor":        vendor,
		"operation":     string(operation),
		"response_code": strconv.Itoa(responseCode),
	}
	ciCallsTotal.With(labels).Inc()
	ciCallsDurationSeconds.With(labels).Observe(duration.Seconds())
}

// RecordHookEvent records a hook event and whether the CI service acted on it
func RecordHookEvent(vendor, event string, handled bool) {
	hookEventsTotal.With(prometheus.Labels{
		"vendor":  vendor,
		"event":   event,
		"handled": strconv.FormatBool(handled),
	}).Inc()
}

// Handler serves the collected metrics
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
