// Copyright (c) Microsoft. All rights reserved.

package cosmos

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for Cosmos DB calls made by the store.
// A nil *Metrics records nothing.
type Metrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

// NewMetrics creates the store metrics and registers them on reg.
// Pass a nil reg to create unregistered metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agentframework_cosmos_operations_total",
				Help: "Total number of Cosmos DB operations issued by the chat message store",
			},
			[]string{"operation", "status"},
		),
		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "agentframework_cosmos_operation_duration_seconds",
				Help:    "Duration of Cosmos DB operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.operationsTotal, m.operationDuration)
	}
	return m
}

// observe records one call of op that started at start.
func (m *Metrics) observe(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	label := strings.ReplaceAll(op, " ", "_")
	status := "ok"
	switch {
	case err == nil:
	case IsNotFound(err):
		status = "not_found"
	default:
		status = "error"
	}
	m.operationsTotal.WithLabelValues(label, status).Inc()
	m.operationDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
}
