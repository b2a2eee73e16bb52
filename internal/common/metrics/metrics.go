// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WebhooksReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_alerts_webhooks_received_total",
			Help: "Total number of webhooks received",
		},
		[]string{"topic"},
	)

	WebhooksDuplicate = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_alerts_webhooks_duplicate_total",
			Help: "Total number of duplicate webhook deliveries ignored",
		},
	)

	AlertsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_alerts_dispatched_total",
			Help: "Total number of alerts dispatched by provider",
		},
		[]string{"provider"},
	)

	DispatchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_alerts_dispatch_failures_total",
			Help: "Total number of failed delivery attempts by provider",
		},
		[]string{"provider"},
	)

	WebhookDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "order_alerts_webhook_duration_seconds",
			Help: "Duration of webhook processing in seconds",
		},
		[]string{"topic"},
	)
)
