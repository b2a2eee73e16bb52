package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider   *metric.MeterProvider
	meter           otelmetric.Meter
	webhookCounter  otelmetric.Int64Counter
	webhookDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	webhookCounter, _ := meter.Int64Counter(
		"webhooks.processed",
		otelmetric.WithDescription("Number of webhooks processed"),
	)

	webhookDuration, _ := meter.Float64Histogram(
		"webhooks.duration",
		otelmetric.WithDescription("Webhook processing duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:   provider,
		meter:           meter,
		webhookCounter:  webhookCounter,
		webhookDuration: webhookDuration,
	}
}

func (o *Observability) RecordWebhookProcessed(ctx context.Context, status string) {
	if o.webhookCounter != nil {
		o.webhookCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordWebhookDuration(ctx context.Context, duration time.Duration, status string) {
	if o.webhookDuration != nil {
		o.webhookDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
