// internal/dispatch/dispatch.go
package dispatch

import (
	"context"

	"github.com/google/uuid"

	apperrors "order-alerts/internal/common/errors"
	"order-alerts/internal/common/logger"
	"order-alerts/internal/common/metrics"
)

// Message is one alert email to deliver.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Sink is a single delivery provider. Attempt makes one network call; no
// retries.
type Sink interface {
	Name() string
	Attempt(ctx context.Context, msg Message) error
}

// Result is the outcome of a dispatch. Success is always true: the terminal
// fallback logs the alert instead of delivering it.
type Result struct {
	Success    bool   `json:"success"`
	Provider   string `json:"provider"`
	Message    string `json:"message"`
	DispatchID string `json:"dispatchId"`
}

// Dispatcher tries delivery providers in fixed priority order and falls back
// to structured logging.
type Dispatcher struct {
	sinks    []Sink
	fallback Sink
	log      logger.Logger
	live     bool
	from     string
}

func NewDispatcher(live bool, from string, log logger.Logger, sinks ...Sink) *Dispatcher {
	return &Dispatcher{
		sinks:    sinks,
		fallback: NewLogSink(log),
		log:      log,
		live:     live,
		from:     from,
	}
}

// Dispatch delivers an alert. It never returns a failed Result; provider
// errors are logged and absorbed.
func (d *Dispatcher) Dispatch(ctx context.Context, to, subject, body string) Result {
	msg := Message{
		From:    d.from,
		To:      to,
		Subject: subject,
		Body:    body,
	}

	dispatchID := uuid.New().String()

	if !d.live || len(d.sinks) == 0 {
		d.fallback.Attempt(ctx, msg)
		metrics.AlertsDispatched.WithLabelValues(d.fallback.Name()).Inc()
		return Result{
			Success:    true,
			Provider:   d.fallback.Name(),
			Message:    "alert logged (no delivery provider configured)",
			DispatchID: dispatchID,
		}
	}

	for _, sink := range d.sinks {
		if err := sink.Attempt(ctx, msg); err != nil {
			metrics.DispatchFailures.WithLabelValues(sink.Name()).Inc()
			d.log.WithError(apperrors.NewAlertDeliveryFailedError(sink.Name(), err)).Warn("alert delivery attempt failed", map[string]interface{}{
				"provider":   sink.Name(),
				"dispatchId": dispatchID,
				"recipient":  to,
			})
			continue
		}

		metrics.AlertsDispatched.WithLabelValues(sink.Name()).Inc()
		d.log.Info("alert delivered", map[string]interface{}{
			"provider":   sink.Name(),
			"dispatchId": dispatchID,
			"recipient":  to,
		})
		return Result{
			Success:    true,
			Provider:   sink.Name(),
			Message:    "alert delivered via " + sink.Name(),
			DispatchID: dispatchID,
		}
	}

	d.fallback.Attempt(ctx, msg)
	metrics.AlertsDispatched.WithLabelValues(d.fallback.Name()).Inc()
	return Result{
		Success:    true,
		Provider:   d.fallback.Name(),
		Message:    "all delivery providers failed; alert logged",
		DispatchID: dispatchID,
	}
}
