// internal/dispatch/log.go
package dispatch

import (
	"context"

	"order-alerts/internal/common/logger"
)

// LogSink writes the alert to the structured log. It is the terminal
// fallback and never fails.
type LogSink struct {
	log logger.Logger
}

func NewLogSink(log logger.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Name() string {
	return "log"
}

func (s *LogSink) Attempt(_ context.Context, msg Message) error {
	s.log.Info("high value order alert", map[string]interface{}{
		"to":      msg.To,
		"subject": msg.Subject,
		"body":    msg.Body,
	})
	return nil
}
