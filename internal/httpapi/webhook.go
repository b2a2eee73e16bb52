// internal/httpapi/webhook.go
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"order-alerts/internal/alerts"
	apperrors "order-alerts/internal/common/errors"
	"order-alerts/internal/common/metrics"
	"order-alerts/internal/shopify"
)

const (
	headerHMAC      = "X-Shopify-Hmac-Sha256"
	headerShop      = "X-Shopify-Shop-Domain"
	headerWebhookID = "X-Shopify-Webhook-Id"
	headerTopic     = "X-Shopify-Topic"
)

// handleOrderCreated processes an orders/create webhook. After authentication
// every outcome acknowledges the delivery: Shopify retries non-2xx responses
// and a retried webhook buys nothing here.
func (s *Server) handleOrderCreated(c *gin.Context) {
	started := time.Now()
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		stdErr := apperrors.NewMissingPayloadError()
		c.JSON(apperrors.HTTPStatus(stdErr.Code), gin.H{"success": false, "error": stdErr.Message})
		return
	}

	if secret := s.opts.Cfg.Shopify.WebhookSecret; secret != "" {
		if !shopify.VerifyWebhookHMAC(secret, body, c.GetHeader(headerHMAC)) {
			s.opts.Log.Warn("webhook authentication failed", map[string]interface{}{
				"shop": c.GetHeader(headerShop),
			})
			stdErr := apperrors.NewAuthenticationFailedError("hmac verification failed")
			c.JSON(apperrors.HTTPStatus(stdErr.Code), gin.H{"success": false, "error": stdErr.Message})
			return
		}
	}

	if len(body) == 0 {
		stdErr := apperrors.NewMissingPayloadError()
		c.JSON(apperrors.HTTPStatus(stdErr.Code), gin.H{"success": false, "error": stdErr.Message})
		return
	}

	shop := c.GetHeader(headerShop)
	topic := c.GetHeader(headerTopic)
	webhookID := c.GetHeader(headerWebhookID)
	if topic == "" {
		topic = "orders/create"
	}

	metrics.WebhooksReceived.WithLabelValues(topic).Inc()
	log := s.opts.Log.WithFields(map[string]interface{}{
		"shop":      shop,
		"topic":     topic,
		"webhookId": webhookID,
	})

	if s.opts.Deduper != nil {
		duplicate, err := s.opts.Deduper.Claim(ctx, webhookID, shop, topic)
		if err != nil {
			// Redis trouble must not drop an alert; treat as first delivery.
			log.Warn("webhook dedupe claim failed", map[string]interface{}{"error": err.Error()})
		} else if duplicate {
			metrics.WebhooksDuplicate.Inc()
			log.Info("duplicate webhook ignored", nil)
			s.finish(c, started, topic, "duplicate", gin.H{"success": true, "message": "duplicate webhook ignored"})
			return
		}
	}

	shopSettings, err := s.opts.Store.Get(ctx, shop)
	if err != nil {
		log.WithError(apperrors.NewSettingsReadFailedError(err)).Error("failed to read shop settings", nil)
		s.finish(c, started, topic, "settings_error", gin.H{"success": true, "message": "settings unavailable, alert skipped"})
		return
	}
	if shopSettings == nil || !shopSettings.IsEnabled {
		s.finish(c, started, topic, "disabled", gin.H{"success": true, "message": "Alerts disabled or settings not found"})
		return
	}

	var payload alerts.WebhookOrder
	if err := json.Unmarshal(body, &payload); err != nil {
		log.WithError(err).Warn("unparseable webhook payload", nil)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid payload"})
		return
	}

	order := alerts.FromWebhook(&payload)

	if !alerts.ShouldAlert(shopSettings, order) {
		s.finish(c, started, topic, "below_threshold", gin.H{"success": true})
		return
	}

	if s.opts.Fetcher != nil && s.opts.Fetcher.Configured() {
		if enriched, err := s.opts.Fetcher.GetOrder(ctx, order.ID); err != nil {
			log.WithError(apperrors.NewOrderFetchFailedError(order.ID, err)).Warn("order enrichment failed, using webhook payload", nil)
		} else {
			order = alerts.FromAdminAPI(enriched)
		}
	}

	subject, alertBody := alerts.Compose(order, shopSettings.OrderThreshold, s.opts.Cfg.Shopify.ShopDomain)

	result := s.opts.Dispatcher.Dispatch(ctx, shopSettings.EmailRecipient, subject, alertBody)
	log.Info("alert dispatched", map[string]interface{}{
		"provider":   result.Provider,
		"dispatchId": result.DispatchID,
		"orderTotal": order.TotalAmount,
	})

	if s.opts.SMS != nil {
		s.opts.SMS.Notify(ctx, subject+" ("+order.CurrencyCode+" "+strconv.FormatFloat(order.TotalAmount, 'f', 2, 64)+")")
	}

	s.finish(c, started, topic, "dispatched", gin.H{"success": true, "message": result.Message})
}

func (s *Server) finish(c *gin.Context, started time.Time, topic, status string, resp gin.H) {
	metrics.WebhookDuration.WithLabelValues(topic).Observe(time.Since(started).Seconds())
	if s.opts.Obs != nil {
		s.opts.Obs.RecordWebhookProcessed(c.Request.Context(), status)
		s.opts.Obs.RecordWebhookDuration(c.Request.Context(), time.Since(started), status)
	}
	c.JSON(http.StatusOK, resp)
}
