// internal/httpapi/server.go
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"order-alerts/internal/common/config"
	"order-alerts/internal/common/logger"
	"order-alerts/internal/common/observability"
	"order-alerts/internal/dispatch"
	"order-alerts/internal/settings"
	"order-alerts/internal/shopify"
)

// SettingsStore is the settings persistence surface the handlers use.
type SettingsStore interface {
	Get(ctx context.Context, shop string) (*settings.ShopSettings, error)
	GetOrCreate(ctx context.Context, shop string) (*settings.ShopSettings, error)
	Update(ctx context.Context, shop string, threshold float64, recipient string, enabled bool) (*settings.ShopSettings, error)
}

// OrderFetcher enriches webhook payloads from the Admin API when configured.
type OrderFetcher interface {
	Configured() bool
	GetOrder(ctx context.Context, orderID string) (*shopify.AdminOrder, error)
}

// WebhookDeduper claims webhook delivery IDs.
type WebhookDeduper interface {
	Claim(ctx context.Context, webhookID, shop, topic string) (bool, error)
}

// AlertDispatcher delivers composed alerts.
type AlertDispatcher interface {
	Dispatch(ctx context.Context, to, subject, body string) dispatch.Result
}

// Options wires the server's collaborators. Fetcher, Deduper, SMS, and Obs
// may be nil; the handlers degrade accordingly.
type Options struct {
	Cfg        *config.Config
	Log        logger.Logger
	Store      SettingsStore
	Fetcher    OrderFetcher
	Deduper    WebhookDeduper
	Dispatcher AlertDispatcher
	SMS        *dispatch.SMSNotifier
	Obs        *observability.Observability
}

type Server struct {
	opts Options
}

func NewServer(opts Options) *Server {
	return &Server{opts: opts}
}

// Router builds the gin engine with all routes mounted.
func (s *Server) Router() *gin.Engine {
	if s.opts.Cfg.App.IsLive() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/webhooks/orders/create", s.handleOrderCreated)

	api := r.Group("/api")
	{
		api.GET("/settings", s.handleGetSettings)
		api.PUT("/settings", s.handleUpdateSettings)
	}

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": s.opts.Cfg.App.Name,
	})
}
