// internal/httpapi/webhook_test.go
package httpapi

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"order-alerts/internal/common/config"
	"order-alerts/internal/common/logger"
	"order-alerts/internal/dispatch"
	"order-alerts/internal/settings"
	"order-alerts/internal/shopify"
)

type mockStore struct {
	GetFunc         func(ctx context.Context, shop string) (*settings.ShopSettings, error)
	GetOrCreateFunc func(ctx context.Context, shop string) (*settings.ShopSettings, error)
	UpdateFunc      func(ctx context.Context, shop string, threshold float64, recipient string, enabled bool) (*settings.ShopSettings, error)
}

func (m *mockStore) Get(ctx context.Context, shop string) (*settings.ShopSettings, error) {
	return m.GetFunc(ctx, shop)
}

func (m *mockStore) GetOrCreate(ctx context.Context, shop string) (*settings.ShopSettings, error) {
	return m.GetOrCreateFunc(ctx, shop)
}

func (m *mockStore) Update(ctx context.Context, shop string, threshold float64, recipient string, enabled bool) (*settings.ShopSettings, error) {
	return m.UpdateFunc(ctx, shop, threshold, recipient, enabled)
}

type mockDispatcher struct {
	calls   int
	lastTo  string
	subject string
	body    string
}

func (m *mockDispatcher) Dispatch(_ context.Context, to, subject, body string) dispatch.Result {
	m.calls++
	m.lastTo = to
	m.subject = subject
	m.body = body
	return dispatch.Result{Success: true, Provider: "log", Message: "alert logged", DispatchID: "test-id"}
}

type mockDeduper struct {
	duplicate bool
	err       error
	calls     int
}

func (m *mockDeduper) Claim(_ context.Context, webhookID, shop, topic string) (bool, error) {
	m.calls++
	return m.duplicate, m.err
}

type mockFetcher struct {
	configured bool
	order      *shopify.AdminOrder
	err        error
}

func (m *mockFetcher) Configured() bool { return m.configured }

func (m *mockFetcher) GetOrder(_ context.Context, orderID string) (*shopify.AdminOrder, error) {
	return m.order, m.err
}

func testConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "order-alerts"
	cfg.App.Environment = "test"
	cfg.Shopify.WebhookSecret = secret
	cfg.Shopify.ShopDomain = "demo-shop"
	return cfg
}

func enabledSettings(threshold float64) *settings.ShopSettings {
	return &settings.ShopSettings{
		Shop:           "demo.myshopify.com",
		OrderThreshold: threshold,
		EmailRecipient: "ops@shop.com",
		IsEnabled:      true,
	}
}

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func postWebhook(router *gin.Engine, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/orders/create", bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWebhook_RejectsBadHMAC(t *testing.T) {
	dispatcher := &mockDispatcher{}
	server := NewServer(Options{
		Cfg:        testConfig("secret"),
		Log:        logger.NewTestLogger(t),
		Store:      &mockStore{},
		Dispatcher: dispatcher,
	})

	body := []byte(`{"id": 1, "total_price": "150.00"}`)
	w := postWebhook(server.Router(), body, map[string]string{
		"X-Shopify-Hmac-Sha256": "not-a-valid-signature",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication failed")
	assert.Zero(t, dispatcher.calls)
}

func TestWebhook_RejectsEmptyBody(t *testing.T) {
	server := NewServer(Options{
		Cfg:        testConfig(""),
		Log:        logger.NewTestLogger(t),
		Store:      &mockStore{},
		Dispatcher: &mockDispatcher{},
	})

	w := postWebhook(server.Router(), nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Request body not found")
}

func TestWebhook_DisabledSettingsShortCircuit(t *testing.T) {
	dispatcher := &mockDispatcher{}
	store := &mockStore{
		GetFunc: func(ctx context.Context, shop string) (*settings.ShopSettings, error) {
			return nil, nil
		},
	}
	server := NewServer(Options{
		Cfg:        testConfig(""),
		Log:        logger.NewTestLogger(t),
		Store:      store,
		Dispatcher: dispatcher,
	})

	body := []byte(`{"id": 1, "total_price": "500.00"}`)
	w := postWebhook(server.Router(), body, map[string]string{
		"X-Shopify-Shop-Domain": "demo.myshopify.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alerts disabled or settings not found")
	assert.Zero(t, dispatcher.calls)
}

func TestWebhook_SettingsErrorStillAcknowledges(t *testing.T) {
	store := &mockStore{
		GetFunc: func(ctx context.Context, shop string) (*settings.ShopSettings, error) {
			return nil, errors.New("connection refused")
		},
	}
	server := NewServer(Options{
		Cfg:        testConfig(""),
		Log:        logger.NewTestLogger(t),
		Store:      store,
		Dispatcher: &mockDispatcher{},
	})

	w := postWebhook(server.Router(), []byte(`{"id": 1}`), nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
}

func TestWebhook_UnderThresholdNoDispatch(t *testing.T) {
	dispatcher := &mockDispatcher{}
	store := &mockStore{
		GetFunc: func(ctx context.Context, shop string) (*settings.ShopSettings, error) {
			return enabledSettings(100), nil
		},
	}
	server := NewServer(Options{
		Cfg:        testConfig(""),
		Log:        logger.NewTestLogger(t),
		Store:      store,
		Dispatcher: dispatcher,
	})

	w := postWebhook(server.Router(), []byte(`{"id": 1, "total_price": "50.00"}`), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, dispatcher.calls)
}

func TestWebhook_OverThresholdDispatches(t *testing.T) {
	dispatcher := &mockDispatcher{}
	store := &mockStore{
		GetFunc: func(ctx context.Context, shop string) (*settings.ShopSettings, error) {
			return enabledSettings(100), nil
		},
	}
	server := NewServer(Options{
		Cfg:        testConfig(""),
		Log:        logger.NewTestLogger(t),
		Store:      store,
		Dispatcher: dispatcher,
	})

	body := []byte(`{"id": 1001, "name": "#1001", "total_price": "150.00", "currency": "USD"}`)
	w := postWebhook(server.Router(), body, map[string]string{
		"X-Shopify-Shop-Domain": "demo.myshopify.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, dispatcher.calls)
	assert.Equal(t, "ops@shop.com", dispatcher.lastTo)
	assert.Equal(t, "🚨 High Value Order Alert - #1001", dispatcher.subject)
	assert.Contains(t, dispatcher.body, "Order Total: USD 150.00")
}

func TestWebhook_ValidHMACAccepted(t *testing.T) {
	dispatcher := &mockDispatcher{}
	store := &mockStore{
		GetFunc: func(ctx context.Context, shop string) (*settings.ShopSettings, error) {
			return enabledSettings(100), nil
		},
	}
	server := NewServer(Options{
		Cfg:        testConfig("secret"),
		Log:        logger.NewTestLogger(t),
		Store:      store,
		Dispatcher: dispatcher,
	})

	body := []byte(`{"id": 1001, "name": "#1001", "total_price": "150.00"}`)
	w := postWebhook(server.Router(), body, map[string]string{
		"X-Shopify-Hmac-Sha256": signBody("secret", body),
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, dispatcher.calls)
}

func TestWebhook_DuplicateDeliveryIgnored(t *testing.T) {
	dispatcher := &mockDispatcher{}
	deduper := &mockDeduper{duplicate: true}
	store := &mockStore{
		GetFunc: func(ctx context.Context, shop string) (*settings.ShopSettings, error) {
			return enabledSettings(100), nil
		},
	}
	server := NewServer(Options{
		Cfg:        testConfig(""),
		Log:        logger.NewTestLogger(t),
		Store:      store,
		Deduper:    deduper,
		Dispatcher: dispatcher,
	})

	body := []byte(`{"id": 1001, "total_price": "150.00"}`)
	w := postWebhook(server.Router(), body, map[string]string{
		"X-Shopify-Webhook-Id": "wh-1",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "duplicate webhook ignored")
	assert.Equal(t, 1, deduper.calls)
	assert.Zero(t, dispatcher.calls)
}

func TestWebhook_DedupeErrorProceeds(t *testing.T) {
	dispatcher := &mockDispatcher{}
	deduper := &mockDeduper{err: errors.New("redis down")}
	store := &mockStore{
		GetFunc: func(ctx context.Context, shop string) (*settings.ShopSettings, error) {
			return enabledSettings(100), nil
		},
	}
	server := NewServer(Options{
		Cfg:        testConfig(""),
		Log:        logger.NewTestLogger(t),
		Store:      store,
		Deduper:    deduper,
		Dispatcher: dispatcher,
	})

	body := []byte(`{"id": 1001, "total_price": "150.00"}`)
	w := postWebhook(server.Router(), body, map[string]string{
		"X-Shopify-Webhook-Id": "wh-1",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, dispatcher.calls)
}

func TestWebhook_EnrichmentFailureFallsBackToWebhookPayload(t *testing.T) {
	dispatcher := &mockDispatcher{}
	fetcher := &mockFetcher{configured: true, err: errors.New("api unavailable")}
	store := &mockStore{
		GetFunc: func(ctx context.Context, shop string) (*settings.ShopSettings, error) {
			return enabledSettings(100), nil
		},
	}
	server := NewServer(Options{
		Cfg:        testConfig(""),
		Log:        logger.NewTestLogger(t),
		Store:      store,
		Fetcher:    fetcher,
		Dispatcher: dispatcher,
	})

	body := []byte(`{"id": 1001, "name": "#1001", "total_price": "150.00"}`)
	w := postWebhook(server.Router(), body, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, dispatcher.calls)
	assert.Contains(t, dispatcher.body, "- Order #: #1001")
}

func TestWebhook_EnrichmentReplacesPayload(t *testing.T) {
	dispatcher := &mockDispatcher{}
	admin := &shopify.AdminOrder{
		ID:   "gid://shopify/Order/1001",
		Name: "#1001",
		TotalPriceSet: shopify.MoneyBag{
			ShopMoney: shopify.Money{Amount: "150.00", CurrencyCode: "USD"},
		},
		Customer: &shopify.AdminCustomer{FirstName: "Jane", LastName: "Doe"},
	}
	fetcher := &mockFetcher{configured: true, order: admin}
	store := &mockStore{
		GetFunc: func(ctx context.Context, shop string) (*settings.ShopSettings, error) {
			return enabledSettings(100), nil
		},
	}
	server := NewServer(Options{
		Cfg:        testConfig(""),
		Log:        logger.NewTestLogger(t),
		Store:      store,
		Fetcher:    fetcher,
		Dispatcher: dispatcher,
	})

	body := []byte(`{"id": 1001, "name": "#1001", "total_price": "150.00"}`)
	w := postWebhook(server.Router(), body, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, dispatcher.body, "- Customer: Jane Doe")
}

func TestWebhook_InvalidJSONRejected(t *testing.T) {
	store := &mockStore{
		GetFunc: func(ctx context.Context, shop string) (*settings.ShopSettings, error) {
			return enabledSettings(100), nil
		},
	}
	server := NewServer(Options{
		Cfg:        testConfig(""),
		Log:        logger.NewTestLogger(t),
		Store:      store,
		Dispatcher: &mockDispatcher{},
	})

	w := postWebhook(server.Router(), []byte(`{not json`), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	server := NewServer(Options{
		Cfg:        testConfig(""),
		Log:        logger.NewTestLogger(t),
		Store:      &mockStore{},
		Dispatcher: &mockDispatcher{},
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
