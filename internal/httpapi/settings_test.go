// internal/httpapi/settings_test.go
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"order-alerts/internal/common/logger"
	"order-alerts/internal/settings"
)

func TestGetSettings_RequiresShop(t *testing.T) {
	server := NewServer(Options{
		Cfg:        testConfig(""),
		Log:        logger.NewTestLogger(t),
		Store:      &mockStore{},
		Dispatcher: &mockDispatcher{},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSettings_CreatesDefaults(t *testing.T) {
	store := &mockStore{
		GetOrCreateFunc: func(ctx context.Context, shop string) (*settings.ShopSettings, error) {
			assert.Equal(t, "demo.myshopify.com", shop)
			return &settings.ShopSettings{
				Shop:           shop,
				OrderThreshold: settings.DefaultThreshold,
				EmailRecipient: settings.DefaultRecipient,
				IsEnabled:      settings.DefaultEnabled,
			}, nil
		},
	}
	server := NewServer(Options{
		Cfg:        testConfig(""),
		Log:        logger.NewTestLogger(t),
		Store:      store,
		Dispatcher: &mockDispatcher{},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/settings?shop=demo.myshopify.com", nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success  bool                  `json:"success"`
		Settings settings.ShopSettings `json:"settings"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 100.0, resp.Settings.OrderThreshold)
	assert.True(t, resp.Settings.IsEnabled)
}

func TestGetSettings_StoreError(t *testing.T) {
	store := &mockStore{
		GetOrCreateFunc: func(ctx context.Context, shop string) (*settings.ShopSettings, error) {
			return nil, errors.New("connection refused")
		},
	}
	server := NewServer(Options{
		Cfg:        testConfig(""),
		Log:        logger.NewTestLogger(t),
		Store:      store,
		Dispatcher: &mockDispatcher{},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/settings?shop=demo.myshopify.com", nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUpdateSettings(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		wantStatus int
		wantUpdate bool
	}{
		{
			name:       "valid payload",
			payload:    `{"shop": "demo.myshopify.com", "orderThreshold": 250, "emailRecipient": "ops@shop.com", "isEnabled": true}`,
			wantStatus: http.StatusOK,
			wantUpdate: true,
		},
		{
			name:       "non-numeric threshold",
			payload:    `{"shop": "demo.myshopify.com", "orderThreshold": "abc", "emailRecipient": "ops@shop.com", "isEnabled": true}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative threshold",
			payload:    `{"shop": "demo.myshopify.com", "orderThreshold": -5, "emailRecipient": "ops@shop.com", "isEnabled": true}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing shop",
			payload:    `{"orderThreshold": 250, "emailRecipient": "ops@shop.com", "isEnabled": true}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field rejected",
			payload:    `{"shop": "demo.myshopify.com", "orderThreshold": 250, "emailRecipient": "ops@shop.com", "isEnabled": true, "extra": 1}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty body",
			payload:    "",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated := false
			store := &mockStore{
				UpdateFunc: func(ctx context.Context, shop string, threshold float64, recipient string, enabled bool) (*settings.ShopSettings, error) {
					updated = true
					return &settings.ShopSettings{
						Shop:           shop,
						OrderThreshold: threshold,
						EmailRecipient: recipient,
						IsEnabled:      enabled,
					}, nil
				},
			}
			server := NewServer(Options{
				Cfg:        testConfig(""),
				Log:        logger.NewTestLogger(t),
				Store:      store,
				Dispatcher: &mockDispatcher{},
			})

			req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewBufferString(tt.payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			server.Router().ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantUpdate, updated)
		})
	}
}

func TestUpdateSettings_StoreError(t *testing.T) {
	store := &mockStore{
		UpdateFunc: func(ctx context.Context, shop string, threshold float64, recipient string, enabled bool) (*settings.ShopSettings, error) {
			return nil, errors.New("connection refused")
		},
	}
	server := NewServer(Options{
		Cfg:        testConfig(""),
		Log:        logger.NewTestLogger(t),
		Store:      store,
		Dispatcher: &mockDispatcher{},
	})

	payload := `{"shop": "demo.myshopify.com", "orderThreshold": 250, "emailRecipient": "ops@shop.com", "isEnabled": true}`
	req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewBufferString(payload))
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
