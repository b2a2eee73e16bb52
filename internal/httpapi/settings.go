// internal/httpapi/settings.go
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "order-alerts/internal/common/errors"
	"order-alerts/internal/common/validation"
)

type settingsUpdateRequest struct {
	Shop           string  `json:"shop"`
	OrderThreshold float64 `json:"orderThreshold"`
	EmailRecipient string  `json:"emailRecipient"`
	IsEnabled      bool    `json:"isEnabled"`
}

// handleGetSettings returns the settings for a shop, creating the default
// record on first access.
func (s *Server) handleGetSettings(c *gin.Context) {
	shop := c.Query("shop")
	if shop == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "shop query parameter is required"})
		return
	}

	out, err := s.opts.Store.GetOrCreate(c.Request.Context(), shop)
	if err != nil {
		stdErr := apperrors.NewSettingsReadFailedError(err)
		s.opts.Log.WithError(stdErr).Error("failed to load settings", map[string]interface{}{"shop": shop})
		c.JSON(apperrors.HTTPStatus(stdErr.Code), gin.H{"success": false, "error": "failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "settings": out})
}

// handleUpdateSettings replaces all configurable fields for a shop.
func (s *Server) handleUpdateSettings(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Request body not found"})
		return
	}

	result, err := validation.ValidateSettings(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid JSON payload"})
		return
	}
	if !result.Valid {
		stdErr := apperrors.NewValidationFailedError("settings payload failed schema validation")
		c.JSON(apperrors.HTTPStatus(stdErr.Code), gin.H{"success": false, "errors": result.Errors})
		return
	}

	var req settingsUpdateRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid JSON payload"})
		return
	}

	out, err := s.opts.Store.Update(c.Request.Context(), req.Shop, req.OrderThreshold, req.EmailRecipient, req.IsEnabled)
	if err != nil {
		stdErr := apperrors.NewSettingsWriteFailedError(err)
		s.opts.Log.WithError(stdErr).Error("failed to update settings", map[string]interface{}{"shop": req.Shop})
		c.JSON(apperrors.HTTPStatus(stdErr.Code), gin.H{"success": false, "error": "failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "settings": out})
}
