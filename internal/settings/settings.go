// internal/settings/settings.go
package settings

import "time"

// Defaults applied when a shop has no stored settings yet. An empty recipient
// means alerts have nowhere to go and evaluation short-circuits.
const (
	DefaultThreshold = 100.0
	DefaultRecipient = ""
	DefaultEnabled   = true
)

// ShopSettings is the per-shop alert configuration, keyed by shop domain.
type ShopSettings struct {
	Shop           string    `json:"shop"`
	OrderThreshold float64   `json:"orderThreshold"`
	EmailRecipient string    `json:"emailRecipient"`
	IsEnabled      bool      `json:"isEnabled"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
