// internal/alerts/evaluate.go
package alerts

import "order-alerts/internal/settings"

// ShouldAlert decides whether an order warrants an alert. The comparison is
// strict: an order exactly at the threshold does not alert.
func ShouldAlert(s *settings.ShopSettings, order *NormalizedOrder) bool {
	if s == nil || order == nil {
		return false
	}
	if !s.IsEnabled || s.EmailRecipient == "" {
		return false
	}
	return order.TotalAmount > s.OrderThreshold
}
