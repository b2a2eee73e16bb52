// internal/shopify/dedupe.go
package shopify

import (
	"context"
	"time"

	"order-alerts/internal/common/database"
)

// Shopify redelivers webhooks for up to 48 hours; keep claims well past that.
const claimTTL = 7 * 24 * time.Hour

const claimKeyPrefix = "webhook:claim:"

// Deduper claims webhook delivery IDs in Redis so redeliveries are
// acknowledged without dispatching a second alert.
type Deduper struct {
	redis *database.RedisClient
}

func NewDeduper(redis *database.RedisClient) *Deduper {
	return &Deduper{redis: redis}
}

// Claim records the webhook ID and reports whether this delivery is a
// duplicate. A missing webhook ID is treated as first delivery.
func (d *Deduper) Claim(ctx context.Context, webhookID, shop, topic string) (bool, error) {
	if webhookID == "" || d.redis == nil {
		return false, nil
	}

	claimed, err := d.redis.SetNX(ctx, claimKeyPrefix+webhookID, shop+"|"+topic, claimTTL)
	if err != nil {
		return false, err
	}
	return !claimed, nil
}
