// internal/settings/store.go
package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"order-alerts/internal/common/database"
	"order-alerts/internal/common/logger"
)

const cacheKeyPrefix = "shop_settings:"

// Store persists ShopSettings in Postgres with a Redis read-through cache.
// Cache failures degrade silently to Postgres.
type Store struct {
	db       *database.PostgresClient
	cache    *database.RedisClient
	cacheTTL time.Duration
	log      logger.Logger
}

func NewStore(db *database.PostgresClient, cache *database.RedisClient, cacheTTL time.Duration, log logger.Logger) *Store {
	return &Store{
		db:       db,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// Get returns the settings for a shop, or nil without error when none exist.
func (s *Store) Get(ctx context.Context, shop string) (*ShopSettings, error) {
	if cached := s.cacheGet(ctx, shop); cached != nil {
		return cached, nil
	}

	row := s.db.QueryRow(ctx, `
		SELECT shop, order_threshold, email_recipient, is_enabled, created_at, updated_at
		FROM shop_settings
		WHERE shop = $1`, shop)

	settings, err := scanSettings(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings for %s: %w", shop, err)
	}

	s.cacheSet(ctx, settings)
	return settings, nil
}

// GetOrCreate returns the settings for a shop, inserting the defaults first
// when the shop has none.
func (s *Store) GetOrCreate(ctx context.Context, shop string) (*ShopSettings, error) {
	existing, err := s.Get(ctx, shop)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO shop_settings (shop, order_threshold, email_recipient, is_enabled)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (shop) DO UPDATE SET shop = EXCLUDED.shop
		RETURNING shop, order_threshold, email_recipient, is_enabled, created_at, updated_at`,
		shop, DefaultThreshold, DefaultRecipient, DefaultEnabled)

	settings, err := scanSettings(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings for %s: %w", shop, err)
	}

	s.cacheSet(ctx, settings)
	return settings, nil
}

// Update replaces all configurable fields for a shop, creating the row when
// it does not exist yet.
func (s *Store) Update(ctx context.Context, shop string, threshold float64, recipient string, enabled bool) (*ShopSettings, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO shop_settings (shop, order_threshold, email_recipient, is_enabled)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (shop) DO UPDATE SET
			order_threshold = EXCLUDED.order_threshold,
			email_recipient = EXCLUDED.email_recipient,
			is_enabled = EXCLUDED.is_enabled,
			updated_at = NOW()
		RETURNING shop, order_threshold, email_recipient, is_enabled, created_at, updated_at`,
		shop, threshold, recipient, enabled)

	settings, err := scanSettings(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings for %s: %w", shop, err)
	}

	s.cacheSet(ctx, settings)
	return settings, nil
}

func scanSettings(row *sql.Row) (*ShopSettings, error) {
	var out ShopSettings
	err := row.Scan(
		&out.Shop,
		&out.OrderThreshold,
		&out.EmailRecipient,
		&out.IsEnabled,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) cacheGet(ctx context.Context, shop string) *ShopSettings {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, cacheKeyPrefix+shop)
	if err != nil {
		return nil
	}

	var out ShopSettings
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.log.Warn("discarding unreadable cached settings", map[string]interface{}{
			"shop":  shop,
			"error": err.Error(),
		})
		return nil
	}
	return &out
}

func (s *Store) cacheSet(ctx context.Context, settings *ShopSettings) {
	if s.cache == nil || settings == nil {
		return
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, cacheKeyPrefix+settings.Shop, string(raw), s.cacheTTL); err != nil {
		s.log.Warn("failed to cache settings", map[string]interface{}{
			"shop":  settings.Shop,
			"error": err.Error(),
		})
	}
}
