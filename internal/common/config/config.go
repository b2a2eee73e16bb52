// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Shopify       ShopifyConfig      `mapstructure:"shopify"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// IsLive reports whether the deployment should attempt real provider calls.
// Anything other than "production" stays on the log-only delivery path.
func (a AppConfig) IsLive() bool {
	return a.Environment == "production"
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ShopifyConfig holds the platform-facing settings: webhook authentication,
// the optional Admin API credential for order enrichment, and the shop domain
// used only when building admin deep links in alert bodies.
type ShopifyConfig struct {
	ShopDomain    string `mapstructure:"shop_domain"`
	APIVersion    string `mapstructure:"api_version"`
	AccessToken   string `mapstructure:"access_token"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// NotificationConfig holds settings for alert delivery.
type NotificationConfig struct {
	Email struct {
		FromEmail string `mapstructure:"from_email"`
		SES       struct {
			Enabled bool `mapstructure:"enabled"`
		} `mapstructure:"ses"`
		SMTP struct {
			Host     string `mapstructure:"host"`
			Port     int    `mapstructure:"port"`
			Username string `mapstructure:"username"`
			Password string `mapstructure:"password"`
		} `mapstructure:"smtp"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled   bool   `mapstructure:"enabled"`
		Recipient string `mapstructure:"recipient"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
	SettingsCacheTTLSeconds int `mapstructure:"settings_cache_ttl_seconds"`
}

// SESConfigured reports whether provider A credentials are present.
func (n NotificationConfig) SESConfigured() bool {
	return n.Email.SES.Enabled && n.Email.FromEmail != ""
}

// SMTPConfigured reports whether provider B credentials are present.
func (n NotificationConfig) SMTPConfigured() bool {
	return n.Email.SMTP.Host != "" && n.Email.SMTP.Username != ""
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
