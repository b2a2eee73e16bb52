// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"order-alerts/internal/common/config"
	"order-alerts/internal/common/database"
	"order-alerts/internal/common/logger"
	"order-alerts/internal/common/observability"
	"order-alerts/internal/dispatch"
	"order-alerts/internal/httpapi"
	"order-alerts/internal/settings"
	"order-alerts/internal/shopify"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting order alerts server...",
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Delivery providers, in priority order ---
	var sinks []dispatch.Sink
	if cfg.Notifications.SESConfigured() {
		sesSink, err := dispatch.NewSESSink(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Warn("ses sink unavailable", zap.Error(err))
		} else {
			sinks = append(sinks, sesSink)
		}
	}
	if cfg.Notifications.SMTPConfigured() {
		smtp := cfg.Notifications.Email.SMTP
		sinks = append(sinks, dispatch.NewSMTPSink(smtp.Host, smtp.Port, smtp.Username, smtp.Password))
	}

	dispatcher := dispatch.NewDispatcher(
		cfg.App.IsLive(),
		cfg.Notifications.Email.FromEmail,
		log,
		sinks...,
	)

	var sms *dispatch.SMSNotifier
	if cfg.App.IsLive() && cfg.Notifications.SMS.Enabled && cfg.Notifications.SMS.Recipient != "" {
		sms, err = dispatch.NewSMSNotifier(ctx, cfg.Notifications.AWS.Region, cfg.Notifications.SMS.Recipient, log)
		if err != nil {
			zapLog.Warn("sms notifier unavailable", zap.Error(err))
		}
	}

	var fetcher httpapi.OrderFetcher
	if cfg.Shopify.AccessToken != "" {
		fetcher = shopify.NewClient(cfg.Shopify)
	}

	store := settings.NewStore(pg, redis, cfg.Notifications.SettingsCacheTTL(), log)
	deduper := shopify.NewDeduper(redis)

	server := httpapi.NewServer(httpapi.Options{
		Cfg:        cfg,
		Log:        log,
		Store:      store,
		Fetcher:    fetcher,
		Deduper:    deduper,
		Dispatcher: dispatcher,
		SMS:        sms,
		Obs:        obs,
	})

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: server.Router(),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("Server stopped")
}
