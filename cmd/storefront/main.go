package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/client"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	httpserver "github.com/andreasstove999/ecommerce-system/storefront-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/payment"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/reference"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/session"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	upstreamHTTP := &http.Client{Timeout: cfg.UpstreamTimeout}

	// Backend gateways
	base, err := client.NewClient("order-backend", cfg.APIBaseURL, upstreamHTTP)
	if err != nil {
		logger.Fatal("order backend client", zap.Error(err))
	}
	gateway := client.NewCheckoutClient(base)
	history := client.NewOrderHistoryClient(base)

	refProvider, err := reference.NewClient(cfg.APIBaseURL, upstreamHTTP)
	if err != nil {
		logger.Fatal("reference client", zap.Error(err))
	}

	// Session email cache
	var store session.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		store = session.NewRedisStore(rdb, cfg.SessionTTL)
		logger.Info("session cache on redis", zap.String("addr", cfg.RedisAddr))
	} else {
		store = session.NewMemoryStore()
		logger.Warn("REDIS_ADDR not set, session cache is in-memory")
	}

	// Checkout events
	var sink checkout.Events = checkout.NopEvents{}
	if cfg.RabbitURL != "" {
		conn, err := amqp.Dial(cfg.RabbitURL)
		if err != nil {
			logger.Fatal("rabbitmq dial", zap.Error(err))
		}
		defer conn.Close()

		pub, err := events.NewPublisher(conn, logger)
		if err != nil {
			logger.Fatal("events publisher", zap.Error(err))
		}
		defer pub.Close()
		sink = pub
	} else {
		logger.Warn("RABBITMQ_URL not set, checkout events disabled")
	}

	sessions := httpserver.NewSessionManager(httpserver.SessionDeps{
		Reference: refProvider,
		Gateway:   gateway,
		Events:    sink,
		Store:     store,
		NewProcessor: func() httpserver.WidgetProcessor {
			p, err := payment.NewStripe(cfg.StripePublishableKey, cfg.StripeBaseURL, upstreamHTTP, logger)
			if err != nil {
				logger.Fatal("stripe processor", zap.Error(err))
			}
			return p
		},
		Logger: logger,
	})

	handler := httpserver.NewHandler(sessions, history, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpserver.NewRouter(handler),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("storefront listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
