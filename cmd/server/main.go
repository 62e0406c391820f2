// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daswos/internal/config"
	"daswos/internal/handlers"
	"daswos/internal/jobs"
	"daswos/internal/repositories"
	"daswos/internal/repositories/cache"
	"daswos/internal/routes"
	"daswos/internal/services/payment"
	"daswos/internal/services/recommendation"
	"daswos/internal/services/wallet"
	"daswos/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.LoadEnv()
	cfg := config.Load()
	log := utils.NewLogger(cfg.LogLevel, cfg.IsProduction())

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("Server exited")
	}
}

// run serves until SIGINT/SIGTERM or a listener failure. Resources opened
// here are released on every return path.
func run(cfg *config.Config, log *logrus.Logger) error {
	db, err := repositories.OpenDatabase(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := repositories.CloseDatabase(db); err != nil {
			log.WithError(err).Warn("Failed to close database connection")
		}
	}()

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	healthChecks := map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error { return repositories.PingDatabase(ctx, db) },
	}

	var walletCache wallet.CacheOperator = cache.NoopWalletCache{}
	if cfg.Redis.Enabled {
		cacheService := cache.NewCacheService(cache.NewRedisClient(cfg.Redis), cfg.WalletCacheTTL)
		defer func() {
			if err := cacheService.Close(); err != nil {
				log.WithError(err).Warn("Failed to close Redis connection")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := cacheService.Ping(ctx); err != nil {
			log.WithError(err).Warn("Redis unreachable; wallet reads will go to the database until it recovers")
		} else {
			log.Info("Redis connected")
		}
		cancel()

		walletCache = cache.NewWalletCache(cacheService)
		healthChecks["redis"] = cacheService.Ping
	}

	walletService := wallet.NewService(
		repositories.NewWalletRepository(db),
		walletCache,
		wallet.Config{},
		&wallet.NoopMetricsCollector{},
		log.WithField("service", "wallet"),
	)

	provider := payment.NewStripeProvider(payment.StripeConfig{
		SecretKey:      cfg.Stripe.SecretKey,
		WebhookSecret:  cfg.Stripe.WebhookSecret,
		Currency:       cfg.Stripe.Currency,
		CoinPriceCents: cfg.Stripe.CoinPriceCents,
	}, nil)
	paymentService := payment.NewService(provider, walletService, log.WithField("service", "payment"))

	scheduler := jobs.NewScheduler(log.WithField("component", "jobs"))
	if err := jobs.RegisterDefaults(scheduler, sqlDB, walletService); err != nil {
		return fmt.Errorf("failed to schedule jobs: %w", err)
	}
	scheduler.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		scheduler.Stop(ctx)
	}()

	app := fiber.New(fiber.Config{
		DisableStartupMessage: cfg.IsProduction(),
	})

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api/wallet/purchase", rateLimit(10))
	app.Use("/api/payments/webhook", rateLimit(120))

	routes.SetupRoutes(app, routes.Dependencies{
		WalletService:  walletService,
		PaymentService: paymentService,
		Recommender:    recommendation.NewStaticRecommender(),
		HealthChecks:   healthChecks,
		JWTSecret:      cfg.JWTSecret,
		Log:            log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(":" + cfg.Port)
	}()
	log.WithField("port", cfg.Port).Info("Server started")

	select {
	case <-ctx.Done():
		log.Info("Shutting down")
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("http server stopped: %w", err)
		}
		return nil
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.WithError(err).Warn("HTTP shutdown incomplete")
	}
	return nil
}

// rateLimit allows max requests per minute per client IP.
func rateLimit(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	})
}

