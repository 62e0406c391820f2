// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"daswos/internal/handlers"
	"daswos/internal/middleware"
	"daswos/internal/services/payment"
	"daswos/internal/services/recommendation"
	"daswos/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Dependencies are the services the HTTP surface is built on.
type Dependencies struct {
	WalletService  wallet.Service
	PaymentService payment.Service
	Recommender    recommendation.Recommender
	HealthChecks   map[string]handlers.HealthCheck
	JWTSecret      string
	Log            logrus.FieldLogger
}

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	walletHandler := handlers.NewWalletHandler(deps.WalletService, deps.Log)
	paymentHandler := handlers.NewPaymentHandler(deps.PaymentService, deps.Log)
	recommendationHandler := handlers.NewRecommendationHandler(deps.Recommender, deps.Log)
	healthHandler := handlers.NewHealthHandler(deps.HealthChecks)
	authMiddleware := middleware.NewAuthMiddleware(deps.JWTSecret, deps.Log)

	// Public routes
	app.Get("/health", healthHandler.Check)
	app.Post("/api/payments/webhook", paymentHandler.Webhook)

	// Protected routes
	api := app.Group("/api", authMiddleware.Handler)

	walletRoutes := api.Group("/wallet")
	walletRoutes.Get("/", walletHandler.GetWallet)
	walletRoutes.Get("/transactions", walletHandler.ListTransactions)
	walletRoutes.Post("/purchase", paymentHandler.StartPurchase)
	walletRoutes.Post("/purchase/:intentId/confirm", paymentHandler.ConfirmPurchase)

	api.Get("/recommendations", recommendationHandler.Recommend)

	// Admin routes
	admin := api.Group("/admin", middleware.AdminAuthMiddleware)
	admin.Get("/wallets/system", walletHandler.GetSystemWallet)
	admin.Post("/wallets/transfer", walletHandler.Transfer)
	admin.Put("/wallets/:userId/balance", walletHandler.SetBalance)
	admin.Post("/wallets/:userId/credit", walletHandler.Credit)
	admin.Post("/wallets/:userId/debit", walletHandler.Debit)
}
