// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"bazari/internal/handlers"
	"bazari/internal/middleware"
	"bazari/internal/models"
	"bazari/internal/repositories"
	"bazari/internal/services/auth"
	"bazari/internal/services/fee"
	"bazari/internal/services/revenue"
	"bazari/internal/services/user"
	"bazari/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	walletRepo := repositories.NewWalletRepository(db)
	feeConfigRepo := repositories.NewFeeConfigRepository(db)
	feeRecordRepo := repositories.NewFeeRecordRepository(db)
	revenueRepo := repositories.NewRevenueRepository(db)

	// Initialize services
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo, walletRepo)
	feeService := fee.NewService(feeConfigRepo, feeRecordRepo, revenueRepo, repositories.CacheService)
	revenueService := revenue.NewService(revenueRepo)
	walletService := wallet.NewService(walletRepo, repositories.CacheService, feeService, wallet.Config{})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	walletHandler := handlers.NewWalletHandler(walletService)
	feeConfigHandler := handlers.NewFeeConfigHandler(feeService)
	transactionFeeHandler := handlers.NewTransactionFeeHandler(feeService, feeRecordRepo)
	commissionHandler := handlers.NewCommissionHandler(feeService)
	courseFeeHandler := handlers.NewCourseFeeHandler(feeService)
	revenueHandler := handlers.NewRevenueHandler(revenueService)

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/register", userHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.RefreshToken)
	api.Get("/health", handlers.Health)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Bazari API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Protected routes with auth middleware
	protected := api.Use(authMiddleware.Handler)

	protected.Post("/logout", authHandler.Logout)
	protected.Post("/change-password", authHandler.ChangePassword)

	setupWalletRoutes(protected, walletHandler)
	setupMonetizationRoutes(protected, transactionFeeHandler, commissionHandler, courseFeeHandler, revenueHandler)
	setupAdminRoutes(protected, feeConfigHandler)
}

func setupWalletRoutes(router fiber.Router, walletHandler *handlers.WalletHandler) {
	wallet := router.Group("/wallet")
	wallet.Get("/", middleware.HasPermission(models.PermissionWalletRead), walletHandler.GetWallet)
	wallet.Post("/topup", middleware.HasPermission(models.PermissionWalletWrite), walletHandler.TopUp)
	wallet.Post("/withdraw", middleware.HasPermission(models.PermissionWalletWrite), walletHandler.Withdraw)
	wallet.Post("/transfer", middleware.HasPermission(models.PermissionWalletWrite), walletHandler.Transfer)

	router.Get("/transactions", middleware.HasPermission(models.PermissionWalletRead), walletHandler.GetTransactions)
}

func setupMonetizationRoutes(
	router fiber.Router,
	transactionFeeHandler *handlers.TransactionFeeHandler,
	commissionHandler *handlers.CommissionHandler,
	courseFeeHandler *handlers.CourseFeeHandler,
	revenueHandler *handlers.RevenueHandler,
) {
	monetization := router.Group("/monetization")

	fees := monetization.Group("/transaction-fees")
	fees.Post("/calculate", middleware.HasPermission(models.PermissionFeeQuote), transactionFeeHandler.Calculate)
	fees.Get("/", middleware.HasPermission(models.PermissionFeeQuote), transactionFeeHandler.List)
	fees.Post("/", middleware.HasPermission(models.PermissionFeeRecord), transactionFeeHandler.Record)

	monetization.Get("/marketplace-commission", middleware.HasPermission(models.PermissionFeeQuote), commissionHandler.Calculate)
	monetization.Post("/marketplace-commission", middleware.HasPermission(models.PermissionFeeRecord), commissionHandler.Record)

	monetization.Get("/course-fees", middleware.HasPermission(models.PermissionFeeQuote), courseFeeHandler.Calculate)
	monetization.Post("/course-fees", middleware.HasPermission(models.PermissionFeeRecord), courseFeeHandler.Record)

	monetization.Get("/revenue", middleware.HasPermission(models.PermissionRevenueRead), revenueHandler.GetReport)
}

func setupAdminRoutes(router fiber.Router, feeConfigHandler *handlers.FeeConfigHandler) {
	configs := router.Group("/monetization/fees", middleware.AdminOnly, middleware.HasPermission(models.PermissionFeeManage))
	configs.Get("/", feeConfigHandler.List)
	configs.Post("/", feeConfigHandler.Create)
	configs.Put("/:id", feeConfigHandler.Update)
	configs.Patch("/:id/deactivate", feeConfigHandler.Deactivate)
}
