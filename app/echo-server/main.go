package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"botmart/app/echo-server/router"
	"botmart/business/bot"
	"botmart/business/category"
	"botmart/business/interaction"
	"botmart/business/purchase"
	"botmart/business/recommendation"
	"botmart/business/review"
	userService "botmart/business/user"
	"botmart/internal/middleware"
	"botmart/internal/repository/notification"
	psqlRepo "botmart/internal/repository/postgres"
	redisStore "botmart/internal/repository/redis"
	"botmart/internal/rest"
	"botmart/pkg/config"
	"botmart/pkg/database"
	redisdb "botmart/pkg/database/redis"
	"botmart/pkg/logger"
	"botmart/pkg/metrics"
	"botmart/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const trendingCacheTTL = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting BotMart", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer func() {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Error("Failed to close Redis client", err)
		}
	}()

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	botRepo := psqlRepo.NewBotRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	reviewRepo := psqlRepo.NewReviewRepository(db)
	transactionRepo := psqlRepo.NewTransactionRepository(db)
	interactionRepo := psqlRepo.NewInteractionRepository(db)
	tokenRepo := redisStore.NewTokenRepository(redisClient)
	trendingCache := redisStore.NewTrendingCache(redisClient, trendingCacheTTL)

	// Init service
	userSvc := userService.NewUserService(userRepo, validate, mailjetEmail, tokenRepo, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	botSvc := bot.NewBotService(botRepo, categoryRepo, validate)
	categorySvc := category.NewCategoryService(categoryRepo, validate)
	reviewSvc := review.NewReviewService(reviewRepo, botRepo, transactionRepo, validate)
	purchaseSvc := purchase.NewPurchaseService(transactionRepo, botRepo, userRepo)
	interactionSvc := interaction.NewInteractionService(interactionRepo, botRepo)
	recoSvc := recommendation.NewRecommendationService(botRepo, transactionRepo, reviewRepo, interactionRepo, categoryRepo, trendingCache)

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	botHandler := rest.NewBotHandler(botSvc)
	categoryHandler := rest.NewCategoryHandler(categorySvc)
	reviewHandler := rest.NewReviewHandler(reviewSvc)
	purchaseHandler := rest.NewPurchaseHandler(purchaseSvc)
	interactionHandler := rest.NewInteractionHandler(interactionSvc)
	recoHandler := rest.NewRecommendationHandler(recoSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(userSvc)
	adminOnly := middleware.AdminOnly()
	developerOnly := middleware.DeveloperOnly()
	selfOrAdmin := middleware.SelfOrAdmin()

	// Operational endpoints
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly, selfOrAdmin)
	router.SetupBotRoutes(api, botHandler, authRequired, developerOnly, adminOnly)
	router.SetupCategoryRoutes(api, categoryHandler, authRequired, adminOnly)
	router.SetupReviewRoutes(api, reviewHandler, authRequired)
	router.SetupPurchaseRoutes(api, purchaseHandler, authRequired)
	router.SetupInteractionRoutes(api, interactionHandler, authRequired)
	router.SetupRecommendationRoutes(api, recoHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
