package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripmart/config"
	"tripmart/cron"
	"tripmart/database"
	bookingRepoPkg "tripmart/database/repository/booking"
	catalogRepoPkg "tripmart/database/repository/catalog"
	notificationRepoPkg "tripmart/database/repository/notification"
	orderRepoPkg "tripmart/database/repository/order"
	promoRepoPkg "tripmart/database/repository/promo"
	reviewRepoPkg "tripmart/database/repository/review"
	userRepoPkg "tripmart/database/repository/user"
	"tripmart/handlers"
	"tripmart/routes"
	"tripmart/services/booking"
	"tripmart/services/catalog"
	"tripmart/services/notification"
	"tripmart/services/order"
	"tripmart/services/payment"
	"tripmart/services/promo"
	"tripmart/services/report"
	"tripmart/services/review"
	"tripmart/services/user"
	"tripmart/services/wallet"
	"tripmart/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	orderRepo := orderRepoPkg.NewMongoOrderRepo()
	promoRepo := promoRepoPkg.NewMongoPromoRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	// services.
	userService := &user.DefaultUserService{Repo: userRepo, Logger: logger}
	walletService := &wallet.DefaultWalletService{Repo: userRepo, Logger: logger}

	notificationService := &notification.DefaultNotificationService{
		Repo:   notificationRepo,
		Users:  userRepo,
		Mailer: notification.SMTPMailer{},
		Logger: logger,
	}

	catalogService := &catalog.DefaultCatalogService{
		Repo:          catalogRepo,
		Notifications: notificationService,
		Logger:        logger,
	}

	bookingService := &booking.DefaultBookingService{
		Repo:    bookingRepo,
		Catalog: catalogRepo,
		Cache:   utils.GetCacheClient(),
		Logger:  logger,
	}

	promoService := &promo.DefaultPromoService{Repo: promoRepo, Logger: logger}
	paymentService := &payment.StripePaymentService{Logger: logger}

	orderService := &order.DefaultOrderService{
		Repo:          orderRepo,
		Catalog:       catalogRepo,
		Users:         userRepo,
		Wallet:        walletService,
		Promo:         promoService,
		Payment:       paymentService,
		Notifications: notificationService,
		Logger:        logger,
	}

	reviewService := &review.DefaultReviewService{
		Repo:     reviewRepo,
		Bookings: bookingRepo,
		Orders:   orderRepo,
		Catalog:  catalogRepo,
		Logger:   logger,
	}

	reportService := &report.DefaultReportService{
		Bookings: bookingRepo,
		Orders:   orderRepo,
		Catalog:  catalogRepo,
		Logger:   logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:      userRepo,
		Auth:          handlers.NewAuthHandler(userService),
		Users:         handlers.NewUserHandler(userService, walletService),
		Bookings:      handlers.NewBookingHandler(bookingService),
		Orders:        handlers.NewOrderHandler(orderService),
		Promos:        handlers.NewPromoHandler(promoService, userRepo),
		Reviews:       handlers.NewReviewHandler(reviewService),
		Reports:       handlers.NewReportHandler(reportService),
		Catalog:       handlers.NewCatalogHandler(catalogService),
		Admin:         handlers.NewAdminHandler(catalogService),
		Notifications: handlers.NewNotificationHandler(notificationService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background side: reminder worker and hourly sweeps, both stopped on
	// shutdown.
	backgroundStop := make(chan struct{})
	cron.InitReminderWorker(notificationService, backgroundStop)

	sweeper := &cron.Sweeper{
		Users:         userRepo,
		Bookings:      bookingRepo,
		Promo:         promoService,
		Notifications: notificationService,
		Queue:         cron.NewQueueClient(),
		Logger:        logger,
	}
	sweeper.Start(backgroundStop)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	close(backgroundStop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
