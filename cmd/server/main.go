package main

import (
	"log"
	"net/http"
	"strconv"

	"mandimart-be/internal/analytics"
	"mandimart-be/internal/cache"
	"mandimart-be/internal/cart"
	"mandimart-be/internal/config"
	"mandimart-be/internal/db"
	"mandimart-be/internal/delivery"
	"mandimart-be/internal/httpx"
	"mandimart-be/internal/inventory"
	"mandimart-be/internal/logger"
	"mandimart-be/internal/metrics"
	"mandimart-be/internal/notification"
	"mandimart-be/internal/order"
	"mandimart-be/internal/product"
	"mandimart-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer database.Close()

	redisDB := 0
	if cfg.RedisDB != "" {
		if n, err := strconv.Atoi(cfg.RedisDB); err == nil {
			redisDB = n
		}
	}
	var cacheClient *cache.Client
	if cfg.RedisAddr != "" {
		cacheClient = cache.New(cfg.RedisAddr, redisDB)
	}

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	ledger := inventory.NewLedger(database)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	notificationRepo := notification.NewRepository(database)
	notificationSvc := notification.NewService(notificationRepo, cacheClient)

	orderRepo := order.NewRepository(database, ledger, cartRepo)
	orderSvc := order.NewService(orderRepo, cartRepo, notificationSvc, cacheClient)

	deliveryRepo := delivery.NewRepository(database)
	deliverySvc := delivery.NewService(deliveryRepo, notificationSvc)

	analyticsRepo := analytics.NewRepository(database)
	analyticsSvc := analytics.NewService(analyticsRepo)

	server := &httpx.Server{
		UserSvc:         userSvc,
		ProductSvc:      productSvc,
		CartSvc:         cartSvc,
		OrderSvc:        orderSvc,
		DeliverySvc:     deliverySvc,
		NotificationSvc: notificationSvc,
		AnalyticsSvc:    analyticsSvc,
		Metrics:         metrics.NewRegistry(),
	}

	log.Printf("🚀 API server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, server.Router()))
}
