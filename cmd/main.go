package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"restaurant-pos/internal/api"
	"restaurant-pos/internal/config"
	"restaurant-pos/internal/metrics"
	"restaurant-pos/internal/repository"
	"restaurant-pos/internal/service"
	"restaurant-pos/migrations"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func connectDBEnv(host, port, user, pass, dbname string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Printf("Connected to DB %s", dbname)
				return db, nil
			}
		}
		log.Printf("Retry %d: Failed to connect to DB %s (%s:%s): %v", i+1, dbname, host, port, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB %s at %s:%s after retries: %v", dbname, host, port, err)
}

func main() {
	db, err := connectDBEnv(
		getenv("DB_HOST", "127.0.0.1"),
		getenv("DB_PORT", "3306"),
		getenv("DB_USER", "root"),
		os.Getenv("DB_PASS"),
		getenv("DB_NAME", "restaurant-pos"),
	)
	if err != nil {
		panic(err)
	}

	if err := migrations.AutoMigrate(3, db); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}

	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr})
	}

	kafkaWriter := config.NewKafkaWriter(getenv("KAFKA_TOPIC", "order-events"))

	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	productRepo := repository.NewProductRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	waiterRepo := repository.NewWaiterRepository(db)
	reportRepo := repository.NewReportRepository(db)

	catalogService := service.NewCatalogService(*productRepo, rdb)
	orderService := service.NewOrderService(*orderRepo, *paymentRepo, catalogService, kafkaWriter, rdb)
	paymentService := service.NewPaymentService(*paymentRepo, kafkaWriter)
	reportService := service.NewReportService(*reportRepo, *productRepo)
	restaurantService := service.NewRestaurantService(*restaurantRepo, *waiterRepo)

	handler := api.NewHandler(orderService, paymentService, catalogService, reportService, restaurantService)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(20),
				Burst:     60,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	serverMetrics := metrics.NewServerMetrics("restaurant_pos")

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))
	e.Use(serverMetrics.Middleware())

	handler.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	e.Logger.Fatal(e.Start(":" + getenv("PORT", "8080")))
}
