package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/auth"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/cache"
	h "github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/http"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/payment"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/repository"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/service"
)

type Config struct {
	HTTPPort        string
	MongoURI        string
	MongoDBName     string
	RedisAddr       string
	RedisPassword   string
	JWTSecret       string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8800"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "medicine-marketplace"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	// Set up MongoDB connection
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := repository.EnsureIndexes(ctx, mongoDB); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	// Repositories
	cartRepo := repository.NewMongoCartRepository(mongoDB)
	orderRepo := repository.NewMongoOrderRepository(mongoDB)
	catalogRepo := repository.NewMongoCatalogRepository(mongoDB)
	advertRepo := repository.NewMongoAdvertRepository(mongoDB)

	// Caches and payment gateway
	viewCache := cache.NewRedisCartViewCache(redisClient)
	limiter := cache.NewRedisCheckoutLimiter(redisClient)
	gateway := payment.NewBreakerGateway(payment.NewStubGateway(payment.RandomOutcome{}))

	// Services
	cartService := service.NewCartService(cartRepo, catalogRepo, viewCache)
	orderService := service.NewOrderService(orderRepo, cartRepo, catalogRepo, gateway, limiter, viewCache)
	statementService := service.NewStatementService(orderRepo)
	catalogService := service.NewCatalogService(catalogRepo)
	advertService := service.NewAdvertService(advertRepo, catalogRepo)

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	router := h.NewRouter(verifier, h.Handlers{
		Cart:      h.NewCartHandler(cartService),
		Orders:    h.NewOrderHandler(orderService),
		Statement: h.NewStatementHandler(statementService),
		Catalog:   h.NewCatalogHandler(catalogService),
		Adverts:   h.NewAdvertHandler(advertService),
	}, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Marketplace server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	if err := mongoDB.Client().Disconnect(shutdownCtx); err != nil {
		log.Printf("mongo disconnect error: %v", err)
	}

	log.Println("server exited")
}
