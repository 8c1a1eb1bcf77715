package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"github.com/printops/inkwell/internal/catalog"
	catalogrepo "github.com/printops/inkwell/internal/catalog/repository"
	"github.com/printops/inkwell/internal/inventory"
	inventoryrepo "github.com/printops/inkwell/internal/inventory/repository"
	"github.com/printops/inkwell/internal/middleware"
	"github.com/printops/inkwell/internal/request"
	requestrepo "github.com/printops/inkwell/internal/request/repository"
	requestcommand "github.com/printops/inkwell/internal/request/usecase/command"
	"github.com/printops/inkwell/internal/user"
	userrepo "github.com/printops/inkwell/internal/user/repository"
	"github.com/printops/inkwell/kafka"
	"github.com/printops/inkwell/pkg/auth"
	"github.com/printops/inkwell/pkg/database"
	"github.com/printops/inkwell/pkg/logger"
	"github.com/printops/inkwell/pkg/tracing"
)

const serviceName = "inkwell"

func main() {
	logger.Init(serviceName, getEnv("APP_ENV", "development") == "development")
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	// Initialize tracing
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shut down tracer")
		}
	}()

	// Load configuration from environment variables
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "inkwell"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database with GORM
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	defer sqlDB.Close()

	// Run migrations
	if err := migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Token blacklist: Redis when configured, in-memory otherwise
	var blacklist auth.TokenBlacklist
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisBlacklist, err := auth.NewRedisBlacklist(redisAddr, os.Getenv("REDIS_PASSWORD"), 0)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisBlacklist.Close()
		blacklist = redisBlacklist
	} else {
		logger.Logger.Warn().Msg("REDIS_ADDR not set, using in-memory token blacklist")
		blacklist = auth.NewMemoryBlacklist()
	}

	// Kafka publisher is optional
	var publisher requestcommand.IssuancePublisher
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		kafkaPublisher, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			log.Fatalf("Failed to create Kafka publisher: %v", err)
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	} else {
		logger.Logger.Warn().Msg("KAFKA_BROKERS not set, issuance events disabled")
	}

	// Initialize handlers
	userHandler, err := user.InitializeHTTPHandler(db, blacklist)
	if err != nil {
		log.Fatalf("Failed to initialize user handler: %v", err)
	}
	catalogHandler, err := catalog.InitializeHTTPHandler(db)
	if err != nil {
		log.Fatalf("Failed to initialize catalog handler: %v", err)
	}
	inventoryHandler, err := inventory.InitializeHTTPHandler(db)
	if err != nil {
		log.Fatalf("Failed to initialize inventory handler: %v", err)
	}
	requestHandler, err := request.InitializeHTTPHandler(db, publisher)
	if err != nil {
		log.Fatalf("Failed to initialize request handler: %v", err)
	}

	// Setup router
	authn := middleware.NewAuthenticator(blacklist)
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)

	userHandler.RegisterRoutes(router, authn)
	catalogHandler.RegisterRoutes(router, authn)
	inventoryHandler.RegisterRoutes(router, authn)
	requestHandler.RegisterRoutes(router, authn)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Health check
	router.HandleFunc("/health", healthHandler(dbConfig)).Methods("GET")

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := middleware.TracingMiddleware(serviceName, c.Handler(router))

	port := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	go func() {
		logger.Logger.Info().
			Str("port", port).
			Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

// migrate runs all repository migrations in dependency order
func migrate(db *gorm.DB) error {
	migrators := []interface{ AutoMigrate() error }{
		userrepo.NewGormUserRepository(db),
		catalogrepo.NewGormInkModelRepository(db),
		catalogrepo.NewGormPrinterModelRepository(db),
		inventoryrepo.NewGormLotRepository(db),
		inventoryrepo.NewGormLedgerRepository(db),
		requestrepo.NewGormRequestRepository(db),
		requestrepo.NewGormIssuanceRepository(db),
	}
	for _, m := range migrators {
		if err := m.AutoMigrate(); err != nil {
			return err
		}
	}
	return nil
}

// healthHandler verifies database connectivity
func healthHandler(cfg database.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := database.NewPostgresConnection(cfg)
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		defer sqlDB.Close()

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
