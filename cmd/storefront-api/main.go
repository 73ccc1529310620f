package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/auth"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/events"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/handler"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/service"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type store interface {
	service.ProductRepository
	service.UserRepository
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	insecure, err := cfg.CheckSecrets()
	if err != nil {
		logger.Fatal("Refusing to start", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	if len(insecure) > 0 {
		logger.Warn("Using default credentials, do not expose this server", zap.Strings("settings", insecure))
	}

	logger.Info("Service configuration",
		zap.String("port", cfg.Port),
		zap.String("store_backend", cfg.StoreBackend),
		zap.String("kafka_brokers", cfg.KafkaBrokers))

	repo, closeStore, err := openStore(cfg)
	if err != nil {
		logger.Fatal("Failed to open store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer closeStore()

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaBrokers != "" {
		publisher = events.NewProductEventProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	}
	defer publisher.Close()

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	productService := service.NewProductService(repo, publisher, logger)
	authService := service.NewAuthService(repo, issuer, logger)

	ctx := context.Background()
	seeded, err := productService.SeedDefaults(ctx)
	if err != nil {
		logger.Fatal("Failed to seed products", zap.Error(err))
	}
	if seeded > 0 {
		logger.Info("Seeded default products", zap.Int("count", seeded))
	}
	if err := authService.EnsureUser(ctx, cfg.AdminUsername, cfg.AdminPassword, domain.RoleAdmin); err != nil {
		logger.Fatal("Failed to ensure admin user", zap.Error(err))
	}

	router := handler.NewRouter(handler.RouterDeps{
		Products:  handler.NewProductHandler(productService, logger),
		Auth:      handler.NewAuthHandler(authService, logger),
		Issuer:    issuer,
		Publisher: publisher,
		Logger:    logger,
	})

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

func openStore(cfg *config.Config) (store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return repository.NewMemoryRepository(), func() {}, nil
	case config.BackendDynamoDB:
		client, err := repository.NewDynamoDBClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewDynamoRepository(client, cfg.ProductTableName), func() {}, nil
	case config.BackendPostgres:
		db, err := repository.NewPostgresDB(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresRepository(db), func() { sqlDB.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
