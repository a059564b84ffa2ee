package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/apostol1s/technico-web/internal/config"
	httpapi "github.com/apostol1s/technico-web/internal/http"
	"github.com/apostol1s/technico-web/internal/repository"
	"github.com/apostol1s/technico-web/internal/service"
	"github.com/apostol1s/technico-web/internal/store"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg)
	defer logger.Sync()

	// Repositories: PostgreSQL when available, in-memory fallback for dev.
	var (
		db             *sql.DB
		ownersRepo     repository.OwnersRepository
		propertiesRepo repository.PropertiesRepository
		repairsRepo    repository.RepairsRepository
	)
	if cfg.DBEnabled {
		if d, err := repository.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			logger.Info("DB enabled for technico-web")
		} else {
			logger.Warn("DB enabled but connection failed, falling back to memory store", zap.Error(err))
		}
	}
	if db != nil {
		ownersRepo = repository.NewPostgresOwnersRepository(db)
		propertiesRepo = repository.NewPostgresPropertiesRepository(db)
		repairsRepo = repository.NewPostgresRepairsRepository(db)
	} else {
		mem := repository.NewMemoryStore()
		ownersRepo = mem.Owners()
		propertiesRepo = mem.Properties()
		repairsRepo = mem.Repairs()
	}

	// Session store: Redis when enabled, process-local otherwise.
	var kv store.KV
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		kv = store.NewRedisKV(redisClient)
	} else {
		kv = store.NewMemoryKV()
	}

	ownerSvc := service.NewOwnerService(ownersRepo, logger)
	propertySvc := service.NewPropertyService(propertiesRepo, ownerSvc, logger)
	repairSvc := service.NewRepairService(repairsRepo, propertiesRepo, logger)
	authSvc := service.NewAuthService(ownerSvc, kv,
		time.Duration(cfg.Session.TTLHours)*time.Hour, logger)

	router := httpapi.NewRouter(logger)
	router.RegisterOwnerRoutes(httpapi.NewOwnerHandler(ownerSvc, logger))
	router.RegisterPropertyRoutes(httpapi.NewPropertyHandler(propertySvc, logger))
	router.RegisterRepairRoutes(httpapi.NewRepairHandler(repairSvc, logger))
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(authSvc, logger))

	srv := service.NewServer(cfg.HTTP.Addr, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case <-errCh:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if db != nil {
		_ = db.Close()
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	if cfg.Log.Format == "console" {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}
