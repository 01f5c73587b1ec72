package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindwell/database"
	"mindwell/internal/cache"
	"mindwell/internal/config"
	"mindwell/internal/logging"
	httpapi "mindwell/internal/microservices/http-api"
	"mindwell/internal/microservices/http-api/handler"
	"mindwell/internal/microservices/http-api/repository/memory"
	"mindwell/internal/middleware/auth"
	"mindwell/internal/seed"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Setup structured logging
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server_error", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	checks := map[string]handler.Check{}

	repos, closeStorage, err := openStorage(cfg, logger, checks)
	if err != nil {
		return err
	}
	defer closeStorage()

	var redisCache *cache.Cache
	if cfg.CacheEnabled() {
		client, err := cache.Connect(cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			// the API works without Redis; reads go straight to storage
			logger.Warn("redis_unavailable", "error", err.Error())
		} else {
			redisCache = cache.New(client, cfg.CacheTTL, logger)
			defer redisCache.Close()
			checks["cache"] = redisCache.Ping
			logger.Info("redis_connected", "ttl", cfg.CacheTTL.String())
		}
	}

	svcs := httpapi.NewServices(repos, redisCache, logger)

	if cfg.SeedFile != "" {
		catalog, err := seed.ReadFile(cfg.SeedFile)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		_, err = seed.Import(ctx, svcs.Resources, catalog, logger)
		cancel()
		if err != nil {
			return err
		}
	}

	router := httpapi.NewRouter(svcs, httpapi.RouterConfig{
		Tokens:         auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer),
		Logger:         logger,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		RequestTimeout: cfg.RequestTimeout,
		Checks:         checks,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting_http_server",
			"addr", srv.Addr,
			"storage_driver", cfg.StorageDriver,
			"env", cfg.GoEnv,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case sig := <-sigChan:
		logger.Info("received_shutdown_signal", "signal", sig.String())
	case err := <-errChan:
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server_stopped_gracefully")
	return nil
}

// openStorage connects the configured driver and registers its health check.
func openStorage(cfg *config.Config, logger *slog.Logger, checks map[string]handler.Check) (httpapi.Repositories, func(), error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("using_memory_storage", "note", "data is lost on restart")
		return httpapi.MemoryRepositories(memory.NewStore()), func() {}, nil
	}

	gdb, err := database.OpenGorm(cfg, logger)
	if err != nil {
		return httpapi.Repositories{}, nil, err
	}
	checks["database"] = pingGorm(gdb)
	return httpapi.PostgresRepositories(gdb), func() {
		if err := database.Close(gdb); err != nil {
			logger.Warn("database_close_failed", "error", err.Error())
		}
	}, nil
}

func pingGorm(gdb *gorm.DB) handler.Check {
	return func(ctx context.Context) error {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
