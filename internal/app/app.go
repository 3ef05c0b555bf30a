package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/trustedhb/qc-server/internal/api"
	"github.com/trustedhb/qc-server/internal/config"
	"github.com/trustedhb/qc-server/internal/repository"
	"github.com/trustedhb/qc-server/internal/service"
	"github.com/trustedhb/qc-server/pkg/cache"
	dbbuilder "github.com/trustedhb/qc-server/pkg/database"
)

type App struct {
	logger   *zap.Logger
	dbPool   *sql.DB
	cache    *cache.Cache
	server   *fiber.App
	httpPort int
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbPool, err := dbbuilder.New(
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Database pool initialized", zap.String("path", cfg.DBPath))

	if err := repository.Migrate(ctx, dbPool); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	cacheClient, err := cache.New(ctx,
		cache.WithAddress(cfg.RedisAddr),
	)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}
	logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))

	sessionRepo := repository.NewSessionRepository(dbPool)
	agentRepo := repository.NewAgentRepository(dbPool)
	archiveRepo := repository.NewArchiveRepository(dbPool)
	libraryRepo := repository.NewLibraryRepository(dbPool)

	sessionService := service.NewSessionService(sessionRepo, agentRepo, archiveRepo, libraryRepo, logger)
	analyticsService := service.NewAnalyticsService(sessionRepo, agentRepo, logger)

	handlers := api.NewHandlers(sessionService, analyticsService, cacheClient, logger,
		cfg.CacheTTL, cfg.AdminPassword, []byte(cfg.JWTSecret))

	server := fiber.New(fiber.Config{
		AppName:      "qc-server",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})
	api.Register(server, handlers, cfg.AllowOrigins)

	return &App{
		logger:   logger,
		dbPool:   dbPool,
		cache:    cacheClient,
		server:   server,
		httpPort: cfg.HTTPPort,
	}, nil
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.logger.Info("application starting", zap.Int("port", a.httpPort))

	go func() {
		if err := a.server.Listen(fmt.Sprintf(":%d", a.httpPort)); err != nil {
			a.logger.Error("http server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info("application shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.ShutdownWithContext(ctx); err != nil {
		a.logger.Error("http shutdown error", zap.Error(err))
	}

	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}

	select {
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			a.logger.Warn("shutdown completed but deadline exceeded")
		}
	default:
		a.logger.Info("graceful shutdown completed successfully")
	}

	_ = a.logger.Sync()
	return nil
}
