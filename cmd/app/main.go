package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"earn_webapp/internal/campaign"
	"earn_webapp/internal/config"
	"earn_webapp/internal/db"
	httpServer "earn_webapp/internal/http"
	"earn_webapp/internal/http/handlers"
	"earn_webapp/internal/http/middleware"
	"earn_webapp/internal/logger"
	"earn_webapp/internal/notify"
	"earn_webapp/internal/postback"
	"earn_webapp/internal/repository"
	"earn_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	service.InitJWT(cfg.JWTSecret)

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	applied, err := db.Migrate(migrateCtx, dbPool)
	cancelMigrate()
	if err != nil {
		logger.Fatal("migrations failed", "error", err)
	}
	logger.Info("migrations applied", "files", applied)

	catalog := campaign.Builtin()
	if cfg.CampaignsFile != "" {
		catalog, err = campaign.LoadFile(cfg.CampaignsFile)
		if err != nil {
			logger.Fatal("failed to load campaigns", "file", cfg.CampaignsFile, "error", err)
		}
	}
	registry, err := campaign.NewRegistry(catalog,
		repository.NewCampaignStatusRepository(dbPool),
		campaign.WithStrictResolution(cfg.StrictCampaignResolution),
	)
	if err != nil {
		logger.Fatal("invalid campaign catalog", "error", err)
	}
	logger.Info("campaigns loaded", "count", len(catalog), "strict", cfg.StrictCampaignResolution)

	var notifier postback.Notifier = notify.Noop{}
	if cfg.NotifyEnabled {
		tg, err := notify.NewTelegramNotifier(cfg.BotToken, cfg.NotifyChatID)
		if err != nil {
			// notifications are best-effort; keep serving postbacks
			logger.Error("telegram notifier disabled", "error", err)
		} else {
			notifier = tg
		}
	}

	postbacks := postback.NewService(
		registry,
		repository.NewAccountRepository(dbPool),
		service.NewLedgerService(dbPool),
		notifier,
		cfg.PostbackSecret,
	)

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	r := gin.Default()
	h := handlers.NewHandler(registry, postbacks, service.NewAdminService(dbPool, registry))
	health := handlers.NewHealthHandler(dbPool, cfg.AppVersion,
		handlers.HealthCheck{Name: "redis", Ping: middleware.RedisPing})
	httpServer.RegisterRoutes(r, h, health, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", cfg.AppVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// let committed earnings finish notifying
	postbacks.Wait()
	logger.Info("server exited")
}
