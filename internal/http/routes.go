package http

import (
	"time"

	"earn_webapp/internal/config"
	"earn_webapp/internal/http/handlers"
	"earn_webapp/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	adminRateLimit  = 120
	adminRateWindow = time.Minute
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, health *handlers.HealthHandler, cfg *config.Config) {
	r.Use(middleware.RequestID(), middleware.Metrics())

	// Health checks (no rate limiting)
	r.GET("/health", health.Health)
	r.GET("/healthz", health.Liveness)
	r.GET("/readyz", health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Postbacks are rate limited per network IP; networks retry on 429.
	postbackRL := middleware.RedisRateLimit("postback", cfg.PostbackRateLimit,
		time.Duration(cfg.PostbackRateWindow)*time.Second)
	r.GET("/postback", postbackRL, h.Postback)

	api := r.Group("/api")
	api.GET("/health", health.Health)
	api.GET("/postback", postbackRL, h.Postback)

	api.GET("/campaigns", h.ListCampaigns)
	api.GET("/campaigns/:slug", h.GetCampaign)
	api.GET("/campaigns/:slug/link", h.CampaignLink)

	admin := api.Group("/admin")
	admin.Use(middleware.NewLocalLimiter(adminRateLimit, adminRateWindow).Middleware("admin"), middleware.AdminAuth())
	{
		admin.GET("/stats", h.AdminStats)
		admin.GET("/campaigns", h.AdminListCampaigns)
		admin.PUT("/campaigns/:slug/status", h.SetCampaignStatus)
		admin.GET("/earnings", h.AdminRecentEarnings)
		admin.GET("/accounts/:id/earnings", h.AdminAccountEarnings)
		admin.GET("/withdrawals", h.AdminPendingWithdrawals)
		admin.POST("/withdrawals/:id/approve", h.ApproveWithdrawal)
		admin.POST("/withdrawals/:id/reject", h.RejectWithdrawal)
		admin.GET("/audit", h.AdminAuditLogs)
	}
}
