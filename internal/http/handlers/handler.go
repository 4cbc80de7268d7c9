package handlers

import (
	"context"
	"strconv"

	"earn_webapp/internal/campaign"
	"earn_webapp/internal/domain"
	"earn_webapp/internal/postback"
	"earn_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminBackend is what the admin endpoints need. *service.AdminService
// implements it.
type AdminBackend interface {
	GetStats(ctx context.Context) (*service.Stats, error)
	ListCampaigns(ctx context.Context) ([]service.CampaignView, error)
	SetCampaignStatus(ctx context.Context, actor, ip, slug string, active bool) (*domain.CampaignStatus, error)
	RecentEarnings(ctx context.Context, limit int) ([]*domain.Earning, error)
	AccountEarnings(ctx context.Context, accountID int64, limit int) (*domain.Account, []*domain.Earning, error)
	PendingWithdrawals(ctx context.Context) ([]domain.Withdrawal, error)
	ApproveWithdrawal(ctx context.Context, actor, ip string, id int64, notes string) (*domain.Withdrawal, error)
	RejectWithdrawal(ctx context.Context, actor, ip string, id int64, reason string) (*domain.Withdrawal, error)
	AuditLogs(ctx context.Context, category string, limit int) ([]*domain.AuditLog, error)
}

type Handler struct {
	Registry  *campaign.Registry
	Postbacks *postback.Service
	Admin     AdminBackend
}

func NewHandler(registry *campaign.Registry, postbacks *postback.Service, admin AdminBackend) *Handler {
	return &Handler{
		Registry:  registry,
		Postbacks: postbacks,
		Admin:     admin,
	}
}

// queryLimit reads ?limit=, clamped to [1, 500].
func queryLimit(c *gin.Context, def int) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n <= 0 {
		return def
	}
	if n > 500 {
		return 500
	}
	return n
}
