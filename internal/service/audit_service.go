package service

import (
	"context"

	"earn_webapp/internal/domain"
	"earn_webapp/internal/logger"
	"earn_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditService records admin actions. Logging never fails the caller.
type AuditService struct {
	repo *repository.AuditRepository
}

func NewAuditService(db *pgxpool.Pool) *AuditService {
	return &AuditService{
		repo: repository.NewAuditRepository(db),
	}
}

// Log creates a new audit log entry
func (s *AuditService) Log(ctx context.Context, entry *domain.AuditLog) {
	if err := s.repo.Create(ctx, entry); err != nil {
		logger.Error("failed to create audit log", "error", err, "action", entry.Action, "subject", entry.Subject)
	}
}

// LogWithTx writes an entry inside tx. Unlike Log, a failure is returned so
// the surrounding change rolls back with it.
func (s *AuditService) LogWithTx(ctx context.Context, tx pgx.Tx, entry *domain.AuditLog) error {
	return s.repo.CreateWithTx(ctx, tx, entry)
}

// LogCampaignStatus records an activation override change
func (s *AuditService) LogCampaignStatus(ctx context.Context, actor, ip, slug string, active bool) {
	action := domain.AuditActionCampaignSuspend
	if active {
		action = domain.AuditActionCampaignActivate
	}
	s.Log(ctx, &domain.AuditLog{
		Actor:    actor,
		Action:   action,
		Category: domain.AuditCategoryCampaign,
		Subject:  slug,
		Details:  map[string]interface{}{"is_active": active},
		IP:       ip,
	})
}

// GetRecent returns recent audit logs, optionally filtered by category
func (s *AuditService) GetRecent(ctx context.Context, category string, limit int) ([]*domain.AuditLog, error) {
	return s.repo.GetRecent(ctx, category, limit)
}
