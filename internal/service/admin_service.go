package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"earn_webapp/internal/campaign"
	"earn_webapp/internal/domain"
	"earn_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrWithdrawalNotPending = errors.New("withdrawal not found or already processed")

// AdminService backs the admin API: campaign overrides, ledger views and
// withdrawal review.
type AdminService struct {
	db          *pgxpool.Pool
	registry    *campaign.Registry
	accounts    *repository.AccountRepository
	earnings    *repository.EarningRepository
	withdrawals *repository.WithdrawalRepository
	audit       *AuditService
}

func NewAdminService(db *pgxpool.Pool, registry *campaign.Registry) *AdminService {
	return &AdminService{
		db:          db,
		registry:    registry,
		accounts:    repository.NewAccountRepository(db),
		earnings:    repository.NewEarningRepository(db),
		withdrawals: repository.NewWithdrawalRepository(db),
		audit:       NewAuditService(db),
	}
}

// Stats is a platform snapshot for the admin dashboard
type Stats struct {
	TotalAccounts      int64           `json:"totalAccounts"`
	TotalEarnings      decimal.Decimal `json:"totalEarnings"`
	AvailableBalance   decimal.Decimal `json:"availableBalance"`
	EarningsToday      int64           `json:"earningsToday"`
	PaidToday          decimal.Decimal `json:"paidToday"`
	PendingWithdrawals int64           `json:"pendingWithdrawals"`
	PendingAmount      decimal.Decimal `json:"pendingAmount"`
}

// GetStats returns platform statistics. "Today" is UTC.
func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	today := time.Now().UTC().Truncate(24 * time.Hour)

	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_earnings), 0), COALESCE(SUM(available_balance), 0)
		FROM accounts
	`).Scan(&stats.TotalAccounts, &stats.TotalEarnings, &stats.AvailableBalance)
	if err != nil {
		return nil, fmt.Errorf("account totals: %w", err)
	}

	err = s.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(payment), 0) FROM earnings WHERE conversion_time >= $1
	`, today).Scan(&stats.EarningsToday, &stats.PaidToday)
	if err != nil {
		return nil, fmt.Errorf("earnings today: %w", err)
	}

	err = s.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM withdrawals WHERE status = 'pending'
	`).Scan(&stats.PendingWithdrawals, &stats.PendingAmount)
	if err != nil {
		return nil, fmt.Errorf("pending withdrawals: %w", err)
	}

	return stats, nil
}

// CampaignView is a campaign with its effective activation state
type CampaignView struct {
	domain.Campaign
	EffectiveActive bool `json:"effectiveActive"`
}

// ListCampaigns returns every configured campaign with overrides applied
func (s *AdminService) ListCampaigns(ctx context.Context) ([]CampaignView, error) {
	all := s.registry.List()
	out := make([]CampaignView, 0, len(all))
	for i := range all {
		active, err := s.registry.IsActive(ctx, &all[i])
		if err != nil {
			return nil, err
		}
		out = append(out, CampaignView{Campaign: all[i], EffectiveActive: active})
	}
	return out, nil
}

// SetCampaignStatus writes the activation override and audits it
func (s *AdminService) SetCampaignStatus(ctx context.Context, actor, ip, slug string, active bool) (*domain.CampaignStatus, error) {
	st, err := s.registry.SetActive(ctx, slug, active)
	if err != nil {
		return nil, err
	}

	s.audit.LogCampaignStatus(ctx, actor, ip, slug, active)
	return st, nil
}

// RecentEarnings returns the latest ledger rows
func (s *AdminService) RecentEarnings(ctx context.Context, limit int) ([]*domain.Earning, error) {
	return s.earnings.GetRecent(ctx, limit)
}

// AccountEarnings returns an account and its latest ledger rows
func (s *AdminService) AccountEarnings(ctx context.Context, accountID int64, limit int) (*domain.Account, []*domain.Earning, error) {
	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	if a == nil {
		return nil, nil, repository.ErrAccountNotFound
	}
	rows, err := s.earnings.GetByAccountID(ctx, accountID, limit)
	if err != nil {
		return nil, nil, err
	}
	return a, rows, nil
}

// PendingWithdrawals returns withdrawal requests awaiting review
func (s *AdminService) PendingWithdrawals(ctx context.Context) ([]domain.Withdrawal, error) {
	return s.withdrawals.GetPending(ctx)
}

// ApproveWithdrawal marks a pending withdrawal approved. The amount was
// already taken from the available balance when the request was made.
func (s *AdminService) ApproveWithdrawal(ctx context.Context, actor, ip string, id int64, notes string) (*domain.Withdrawal, error) {
	return s.reviewWithdrawal(ctx, actor, ip, id, domain.WithdrawalStatusApproved, notes)
}

// RejectWithdrawal marks a pending withdrawal rejected and restores the
// amount to the account's available balance.
func (s *AdminService) RejectWithdrawal(ctx context.Context, actor, ip string, id int64, reason string) (*domain.Withdrawal, error) {
	return s.reviewWithdrawal(ctx, actor, ip, id, domain.WithdrawalStatusRejected, reason)
}

func (s *AdminService) reviewWithdrawal(ctx context.Context, actor, ip string, id int64, status domain.WithdrawalStatus, notes string) (*domain.Withdrawal, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	w, err := s.withdrawals.LockPendingWithTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrWithdrawalNotPending
	}

	details := map[string]interface{}{
		"account_id": w.AccountID,
		"amount":     w.Amount.StringFixed(2),
		"notes":      notes,
	}
	action := domain.AuditActionWithdrawApprove
	if status == domain.WithdrawalStatusRejected {
		action = domain.AuditActionWithdrawReject
		balance, err := s.accounts.RestoreBalanceWithTx(ctx, tx, w.AccountID, w.Amount)
		if err != nil {
			return nil, fmt.Errorf("restore balance: %w", err)
		}
		details["new_balance"] = balance.StringFixed(2)
	}

	processedAt, err := s.withdrawals.MarkProcessedWithTx(ctx, tx, id, status, notes)
	if err != nil {
		return nil, err
	}

	if err = s.audit.LogWithTx(ctx, tx, &domain.AuditLog{
		Actor:    actor,
		Action:   action,
		Category: domain.AuditCategoryWithdrawal,
		Subject:  strconv.FormatInt(id, 10),
		Details:  details,
		IP:       ip,
	}); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	w.Status = status
	w.AdminNotes = notes
	w.ProcessedAt = &processedAt
	return w, nil
}

// AuditLogs returns recent admin actions, optionally for one category
func (s *AdminService) AuditLogs(ctx context.Context, category string, limit int) ([]*domain.AuditLog, error) {
	return s.audit.GetRecent(ctx, category, limit)
}
