package service

import (
	"context"
	"time"

	"earn_webapp/internal/domain"
	"earn_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

var ledgerWriteDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "ledger_write_duration_seconds",
		Help:    "Time spent recording an earning, by result",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(ledgerWriteDuration)
}

// LedgerService records earnings. The ledger row and the balance increment
// commit together or not at all.
type LedgerService struct {
	db       *pgxpool.Pool
	accounts *repository.AccountRepository
	earnings *repository.EarningRepository
}

func NewLedgerService(db *pgxpool.Pool) *LedgerService {
	return &LedgerService{
		db:       db,
		accounts: repository.NewAccountRepository(db),
		earnings: repository.NewEarningRepository(db),
	}
}

// RecordEarning appends e and adds e.Payment to both of the owner's totals.
func (s *LedgerService) RecordEarning(ctx context.Context, e *domain.Earning) (bal *domain.BalanceUpdate, err error) {
	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		ledgerWriteDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	}()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err = s.earnings.CreateWithTx(ctx, tx, e); err != nil {
		return nil, err
	}

	total, balance, err := s.accounts.AddEarningsWithTx(ctx, tx, e.AccountID, e.Payment)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &domain.BalanceUpdate{TotalEarnings: total, AvailableBalance: balance}, nil
}

// Reconcile replays the ledger for one account and returns the sum next to
// the stored lifetime total. Withdrawals only move available_balance, so
// the two are expected to be equal.
func (s *LedgerService) Reconcile(ctx context.Context, accountID int64) (ledgerSum, recorded decimal.Decimal, err error) {
	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return ledgerSum, recorded, err
	}
	if a == nil {
		return ledgerSum, recorded, repository.ErrAccountNotFound
	}
	ledgerSum, err = s.earnings.SumByAccountID(ctx, accountID)
	return ledgerSum, a.TotalEarnings, err
}
