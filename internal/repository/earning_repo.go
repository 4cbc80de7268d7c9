package repository

import (
	"context"

	"earn_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// EarningRepository reads and appends ledger rows. Rows are never updated.
type EarningRepository struct {
	db *pgxpool.Pool
}

func NewEarningRepository(db *pgxpool.Pool) *EarningRepository {
	return &EarningRepository{db: db}
}

const earningColumns = `id, account_id, mobile_number, event_type, payment, COALESCE(reported_payout, ''),
	COALESCE(offer_id, ''), COALESCE(sub_id, ''), COALESCE(ip_address, ''), click_time, conversion_time,
	campaign_slug, campaign_name, created_at`

// CreateWithTx inserts an earning using an existing database transaction
func (r *EarningRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, e *domain.Earning) error {
	return tx.QueryRow(ctx,
		`INSERT INTO earnings (account_id, mobile_number, event_type, payment, reported_payout,
			offer_id, sub_id, ip_address, click_time, conversion_time, campaign_slug, campaign_name)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11, $12)
		 RETURNING id, created_at`,
		e.AccountID, e.MobileNumber, e.EventType, e.Payment, e.ReportedPayout,
		e.OfferID, e.SubID, e.IPAddress, e.ClickTime, e.ConversionTime, e.CampaignSlug, e.CampaignName,
	).Scan(&e.ID, &e.CreatedAt)
}

// GetByAccountID returns recent earnings for an account
func (r *EarningRepository) GetByAccountID(ctx context.Context, accountID int64, limit int) ([]*domain.Earning, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+earningColumns+`
		 FROM earnings
		 WHERE account_id = $1
		 ORDER BY conversion_time DESC, id DESC
		 LIMIT $2`,
		accountID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEarnings(rows)
}

// GetRecent returns the latest ledger rows across all accounts
func (r *EarningRepository) GetRecent(ctx context.Context, limit int) ([]*domain.Earning, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+earningColumns+`
		 FROM earnings
		 ORDER BY id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEarnings(rows)
}

// SumByAccountID replays the ledger for one account. Used to reconcile the
// running totals on the accounts row.
func (r *EarningRepository) SumByAccountID(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(payment), 0) FROM earnings WHERE account_id = $1`,
		accountID,
	).Scan(&total)
	return total, err
}

func scanEarnings(rows pgx.Rows) ([]*domain.Earning, error) {
	var result []*domain.Earning

	for rows.Next() {
		var e domain.Earning
		if err := rows.Scan(
			&e.ID, &e.AccountID, &e.MobileNumber, &e.EventType, &e.Payment, &e.ReportedPayout,
			&e.OfferID, &e.SubID, &e.IPAddress, &e.ClickTime, &e.ConversionTime,
			&e.CampaignSlug, &e.CampaignName, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &e)
	}

	return result, rows.Err()
}
