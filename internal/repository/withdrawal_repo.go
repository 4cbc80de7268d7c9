package repository

import (
	"context"
	"time"

	"earn_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WithdrawalRepository struct {
	db *pgxpool.Pool
}

func NewWithdrawalRepository(db *pgxpool.Pool) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

const withdrawalColumns = `id, account_id, upi_id, amount, status, admin_notes, created_at, processed_at`

// GetByID retrieves withdrawal by ID
func (r *WithdrawalRepository) GetByID(ctx context.Context, id int64) (*domain.Withdrawal, error) {
	row := r.db.QueryRow(ctx, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1`, id)
	return scanWithdrawal(row)
}

// GetPending retrieves all pending withdrawals awaiting review
func (r *WithdrawalRepository) GetPending(ctx context.Context) ([]domain.Withdrawal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+withdrawalColumns+`
		FROM withdrawals
		WHERE status = 'pending'
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var withdrawals []domain.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, *w)
	}
	return withdrawals, rows.Err()
}

// LockPendingWithTx locks a pending withdrawal for review. Returns nil when
// the withdrawal does not exist or was already processed.
func (r *WithdrawalRepository) LockPendingWithTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.Withdrawal, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+withdrawalColumns+`
		FROM withdrawals
		WHERE id = $1 AND status = 'pending'
		FOR UPDATE
	`, id)
	return scanWithdrawal(row)
}

// MarkProcessedWithTx moves a withdrawal to its final status
func (r *WithdrawalRepository) MarkProcessedWithTx(ctx context.Context, tx pgx.Tx, id int64, status domain.WithdrawalStatus, notes string) (time.Time, error) {
	now := time.Now()
	_, err := tx.Exec(ctx, `
		UPDATE withdrawals SET status = $2, admin_notes = NULLIF($3, ''), processed_at = $4 WHERE id = $1
	`, id, status, notes, now)
	return now, err
}

func scanWithdrawal(row pgx.Row) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	var adminNotes *string

	if err := row.Scan(
		&w.ID, &w.AccountID, &w.UPIID, &w.Amount, &w.Status, &adminNotes, &w.CreatedAt, &w.ProcessedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if adminNotes != nil {
		w.AdminNotes = *adminNotes
	}
	return &w, nil
}
