package repository

import (
	"context"
	"errors"

	"earn_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrAccountNotFound = errors.New("account not found")

type AccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, upi_id, mobile_number, telegram_chat_id, total_earnings, available_balance, is_suspended, created_at`

// FindByMobile returns the account with exactly this mobile number, or nil.
func (r *AccountRepository) FindByMobile(ctx context.Context, mobile string) (*domain.Account, error) {
	return scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE mobile_number = $1 ORDER BY id LIMIT 1`,
		mobile,
	))
}

// FindByUPI returns the account with exactly this UPI id, or nil.
func (r *AccountRepository) FindByUPI(ctx context.Context, upiID string) (*domain.Account, error) {
	return scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE upi_id = $1`,
		upiID,
	))
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`,
		id,
	))
}

// Create inserts an account with zero balances. The mobile number is
// derived from the UPI handle when not given explicitly.
func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	if a.MobileNumber == nil {
		if m, ok := domain.MobileFromUPI(a.UPIID); ok {
			a.MobileNumber = &m
		}
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO accounts (upi_id, mobile_number, telegram_chat_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, total_earnings, available_balance, created_at`,
		a.UPIID, a.MobileNumber, a.TelegramChatID,
	).Scan(&a.ID, &a.TotalEarnings, &a.AvailableBalance, &a.CreatedAt)
}

// AddEarningsWithTx atomically increments both running totals inside tx.
// A zero amount still touches the row so a missing account is detected.
func (r *AccountRepository) AddEarningsWithTx(ctx context.Context, tx pgx.Tx, accountID int64, amount decimal.Decimal) (total, balance decimal.Decimal, err error) {
	err = tx.QueryRow(ctx,
		`UPDATE accounts
		 SET total_earnings = total_earnings + $1, available_balance = available_balance + $1
		 WHERE id = $2
		 RETURNING total_earnings, available_balance`,
		amount, accountID,
	).Scan(&total, &balance)
	if errors.Is(err, pgx.ErrNoRows) {
		err = ErrAccountNotFound
	}
	return total, balance, err
}

// RestoreBalanceWithTx puts a rejected withdrawal amount back into the
// available balance. Lifetime earnings are untouched.
func (r *AccountRepository) RestoreBalanceWithTx(ctx context.Context, tx pgx.Tx, accountID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := tx.QueryRow(ctx,
		`UPDATE accounts SET available_balance = available_balance + $1 WHERE id = $2 RETURNING available_balance`,
		amount, accountID,
	).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return balance, ErrAccountNotFound
	}
	return balance, err
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(
		&a.ID,
		&a.UPIID,
		&a.MobileNumber,
		&a.TelegramChatID,
		&a.TotalEarnings,
		&a.AvailableBalance,
		&a.IsSuspended,
		&a.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
