package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Withdrawal is a payout request. Requests are created by the wallet
// frontend; fulfilment happens out of band after an admin approves.
type Withdrawal struct {
	ID          int64            `db:"id" json:"id"`
	AccountID   int64            `db:"account_id" json:"accountId"`
	UPIID       string           `db:"upi_id" json:"upiId"`
	Amount      decimal.Decimal  `db:"amount" json:"amount"`
	Status      WithdrawalStatus `db:"status" json:"status"`
	AdminNotes  string           `db:"admin_notes" json:"adminNotes,omitempty"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	ProcessedAt *time.Time       `db:"processed_at" json:"processedAt,omitempty"`
}

// WithdrawalStatus represents withdrawal processing status
type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
)
