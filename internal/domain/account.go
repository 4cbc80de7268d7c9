package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Account is a reward wallet owner identified by a UPI id.
type Account struct {
	ID               int64           `db:"id" json:"id"`
	UPIID            string          `db:"upi_id" json:"upiId"`
	MobileNumber     *string         `db:"mobile_number" json:"mobileNumber,omitempty"`
	TelegramChatID   *int64          `db:"telegram_chat_id" json:"-"`
	TotalEarnings    decimal.Decimal `db:"total_earnings" json:"totalEarnings"`
	AvailableBalance decimal.Decimal `db:"available_balance" json:"availableBalance"`
	IsSuspended      bool            `db:"is_suspended" json:"isSuspended"`
	CreatedAt        time.Time       `db:"created_at" json:"createdAt"`
}

// Mobile returns the stored mobile number or "" when the account has none.
func (a *Account) Mobile() string {
	if a.MobileNumber == nil {
		return ""
	}
	return *a.MobileNumber
}

// MobileFromUPI extracts a 10-digit Indian mobile number from a UPI handle
// such as "9876543210@ybl" or "919876543210@paytm". It is best-effort.
func MobileFromUPI(upiID string) (string, bool) {
	local, _, _ := strings.Cut(strings.TrimSpace(upiID), "@")
	local = strings.TrimPrefix(local, "+")
	if len(local) == 12 && strings.HasPrefix(local, "91") {
		local = local[2:]
	}
	if len(local) != 10 {
		return "", false
	}
	for _, r := range local {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	if local[0] < '6' {
		return "", false
	}
	return local, true
}
