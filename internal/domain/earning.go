package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Earning is an append-only ledger row, one per accepted postback.
// CampaignSlug and CampaignName are snapshots taken at write time.
type Earning struct {
	ID             int64           `db:"id" json:"id"`
	AccountID      int64           `db:"account_id" json:"accountId"`
	MobileNumber   string          `db:"mobile_number" json:"mobileNumber"`
	EventType      string          `db:"event_type" json:"eventType"`
	Payment        decimal.Decimal `db:"payment" json:"payment"`
	ReportedPayout string          `db:"reported_payout" json:"reportedPayout,omitempty"`
	OfferID        string          `db:"offer_id" json:"offerId,omitempty"`
	SubID          string          `db:"sub_id" json:"subId,omitempty"`
	IPAddress      string          `db:"ip_address" json:"ipAddress,omitempty"`
	ClickTime      *time.Time      `db:"click_time" json:"clickTime,omitempty"`
	ConversionTime time.Time       `db:"conversion_time" json:"conversionTime"`
	CampaignSlug   string          `db:"campaign_slug" json:"campaignSlug"`
	CampaignName   string          `db:"campaign_name" json:"campaignName"`
	CreatedAt      time.Time       `db:"created_at" json:"createdAt"`
}

// BalanceUpdate is an account's running totals right after a ledger write.
type BalanceUpdate struct {
	TotalEarnings    decimal.Decimal `json:"totalEarnings"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
}
