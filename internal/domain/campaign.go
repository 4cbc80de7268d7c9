package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign is one affiliate network integration: how to build its links,
// how to read its postbacks and what each reported event pays.
type Campaign struct {
	ID          string            `json:"id"`
	Slug        string            `json:"slug"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	IsActive    bool              `json:"isActive"`
	Affiliate   AffiliateLink     `json:"affiliate"`
	Mapping     ParamMapping      `json:"postbackMapping"`
	Events      []EventDefinition `json:"events"`
	Settings    CampaignSettings  `json:"settings"`
}

// AffiliateLink is the template for outbound tracking links.
type AffiliateLink struct {
	BaseURL      string `json:"baseUrl"`
	OfferID      string `json:"offerId"`
	AffiliateID  string `json:"affiliateId"`
	ClickIDParam string `json:"clickIdParam"`
}

// ParamMapping maps each canonical postback field to the query key the
// network actually sends.
type ParamMapping struct {
	UserID    string `json:"userId"`
	Payment   string `json:"payment"`
	EventName string `json:"eventName"`
	OfferID   string `json:"offerId"`
	IPAddress string `json:"ipAddress"`
	Timestamp string `json:"timestamp"`
}

// EventDefinition is a payable event. Identifiers are matched case-insensitively.
type EventDefinition struct {
	Key         string          `json:"key"`
	Identifiers []string        `json:"identifiers"`
	DisplayName string          `json:"displayName"`
	Amount      decimal.Decimal `json:"amount"`
}

type CampaignSettings struct {
	Currency       string          `json:"currency"`
	MinWithdrawal  decimal.Decimal `json:"minWithdrawal"`
	Timezone       string          `json:"timezone"`
	DateLocale     string          `json:"dateLocale"`
	VerboseLogging bool            `json:"verboseLogging"`
	// Carried through from config; postbacks are not deduplicated.
	EnableDuplicateDetection bool `json:"enableDuplicateDetection"`
}

// CampaignStatus is the persisted runtime override of Campaign.IsActive.
type CampaignStatus struct {
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
