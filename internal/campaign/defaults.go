package campaign

import (
	"earn_webapp/internal/domain"

	"github.com/shopspring/decimal"
)

var DefaultSettings = domain.CampaignSettings{
	Currency:      "₹",
	MinWithdrawal: decimal.NewFromInt(30),
	Timezone:      "Asia/Kolkata",
	DateLocale:    "en-IN",
}

// Builtin is the catalog used when no campaigns file is configured.
func Builtin() []domain.Campaign {
	return []domain.Campaign{
		{
			ID:          "1",
			Slug:        "story-tv",
			Name:        "Story TV",
			Description: "Install Story TV and start the free trial",
			IsActive:    true,
			Affiliate: domain.AffiliateLink{
				BaseURL:      "https://tracking.icubeswire.co/aff_c",
				OfferID:      "5711",
				AffiliateID:  "1188",
				ClickIDParam: "aff_click_id",
			},
			Mapping: domain.ParamMapping{
				UserID:    "aff_click_id",
				Payment:   "payout",
				EventName: "event_name",
				OfferID:   "offer_id",
				IPAddress: "ip",
				Timestamp: "timestamp",
			},
			Events: []domain.EventDefinition{
				{
					Key:         "install",
					Identifiers: []string{"install", "s_install"},
					DisplayName: "App Install",
					Amount:      decimal.NewFromInt(0),
				},
				{
					Key:         "trail",
					Identifiers: []string{"trail", "registration"},
					DisplayName: "Trail Purchase",
					Amount:      decimal.NewFromInt(25),
				},
				{
					Key:         "purchase",
					Identifiers: []string{"purchase", "subscription"},
					DisplayName: "Subscription Purchase",
					Amount:      decimal.NewFromInt(50),
				},
			},
			Settings: DefaultSettings,
		},
	}
}
