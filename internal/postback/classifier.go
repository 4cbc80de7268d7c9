package postback

import (
	"strings"

	"earn_webapp/internal/domain"

	"github.com/shopspring/decimal"
)

// Classification is the payout decision for one event name.
type Classification struct {
	Key         string
	DisplayName string
	Amount      decimal.Decimal
	Known       bool
}

// Classify matches eventName against the campaign's events in order. The
// comparison is case-insensitive and the first match wins.
//
// Unmapped names are not rejected: they classify with a zero amount and
// the raw name as display name, so the ledger shows which network events
// still need configuring.
func Classify(eventName string, events []domain.EventDefinition) Classification {
	needle := strings.ToLower(eventName)
	for _, ev := range events {
		for _, id := range ev.Identifiers {
			if strings.ToLower(id) == needle {
				return Classification{
					Key:         ev.Key,
					DisplayName: ev.DisplayName,
					Amount:      ev.Amount,
					Known:       true,
				}
			}
		}
	}
	return Classification{DisplayName: eventName, Amount: decimal.Zero}
}
