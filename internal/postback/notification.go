package postback

import (
	"context"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
)

// EarningNotification is what the user is told after a credited postback.
type EarningNotification struct {
	Recipient    string
	MobileNumber string
	ChatID       *int64
	Amount       decimal.Decimal
	Currency     string
	EventName    string
	CampaignName string
	Date         string
	Time         string
}

// Notifier delivers earning notifications. Failures are logged by the
// caller and never affect the postback response.
type Notifier interface {
	NotifyEarning(ctx context.Context, n EarningNotification) error
}

type localeLayout struct{ date, clock string }

var localeLayouts = map[string]localeLayout{
	"en-IN": {"02/01/2006", "03:04:05 pm"},
	"en-GB": {"02/01/2006", "15:04:05"},
	"en-US": {"01/02/2006", "3:04:05 PM"},
	"hi-IN": {"2/1/2006", "3:04:05 pm"},
}

// localize renders t in the campaign's timezone and locale. Unknown
// timezones fall back to UTC, unknown locales to ISO layouts.
func localize(t time.Time, tz, locale string) (date, clock string) {
	loc, err := time.LoadLocation(tz)
	if err != nil || tz == "" {
		loc = time.UTC
	}
	l, ok := localeLayouts[locale]
	if !ok {
		l = localeLayout{"2006-01-02", "15:04:05"}
	}
	t = t.In(loc)
	return t.Format(l.date), t.Format(l.clock)
}
