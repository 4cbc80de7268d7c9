package postback

import (
	"net/url"

	"earn_webapp/internal/domain"
)

// Canonical is a postback translated into internal field names. Values are
// raw strings; an empty string means the network did not send the key.
type Canonical struct {
	UserID    string
	Payment   string
	EventName string
	OfferID   string
	IPAddress string
	Timestamp string
	SubID     string
}

// Always-recognized sub id keys, in priority order.
var subIDKeys = []string{"sub_aff_id", "sub1"}

// MapParams reads each canonical field from the query key named by the
// campaign's mapping. Missing keys are left empty; validation is the
// caller's job.
func MapParams(m domain.ParamMapping, q url.Values) Canonical {
	c := Canonical{
		UserID:    lookup(q, m.UserID),
		Payment:   lookup(q, m.Payment),
		EventName: lookup(q, m.EventName),
		OfferID:   lookup(q, m.OfferID),
		IPAddress: lookup(q, m.IPAddress),
		Timestamp: lookup(q, m.Timestamp),
	}
	for _, k := range subIDKeys {
		if v := q.Get(k); v != "" {
			c.SubID = v
			break
		}
	}
	return c
}

func lookup(q url.Values, key string) string {
	if key == "" {
		return ""
	}
	return q.Get(key)
}
