package campaign

import (
	"errors"
	"net/url"

	"earn_webapp/internal/domain"
)

var ErrNoAffiliateLink = errors.New("campaign has no affiliate link configured")

// AffiliateURL builds the outbound tracking link for a click id. The click
// id is echoed back by the network in the postback's user id field.
func AffiliateURL(c *domain.Campaign, clickID string) (string, error) {
	a := c.Affiliate
	if a.BaseURL == "" {
		return "", ErrNoAffiliateLink
	}
	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	if a.OfferID != "" {
		q.Set("offer_id", a.OfferID)
	}
	if a.AffiliateID != "" {
		q.Set("aff_id", a.AffiliateID)
	}
	param := a.ClickIDParam
	if param == "" {
		param = "aff_click_id"
	}
	q.Set(param, clickID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
