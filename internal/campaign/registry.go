// Package campaign holds the in-process campaign catalog and the
// persisted activation overrides that sit on top of it.
package campaign

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"earn_webapp/internal/domain"
	"earn_webapp/internal/logger"

	"github.com/gosimple/slug"
)

var (
	ErrNoCampaigns      = errors.New("campaign catalog is empty")
	ErrCampaignNotFound = errors.New("campaign not found")
)

// StatusStore reads and writes per-slug activation overrides.
// Get returns nil when no override exists.
type StatusStore interface {
	Get(ctx context.Context, slug string) (*domain.CampaignStatus, error)
	Set(ctx context.Context, slug string, active bool) (*domain.CampaignStatus, error)
}

// Registry is the campaign catalog. It is built once at startup and the
// campaign list is read-only afterwards; only the override store changes.
type Registry struct {
	campaigns []domain.Campaign
	store     StatusStore
	strict    bool
}

type Option func(*Registry)

// WithStrictResolution makes ResolveByCampaignID return nil for a non-empty
// cid that matches nothing instead of falling back to the first campaign.
func WithStrictResolution(strict bool) Option {
	return func(r *Registry) { r.strict = strict }
}

// NewRegistry validates the catalog and builds a registry. store may be nil,
// in which case every campaign uses its static IsActive flag.
func NewRegistry(campaigns []domain.Campaign, store StatusStore, opts ...Option) (*Registry, error) {
	if len(campaigns) == 0 {
		return nil, ErrNoCampaigns
	}

	log := logger.With("component", "campaign_registry")
	seenSlug := make(map[string]bool, len(campaigns))
	seenID := make(map[string]bool, len(campaigns))
	for i := range campaigns {
		c := &campaigns[i]
		if !slug.IsSlug(c.Slug) {
			return nil, fmt.Errorf("campaign %q: slug %q is not url-safe", c.Name, c.Slug)
		}
		if seenSlug[c.Slug] {
			return nil, fmt.Errorf("duplicate campaign slug %q", c.Slug)
		}
		seenSlug[c.Slug] = true
		if c.ID == "" {
			c.ID = c.Slug
		}
		if seenID[c.ID] {
			return nil, fmt.Errorf("duplicate campaign id %q", c.ID)
		}
		seenID[c.ID] = true

		for _, ev := range c.Events {
			if ev.Amount.IsNegative() {
				return nil, fmt.Errorf("campaign %q: event %q has a negative amount", c.Slug, ev.Key)
			}
		}
		for _, dup := range overlappingIdentifiers(c.Events) {
			log.Warn("event identifier used by more than one event, first match wins",
				"campaign", c.Slug, "identifier", dup)
		}
	}

	r := &Registry{
		campaigns: append([]domain.Campaign(nil), campaigns...),
		store:     store,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// List returns the catalog in registration order.
func (r *Registry) List() []domain.Campaign {
	return append([]domain.Campaign(nil), r.campaigns...)
}

// ResolveByOfferID matches the configured affiliate offer id exactly.
func (r *Registry) ResolveByOfferID(offerID string) *domain.Campaign {
	if offerID == "" {
		return nil
	}
	for i := range r.campaigns {
		if r.campaigns[i].Affiliate.OfferID == offerID {
			return &r.campaigns[i]
		}
	}
	return nil
}

// ResolveByCampaignID returns the first campaign whose slug or id equals
// cid. An absent or unmatched cid yields the first registered campaign,
// unless the registry is strict and cid is non-empty.
func (r *Registry) ResolveByCampaignID(cid string) *domain.Campaign {
	if c := r.GetBySlugOrID(cid); c != nil {
		return c
	}
	if r.strict && cid != "" {
		return nil
	}
	return &r.campaigns[0]
}

// Resolve applies the postback resolution order: offer id, then cid.
func (r *Registry) Resolve(offerID, cid string) *domain.Campaign {
	if c := r.ResolveByOfferID(offerID); c != nil {
		return c
	}
	return r.ResolveByCampaignID(cid)
}

// GetBySlugOrID is an exact lookup without fallback.
func (r *Registry) GetBySlugOrID(slugOrID string) *domain.Campaign {
	if slugOrID == "" {
		return nil
	}
	for i := range r.campaigns {
		if r.campaigns[i].Slug == slugOrID || r.campaigns[i].ID == slugOrID {
			return &r.campaigns[i]
		}
	}
	return nil
}

// IsActive is the effective activation state: a persisted override wins
// over the static flag.
func (r *Registry) IsActive(ctx context.Context, c *domain.Campaign) (bool, error) {
	if r.store == nil {
		return c.IsActive, nil
	}
	st, err := r.store.Get(ctx, c.Slug)
	if err != nil {
		return false, fmt.Errorf("load campaign status %s: %w", c.Slug, err)
	}
	if st == nil {
		return c.IsActive, nil
	}
	return st.IsActive, nil
}

// IsSuspended reports whether the campaign with this slug is effectively
// inactive. Unknown slugs are ErrCampaignNotFound.
func (r *Registry) IsSuspended(ctx context.Context, slug string) (bool, error) {
	c := r.GetBySlugOrID(slug)
	if c == nil {
		return false, ErrCampaignNotFound
	}
	active, err := r.IsActive(ctx, c)
	return !active, err
}

// GetActive is the public lookup: unknown and suspended campaigns are both
// reported as ErrCampaignNotFound.
func (r *Registry) GetActive(ctx context.Context, slugOrID string) (*domain.Campaign, error) {
	c := r.GetBySlugOrID(slugOrID)
	if c == nil {
		return nil, ErrCampaignNotFound
	}
	active, err := r.IsActive(ctx, c)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrCampaignNotFound
	}
	return c, nil
}

// GetActiveOrFirst returns the first effectively active campaign, or the
// first campaign when none is active.
func (r *Registry) GetActiveOrFirst(ctx context.Context) (*domain.Campaign, error) {
	for i := range r.campaigns {
		active, err := r.IsActive(ctx, &r.campaigns[i])
		if err != nil {
			return nil, err
		}
		if active {
			return &r.campaigns[i], nil
		}
	}
	return &r.campaigns[0], nil
}

// SetActive stores an override for slug.
func (r *Registry) SetActive(ctx context.Context, slug string, active bool) (*domain.CampaignStatus, error) {
	c := r.GetBySlugOrID(slug)
	if c == nil {
		return nil, ErrCampaignNotFound
	}
	if r.store == nil {
		return nil, errors.New("campaign status store not configured")
	}
	return r.store.Set(ctx, c.Slug, active)
}

func overlappingIdentifiers(events []domain.EventDefinition) []string {
	owner := make(map[string]string)
	var dups []string
	for _, ev := range events {
		for _, id := range ev.Identifiers {
			k := strings.ToLower(id)
			if prev, ok := owner[k]; ok && prev != ev.Key {
				dups = append(dups, k)
				continue
			}
			owner[k] = ev.Key
		}
	}
	return dups
}
