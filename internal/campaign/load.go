package campaign

import (
	"encoding/json"
	"fmt"
	"os"

	"earn_webapp/internal/domain"

	"github.com/gosimple/slug"
)

type catalogFile struct {
	Campaigns []domain.Campaign `json:"campaigns"`
}

// LoadFile reads a JSON catalog. Campaigns without a slug get one derived
// from their name; blank settings inherit the built-in defaults.
func LoadFile(path string) ([]domain.Campaign, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read campaigns file: %w", err)
	}
	return Parse(b)
}

// Parse decodes a catalog document.
func Parse(b []byte) ([]domain.Campaign, error) {
	var doc catalogFile
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode campaigns: %w", err)
	}
	for i := range doc.Campaigns {
		c := &doc.Campaigns[i]
		if c.Slug == "" {
			c.Slug = slug.Make(c.Name)
		}
		applySettingDefaults(&c.Settings)
	}
	return doc.Campaigns, nil
}

func applySettingDefaults(s *domain.CampaignSettings) {
	if s.Currency == "" {
		s.Currency = DefaultSettings.Currency
	}
	if s.Timezone == "" {
		s.Timezone = DefaultSettings.Timezone
	}
	if s.DateLocale == "" {
		s.DateLocale = DefaultSettings.DateLocale
	}
	if s.MinWithdrawal.IsZero() {
		s.MinWithdrawal = DefaultSettings.MinWithdrawal
	}
}
