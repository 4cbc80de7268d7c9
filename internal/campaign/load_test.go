package campaign

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `{
  "campaigns": [
    {
      "id": "7",
      "name": "Kuku FM Trial",
      "isActive": true,
      "affiliate": {"baseUrl": "https://net.example/click", "offerId": "42", "affiliateId": "9", "clickIdParam": "sub1"},
      "postbackMapping": {"userId": "sub1", "payment": "amount", "eventName": "goal", "offerId": "oid"},
      "events": [
        {"key": "trial", "identifiers": ["Trial", "S_Trial"], "displayName": "Free Trial", "amount": "12.50"}
      ],
      "settings": {"verboseLogging": true}
    }
  ]
}`

func TestParseCatalog(t *testing.T) {
	cs, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, cs, 1)

	c := cs[0]
	assert.Equal(t, "kuku-fm-trial", c.Slug, "slug derived from name")
	assert.Equal(t, "sub1", c.Mapping.UserID)
	assert.True(t, c.Events[0].Amount.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, c.Settings.VerboseLogging)
	assert.Equal(t, DefaultSettings.Currency, c.Settings.Currency)
	assert.Equal(t, "Asia/Kolkata", c.Settings.Timezone)

	_, err = NewRegistry(cs, nil)
	require.NoError(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaigns.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))

	cs, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, cs, 1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Parse([]byte("{"))
	assert.Error(t, err)
}

func TestBuiltinCatalogIsValid(t *testing.T) {
	r, err := NewRegistry(Builtin(), nil)
	require.NoError(t, err)
	c := r.GetBySlugOrID("story-tv")
	require.NotNil(t, c)
	assert.Equal(t, "aff_click_id", c.Mapping.UserID)
}

func TestAffiliateURL(t *testing.T) {
	c := Builtin()[0]
	u, err := AffiliateURL(&c, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "https://tracking.icubeswire.co/aff_c?aff_click_id=9876543210&aff_id=1188&offer_id=5711", u)

	c.Affiliate.BaseURL = ""
	_, err = AffiliateURL(&c, "x")
	assert.ErrorIs(t, err, ErrNoAffiliateLink)
}

func TestExampleCatalogLoads(t *testing.T) {
	cs, err := LoadFile(filepath.Join("..", "..", "campaigns.example.json"))
	require.NoError(t, err)

	r, err := NewRegistry(cs, nil)
	require.NoError(t, err)

	kuku := r.GetBySlugOrID("kuku-fm")
	require.NotNil(t, kuku)
	assert.False(t, kuku.IsActive)
	assert.True(t, kuku.Events[0].Amount.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "story-tv", r.ResolveByOfferID("5711").Slug)
}
