package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/earn")
	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("POSTBACK_SECRET", "pb")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("APP_PORT", "")

	cfg := Load()
	require.NotNil(t, cfg)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "pb", cfg.PostbackSecret)
	assert.Equal(t, 120, cfg.PostbackRateLimit)
	assert.Equal(t, 60, cfg.PostbackRateWindow)
	assert.False(t, cfg.NotifyEnabled)
	assert.False(t, cfg.StrictCampaignResolution)
}

func TestLoadNotifySettings(t *testing.T) {
	setRequired(t)
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("NOTIFY_CHAT_ID", "-100123")
	t.Setenv("NOTIFY_ENABLED", "")
	t.Setenv("STRICT_CAMPAIGN_RESOLUTION", "true")

	cfg := Load()
	assert.True(t, cfg.NotifyEnabled)
	assert.Equal(t, int64(-100123), cfg.NotifyChatID)
	assert.True(t, cfg.StrictCampaignResolution)

	t.Setenv("NOTIFY_ENABLED", "false")
	assert.False(t, Load().NotifyEnabled)
}

func TestEnvInt(t *testing.T) {
	t.Setenv("X_INT", "15")
	assert.Equal(t, 15, envInt("X_INT", 3))
	t.Setenv("X_INT", "-1")
	assert.Equal(t, 3, envInt("X_INT", 3))
	t.Setenv("X_INT", "abc")
	assert.Equal(t, 3, envInt("X_INT", 3))
}
