package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, int64(8453), cfg.ChainID)
	assert.Equal(t, DefaultMinBounty, cfg.MinBountyWei.String())
	assert.Equal(t, int64(200), cfg.PlatformFeeBps)
	assert.Equal(t, 1, cfg.FetchConcurrency)
	assert.Equal(t, time.Minute, cfg.RefreshInterval)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CHAIN_ID", "84532")
	t.Setenv("MIN_BOUNTY_WEI", "5000")
	t.Setenv("FETCH_CONCURRENCY", "8")
	t.Setenv("REFRESH_INTERVAL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, int64(84532), cfg.ChainID)
	assert.Equal(t, "5000", cfg.MinBountyWei.String())
	assert.Equal(t, 8, cfg.FetchConcurrency)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("MIN_BOUNTY_WEI", "0.0001")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadFee(t *testing.T) {
	t.Setenv("PLATFORM_FEE_BPS", "20000")
	_, err := Load()
	require.Error(t, err)
}

func TestProductionValidation(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "real-secret")

	_, err := Load()
	require.Error(t, err, "CONTRACT_ADDRESS must be required in production")

	t.Setenv("CONTRACT_ADDRESS", "0x281055afc982d96fab65b3a49cac8b878184cb16")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
}
