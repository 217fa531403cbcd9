package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-session-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.SeedDemoData)
	assert.Equal(t, 60*time.Second, cfg.TipInterval)
	assert.Equal(t, 10, cfg.MaxClientsPerUser)
	assert.Equal(t, int64(1000), cfg.WSMaxConnections)
	assert.Equal(t, 20, cfg.WSMaxPerIP)
	assert.Equal(t, 10.0, cfg.WSConnectionsRate)
	assert.Equal(t, 10, cfg.WSConnectionsBurst)
}

func TestLoad_RequiresSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoad_RejectsShortSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "16 characters")
}

func TestLoad_ProductionDisablesSeedByDefault(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-session-secret")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.SeedDemoData)
}

func TestLoad_SeedOverride(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-session-secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SEED_DEMO_DATA", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.SeedDemoData)
}

func TestLoad_TipInterval(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-session-secret")
	t.Setenv("TIP_INTERVAL", "5m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.TipInterval)
}

func TestLoad_RejectsNonPositiveTipInterval(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-session-secret")
	t.Setenv("TIP_INTERVAL", "-10s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TIP_INTERVAL")
}

func TestLoad_RejectsInvalidNumbers(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-session-secret")
	t.Setenv("MAX_CLIENTS_PER_USER", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_CLIENTS_PER_USER")
}

func TestLoad_RejectsZeroMaxClients(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-session-secret")
	t.Setenv("MAX_CLIENTS_PER_USER", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_CLIENTS_PER_USER")
}
