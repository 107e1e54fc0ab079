package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCredentials(t *testing.T) {
	t.Setenv("PAYOS_CLIENT_ID", "client")
	t.Setenv("PAYOS_API_KEY", "api-key")
	t.Setenv("PAYOS_CHECKSUM_KEY", "checksum")
}

func TestLoad_Defaults(t *testing.T) {
	setCredentials(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "client", cfg.ClientID)
	assert.Equal(t, "api-key", cfg.APIKey)
	assert.Equal(t, "checksum", cfg.ChecksumKey)
	assert.Equal(t, DefaultClientDomain, cfg.ClientDomain)
	assert.Equal(t, "8000", cfg.HTTPPort)
	assert.Equal(t, 15*time.Second, cfg.GatewayTimeout)
	assert.Equal(t, int64(1<<20), cfg.MaxRequestBodySize)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_Overrides(t *testing.T) {
	setCredentials(t)
	t.Setenv("CLIENT_DOMAIN", "https://shop.example.com/payment")
	t.Setenv("GATEWAY_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("BREAKER_MAX_FAILURES", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com/payment", cfg.ClientDomain)
	assert.Equal(t, 3*time.Second, cfg.GatewayTimeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, uint32(5), cfg.BreakerMaxFailures)
}

func TestLoad_MissingCredentials(t *testing.T) {
	t.Setenv("PAYOS_CLIENT_ID", "")
	t.Setenv("PAYOS_API_KEY", "")
	t.Setenv("PAYOS_CHECKSUM_KEY", "")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)

	var missing *MissingCredentialsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"PAYOS_CLIENT_ID", "PAYOS_API_KEY", "PAYOS_CHECKSUM_KEY"}, missing.Vars)
}

func TestLoad_OneCredentialMissing(t *testing.T) {
	setCredentials(t)
	t.Setenv("PAYOS_CHECKSUM_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAYOS_CHECKSUM_KEY")
	assert.NotContains(t, err.Error(), "PAYOS_API_KEY")
}
